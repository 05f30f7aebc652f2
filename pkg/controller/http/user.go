package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/newsdesk-lab/copydesk/pkg/domain/model"
	"github.com/newsdesk-lab/copydesk/pkg/domain/types"
	"github.com/newsdesk-lab/copydesk/pkg/usecase"
	"github.com/newsdesk-lab/copydesk/pkg/utils/errutil"
)

type userResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:   u.ID.String(),
		Name: u.Name,
		Role: u.Role.String(),
	}
}

func (s *Server) putUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Role string `json:"role"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	role, err := types.ParseRole(req.Role)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(usecase.ErrValidation, err.Error()))
		return
	}

	user, err := s.uc.PutUser(r.Context(), &model.User{
		ID:   types.UserID(req.ID),
		Name: req.Name,
		Role: role,
	})
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, toUserResponse(user))
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.uc.ListUsers(r.Context())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	resp := make([]userResponse, len(users))
	for i, u := range users {
		resp[i] = toUserResponse(u)
	}
	respondJSON(w, r, http.StatusOK, resp)
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.uc.GetUser(r.Context(), types.UserID(chi.URLParam(r, "userID")))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toUserResponse(user))
}
