package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/newsdesk-lab/copydesk/pkg/domain/model"
	"github.com/newsdesk-lab/copydesk/pkg/domain/types"
	"github.com/newsdesk-lab/copydesk/pkg/usecase"
	"github.com/newsdesk-lab/copydesk/pkg/utils/errutil"
)

type revisionResponse struct {
	ID              string     `json:"id"`
	StoryID         string     `json:"story_id"`
	RequestedByID   string     `json:"requested_by_id"`
	RequestedByRole string     `json:"requested_by_role"`
	AssignedToID    string     `json:"assigned_to_id"`
	Reason          string     `json:"reason"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`
	ResolvedByID    string     `json:"resolved_by_id,omitempty"`
}

func toRevisionResponse(rev *model.RevisionRequest) revisionResponse {
	return revisionResponse{
		ID:              rev.ID.String(),
		StoryID:         rev.StoryID.String(),
		RequestedByID:   rev.RequestedByID.String(),
		RequestedByRole: rev.RequestedByRole.String(),
		AssignedToID:    rev.AssignedToID.String(),
		Reason:          rev.Reason,
		Status:          rev.Status.String(),
		CreatedAt:       rev.CreatedAt,
		ResolvedAt:      rev.ResolvedAt,
		ResolvedByID:    rev.ResolvedByID.String(),
	}
}

func (s *Server) listRevisions(w http.ResponseWriter, r *http.Request) {
	openOnly := r.URL.Query().Get("open") == "true"
	revisions, err := s.uc.ListRevisions(r.Context(), types.StoryID(chi.URLParam(r, "storyID")), openOnly)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	resp := make([]revisionResponse, len(revisions))
	for i, rev := range revisions {
		resp[i] = toRevisionResponse(rev)
	}
	respondJSON(w, r, http.StatusOK, resp)
}

func (s *Server) openRevision(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	var req struct {
		AssignedToID string `json:"assigned_to_id"`
		Reason       string `json:"reason"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	rev, story, err := s.uc.OpenRevision(r.Context(), usecase.OpenRevisionInput{
		StoryID:       types.StoryID(chi.URLParam(r, "storyID")),
		RequestedByID: actor,
		AssignedToID:  types.UserID(req.AssignedToID),
		Reason:        req.Reason,
	})
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	resp := struct {
		Revision revisionResponse `json:"revision"`
		Story    storyResponse    `json:"story"`
	}{
		Revision: toRevisionResponse(rev),
		Story:    toStoryResponse(story),
	}
	respondJSON(w, r, http.StatusCreated, resp)
}

func (s *Server) resolveRevision(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	story, err := s.uc.ResolveRevision(r.Context(), types.RevisionID(chi.URLParam(r, "revisionID")), actor)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toStoryResponse(story))
}

func (s *Server) resolveAllRevisions(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	count, err := s.uc.ResolveAllOpenRevisions(r.Context(), types.StoryID(chi.URLParam(r, "storyID")), actor)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	resp := struct {
		Resolved int `json:"resolved"`
	}{Resolved: count}
	respondJSON(w, r, http.StatusOK, resp)
}
