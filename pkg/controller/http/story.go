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

type storyResponse struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	Body               string `json:"body,omitempty"`
	AuthorID           string `json:"author_id"`
	AuthorRole         string `json:"author_role"`
	Status             string `json:"status"`
	Stage              string `json:"stage"`
	AssignedReviewerID string `json:"assigned_reviewer_id,omitempty"`
	AssignedApproverID string `json:"assigned_approver_id,omitempty"`
	IsTranslation      bool   `json:"is_translation"`
}

func toStoryResponse(s *model.Story) storyResponse {
	return storyResponse{
		ID:                 s.ID.String(),
		Title:              s.Title,
		Body:               s.Body,
		AuthorID:           s.AuthorID.String(),
		AuthorRole:         s.AuthorRole.String(),
		Status:             s.Status.String(),
		Stage:              s.Stage().String(),
		AssignedReviewerID: s.AssignedReviewerID.String(),
		AssignedApproverID: s.AssignedApproverID.String(),
		IsTranslation:      s.IsTranslation,
	}
}

func (s *Server) createStory(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	var req struct {
		Title         string `json:"title"`
		Body          string `json:"body"`
		IsTranslation bool   `json:"is_translation"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	story, err := s.uc.CreateStory(r.Context(), usecase.CreateStoryInput{
		Title:         req.Title,
		Body:          req.Body,
		AuthorID:      actor,
		IsTranslation: req.IsTranslation,
	})
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, toStoryResponse(story))
}

func (s *Server) listStories(w http.ResponseWriter, r *http.Request) {
	stories, err := s.uc.ListStories(r.Context())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	resp := make([]storyResponse, len(stories))
	for i, story := range stories {
		resp[i] = toStoryResponse(story)
	}
	respondJSON(w, r, http.StatusOK, resp)
}

func (s *Server) getStory(w http.ResponseWriter, r *http.Request) {
	story, err := s.uc.GetStory(r.Context(), types.StoryID(chi.URLParam(r, "storyID")))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toStoryResponse(story))
}

func (s *Server) updateStory(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	var req struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	story, err := s.uc.UpdateStoryContent(r.Context(), types.StoryID(chi.URLParam(r, "storyID")), actor, req.Title, req.Body)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toStoryResponse(story))
}

// storyTransitions lists the statuses the acting user's role may move
// this story to from its current status.
func (s *Server) storyTransitions(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}
	user, err := s.uc.GetUser(r.Context(), actor)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}
	story, err := s.uc.GetStory(r.Context(), types.StoryID(chi.URLParam(r, "storyID")))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	statuses := s.uc.AvailableTransitions(user.Role, story.Status)
	resp := struct {
		From        string   `json:"from"`
		Transitions []string `json:"transitions"`
	}{
		From:        story.Status.String(),
		Transitions: make([]string, len(statuses)),
	}
	for i, status := range statuses {
		resp.Transitions[i] = status.String()
	}
	respondJSON(w, r, http.StatusOK, resp)
}

func (s *Server) applyTransition(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	var req struct {
		To         string `json:"to"`
		ReviewerID string `json:"reviewer_id"`
		ApproverID string `json:"approver_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	to, err := types.ParseStoryStatus(req.To)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(usecase.ErrValidation, err.Error()))
		return
	}

	story, err := s.uc.ApplyTransition(r.Context(), types.StoryID(chi.URLParam(r, "storyID")), actor, to,
		types.UserID(req.ReviewerID), types.UserID(req.ApproverID))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toStoryResponse(story))
}
