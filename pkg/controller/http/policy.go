package http

import (
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/newsdesk-lab/copydesk/pkg/domain/types"
	"github.com/newsdesk-lab/copydesk/pkg/usecase"
	"github.com/newsdesk-lab/copydesk/pkg/utils/errutil"
)

// policyTransitions answers "where may this role move a story from this
// status/stage" without touching any story record.
func (s *Server) policyTransitions(w http.ResponseWriter, r *http.Request) {
	role, err := types.ParseRole(r.URL.Query().Get("role"))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(usecase.ErrValidation, err.Error()))
		return
	}

	if stageParam := r.URL.Query().Get("stage"); stageParam != "" {
		stage, err := types.ParseStoryStage(stageParam)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(usecase.ErrValidation, err.Error()))
			return
		}
		stages := s.uc.AvailableStageTransitions(role, stage)
		resp := struct {
			Role        string   `json:"role"`
			From        string   `json:"from"`
			Model       string   `json:"model"`
			Transitions []string `json:"transitions"`
		}{Role: role.String(), From: stage.String(), Model: "stage", Transitions: make([]string, len(stages))}
		for i, st := range stages {
			resp.Transitions[i] = st.String()
		}
		respondJSON(w, r, http.StatusOK, resp)
		return
	}

	status, err := types.ParseStoryStatus(r.URL.Query().Get("status"))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(usecase.ErrValidation, err.Error()))
		return
	}
	statuses := s.uc.AvailableTransitions(role, status)
	resp := struct {
		Role        string   `json:"role"`
		From        string   `json:"from"`
		Model       string   `json:"model"`
		Transitions []string `json:"transitions"`
	}{Role: role.String(), From: status.String(), Model: "status", Transitions: make([]string, len(statuses))}
	for i, st := range statuses {
		resp.Transitions[i] = st.String()
	}
	respondJSON(w, r, http.StatusOK, resp)
}

// policyCapabilities lists the actions a role holds per resource kind.
func (s *Server) policyCapabilities(w http.ResponseWriter, r *http.Request) {
	role, err := types.ParseRole(r.URL.Query().Get("role"))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(usecase.ErrValidation, err.Error()))
		return
	}

	caps := s.uc.Engine().Capabilities()
	resp := struct {
		Role         string              `json:"role"`
		Capabilities map[string][]string `json:"capabilities"`
	}{Role: role.String(), Capabilities: make(map[string][]string)}

	for _, kind := range types.AllResourceKinds() {
		actions := caps.Actions(role, kind)
		list := make([]string, len(actions))
		for i, a := range actions {
			list[i] = a.String()
		}
		resp.Capabilities[kind.String()] = list
	}
	respondJSON(w, r, http.StatusOK, resp)
}
