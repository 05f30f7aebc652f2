package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	httpctrl "github.com/newsdesk-lab/copydesk/pkg/controller/http"
	"github.com/newsdesk-lab/copydesk/pkg/repository/memory"
	"github.com/newsdesk-lab/copydesk/pkg/usecase"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(httpctrl.New(usecase.New(memory.New())))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, actor string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		gt.NoError(t, json.NewEncoder(&buf).Encode(body)).Required()
	}
	req, err := http.NewRequest(method, url, &buf)
	gt.NoError(t, err).Required()
	if actor != "" {
		req.Header.Set("X-Actor-ID", actor)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	gt.NoError(t, err).Required()
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	gt.NoError(t, json.NewDecoder(resp.Body).Decode(v)).Required()
}

func seedUser(t *testing.T, srv *httptest.Server, id, role string) {
	t.Helper()

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/users", "", map[string]string{
		"id": id, "name": id, "role": role,
	})
	gt.Value(t, resp.StatusCode).Equal(http.StatusCreated)
}

func seedStory(t *testing.T, srv *httptest.Server, author, title string) string {
	t.Helper()

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/stories", author, map[string]any{
		"title": title,
	})
	gt.Value(t, resp.StatusCode).Equal(http.StatusCreated)

	var story struct {
		ID string `json:"id"`
	}
	decodeBody(t, resp, &story)
	return story.ID
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	gt.NoError(t, err).Required()
	defer resp.Body.Close()
	gt.Value(t, resp.StatusCode).Equal(http.StatusOK)
}

func TestUserEndpoints(t *testing.T) {
	srv := newTestServer(t)

	t.Run("put and get", func(t *testing.T) {
		seedUser(t, srv, "alice", "JOURNALIST")

		resp := doJSON(t, http.MethodGet, srv.URL+"/api/users/alice", "", nil)
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)

		var user struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		}
		decodeBody(t, resp, &user)
		gt.Value(t, user.ID).Equal("alice")
		gt.Value(t, user.Role).Equal("JOURNALIST")
	})

	t.Run("invalid role is unprocessable", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/users", "", map[string]string{
			"id": "bob", "name": "bob", "role": "MANAGER",
		})
		gt.Value(t, resp.StatusCode).Equal(http.StatusUnprocessableEntity)
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, srv.URL+"/api/users/nobody", "", nil)
		gt.Value(t, resp.StatusCode).Equal(http.StatusNotFound)
	})
}

func TestStoryEndpoints(t *testing.T) {
	srv := newTestServer(t)
	seedUser(t, srv, "alice", "JOURNALIST")
	seedUser(t, srv, "rita", "JOURNALIST")
	seedUser(t, srv, "bob", "JOURNALIST")

	t.Run("create requires the actor header", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/stories", "", map[string]any{
			"title": "Headless request",
		})
		gt.Value(t, resp.StatusCode).Equal(http.StatusUnprocessableEntity)
	})

	t.Run("create and get", func(t *testing.T) {
		id := seedStory(t, srv, "alice", "Council approves budget")

		resp := doJSON(t, http.MethodGet, srv.URL+"/api/stories/"+id, "", nil)
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)

		var story struct {
			Status     string `json:"status"`
			Stage      string `json:"stage"`
			AuthorID   string `json:"author_id"`
			AuthorRole string `json:"author_role"`
		}
		decodeBody(t, resp, &story)
		gt.Value(t, story.Status).Equal("DRAFT")
		gt.Value(t, story.Stage).Equal("DRAFT")
		gt.Value(t, story.AuthorID).Equal("alice")
		gt.Value(t, story.AuthorRole).Equal("JOURNALIST")
	})

	t.Run("non-author edit is forbidden", func(t *testing.T) {
		id := seedStory(t, srv, "alice", "Protected")

		resp := doJSON(t, http.MethodPatch, srv.URL+"/api/stories/"+id, "bob", map[string]string{
			"title": "Hijacked", "body": "",
		})
		gt.Value(t, resp.StatusCode).Equal(http.StatusForbidden)
	})

	t.Run("transition happy path and transitions listing", func(t *testing.T) {
		id := seedStory(t, srv, "alice", "Pipeline")

		resp := doJSON(t, http.MethodGet, srv.URL+"/api/stories/"+id+"/transitions", "alice", nil)
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)
		var listing struct {
			From        string   `json:"from"`
			Transitions []string `json:"transitions"`
		}
		decodeBody(t, resp, &listing)
		gt.Value(t, listing.From).Equal("DRAFT")
		gt.Value(t, listing.Transitions).Equal([]string{"IN_REVIEW", "PENDING_APPROVAL"})

		resp = doJSON(t, http.MethodPost, srv.URL+"/api/stories/"+id+"/transition", "alice", map[string]string{
			"to": "IN_REVIEW", "reviewer_id": "rita",
		})
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)
		var story struct {
			Status             string `json:"status"`
			AssignedReviewerID string `json:"assigned_reviewer_id"`
		}
		decodeBody(t, resp, &story)
		gt.Value(t, story.Status).Equal("IN_REVIEW")
		gt.Value(t, story.AssignedReviewerID).Equal("rita")
	})

	t.Run("illegal transition is unprocessable", func(t *testing.T) {
		id := seedStory(t, srv, "alice", "No shortcuts")

		resp := doJSON(t, http.MethodPost, srv.URL+"/api/stories/"+id+"/transition", "alice", map[string]string{
			"to": "PUBLISHED",
		})
		gt.Value(t, resp.StatusCode).Equal(http.StatusUnprocessableEntity)
	})

	t.Run("unknown story is not found", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, srv.URL+"/api/stories/ffffffff-0000-0000-0000-000000000000", "", nil)
		gt.Value(t, resp.StatusCode).Equal(http.StatusNotFound)
	})
}

func TestRevisionEndpoints(t *testing.T) {
	srv := newTestServer(t)
	seedUser(t, srv, "alice", "JOURNALIST")
	seedUser(t, srv, "rita", "JOURNALIST")

	submit := func(t *testing.T, id string) {
		t.Helper()
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/stories/"+id+"/transition", "alice", map[string]string{
			"to": "IN_REVIEW", "reviewer_id": "rita",
		})
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)
	}

	t.Run("open, list and resolve", func(t *testing.T) {
		id := seedStory(t, srv, "alice", "Needs work")
		submit(t, id)

		resp := doJSON(t, http.MethodPost, srv.URL+"/api/stories/"+id+"/revisions", "rita", map[string]string{
			"assigned_to_id": "alice",
			"reason":         "The second paragraph contradicts the quoted source.",
		})
		gt.Value(t, resp.StatusCode).Equal(http.StatusCreated)

		var opened struct {
			Revision struct {
				ID     string `json:"id"`
				Status string `json:"status"`
			} `json:"revision"`
			Story struct {
				Status string `json:"status"`
			} `json:"story"`
		}
		decodeBody(t, resp, &opened)
		gt.Value(t, opened.Revision.Status).Equal("OPEN")
		gt.Value(t, opened.Story.Status).Equal("DRAFT")

		resp = doJSON(t, http.MethodGet, srv.URL+"/api/stories/"+id+"/revisions?open=true", "", nil)
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)
		var open []struct {
			ID string `json:"id"`
		}
		decodeBody(t, resp, &open)
		gt.Array(t, open).Length(1)

		// Only the author resolves.
		resp = doJSON(t, http.MethodPatch, srv.URL+"/api/revisions/"+opened.Revision.ID+"/resolve", "rita", nil)
		gt.Value(t, resp.StatusCode).Equal(http.StatusForbidden)

		resp = doJSON(t, http.MethodPatch, srv.URL+"/api/revisions/"+opened.Revision.ID+"/resolve", "alice", nil)
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)
	})

	t.Run("short reason is unprocessable", func(t *testing.T) {
		id := seedStory(t, srv, "alice", "Short reason")
		submit(t, id)

		resp := doJSON(t, http.MethodPost, srv.URL+"/api/stories/"+id+"/revisions", "rita", map[string]string{
			"assigned_to_id": "alice",
			"reason":         "meh",
		})
		gt.Value(t, resp.StatusCode).Equal(http.StatusUnprocessableEntity)
	})

	t.Run("unassigned requester is forbidden", func(t *testing.T) {
		seedUser(t, srv, "mallory", "JOURNALIST")
		id := seedStory(t, srv, "alice", "Not yours")
		submit(t, id)

		resp := doJSON(t, http.MethodPost, srv.URL+"/api/stories/"+id+"/revisions", "mallory", map[string]string{
			"assigned_to_id": "alice",
			"reason":         "I would like to request this without being assigned.",
		})
		gt.Value(t, resp.StatusCode).Equal(http.StatusForbidden)
	})

	t.Run("resolve-all returns the count", func(t *testing.T) {
		id := seedStory(t, srv, "alice", "Resolve all")
		submit(t, id)

		resp := doJSON(t, http.MethodPost, srv.URL+"/api/stories/"+id+"/revisions", "rita", map[string]string{
			"assigned_to_id": "alice",
			"reason":         "The second paragraph contradicts the quoted source.",
		})
		gt.Value(t, resp.StatusCode).Equal(http.StatusCreated)

		resp = doJSON(t, http.MethodPost, srv.URL+"/api/stories/"+id+"/revisions/resolve-all", "alice", nil)
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)
		var result struct {
			Resolved int `json:"resolved"`
		}
		decodeBody(t, resp, &result)
		gt.Value(t, result.Resolved).Equal(1)

		resp = doJSON(t, http.MethodPost, srv.URL+"/api/stories/"+id+"/revisions/resolve-all", "alice", nil)
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)
		decodeBody(t, resp, &result)
		gt.Value(t, result.Resolved).Equal(0)
	})
}

func TestPolicyEndpoints(t *testing.T) {
	srv := newTestServer(t)

	t.Run("status transitions", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, srv.URL+"/api/policy/transitions?role=INTERN&status=DRAFT", "", nil)
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)

		var result struct {
			Model       string   `json:"model"`
			Transitions []string `json:"transitions"`
		}
		decodeBody(t, resp, &result)
		gt.Value(t, result.Model).Equal("status")
		gt.Value(t, result.Transitions).Equal([]string{"IN_REVIEW"})
	})

	t.Run("stage transitions", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, srv.URL+"/api/policy/transitions?role=SUB_EDITOR&stage=TRANSLATED", "", nil)
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)

		var result struct {
			Model       string   `json:"model"`
			Transitions []string `json:"transitions"`
		}
		decodeBody(t, resp, &result)
		gt.Value(t, result.Model).Equal("stage")
		gt.Value(t, result.Transitions).Equal([]string{"DRAFT", "PUBLISHED"})
	})

	t.Run("capabilities", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, srv.URL+"/api/policy/capabilities?role=INTERN", "", nil)
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)

		var result struct {
			Capabilities map[string][]string `json:"capabilities"`
		}
		decodeBody(t, resp, &result)
		gt.Value(t, result.Capabilities["story"]).Equal([]string{"create", "read", "update"})
	})

	t.Run("invalid role is unprocessable", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, srv.URL+"/api/policy/transitions?role=MANAGER&status=DRAFT", "", nil)
		gt.Value(t, resp.StatusCode).Equal(http.StatusUnprocessableEntity)
	})
}
