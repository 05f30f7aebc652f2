package http

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/newsdesk-lab/copydesk/pkg/domain/types"
	"github.com/newsdesk-lab/copydesk/pkg/usecase"
	"github.com/newsdesk-lab/copydesk/pkg/utils/errutil"
)

// actorHeader carries the acting user's ID. Authentication is the
// surrounding deployment's job; this controller only needs an identity to
// hand to the facade.
const actorHeader = "X-Actor-ID"

func actorID(r *http.Request) (types.UserID, error) {
	id := types.UserID(r.Header.Get(actorHeader))
	if id.IsEmpty() {
		return "", goerr.Wrap(usecase.ErrValidation, "missing "+actorHeader+" header")
	}
	return id, nil
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return goerr.Wrap(usecase.ErrValidation, "invalid request body", goerr.V("error", err.Error()))
	}
	return nil
}

func respondJSON(w http.ResponseWriter, r *http.Request, statusCode int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(data) //nolint:errcheck // header already committed
}
