package model

import "github.com/m-mizutani/goerr/v2"

// Storage-level errors shared by every repository backend. Callers match
// them with errors.Is regardless of which backend produced them.
var (
	ErrNotFound = goerr.New("record not found")
	ErrConflict = goerr.New("concurrent modification detected")
)
