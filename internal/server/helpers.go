package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/googol23/ExpenseTracker/internal/ledger"
)

// writeJSON encodes v as the response body with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError writes an {"error": ...} body with the error's message.
func writeError(w http.ResponseWriter, status int, err error) {
	writeErrorMessage(w, status, err.Error())
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// isDomainError reports whether err is a ledger validation failure the
// client caused, as opposed to a storage or infrastructure fault.
func isDomainError(err error) bool {
	var shareErr *ledger.ShareMismatchError
	var unknownErr *ledger.UnknownMemberError
	return errors.Is(err, ledger.ErrNoMembers) ||
		errors.Is(err, ledger.ErrEmptyParticipants) ||
		errors.Is(err, ledger.ErrInvalidShares) ||
		errors.As(err, &shareErr) ||
		errors.As(err, &unknownErr)
}
