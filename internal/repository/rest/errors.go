package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"investiga-web/internal/domain"
)

// ValidationError is a 400/422 response; Messages are safe to show to the user.
type ValidationError struct {
	Op       string
	Status   int
	Messages []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: validation failed (%d): %s", e.Op, e.Status, strings.Join(e.Messages, "; "))
}

func (e *ValidationError) UserMessages() []string {
	return e.Messages
}

// UnexpectedError covers transport failures, 5xx responses and anything else
// the taxonomy does not name.
type UnexpectedError struct {
	Op     string
	Status int
	Err    error
}

func (e *UnexpectedError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: unexpected backend response (%d): %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UnexpectedError) Unwrap() error {
	return e.Err
}

// errorBody accepts both {"message": "x"} and {"message": ["a", "b"]}
type errorBody struct {
	Message json.RawMessage `json:"message"`
	Error   string          `json:"error"`
}

func parseMessages(data []byte) []string {
	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil || len(body.Message) == 0 {
		return nil
	}
	var single string
	if err := json.Unmarshal(body.Message, &single); err == nil {
		if single == "" {
			return nil
		}
		return []string{single}
	}
	var many []string
	if err := json.Unmarshal(body.Message, &many); err == nil {
		return many
	}
	return nil
}

func errorFromResponse(op string, status int, data []byte) error {
	msgs := parseMessages(data)
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusConflict:
		if len(msgs) == 0 {
			msgs = []string{http.StatusText(status)}
		}
		return &ValidationError{Op: op, Status: status, Messages: msgs}
	case http.StatusUnauthorized:
		return fmt.Errorf("%s: %w", op, domain.ErrUnauthenticated)
	case http.StatusForbidden:
		return fmt.Errorf("%s: %w", op, domain.ErrForbidden)
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	default:
		return &UnexpectedError{Op: op, Status: status, Err: fmt.Errorf("%s", strings.TrimSpace(string(data)))}
	}
}
