package rest

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// Error is a non-2xx answer from the gateway.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("store responded with status %d", e.Status)
}

// parseError decodes the gateway's error document. Bodies that are not one
// become the message as-is.
func parseError(status int, body []byte) *Error {
	e := &Error{Status: status}
	if err := json.Unmarshal(body, e); err != nil || e.Message == "" {
		e.Message = strings.TrimSpace(string(body))
	}
	return e
}
