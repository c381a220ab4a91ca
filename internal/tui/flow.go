package tui

import (
	"errors"

	"github.com/oyildirim/kimlik/internal/locale"
	"github.com/oyildirim/kimlik/pkg/client"
)

// apiStatus is the per-view request state machine:
// idle -> pending -> (success | error), back to idle on the next edit.
type apiStatus int

const (
	statusIdle apiStatus = iota
	statusPending
	statusSuccess
	statusError
)

// apiErrMessage extracts a human-readable message from a flow error. Server
// messages win; anything else (transport failures included) degrades to the
// localized generic error.
func apiErrMessage(err error, loc *locale.Bundle) string {
	var httpErr *client.HTTPError
	if errors.As(err, &httpErr) && httpErr.Message != "" {
		return httpErr.Message
	}
	return loc.T("genericError")
}
