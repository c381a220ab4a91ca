package domain

// Session is the client's record of the current authentication identity.
// LoggedIn implies ID and AuthHeader are set; a logged-out session never
// carries a credential.
type Session struct {
	LoggedIn   bool   `json:"isLoggedIn"`
	ID         int64  `json:"id,omitempty"`
	Username   string `json:"username,omitempty"`
	AuthHeader string `json:"authHeader,omitempty"`

	// Raw holds the stored text verbatim when a persisted session could not
	// be decoded. Never persisted.
	Raw string `json:"-"`
}

// LoggedOut returns the default session for an unauthenticated client.
func LoggedOut() Session {
	return Session{}
}
