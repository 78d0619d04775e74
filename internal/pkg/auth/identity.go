package auth

// Identity is the authenticated caller, resolved once per request from the session cookie.
type Identity struct {
	UserID    int64
	Username  string
	SessionID string
}
