package domain

// SessionRepository persists the client side state of a session: the identity
// that survives restarts and the one-shot redirect remembered by the guard.
type SessionRepository interface {
	SaveSession(sess Session) error
	LoadSession() (*Session, error)
	ClearSession() error
	SetPendingRedirect(path string) error
	TakePendingRedirect() (string, error)
}
