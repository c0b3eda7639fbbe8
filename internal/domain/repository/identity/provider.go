package identity

// Provider resolves the active identity. CurrentIdentity reports false
// when no session is active; every engine operation treats that as
// unauthenticated.
type Provider interface {
	CurrentIdentity() (string, bool)
	LoggedIn() bool
}
