package identity

type Config struct {
	// Secret signs and verifies session tokens. Loaded from the
	// environment, never from the config file.
	Secret string
	// Token is the current session token, if a session exists.
	Token string
}
