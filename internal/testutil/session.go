package testutil

// FixedSessionGenerator generates the same journal session token every time.
//
// The same scenario with the same FixedSessionGenerator produces
// byte-identical journals and traces.
//
// Thread-safety: FixedSessionGenerator is stateless and safe for concurrent use.
type FixedSessionGenerator struct {
	token string
}

// NewFixedSessionGenerator creates a new fixed session generator.
//
// The token is typically set in the scenario YAML:
//
//	session: "test-session-00000000-0000-0000-0000-000000000001"
//
// If token is empty, Generate() returns "test-session-default".
func NewFixedSessionGenerator(token string) *FixedSessionGenerator {
	if token == "" {
		token = "test-session-default"
	}
	return &FixedSessionGenerator{token: token}
}

// Generate returns the fixed session token.
//
// Implements store.SessionGenerator.
func (g *FixedSessionGenerator) Generate() string {
	return g.token
}
