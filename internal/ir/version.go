package ir

// Version constants for catalog schema and runtime.
const (
	// IRVersion is the catalog schema version.
	IRVersion = "1"

	// RuntimeVersion is the vecwrap runtime version.
	RuntimeVersion = "0.1.0"
)
