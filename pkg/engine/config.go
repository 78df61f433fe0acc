package engine

// Config holds the engine's tunables.
type Config struct {
	// MaxDepth bounds rule recursion. Pow rewrites count against it too.
	MaxDepth int `json:"max_depth"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxDepth: 10000,
	}
}
