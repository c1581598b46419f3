package config

import "context"

// Loader is the interface for a format-specific project file loader.
type Loader interface {
	// Load reads the project file at path and translates it into the
	// format-agnostic model. A missing file is reported with an error
	// wrapping fs.ErrNotExist.
	Load(ctx context.Context, path string) (*Model, error)
}
