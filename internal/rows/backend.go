package rows

import (
	"context"
	"fmt"
	"strings"
)

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// BackendNames lists the accepted values for OpenBackend.
func BackendNames() []string {
	return []string{BackendMemory, BackendSQLite}
}

// OpenBackend opens a backend by name. Both backends keep data in-process only.
func OpenBackend(ctx context.Context, name string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", BackendMemory:
		return NewMemory(), nil
	case BackendSQLite:
		return OpenSQLite(ctx, MemoryDSN)
	default:
		return nil, fmt.Errorf("unknown backend: %s (want %s)", name, strings.Join(BackendNames(), "|"))
	}
}
