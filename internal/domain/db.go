package domain

import "context"

// Database defines lifecycle operations for the backing store. An
// implementation owns its own migration files and strategy, so the
// persistence layer stays swappable as a unit.
type Database interface {
	Migrate(ctx context.Context) error
	Close() error
}
