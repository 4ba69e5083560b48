package core

import "context"

// Worker is a long-running background process whose lifecycle is bound to the
// application context.
type Worker interface {
	Run(ctx context.Context) error
}
