package cart

import "context"

// Store persists one cart per owner. A missing cart reads back as
// found=false; owners with no cart yet simply start from an empty
// value. Writes are last-write-wins, the same contract the original
// single storage key had.
type Store interface {
	Get(ctx context.Context, owner string) (Cart, bool, error)
	Put(ctx context.Context, owner string, c Cart) error
	Delete(ctx context.Context, owner string) error
	Ping(ctx context.Context) error
}
