package interfaces

import "context"

// ILocker serializes work on a key across goroutines (and processes, for the
// Redis implementation). Lock blocks until the key is held or ctx is done and
// returns the release func.
type ILocker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
