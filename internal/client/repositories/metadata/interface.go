// Package metadata is the client's durable key/value store. It outlives the
// process, which is what lets a refresh token survive a restart.
package metadata

import "context"

// Repository stores string values by key. Get reports a missing key with
// ok == false and a nil error; Delete of a missing key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
