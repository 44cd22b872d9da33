package types

import "context"

// Loader is the contract between the cache and the upstream sports-data API.
type Loader interface {

	/*
		Load is called when a read-through lookup misses.
		1. Cache checks memory → key not found or expired
		2. Cache calls Load(ctx, key)
		3. Loader fetches from the upstream API
		4. Cache encodes and stores the result
		5. Cache decodes the stored bytes into the caller's destination

		Returning a nil value with a nil error means "nothing to cache".
	*/
	Load(ctx context.Context, key string) (any, error)
}

// LoaderFunc adapts a plain function to the Loader interface.
type LoaderFunc func(ctx context.Context, key string) (any, error)

func (f LoaderFunc) Load(ctx context.Context, key string) (any, error) {
	return f(ctx, key)
}
