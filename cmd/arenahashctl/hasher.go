package main

import "github.com/gostonefire/arenahash/hash"

// arenahashDefaultHasher returns the hasher used when the CLI needs to
// assemble an explicit Config (e.g. a custom --buckets count was given).
func arenahashDefaultHasher() hash.Hasher {
	return hash.FNV1a()
}
