// Package client issues the wishlist and product requests against the remote
// API. Every operation maps to exactly one HTTP exchange: no retries, no
// backoff and no timeout beyond the caller's context.
package client
