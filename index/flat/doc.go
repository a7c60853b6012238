// Package flat provides the brute-force L2 index: every query is compared
// against every stored vector, so results are exact. Build and Search work on
// a single file artifact and apply the same L2 normalization to stored and
// query vectors.
package flat
