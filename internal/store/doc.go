// Package store provides abstractions for data persistence. The
// interfaces here are implemented by the MongoDB-backed stores in
// internal/platform/mongodb and by the in-memory fakes in
// internal/testutils.
package store
