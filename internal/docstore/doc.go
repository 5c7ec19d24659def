// Package docstore is an in-memory document store with the semantics the blog
// client relies on: collections of JSON documents, server-assigned
// timestamps, array union and remove, equality filters with a single
// ordering, composite index provisioning, change feeds and per-collection
// write rules.
//
// It backs the reference HTTP surface in internal/handler/http and the
// gateway integration tests.
package docstore
