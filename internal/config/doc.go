// Package config provides configuration loading, merging, and validation
// facilities for the blog client and the reference document store.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win for fields they set):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON or YAML config file
//
// The main entry points are [GetClientConfig] for the client runtime and
// [GetDocstoreConfig] for the document store.
package config
