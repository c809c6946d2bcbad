// Package types defines the configuration, entity records, row abstraction,
// and standard errors for the stockbook storage system.
//
// The storage backend in internal/sqlite operates on generic string-keyed
// rows ([Row] and [Fields]); the entity types in this package are the typed
// layer on top, each with a Fields method for writes and a From*Row
// constructor for reads.
package types
