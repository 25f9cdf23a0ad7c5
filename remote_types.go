// remote_types.go - Type definitions for the remote MongoDB collection client

package remotemongo

import (
	"context"

	"github.com/rs/zerolog"
)

// FunctionService invokes a named server-side function with a JSON argument
// payload and returns the raw JSON response text. Implementations own
// authentication, transport, and retries; a call completes exactly once,
// either with a response or with an error. No ordering is guaranteed between
// concurrent calls.
type FunctionService interface {
	CallFunction(ctx context.Context, name string, argsJSON string) (string, error)
}

// RemoteMongoCollection is a client-side view of a single collection served
// behind a FunctionService. It holds no mutable state; a value may be shared
// freely between goroutines.
type RemoteMongoCollection struct {
	name         string
	databaseName string
	service      FunctionService
	logger       zerolog.Logger
}

// NewRemoteMongoCollection returns a collection handle for the named
// collection in the named database. The identity is fixed for the lifetime
// of the handle.
func NewRemoteMongoCollection(service FunctionService, databaseName, name string) *RemoteMongoCollection {
	return &RemoteMongoCollection{
		name:         name,
		databaseName: databaseName,
		service:      service,
		logger:       zerolog.Nop(),
	}
}

// WithLogger returns a copy of the collection that logs dispatches to l at
// debug level.
func (c *RemoteMongoCollection) WithLogger(l zerolog.Logger) *RemoteMongoCollection {
	out := *c
	out.logger = l
	return &out
}

// Name returns the collection name.
func (c *RemoteMongoCollection) Name() string {
	return c.name
}

// DatabaseName returns the name of the database containing this collection.
func (c *RemoteMongoCollection) DatabaseName() string {
	return c.databaseName
}

// RemoteFindOptions adjusts the behavior of Find and FindOne. Zero values
// mean "not set" and are omitted from the request.
type RemoteFindOptions struct {
	// Limit caps the number of returned documents.
	Limit uint64
	// ProjectionJSON limits the returned fields, as a JSON document.
	ProjectionJSON string
	// SortJSON orders the returned documents, as a JSON document.
	SortJSON string
}

// RemoteFindOneAndModifyOptions adjusts the behavior of FindOneAndUpdate,
// FindOneAndReplace, and FindOneAndDelete. Zero values mean "not set" and
// are omitted from the request.
type RemoteFindOneAndModifyOptions struct {
	// Upsert inserts a new document when no document matches the filter.
	Upsert bool
	// ReturnNewDocument returns the post-modification document instead of
	// the pre-modification one.
	ReturnNewDocument bool
	// ProjectionJSON limits the returned fields, as a JSON document.
	ProjectionJSON string
	// SortJSON selects which matching document is modified, as a JSON
	// document.
	SortJSON string
}

// RemoteUpdateResult reports the outcome of UpdateOne and UpdateMany.
type RemoteUpdateResult struct {
	MatchedCount  uint64
	ModifiedCount uint64
	// UpsertedID is the identifier of the upserted document, or empty when
	// the update did not upsert.
	UpsertedID string
}

// RemoteInsertManyResult maps the zero-based input position of each inserted
// document to its generated identifier.
type RemoteInsertManyResult struct {
	InsertedIDs map[uint64]string
}
