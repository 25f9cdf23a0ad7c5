// remote_collection.go - Collection operations dispatched over a FunctionService

package remotemongo

import (
	"context"
	"encoding/json"
)

// callFunction marshals args and dispatches them through the service. A
// service error is returned as received; it is never rewrapped.
func (c *RemoteMongoCollection) callFunction(ctx context.Context, name string, args functionArguments) (string, error) {
	payload, err := json.Marshal(args)
	if err != nil {
		return "", newMalformedJSONError(err)
	}

	c.logger.Debug().
		Str("function", name).
		Str("database", c.databaseName).
		Str("collection", c.name).
		Msg("calling remote function")

	value, err := c.service.CallFunction(ctx, name, string(payload))
	if err != nil {
		c.logger.Debug().
			Err(err).
			Str("function", name).
			Msg("remote function failed")
		return "", err
	}
	return value, nil
}

// findArguments builds the shared find/findOne payload. The limit, project,
// and sort modifiers sit next to "arguments", not inside the element.
func (c *RemoteMongoCollection) findArguments(filterJSON string, opts *RemoteFindOptions) (functionArguments, error) {
	query, err := parseDocument(filterJSON)
	if err != nil {
		return functionArguments{}, err
	}

	element := c.baseElement()
	element.Query = query
	args := functionArguments{Arguments: []operationElement{element}}

	if opts == nil {
		return args, nil
	}
	if opts.Limit > 0 {
		args.Limit = uint64Arg(opts.Limit)
	}
	if opts.ProjectionJSON != "" {
		if args.Project, err = parseDocument(opts.ProjectionJSON); err != nil {
			return functionArguments{}, err
		}
	}
	if opts.SortJSON != "" {
		if args.Sort, err = parseDocument(opts.SortJSON); err != nil {
			return functionArguments{}, err
		}
	}
	return args, nil
}

// applyModifyOptions attaches find-one-and-modify modifiers inside the
// element. Booleans are sent only when set.
func applyModifyOptions(element *operationElement, opts *RemoteFindOneAndModifyOptions) error {
	if opts == nil {
		return nil
	}
	if opts.Upsert {
		element.Upsert = boolArg(true)
	}
	if opts.ReturnNewDocument {
		element.ReturnNewDocument = boolArg(true)
	}
	var err error
	if opts.ProjectionJSON != "" {
		if element.Project, err = parseDocument(opts.ProjectionJSON); err != nil {
			return err
		}
	}
	if opts.SortJSON != "" {
		if element.Sort, err = parseDocument(opts.SortJSON); err != nil {
			return err
		}
	}
	return nil
}

// applyOuterModifyOptions attaches find-one-and-modify modifiers next to
// "arguments" instead; findOneAndReplace places them there.
func applyOuterModifyOptions(args *functionArguments, opts *RemoteFindOneAndModifyOptions) error {
	if opts == nil {
		return nil
	}
	if opts.Upsert {
		args.Upsert = boolArg(true)
	}
	if opts.ReturnNewDocument {
		args.ReturnNewDocument = boolArg(true)
	}
	var err error
	if opts.ProjectionJSON != "" {
		if args.Project, err = parseDocument(opts.ProjectionJSON); err != nil {
			return err
		}
	}
	if opts.SortJSON != "" {
		if args.Sort, err = parseDocument(opts.SortJSON); err != nil {
			return err
		}
	}
	return nil
}

// Find returns the documents matching filterJSON as a raw extended-JSON
// array. opts may be nil.
func (c *RemoteMongoCollection) Find(ctx context.Context, filterJSON string, opts *RemoteFindOptions) (string, error) {
	args, err := c.findArguments(filterJSON, opts)
	if err != nil {
		return "", err
	}
	return c.callFunction(ctx, "find", args)
}

// FindOne returns the first document matching filterJSON as raw
// extended-JSON text, or an empty string when none matches. opts may be nil.
func (c *RemoteMongoCollection) FindOne(ctx context.Context, filterJSON string, opts *RemoteFindOptions) (string, error) {
	args, err := c.findArguments(filterJSON, opts)
	if err != nil {
		return "", err
	}
	return c.callFunction(ctx, "findOne", args)
}

// Aggregate runs the pipeline, given as one JSON document per stage, and
// returns the resulting documents as a raw extended-JSON array.
func (c *RemoteMongoCollection) Aggregate(ctx context.Context, pipeline []string) (string, error) {
	stages, err := parseDocumentArray(pipeline)
	if err != nil {
		return "", err
	}
	element := c.baseElement()
	element.Pipeline = stages
	return c.callFunction(ctx, "aggregate", functionArguments{Arguments: []operationElement{element}})
}

// Count returns the number of documents matching filterJSON. A limit of 0
// counts all matches.
func (c *RemoteMongoCollection) Count(ctx context.Context, filterJSON string, limit uint64) (uint64, error) {
	query, err := parseDocument(filterJSON)
	if err != nil {
		return 0, err
	}
	element := c.baseElement()
	element.Query = query
	element.Limit = uint64Arg(limit)
	value, err := c.callFunction(ctx, "count", functionArguments{Arguments: []operationElement{element}})
	if err != nil {
		return 0, err
	}
	return decodeCount(value)
}

// InsertOne inserts documentJSON and returns the server response verbatim,
// e.g. {"insertedId":{"$oid":"..."}}.
func (c *RemoteMongoCollection) InsertOne(ctx context.Context, documentJSON string) (string, error) {
	document, err := parseDocument(documentJSON)
	if err != nil {
		return "", err
	}
	element := c.baseElement()
	element.Document = document
	return c.callFunction(ctx, "insertOne", functionArguments{Arguments: []operationElement{element}})
}

// InsertMany inserts the documents, given as one JSON document each, and
// returns the generated identifiers keyed by input position.
func (c *RemoteMongoCollection) InsertMany(ctx context.Context, documentsJSON []string) (RemoteInsertManyResult, error) {
	documents, err := parseDocumentArray(documentsJSON)
	if err != nil {
		return emptyInsertManyResult(), err
	}
	element := c.baseElement()
	element.Documents = documents
	value, err := c.callFunction(ctx, "insertMany", functionArguments{Arguments: []operationElement{element}})
	if err != nil {
		return emptyInsertManyResult(), err
	}
	return decodeInsertManyResult(value)
}

func (c *RemoteMongoCollection) deleteCall(ctx context.Context, name, filterJSON string) (uint64, error) {
	query, err := parseDocument(filterJSON)
	if err != nil {
		return 0, err
	}
	element := c.baseElement()
	element.Query = query
	value, err := c.callFunction(ctx, name, functionArguments{Arguments: []operationElement{element}})
	if err != nil {
		return 0, err
	}
	return decodeDeleteCount(value)
}

// DeleteOne deletes a single document matching filterJSON and returns the
// number of documents deleted.
func (c *RemoteMongoCollection) DeleteOne(ctx context.Context, filterJSON string) (uint64, error) {
	return c.deleteCall(ctx, "deleteOne", filterJSON)
}

// DeleteMany deletes every document matching filterJSON and returns the
// number of documents deleted.
func (c *RemoteMongoCollection) DeleteMany(ctx context.Context, filterJSON string) (uint64, error) {
	return c.deleteCall(ctx, "deleteMany", filterJSON)
}

func (c *RemoteMongoCollection) updateCall(ctx context.Context, name, filterJSON, updateJSON string, upsert bool) (RemoteUpdateResult, error) {
	query, err := parseDocument(filterJSON)
	if err != nil {
		return RemoteUpdateResult{}, err
	}
	update, err := parseDocument(updateJSON)
	if err != nil {
		return RemoteUpdateResult{}, err
	}
	element := c.baseElement()
	element.Query = query
	element.Update = update
	element.Upsert = boolArg(upsert)
	value, err := c.callFunction(ctx, name, functionArguments{Arguments: []operationElement{element}})
	if err != nil {
		return RemoteUpdateResult{}, err
	}
	return decodeUpdateResult(value)
}

// UpdateOne applies updateJSON to a single document matching filterJSON.
// With upsert set, a new document is inserted when nothing matches.
func (c *RemoteMongoCollection) UpdateOne(ctx context.Context, filterJSON, updateJSON string, upsert bool) (RemoteUpdateResult, error) {
	return c.updateCall(ctx, "updateOne", filterJSON, updateJSON, upsert)
}

// UpdateMany applies updateJSON to every document matching filterJSON.
// With upsert set, a new document is inserted when nothing matches.
func (c *RemoteMongoCollection) UpdateMany(ctx context.Context, filterJSON, updateJSON string, upsert bool) (RemoteUpdateResult, error) {
	return c.updateCall(ctx, "updateMany", filterJSON, updateJSON, upsert)
}

// FindOneAndUpdate atomically finds a document matching filterJSON, applies
// updateJSON, and returns the document as raw extended-JSON text. opts may
// be nil.
func (c *RemoteMongoCollection) FindOneAndUpdate(ctx context.Context, filterJSON, updateJSON string, opts *RemoteFindOneAndModifyOptions) (string, error) {
	query, err := parseDocument(filterJSON)
	if err != nil {
		return "", err
	}
	update, err := parseDocument(updateJSON)
	if err != nil {
		return "", err
	}
	element := c.baseElement()
	element.Query = query
	element.Update = update
	if err := applyModifyOptions(&element, opts); err != nil {
		return "", err
	}
	return c.callFunction(ctx, "findOneAndUpdate", functionArguments{Arguments: []operationElement{element}})
}

// FindOneAndReplace atomically finds a document matching filterJSON,
// replaces it with replacementJSON, and returns the document as raw
// extended-JSON text. opts may be nil.
func (c *RemoteMongoCollection) FindOneAndReplace(ctx context.Context, filterJSON, replacementJSON string, opts *RemoteFindOneAndModifyOptions) (string, error) {
	query, err := parseDocument(filterJSON)
	if err != nil {
		return "", err
	}
	replacement, err := parseDocument(replacementJSON)
	if err != nil {
		return "", err
	}
	element := c.baseElement()
	element.Query = query
	element.Update = replacement
	args := functionArguments{Arguments: []operationElement{element}}
	if err := applyOuterModifyOptions(&args, opts); err != nil {
		return "", err
	}
	return c.callFunction(ctx, "findOneAndReplace", args)
}

// FindOneAndDelete atomically finds and deletes a single document matching
// filterJSON. The response payload is discarded; only success or failure is
// reported. opts may be nil.
func (c *RemoteMongoCollection) FindOneAndDelete(ctx context.Context, filterJSON string, opts *RemoteFindOneAndModifyOptions) error {
	query, err := parseDocument(filterJSON)
	if err != nil {
		return err
	}
	element := c.baseElement()
	element.Query = query
	if err := applyModifyOptions(&element, opts); err != nil {
		return err
	}
	_, err = c.callFunction(ctx, "findOneAndDelete", functionArguments{Arguments: []operationElement{element}})
	return err
}
