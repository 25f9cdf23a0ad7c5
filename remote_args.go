// remote_args.go - Argument document construction for remote function calls

package remotemongo

import "encoding/json"

// operationElement is the single element of the "arguments" array. Struct
// field order is the wire field order: database and collection always come
// first, operation-specific fields after.
type operationElement struct {
	Database          string          `json:"database"`
	Collection        string          `json:"collection"`
	Query             json.RawMessage `json:"query,omitempty"`
	Update            json.RawMessage `json:"update,omitempty"`
	Upsert            *bool           `json:"upsert,omitempty"`
	ReturnNewDocument *bool           `json:"returnNewDocument,omitempty"`
	Project           json.RawMessage `json:"project,omitempty"`
	Sort              json.RawMessage `json:"sort,omitempty"`
	Limit             *uint64         `json:"limit,omitempty"`
	Document          json.RawMessage `json:"document,omitempty"`
	Documents         json.RawMessage `json:"documents,omitempty"`
	Pipeline          json.RawMessage `json:"pipeline,omitempty"`
}

// functionArguments is the complete argument payload for one call. find and
// findOne attach limit, project, and sort here rather than inside the
// element, and findOneAndReplace attaches all four of its modifiers here;
// the backend expects that per-operation placement, so it must not be
// unified with the element-level placement used elsewhere.
type functionArguments struct {
	Arguments         []operationElement `json:"arguments"`
	Limit             *uint64            `json:"limit,omitempty"`
	Upsert            *bool              `json:"upsert,omitempty"`
	ReturnNewDocument *bool              `json:"returnNewDocument,omitempty"`
	Project           json.RawMessage    `json:"project,omitempty"`
	Sort              json.RawMessage    `json:"sort,omitempty"`
}

// baseElement is recomputed per call from the immutable identity fields.
func (c *RemoteMongoCollection) baseElement() operationElement {
	return operationElement{Database: c.databaseName, Collection: c.name}
}

// parseDocument checks that text is syntactically valid JSON and returns it
// for verbatim embedding. The content is not interpreted.
func parseDocument(text string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, newMalformedJSONError(err)
	}
	return raw, nil
}

// parseDocumentArray parses each text individually and assembles the results
// into one JSON array. An empty input produces an empty array, not an absent
// field.
func parseDocumentArray(texts []string) (json.RawMessage, error) {
	docs := make([]json.RawMessage, 0, len(texts))
	for _, text := range texts {
		doc, err := parseDocument(text)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	out, err := json.Marshal(docs)
	if err != nil {
		return nil, newMalformedJSONError(err)
	}
	return out, nil
}

func boolArg(v bool) *bool {
	return &v
}

func uint64Arg(v uint64) *uint64 {
	return &v
}
