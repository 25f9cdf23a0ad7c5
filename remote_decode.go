// remote_decode.go - Response decoding for remote function results

package remotemongo

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// The backend returns integers and object identifiers in extended-JSON
// wrapper form; decoders unwrap them into native values. Every decoder is
// pure: the same payload always yields the same result. A successful call
// with an absent payload yields the operation's zero value and no error.

type numberIntValue struct {
	Value string `json:"$numberInt"`
}

type numberLongValue struct {
	Value string `json:"$numberLong"`
}

// objectIDValue carries the $oid pointer so that a wrapper object without
// the field is distinguishable from an empty identifier.
type objectIDValue struct {
	Value *string `json:"$oid"`
}

// decodeCount unwraps a top-level {"$numberLong":"..."} payload.
func decodeCount(value string) (uint64, error) {
	if value == "" {
		return 0, nil
	}
	var wrapped numberLongValue
	if err := json.Unmarshal([]byte(value), &wrapped); err != nil {
		return 0, newMalformedJSONError(err)
	}
	count, err := strconv.ParseUint(wrapped.Value, 10, 64)
	if err != nil {
		return 0, newMalformedJSONError(err)
	}
	return count, nil
}

// decodeDeleteCount unwraps {"deletedCount":{"$numberInt":"..."}}.
func decodeDeleteCount(value string) (uint64, error) {
	if value == "" {
		return 0, nil
	}
	var wrapped struct {
		DeletedCount numberIntValue `json:"deletedCount"`
	}
	if err := json.Unmarshal([]byte(value), &wrapped); err != nil {
		return 0, newMalformedJSONError(err)
	}
	count, err := strconv.ParseUint(wrapped.DeletedCount.Value, 10, 64)
	if err != nil {
		return 0, newMalformedJSONError(err)
	}
	return count, nil
}

// decodeUpdateResult unwraps matchedCount and modifiedCount, widening to 64
// bits. upsertedId is optional; its absence yields an empty identifier.
func decodeUpdateResult(value string) (RemoteUpdateResult, error) {
	if value == "" {
		return RemoteUpdateResult{}, nil
	}
	var wrapped struct {
		MatchedCount  numberIntValue `json:"matchedCount"`
		ModifiedCount numberIntValue `json:"modifiedCount"`
		UpsertedID    *objectIDValue `json:"upsertedId"`
	}
	if err := json.Unmarshal([]byte(value), &wrapped); err != nil {
		return RemoteUpdateResult{}, newMalformedJSONError(err)
	}
	matched, err := strconv.ParseUint(wrapped.MatchedCount.Value, 10, 64)
	if err != nil {
		return RemoteUpdateResult{}, newMalformedJSONError(err)
	}
	modified, err := strconv.ParseUint(wrapped.ModifiedCount.Value, 10, 64)
	if err != nil {
		return RemoteUpdateResult{}, newMalformedJSONError(err)
	}
	result := RemoteUpdateResult{MatchedCount: matched, ModifiedCount: modified}
	if wrapped.UpsertedID != nil {
		if wrapped.UpsertedID.Value == nil {
			return RemoteUpdateResult{}, newMalformedJSONError(fmt.Errorf(`upsertedId has no "$oid" field`))
		}
		result.UpsertedID = *wrapped.UpsertedID.Value
	}
	return result, nil
}

// emptyInsertManyResult is the zero value of insertMany: a non-nil empty
// mapping, whatever path produced it.
func emptyInsertManyResult() RemoteInsertManyResult {
	return RemoteInsertManyResult{InsertedIDs: map[uint64]string{}}
}

// decodeInsertManyResult reads the insertedIds array and assigns each
// identifier its zero-based input position, in array order. A payload
// without the array, or an element without $oid, is malformed.
func decodeInsertManyResult(value string) (RemoteInsertManyResult, error) {
	if value == "" {
		return emptyInsertManyResult(), nil
	}
	var wrapped struct {
		InsertedIDs *[]objectIDValue `json:"insertedIds"`
	}
	if err := json.Unmarshal([]byte(value), &wrapped); err != nil {
		return emptyInsertManyResult(), newMalformedJSONError(err)
	}
	if wrapped.InsertedIDs == nil {
		return emptyInsertManyResult(), newMalformedJSONError(fmt.Errorf(`response has no "insertedIds" array`))
	}
	ids := make(map[uint64]string, len(*wrapped.InsertedIDs))
	for i, id := range *wrapped.InsertedIDs {
		if id.Value == nil {
			return emptyInsertManyResult(), newMalformedJSONError(fmt.Errorf(`insertedIds[%d] has no "$oid" field`, i))
		}
		ids[uint64(i)] = *id.Value
	}
	return RemoteInsertManyResult{InsertedIDs: ids}, nil
}
