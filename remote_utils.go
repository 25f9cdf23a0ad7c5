// remote_utils.go - Document helpers bridging bson values and JSON text

package remotemongo

import (
	"go.mongodb.org/mongo-driver/bson"
)

// MarshalDocument renders a bson.M, bson.D, or tagged struct as canonical
// extended-JSON text, suitable for use as a filter, update, replacement, or
// document argument.
func MarshalDocument(doc interface{}) (string, error) {
	out, err := bson.MarshalExtJSON(doc, true, false)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// UnmarshalDocument decodes extended-JSON response text into out, unwrapping
// $oid, $numberInt, $numberLong, and the other type wrappers into native
// values.
func UnmarshalDocument(text string, out interface{}) error {
	if err := bson.UnmarshalExtJSON([]byte(text), false, out); err != nil {
		return newMalformedJSONError(err)
	}
	return nil
}
