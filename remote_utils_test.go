package remotemongo_test

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	remotemongo "github.com/syncapp/remote-mongo"
)

func TestMarshalDocument(t *testing.T) {
	text, err := remotemongo.MarshalDocument(bson.D{{Key: "name", Value: "John"}})
	AssertNoError(t, err, "Failed to marshal document")
	AssertJSONEqual(t, `{"name":"John"}`, text, "Incorrect marshaled document")

	id, err := primitive.ObjectIDFromHex("507f1f77bcf86cd799439011")
	AssertNoError(t, err, "Failed to build object id")
	text, err = remotemongo.MarshalDocument(bson.D{{Key: "_id", Value: id}})
	AssertNoError(t, err, "Failed to marshal object id document")
	AssertJSONEqual(t, `{"_id":{"$oid":"507f1f77bcf86cd799439011"}}`, text, "Incorrect extended-JSON object id")
}

func TestMarshalDocumentAsFilter(t *testing.T) {
	// Helper output is directly usable as an operation filter.
	service := &fakeFunctionService{value: `{"deletedCount":{"$numberInt":"1"}}`}
	coll := NewTestCollection(service)

	id := primitive.NewObjectID()
	filter, err := remotemongo.MarshalDocument(bson.D{{Key: "_id", Value: id}})
	AssertNoError(t, err, "Failed to marshal filter")

	_, err = coll.DeleteOne(context.Background(), filter)
	AssertNoError(t, err, "Failed to dispatch deleteOne with marshaled filter")
	AssertJSONEqual(t,
		`{"arguments":[{"database":"test-db","collection":"test-coll","query":{"_id":{"$oid":"`+id.Hex()+`"}}}]}`,
		service.LastCall(t).args, "Marshaled filter was not embedded verbatim")
}

func TestUnmarshalDocument(t *testing.T) {
	var doc bson.M
	err := remotemongo.UnmarshalDocument(`{"_id":{"$oid":"507f1f77bcf86cd799439011"},"count":{"$numberLong":"7"}}`, &doc)
	AssertNoError(t, err, "Failed to unmarshal document")

	id, ok := doc["_id"].(primitive.ObjectID)
	if !ok {
		t.Fatalf("Expected _id to decode to an ObjectID, got %T", doc["_id"])
	}
	AssertEqual(t, "507f1f77bcf86cd799439011", id.Hex(), "Incorrect decoded object id")
	AssertEqual(t, int64(7), doc["count"], "Incorrect decoded count")
}

func TestUnmarshalDocumentMalformed(t *testing.T) {
	var doc bson.M
	err := remotemongo.UnmarshalDocument(`{"name":`, &doc)
	AssertMalformedJSON(t, err, "Malformed document accepted")
}

func TestDocumentRoundTrip(t *testing.T) {
	original := bson.D{{Key: "name", Value: "Jane"}, {Key: "age", Value: int64(25)}}
	text, err := remotemongo.MarshalDocument(original)
	AssertNoError(t, err, "Failed to marshal document")

	var decoded bson.M
	err = remotemongo.UnmarshalDocument(text, &decoded)
	AssertNoError(t, err, "Failed to unmarshal document")
	AssertEqual(t, "Jane", decoded["name"], "Incorrect round-tripped name")
	AssertEqual(t, int64(25), decoded["age"], "Incorrect round-tripped age")
}
