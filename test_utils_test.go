package remotemongo_test

import (
	"context"
	"sync"
	"testing"

	"github.com/tidwall/pretty"

	remotemongo "github.com/syncapp/remote-mongo"
)

// fakeFunctionService stands in for the invocation channel: it records every
// dispatched call and plays back a canned response or error.
type fakeFunctionService struct {
	mu    sync.Mutex
	calls []functionCall
	value string
	err   error
}

type functionCall struct {
	name string
	args string
}

func (s *fakeFunctionService) CallFunction(_ context.Context, name, argsJSON string) (string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, functionCall{name: name, args: argsJSON})
	s.mu.Unlock()
	return s.value, s.err
}

// Calls returns a snapshot of the recorded calls.
func (s *fakeFunctionService) Calls() []functionCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]functionCall(nil), s.calls...)
}

// LastCall returns the most recent recorded call.
func (s *fakeFunctionService) LastCall(t *testing.T) functionCall {
	calls := s.Calls()
	if len(calls) == 0 {
		t.Fatalf("No calls were dispatched to the function service")
	}
	return calls[len(calls)-1]
}

// NewTestCollection returns a collection handle backed by the fake service,
// using a fixed test identity.
func NewTestCollection(service *fakeFunctionService) *remotemongo.RemoteMongoCollection {
	return remotemongo.NewRemoteMongoCollection(service, "test-db", "test-coll")
}

// AssertError checks if an error occurred when one was expected
func AssertError(t *testing.T, err error, message string) {
	if err == nil {
		t.Fatalf("Expected error but got none: %s", message)
	}
}

// AssertNoError checks if no error occurred when none was expected
func AssertNoError(t *testing.T, err error, message string) {
	if err != nil {
		t.Fatalf("Unexpected error: %s - %v", message, err)
	}
}

// AssertEqual checks if two values are equal
func AssertEqual(t *testing.T, expected, actual interface{}, message string) {
	if expected != actual {
		t.Fatalf("%s - Expected: %v, Got: %v", message, expected, actual)
	}
}

// AssertJSONEqual compares two JSON texts after whitespace normalization
func AssertJSONEqual(t *testing.T, expected, actual string, message string) {
	e := string(pretty.Ugly([]byte(expected)))
	a := string(pretty.Ugly([]byte(actual)))
	if e != a {
		t.Fatalf("%s - Expected: %s, Got: %s", message, e, a)
	}
}

// AssertMalformedJSON checks that err is a locally raised malformed-JSON error
func AssertMalformedJSON(t *testing.T, err error, message string) {
	AssertError(t, err, message)
	if !remotemongo.IsMalformedJSON(err) {
		t.Fatalf("%s - Expected malformed-JSON error, got: %v", message, err)
	}
}

// AssertNoCalls checks that nothing reached the function service
func AssertNoCalls(t *testing.T, service *fakeFunctionService, message string) {
	if n := len(service.Calls()); n != 0 {
		t.Fatalf("%s - Expected no dispatched calls, got %d", message, n)
	}
}
