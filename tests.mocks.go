package main

import (
	"context"
	"time"
)

// This file contains mocks definitions needed to perform unit tests.

type MockEntityStore struct {
	InsertFunc func(ctx context.Context, id string, data []byte) error
	GetFunc    func(ctx context.Context, id string) ([]byte, error)
	UpdateFunc func(ctx context.Context, id string, data []byte) error
	DeleteFunc func(ctx context.Context, id string) error
	ListFunc   func(ctx context.Context) ([][]byte, error)
	CountFunc  func(ctx context.Context) (int64, error)
}

// Insert mocks the behavior of record creation by the store.
func (m *MockEntityStore) Insert(ctx context.Context, id string, data []byte) error {
	return m.InsertFunc(ctx, id, data)
}

// Get mocks the behavior of retrieving a record by the store.
func (m *MockEntityStore) Get(ctx context.Context, id string) ([]byte, error) {
	return m.GetFunc(ctx, id)
}

// Update mocks the behavior of updating a record by the store.
func (m *MockEntityStore) Update(ctx context.Context, id string, data []byte) error {
	return m.UpdateFunc(ctx, id, data)
}

// Delete mocks the behavior of deleting a record by the store.
func (m *MockEntityStore) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}

// List mocks the behavior of retrieving all records by the store.
func (m *MockEntityStore) List(ctx context.Context) ([][]byte, error) {
	return m.ListFunc(ctx)
}

// Count mocks the behavior of counting all records by the store.
func (m *MockEntityStore) Count(ctx context.Context) (int64, error) {
	return m.CountFunc(ctx)
}

// MockQueuer implements a fake Queuer.
type MockQueuer struct {
	PushFunc func(ctx context.Context, qid string, event WriteEvent) error
	PopFunc  func(ctx context.Context, qids ...string) (string, WriteEvent, error)
}

// Push mocks the behavior of enqueueing a write event.
func (m *MockQueuer) Push(ctx context.Context, qid string, event WriteEvent) error {
	return m.PushFunc(ctx, qid, event)
}

// Pop mocks the behavior of dequeueing a write event.
func (m *MockQueuer) Pop(ctx context.Context, qids ...string) (string, WriteEvent, error) {
	return m.PopFunc(ctx, qids...)
}

// MockCommandHandler implements a fake CommandHandler.
type MockCommandHandler struct {
	ValidateFunc func(ctx context.Context, cmd Command) error
	ExecuteFunc  func(ctx context.Context, cmd Command) (CommandResult, error)
}

// Validate mocks the validation step of a command handler.
func (m *MockCommandHandler) Validate(ctx context.Context, cmd Command) error {
	return m.ValidateFunc(ctx, cmd)
}

// Execute mocks the execution step of a command handler.
func (m *MockCommandHandler) Execute(ctx context.Context, cmd Command) (CommandResult, error) {
	return m.ExecuteFunc(ctx, cmd)
}

// MockAuthorizer implements a fake Authorizer.
type MockAuthorizer struct {
	AuthorizeFunc  func(ctx context.Context, id Identity, claim string) error
	RegisteredFunc func(id Identity) bool
}

// Authorize mocks the claim check for a given identity.
func (m *MockAuthorizer) Authorize(ctx context.Context, id Identity, claim string) error {
	return m.AuthorizeFunc(ctx, id, claim)
}

// Registered mocks the registered users lookup.
func (m *MockAuthorizer) Registered(id Identity) bool {
	return m.RegisteredFunc(id)
}

// MockProcessor implements a fake Processor.
type MockProcessor struct {
	ProcessFunc func(ctx context.Context, identity Identity, batch []Command) BatchReport
}

// Process mocks the pipeline batch processing.
func (m *MockProcessor) Process(ctx context.Context, identity Identity, batch []Command) BatchReport {
	return m.ProcessFunc(ctx, identity, batch)
}

// MockClocker implements a fake Clocker.
type MockClocker struct {
	MockNow time.Time
}

// NewMockClocker returns a mocked instance with fixed time.
func NewMockClocker() *MockClocker {
	return &MockClocker{time.Date(2023, 0o7, 0o2, 0o0, 0o0, 0o0, 0o00000000, time.UTC)}
}

// Now returns an already defined time to be used as mock. This
// equals to `Sun, 02 Jul 2023 00:00:00 UTC` in time.RFC1123 format.
// equals to `2023-07-02 00:00:00 +0000 UTC` in String format.
func (mck *MockClocker) Now() time.Time {
	return mck.MockNow
}

// Zero returns zero time.
func (mck *MockClocker) Zero() time.Time {
	return time.Time{}
}

// MockUIDHandler implements a fake UIDHandler.
type MockUIDHandler struct {
	MockedUID string
	Valid     bool
}

// NewMockUIDHandler returns a mocked instance with predictable id.
func NewMockUIDHandler(id string, valid bool) *MockUIDHandler {
	return &MockUIDHandler{MockedUID: id, Valid: valid}
}

// Generate constructs a predictable id to be used as mock.
func (muid *MockUIDHandler) Generate(prefix string) string {
	return prefix + ":" + muid.MockedUID
}

// IsValid mocks IsValid behavior by providing configured status.
func (muid *MockUIDHandler) IsValid(_, _ string) bool {
	return muid.Valid
}

// allowAllAuthorizer provides a mock which grants every claim.
func allowAllAuthorizer() *MockAuthorizer {
	return &MockAuthorizer{
		AuthorizeFunc: func(_ context.Context, _ Identity, _ string) error {
			return nil
		},
		RegisteredFunc: func(_ Identity) bool {
			return true
		},
	}
}
