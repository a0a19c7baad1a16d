// Package mocks provides mock implementations for testing the storefront client.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the storage port. The mocks are generated using go:generate directives and
// provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	store := mocks.NewMockKVStore(ctrl)
//	store.EXPECT().Get(gomock.Any(), "session").Return(nil, ports.ErrKeyNotFound)
//
// Hand-written func-field doubles for the HTTP API ports live in the api
// subpackage; they are lighter to set up for the service tests.
package mocks

// Generate mock for KVStore interface from internal/ports.
// This creates MockKVStore with methods: Set, Get, Delete.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=kvstore_mock.go github.com/ecomsuite/storefront-client/internal/ports KVStore
