// Package mocks provides mock implementations for testing the shopfront client.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the
// port interfaces. The mocks are generated using go:generate directives and provide
// a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	store := mocks.NewMockCredentialStore(ctrl)
//	store.EXPECT().Get(gomock.Any()).Return("", ports.ErrNoCredential)
package mocks

// Generate mock for CredentialStore interface from internal/ports package.
// This creates MockCredentialStore with methods for all CredentialStore interface methods:
// Save, Get, Delete
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=credential_store_mock.go github.com/shopfront/shopfront-go/internal/ports CredentialStore

// Generate mock for Navigator interface from internal/ports package.
// This creates MockNavigator with methods for all Navigator interface methods:
// RedirectTo
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=navigator_mock.go github.com/shopfront/shopfront-go/internal/ports Navigator
