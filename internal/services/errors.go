// Package services implements the application logic for the two request
// features: SEO metadata generation and learning Q&A. Both run the same
// pipeline — identity-scoped quota check, content-addressed cache lookup,
// provider fallback chain, cache store, quota charge.
//
// This file centralizes the service-level sentinel errors. Translation into
// HTTP statuses happens at the handler layer.
package services

import "errors"

var (
	// ErrQuotaExceeded is returned when the caller has no remaining daily
	// budget for the feature. No provider work has been done and no quota
	// has been charged.
	ErrQuotaExceeded = errors.New("daily quota exceeded")

	// ErrServiceDegraded is returned when every configured provider failed
	// (or none is credentialed). Quota has been charged for the attempt; the
	// handler pairs this with a static fallback payload.
	ErrServiceDegraded = errors.New("all providers unavailable")

	// ErrEmptyInput is returned when a request carries none of the fields
	// the feature needs to build a prompt.
	ErrEmptyInput = errors.New("request is empty")
)
