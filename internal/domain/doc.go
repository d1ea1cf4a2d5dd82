// Package domain defines the core domain types shared across the service.
//
// This package contains concept-oriented files (post.go, event.go,
// sentiment.go, trending.go) with plain value objects only. Scorers consume
// and produce these types; the HTTP layer binds them directly. No
// implementation code lives here, which keeps import cycles impossible.
package domain
