// Package sitesearch provides the result ingestion and sanitization
// pipeline behind a documentation-site search widget. It decides which
// representation of each result field to trust, escapes untrusted text
// before it reaches markup, validates result URLs, and models the search
// session state that is kept in sync with the navigable URL.
//
// This package contains domain types, interfaces and the pure pipeline
// functions following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., swiftype/, sqlite/, goquery/).
package sitesearch
