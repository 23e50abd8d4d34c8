// Package htmlcut extracts a single targeted subtree from an HTML document
// and rebuilds a minimal standalone document around it, carrying over the
// page's style and script resources.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, douceur/, yaml/).
package htmlcut
