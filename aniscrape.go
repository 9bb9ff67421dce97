// Package aniscrape provides a resumable crawler for anime catalog
// sites. It discovers the catalog's full anime list, visits each anime
// page to extract metadata and episodes, resolves embedded video
// sources for every episode, and persists one structured record per
// anime plus a derived index.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// http/, fs/).
package aniscrape
