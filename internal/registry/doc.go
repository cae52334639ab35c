// Package registry provides the central "glue" for the block kind system.
//
// The Registry stores mappings between the stable kind identifiers used in
// script text (e.g., "Parse") and the compiled Go variants that implement
// each kind, alongside the typed descriptors loaded from catalog manifests.
//
// During application startup, the registry is populated and then validated to
// ensure that the Go kind implementations and the descriptor catalog are
// perfectly in sync, preventing a wide class of decode-time errors. After
// that point the registry is read-only, so concurrent decode and generate
// calls may share it freely.
package registry
