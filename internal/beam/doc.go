// Package beam owns the BEAM link-layer wire contract.
//
// Ownership boundary:
// - frame/header layout constants
// - payload variant decode/dispatch
// - parse and serialize entry points
//
// One call handles exactly one self-contained frame. Loss and duplication
// across frames belong to the caller (see internal/link).
package beam
