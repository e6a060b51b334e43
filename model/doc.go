// Package model is the record declaration layer: a Type associates each
// field of a record with a vocabulary term, once, at declaration time.
//
// A declared Type is immutable. From it flow the other artifacts: its
// context definition (ldcontext), instance documents ready for signing
// (proof) or grouping (graph), and validation shapes (shacl). The core
// engines never reach back into this package for anything but the plain
// Document type, which is an alias for map[string]any so callers can hand
// in decoded JSON directly.
package model
