// Package keys handles raw Ed25519 key material for the proof engine:
// generation, deterministic derivation from seeds, and the textual encodings
// used in verification methods.
//
// Key storage, rotation, and distribution are deliberately not provided.
// Callers hand the library raw key material and keep custody themselves.
//
// Stable:
//   - Pure, deterministic primitives: seed derivation, key-string formatting
//     and parsing, verification-method IDs.
//
// All functions are safe for concurrent use; only Generate touches an
// external resource (the process CSPRNG).
package keys
