// Package types defines the shared vocabulary of handlekit: the Handle value
// type, the allocation and release policies, typed errors and the
// introspection snapshots returned by allocators.
//
// Design goals:
//   - Handles are plain integers; no embedded generation bits.
//   - Typed errors with stable categories (state/exhausted/invalid-release/policy).
//   - Zero values are the defaults (RecycleLowest, DontTrack).
//
// This package has no dependencies beyond the standard library.
package types
