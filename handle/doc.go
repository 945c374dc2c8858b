// Package handle provides a policy-driven allocator for opaque integer handles.
//
// # Overview
//
// A Manager hands out unique non-negative integers (object-table slots,
// connection IDs, descriptor numbers) and tracks which of them are live so
// that bogus and duplicate releases can be detected. It does not own the
// resources the handles refer to.
//
// # Policies
//
// Two orthogonal policies are fixed before the first handle is dispensed:
//
//   - ReleasePolicy DontTrack: released handles are forgotten. Release never
//     fails and IsUsed reports every handle up to the highest dispensed as
//     used.
//   - ReleasePolicy Tracked: released handles go into an ordered free-set.
//     Release rejects handles that are not live.
//   - AllocPolicy RecycleLowest: under Tracked, Next reuses the smallest
//     released handle before minting a new one.
//   - AllocPolicy NeverRecycle: Next always mints a new handle.
//
// Fresh handles come from a single counter that starts at 0 and never goes
// backwards.
//
// # Usage Example
//
//	m, err := handle.NewWithOptions(&handle.Options{
//	    ReleasePolicy: handle.Tracked,
//	})
//	if err != nil {
//	    return err
//	}
//
//	h, err := m.Next()
//	if err != nil {
//	    return err // ErrOutOfHandles
//	}
//
//	// Later
//	if err := m.Release(h); errors.Is(err, handle.ErrInvalidRelease) {
//	    // double free or foreign handle
//	}
//
// # Errors
//
// All failures are returned, never panicked, and leave the Manager unchanged:
//
//   - ErrConfigurationLocked: Configure* after the first dispense
//   - ErrOutOfHandles: counter reached Options.Limit
//   - ErrInvalidRelease: Release of a handle that is not live (Tracked only)
//   - ErrInvalidPolicy: unknown policy value
//
// # Thread Safety
//
// Manager is not thread-safe. Share it through a Locked, which serializes
// every call with a mutex.
//
// # Related Packages
//
//   - github.com/joshuapare/handlekit/handle/metrics: Prometheus collector for allocator stats
//   - github.com/joshuapare/handlekit/pkg/types: shared types and typed errors
package handle
