package handle

import "github.com/joshuapare/handlekit/pkg/types"

// Handle is an opaque non-negative identifier (re-exported for convenience).
type Handle = types.Handle

// MaxHandle is the exclusive upper bound of the default handle space.
const MaxHandle = types.MaxHandle

// Policy types (re-exported for convenience).
type (
	AllocPolicy   = types.AllocPolicy
	ReleasePolicy = types.ReleasePolicy
)

// Policy values (re-exported for convenience).
const (
	RecycleLowest = types.RecycleLowest
	NeverRecycle  = types.NeverRecycle
	DontTrack     = types.DontTrack
	Tracked       = types.Tracked
)

// Stats is an allocator snapshot. This is an alias to types.Stats.
type Stats = types.Stats

// Range is a run of consecutive handles. This is an alias to types.Range.
type Range = types.Range

// Errors returned by Manager (re-exported for convenience). Operations wrap
// these with context, so match them with errors.Is.
var (
	ErrConfigurationLocked = types.ErrConfigurationLocked
	ErrOutOfHandles        = types.ErrOutOfHandles
	ErrInvalidRelease      = types.ErrInvalidRelease
	ErrInvalidPolicy       = types.ErrInvalidPolicy
)
