package types

import (
	"errors"
	"fmt"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindState          ErrKind = iota // invalid operation for current state (e.g., config after dispense)
	ErrKindExhausted                     // handle space used up
	ErrKindInvalidRelease                // release of a handle that is not live
	ErrKindPolicy                        // unknown policy value
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindState:
		return "state"
	case ErrKindExhausted:
		return "exhausted"
	case ErrKindInvalidRelease:
		return "invalid-release"
	case ErrKindPolicy:
		return "policy"
	default:
		return fmt.Sprintf("ErrKind(%d)", int(k))
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	// Handle is the handle the failed operation was given or would have
	// returned. Only meaningful when HasHandle is set.
	Handle    Handle
	HasHandle bool
	Err       error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether any error in err's chain is an *Error of the given kind.
func IsKind(err error, kind ErrKind) bool {
	var te *Error
	if !errors.As(err, &te) {
		return false
	}
	return te.Kind == kind
}

// Sentinels commonly returned by implementations. Contextual errors wrap
// these, so compare with errors.Is rather than ==.
var (
	// ErrConfigurationLocked indicates a policy change after the first handle was dispensed.
	ErrConfigurationLocked = &Error{Kind: ErrKindState, Msg: "handle: configuration locked after first dispense"}
	// ErrOutOfHandles indicates the counter reached the end of the handle space.
	ErrOutOfHandles = &Error{Kind: ErrKindExhausted, Msg: "handle: out of handles"}
	// ErrInvalidRelease indicates a release of a handle that is not currently live.
	ErrInvalidRelease = &Error{Kind: ErrKindInvalidRelease, Msg: "handle: invalid release"}
	// ErrInvalidPolicy indicates an AllocPolicy or ReleasePolicy outside the known set.
	ErrInvalidPolicy = &Error{Kind: ErrKindPolicy, Msg: "handle: unknown policy"}
)

// -----------------------------------------------------------------------------
// Core Identifiers & Policies
// -----------------------------------------------------------------------------

// Handle is an opaque non-negative identifier. It carries no generation or
// version bits; the value alone is the identity.
type Handle uint

// MaxHandle is the exclusive upper bound of the full handle space. The
// largest handle ever dispensed is MaxHandle-1.
const MaxHandle = ^Handle(0)

// AllocPolicy selects how Next picks a value among candidates.
type AllocPolicy uint8

const (
	// RecycleLowest reuses the numerically smallest released handle before
	// minting a new one. Only has an effect under Tracked.
	RecycleLowest AllocPolicy = iota
	// NeverRecycle always mints a new handle.
	NeverRecycle
)

func (p AllocPolicy) String() string {
	switch p {
	case RecycleLowest:
		return "recycle-lowest"
	case NeverRecycle:
		return "never-recycle"
	default:
		return fmt.Sprintf("AllocPolicy(%d)", uint8(p))
	}
}

// Valid reports whether p is a known policy.
func (p AllocPolicy) Valid() bool { return p <= NeverRecycle }

// ReleasePolicy selects whether released handles are remembered.
type ReleasePolicy uint8

const (
	// DontTrack forgets released handles immediately. Release never fails and
	// IsUsed cannot tell a released handle from a live one.
	DontTrack ReleasePolicy = iota
	// Tracked keeps a free-set of released handles, enabling reuse and
	// exact validity checks.
	Tracked
)

func (p ReleasePolicy) String() string {
	switch p {
	case DontTrack:
		return "dont-track"
	case Tracked:
		return "tracked"
	default:
		return fmt.Sprintf("ReleasePolicy(%d)", uint8(p))
	}
}

// Valid reports whether p is a known policy.
func (p ReleasePolicy) Valid() bool { return p <= Tracked }

// -----------------------------------------------------------------------------
// Introspection
// -----------------------------------------------------------------------------

// Stats is a point-in-time snapshot of an allocator.
type Stats struct {
	AllocPolicy   AllocPolicy
	ReleasePolicy ReleasePolicy

	// Next is the value the counter will mint next.
	Next Handle
	// Limit is the exclusive upper bound of the handle space.
	Limit Handle
	// HighestEver is the highest handle ever dispensed. Zero and meaningless
	// while Dispensing is false.
	HighestEver Handle
	// Dispensing is set once the first handle has been handed out; the
	// configuration is locked from then on.
	Dispensing bool

	// Freed is the size of the free-set (always 0 under DontTrack).
	Freed uint
	// Live is the number of handles IsUsed would report as used.
	Live uint
}

// Range is a run of consecutive handles [First, First+Len).
type Range struct {
	First Handle
	Len   uint
}

// Last returns the final handle in the run.
func (r Range) Last() Handle { return r.First + Handle(r.Len) - 1 }
