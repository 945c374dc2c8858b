package handle

import (
	"log/slog"

	"github.com/joshuapare/handlekit/internal/freeset"
)

// Manager dispenses unique handles and answers whether a handle is live.
//
// A Manager has two phases. While nothing has been dispensed its policies
// may be changed with the Configure methods. The first successful Next
// locks the configuration until Reset.
//
// NOT thread-safe. Only one goroutine should use it at a time; wrap it in
// a Locked to share it.
type Manager struct {
	allocPolicy   AllocPolicy
	releasePolicy ReleasePolicy
	limit         Handle

	// highest is the next value the counter will mint. It only grows.
	highest Handle

	// highestEver is the largest handle dispensed so far. Valid only when
	// dispensing is set.
	highestEver Handle
	dispensing  bool

	// freed holds released handles, all <= highestEver. Populated only
	// under Tracked.
	freed *freeset.Set

	log *slog.Logger
}

// New creates a Manager with the default policies: RecycleLowest and DontTrack.
func New() *Manager {
	m, _ := NewWithOptions(nil) // defaults are always valid
	return m
}

// NewWithOptions creates a Manager from opts. A nil opts is the same as New.
// It fails with ErrInvalidPolicy if either policy is unknown.
func NewWithOptions(opts *Options) (*Manager, error) {
	var o Options
	if opts != nil {
		o = *opts
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	o.fillDefaults()

	return &Manager{
		allocPolicy:   o.AllocPolicy,
		releasePolicy: o.ReleasePolicy,
		limit:         o.Limit,
		freed:         freeset.New(),
		log:           o.Logger,
	}, nil
}

// ConfigureAllocPolicy replaces the allocation policy. It fails with
// ErrConfigurationLocked once a handle has been dispensed, leaving the
// current policy in place.
func (m *Manager) ConfigureAllocPolicy(p AllocPolicy) error {
	const op = "configure alloc policy"
	if m.dispensing {
		m.log.Debug("handle: configuration rejected", "op", op, "policy", p.String(), "highest_ever", m.highestEver)
		return lockedError(op, m.highestEver)
	}
	if !p.Valid() {
		return policyError(op, p.String())
	}
	m.allocPolicy = p
	return nil
}

// ConfigureReleasePolicy replaces the release policy. It fails with
// ErrConfigurationLocked once a handle has been dispensed, leaving the
// current policy in place.
func (m *Manager) ConfigureReleasePolicy(p ReleasePolicy) error {
	const op = "configure release policy"
	if m.dispensing {
		m.log.Debug("handle: configuration rejected", "op", op, "policy", p.String(), "highest_ever", m.highestEver)
		return lockedError(op, m.highestEver)
	}
	if !p.Valid() {
		return policyError(op, p.String())
	}
	m.releasePolicy = p
	return nil
}

// ConfigureLimit replaces the exclusive upper bound of the handle space.
// Zero restores MaxHandle. Same locking rule as the policy setters.
func (m *Manager) ConfigureLimit(limit Handle) error {
	const op = "configure limit"
	if m.dispensing {
		m.log.Debug("handle: configuration rejected", "op", op, "limit", limit, "highest_ever", m.highestEver)
		return lockedError(op, m.highestEver)
	}
	if limit == 0 {
		limit = MaxHandle
	}
	m.limit = limit
	return nil
}

// Next acquires a handle.
//
// Under DontTrack, and under Tracked with NeverRecycle, it always mints the
// next counter value. Under Tracked with RecycleLowest it first reuses the
// numerically smallest released handle. It fails with ErrOutOfHandles when a
// fresh value is needed and the counter is at its limit.
func (m *Manager) Next() (Handle, error) {
	switch m.releasePolicy {
	case DontTrack:
		return m.mint()

	case Tracked:
		switch m.allocPolicy {
		case NeverRecycle:
			// Freed handles are tracked only so IsUsed stays exact.
			return m.mint()

		case RecycleLowest:
			if v, ok := m.freed.PopMin(); ok {
				return Handle(v), nil
			}
			return m.mint()
		}
	}

	// Unreachable: policies are validated whenever they are set.
	return 0, policyError("next", m.releasePolicy.String()+"/"+m.allocPolicy.String())
}

// mint hands out the counter value and advances the counter.
func (m *Manager) mint() (Handle, error) {
	if m.highest == m.limit {
		m.log.Debug("handle: out of handles", "limit", m.limit, "release_policy", m.releasePolicy.String())
		return 0, exhaustedError(m.limit)
	}

	h := m.highest
	m.highest++
	m.highestEver = h
	m.dispensing = true
	return h, nil
}

// Release relinquishes h.
//
// Under DontTrack it does nothing and always succeeds. Under Tracked it
// fails with ErrInvalidRelease unless h is live, which catches both handles
// that were never dispensed and double frees. A failed Release changes
// nothing.
func (m *Manager) Release(h Handle) error {
	switch m.releasePolicy {
	case DontTrack:
		return nil

	case Tracked:
		if !m.IsUsed(h) {
			reason := "already released"
			if !m.dispensing || h > m.highestEver {
				reason = "was never dispensed"
			}
			m.log.Debug("handle: release rejected", "handle", h, "reason", reason)
			return releaseError(h, reason)
		}
		m.freed.Add(uint(h))
		return nil
	}

	return policyError("release", m.releasePolicy.String())
}

// IsUsed reports whether h is currently live.
//
// Under DontTrack released handles are forgotten, so every handle up to the
// highest ever dispensed counts as used.
func (m *Manager) IsUsed(h Handle) bool {
	if !m.dispensing {
		return false
	}
	if h > m.highestEver {
		return false
	}
	if m.releasePolicy == DontTrack {
		return true
	}
	return !m.freed.Contains(uint(h))
}

// Policies returns the current allocation and release policies.
func (m *Manager) Policies() (AllocPolicy, ReleasePolicy) {
	return m.allocPolicy, m.releasePolicy
}

// Dispensing reports whether a handle has been dispensed, which locks the
// configuration.
func (m *Manager) Dispensing() bool {
	return m.dispensing
}

// Stats returns a snapshot of the counters and free-set size.
func (m *Manager) Stats() Stats {
	s := Stats{
		AllocPolicy:   m.allocPolicy,
		ReleasePolicy: m.releasePolicy,
		Next:          m.highest,
		Limit:         m.limit,
		Dispensing:    m.dispensing,
		Freed:         m.freed.Len(),
	}
	if m.dispensing {
		s.HighestEver = m.highestEver
		s.Live = uint(m.highestEver) + 1 - s.Freed
	}
	return s
}

// FreeRanges returns the released handles as sorted runs of consecutive
// values. It is always empty under DontTrack.
func (m *Manager) FreeRanges() []Range {
	runs := m.freed.Ranges()
	if len(runs) == 0 {
		return nil
	}
	out := make([]Range, len(runs))
	for i, r := range runs {
		out[i] = Range{First: Handle(r.First), Len: r.Len}
	}
	return out
}

// Reset returns the manager to its freshly constructed state, keeping the
// configured policies and limit. Every previously dispensed handle becomes
// invalid and the configuration is unlocked.
func (m *Manager) Reset() {
	m.highest = 0
	m.highestEver = 0
	m.dispensing = false
	m.freed.Reset()
}
