// Package testutil holds helpers shared by handlekit tests.
package testutil

import (
	"github.com/joshuapare/handlekit/pkg/types"
)

// Model is a deliberately naive allocator used as an oracle in property
// tests. It keeps live handles in a map and finds the lowest free value by
// linear scan, so it is slow but easy to trust.
type Model struct {
	alloc   types.AllocPolicy
	release types.ReleasePolicy
	limit   types.Handle

	next       types.Handle
	dispensed  bool
	highest    types.Handle
	live       map[types.Handle]struct{}
	everIssued map[types.Handle]struct{}
}

// NewModel returns an oracle configured with the given policies. A zero
// limit means types.MaxHandle.
func NewModel(alloc types.AllocPolicy, release types.ReleasePolicy, limit types.Handle) *Model {
	if limit == 0 {
		limit = types.MaxHandle
	}
	return &Model{
		alloc:      alloc,
		release:    release,
		limit:      limit,
		live:       make(map[types.Handle]struct{}),
		everIssued: make(map[types.Handle]struct{}),
	}
}

// Next mirrors Manager.Next. ok is false when the handle space is exhausted.
func (m *Model) Next() (types.Handle, bool) {
	if m.release == types.Tracked && m.alloc == types.RecycleLowest {
		for h := types.Handle(0); h < m.next; h++ {
			if _, issued := m.everIssued[h]; !issued {
				continue
			}
			if _, isLive := m.live[h]; !isLive {
				m.live[h] = struct{}{}
				return h, true
			}
		}
	}

	if m.next == m.limit {
		return 0, false
	}
	h := m.next
	m.next++
	m.live[h] = struct{}{}
	m.everIssued[h] = struct{}{}
	m.dispensed = true
	m.highest = h
	return h, true
}

// Release mirrors Manager.Release and reports whether it succeeded.
func (m *Model) Release(h types.Handle) bool {
	if m.release == types.DontTrack {
		delete(m.live, h)
		return true
	}
	if _, isLive := m.live[h]; !isLive {
		return false
	}
	delete(m.live, h)
	return true
}

// IsUsed mirrors Manager.IsUsed, including the DontTrack approximation.
func (m *Model) IsUsed(h types.Handle) bool {
	if !m.dispensed {
		return false
	}
	if m.release == types.DontTrack {
		return h <= m.highest
	}
	_, isLive := m.live[h]
	return isLive
}

// Live returns the number of handles the model considers used.
func (m *Model) Live() uint {
	if !m.dispensed {
		return 0
	}
	if m.release == types.DontTrack {
		return uint(m.highest) + 1
	}
	return uint(len(m.live))
}

// LiveHandles returns the handles currently held, in no particular order.
// Under DontTrack this is the set the caller has not yet released.
func (m *Model) LiveHandles() []types.Handle {
	out := make([]types.Handle, 0, len(m.live))
	for h := range m.live {
		out = append(out, h)
	}
	return out
}
