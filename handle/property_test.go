package handle

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/handlekit/internal/testutil"
)

// Test_Fuzz_RandomNextRelease_MatchesModel runs random interleavings of
// Next, Release and IsUsed against the reference model for every policy pair.
func Test_Fuzz_RandomNextRelease_MatchesModel(t *testing.T) {
	const limit = 48

	pairs := []struct {
		alloc   AllocPolicy
		release ReleasePolicy
	}{
		{RecycleLowest, DontTrack},
		{NeverRecycle, DontTrack},
		{RecycleLowest, Tracked},
		{NeverRecycle, Tracked},
	}

	for _, p := range pairs {
		t.Run(fmt.Sprintf("%s/%s", p.release, p.alloc), func(t *testing.T) {
			m, err := NewWithOptions(&Options{
				AllocPolicy:   p.alloc,
				ReleasePolicy: p.release,
				Limit:         limit,
			})
			require.NoError(t, err)
			model := testutil.NewModel(p.alloc, p.release, limit)

			rng := rand.New(rand.NewSource(42)) // Fixed seed for reproducibility

			for i := range 2000 {
				switch rng.Intn(5) {
				case 0, 1: // Next
					want, ok := model.Next()
					got, err := m.Next()
					if !ok {
						require.ErrorIs(t, err, ErrOutOfHandles, "step %d", i)
						continue
					}
					require.NoError(t, err, "step %d", i)
					require.Equal(t, want, got, "step %d: Next", i)

				case 2: // Release a handle the caller holds
					live := model.LiveHandles()
					if len(live) == 0 {
						continue
					}
					h := live[rng.Intn(len(live))]
					require.Equal(t, model.Release(h), m.Release(h) == nil, "step %d: Release(%d)", i, h)

				case 3: // Release anything, including garbage and double frees
					h := Handle(rng.Intn(limit + 8))
					require.Equal(t, model.Release(h), m.Release(h) == nil, "step %d: Release(%d)", i, h)

				case 4: // Reset occasionally so the lock/unlock path is covered
					if rng.Intn(40) == 0 {
						m.Reset()
						model = testutil.NewModel(p.alloc, p.release, limit)
					}
				}

				checkAgainstModel(t, i, m, model, limit)
			}
		})
	}
}

// checkAgainstModel validates IsUsed for the whole space and the live count.
func checkAgainstModel(t *testing.T, step int, m *Manager, model *testutil.Model, limit Handle) {
	t.Helper()

	for h := range limit + 2 {
		require.Equal(t, model.IsUsed(h), m.IsUsed(h), "step %d: IsUsed(%d)", step, h)
	}

	s := m.Stats()
	require.Equal(t, model.Live(), s.Live, "step %d: live count", step)

	// Free-set members are always dispensed values and never live.
	for _, r := range m.FreeRanges() {
		require.True(t, s.Dispensing, "step %d: free-set populated before dispense", step)
		require.LessOrEqual(t, r.Last(), s.HighestEver, "step %d: free value above highest", step)
		for h := r.First; h <= r.Last(); h++ {
			require.False(t, m.IsUsed(h), "step %d: freed handle %d reported live", step, h)
		}
	}
}

// TestAllocationDeterminism verifies that the same operation sequence yields
// identical handles across runs.
func TestAllocationDeterminism(t *testing.T) {
	run := func() []Handle {
		m, err := NewWithOptions(&Options{ReleasePolicy: Tracked})
		require.NoError(t, err)

		var out []Handle
		for range 8 {
			out = append(out, mustNext(t, m))
		}
		for _, h := range []Handle{6, 0, 3} {
			require.NoError(t, m.Release(h))
		}
		for range 5 {
			out = append(out, mustNext(t, m))
		}
		return out
	}

	first := run()
	require.Equal(t, first, run(), "allocations must be deterministic")
	require.Equal(t, []Handle{0, 1, 2, 3, 4, 5, 6, 7, 0, 3, 6, 8, 9}, first)
}
