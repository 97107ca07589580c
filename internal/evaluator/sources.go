package evaluator

import (
	"github.com/gokitt/impactq/internal/cursor"
	"github.com/gokitt/impactq/pkg/impactidx"
)

// openSources implements spec.md §4.5 Step 2: the i-th of T survivors (in
// the same ascending-f_t order Step 1 produced) gets remaining/(T-i) bytes
// of the scratch budget, capped at its own list's byte length. Each
// opened source is attached to its cursor; on any failure, every source
// opened so far is closed before the error is returned so no handle leaks.
func openSources(idx *impactidx.Index, survivors []survivor, cursors []*cursor.State, scratchBudget int64) error {
	remaining := scratchBudget
	T := len(survivors)

	for i, s := range survivors {
		share := remaining / int64(T-i)
		if s.entry.Desc.OnDisk() {
			if want := s.entry.Desc.Length; share > want {
				share = want
			}
		}
		if share <= 0 {
			share = 1
		}

		src, err := idx.OpenSource(s.entry.Desc, int(share))
		if err != nil {
			closeCursors(cursors[:i])
			return err
		}
		cursors[i].Source = src
		remaining -= share
		if remaining < 0 {
			remaining = 0
		}
	}
	return nil
}

// closeCursors closes every cursor's attached source, ignoring individual
// close errors: this only runs on already-fatal paths where the first
// error is what the caller reports.
func closeCursors(cursors []*cursor.State) {
	for _, c := range cursors {
		if c.Source != nil {
			_ = c.Source.Close()
			c.Source = nil
		}
	}
}
