package evaluator

import (
	"fmt"

	"github.com/gokitt/impactq/internal/cursor"
	"github.com/gokitt/impactq/internal/vbyte"
)

// refill asks state's source for more bytes, keeping whatever is currently
// unconsumed in state.Window. Once the source has reported FINISH, it is
// never asked again: the source contract does not promise a graceful
// response to a keep-bytes request once it has nothing left to deliver.
func refill(state *cursor.State) (finished bool, err error) {
	if state.Finished {
		return true, nil
	}
	win, finished, err := state.Source.ReadMore(len(state.Window))
	if err != nil {
		return false, err
	}
	state.Window = win
	state.Finished = finished
	return finished, nil
}

// decodeDelta reads one vbyte delta from state.Window, refilling from the
// source at most once if the window runs dry mid-number. A second
// shortfall after refilling is the fixed point spec.md §9 calls out:
// it must be broken by EMALFORMED rather than looped on.
func decodeDelta(state *cursor.State) (uint64, error) {
	v, n, err := vbyte.ReadUvarint(state.Window)
	if err == vbyte.ErrNeedMore {
		if !state.Finished {
			if _, rerr := refill(state); rerr != nil {
				return 0, rerr
			}
			v, n, err = vbyte.ReadUvarint(state.Window)
		}
		if err == vbyte.ErrNeedMore {
			return 0, fmt.Errorf("%w: truncated delta for term %q", ErrMalformed, state.Term)
		}
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	state.Window = state.Window[n:]
	return v, nil
}

// readBlockHeader attempts the two-vbyte block header (blocksize then
// impact_minus_one) without refilling. If the first vbyte succeeds but the
// second does not, the first is rewound so the caller sees no net
// consumption — spec.md §9's "rewind past first vbyte" branch.
func readBlockHeader(state *cursor.State) (blocksize, impactMinus1 uint64, ok bool, err error) {
	saved := state.Window

	v1, n1, err1 := vbyte.ReadUvarint(state.Window)
	if err1 == vbyte.ErrNeedMore {
		return 0, 0, false, nil
	}
	if err1 != nil {
		return 0, 0, false, fmt.Errorf("%w: %v", ErrMalformed, err1)
	}

	rest := state.Window[n1:]
	v2, n2, err2 := vbyte.ReadUvarint(rest)
	if err2 == vbyte.ErrNeedMore {
		state.Window = saved
		return 0, 0, false, nil
	}
	if err2 != nil {
		return 0, 0, false, fmt.Errorf("%w: %v", ErrMalformed, err2)
	}

	state.Window = rest[n2:]
	return v1, v2, true, nil
}
