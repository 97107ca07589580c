package evaluator

import "errors"

// Errors returned by Evaluate, mirroring the OK | ENOMEM | EIO | EMALFORMED |
// EINVAL surface named in spec.md §6. There is no explicit ENOMEM case:
// Go's allocator reports out-of-memory as a runtime panic, not an error
// value, so scratch-budget exhaustion is the only "too much memory" path
// this core models, and it is handled as an ordinary budget division in
// Step 2 rather than a failure.
var (
	// ErrMalformed reports corrupt posting-list bytes: a vbyte overflow, a
	// block truncated mid-delta, or FINISH reached with an incomplete block.
	ErrMalformed = errors.New("evaluator: malformed posting list")

	// ErrInvalid reports a caller contract violation (non-positive budget
	// or accumulator limit).
	ErrInvalid = errors.New("evaluator: invalid argument")
)
