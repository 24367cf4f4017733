package fri

import "fmt"

// Kind enumerates the closed error taxonomy of spec §7, mirroring the
// ValidationError enum in original_source/src/shared_math/fri.rs.
type Kind int

const (
	// BadMerkleProof: an authentication structure failed to verify
	// against a layer root.
	BadMerkleProof Kind = iota
	// BadSizedProof: the transcript ended prematurely or held
	// wrong-length data.
	BadSizedProof
	// NonPositiveRoundCount: the configuration yielded R <= 0.
	NonPositiveRoundCount
	// NotColinear: folded values disagree with the expected relation at
	// round r (r is carried on Error).
	NotColinear
	// LastIterationTooHighDegree: the INTT of the last codeword produced
	// a polynomial of degree greater than δ.
	LastIterationTooHighDegree
	// BadMerkleRootForLastCodeword: the hash-and-tree of the received
	// last codeword did not match root_R.
	BadMerkleRootForLastCodeword
)

func (k Kind) String() string {
	switch k {
	case BadMerkleProof:
		return "BadMerkleProof"
	case BadSizedProof:
		return "BadSizedProof"
	case NonPositiveRoundCount:
		return "NonPositiveRoundCount"
	case NotColinear:
		return "NotColinear"
	case LastIterationTooHighDegree:
		return "LastIterationTooHighDegree"
	case BadMerkleRootForLastCodeword:
		return "BadMerkleRootForLastCodeword"
	default:
		return "Unknown"
	}
}

// Error is the error type every verification failure is surfaced as.
// Round is only meaningful for NotColinear; it is -1 otherwise. Cause
// carries the lower-level error being classified, if any (e.g. a
// precondition rejected deeper in the sampler package, which cannot
// return a *Error itself without an import cycle).
type Error struct {
	Kind  Kind
	Round int
	Cause error
}

func (e *Error) Error() string {
	if e.Kind == NotColinear {
		return fmt.Sprintf("fri: %s(round=%d)", e.Kind, e.Round)
	}
	if e.Cause != nil {
		return fmt.Sprintf("fri: %s: %v", e.Kind, e.Cause)
	}
	return fmt.Sprintf("fri: %s", e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newErr(kind Kind) error {
	return &Error{Kind: kind, Round: -1}
}

func wrapErr(kind Kind, cause error) error {
	return &Error{Kind: kind, Round: -1, Cause: cause}
}

func notColinear(round int) error {
	return &Error{Kind: NotColinear, Round: round}
}

// Is reports whether err is a *Error carrying the given Kind, e.g.
// fri.Is(err, fri.BadMerkleProof). Only err itself is inspected; errors
// that wrap a *Error are not unwrapped.
func Is(err error, kind Kind) bool {
	var fe *Error
	if e, ok := err.(*Error); ok {
		fe = e
	} else {
		return false
	}
	return fe.Kind == kind
}
