package vybiumfri

import (
	"fmt"

	internalfri "github.com/vybium/vybium-fri/internal/vybiumfri/fri"
)

// ErrorCode is the closed taxonomy of reasons Verify can reject a proof.
type ErrorCode int

const (
	// ErrBadMerkleProof: a disclosed value's authentication structure did
	// not open against its layer root.
	ErrBadMerkleProof ErrorCode = iota
	// ErrBadSizedProof: the transcript ended early or held a wrong-shaped item.
	ErrBadSizedProof
	// ErrNonPositiveRoundCount: the configuration yields zero or fewer FRI rounds.
	ErrNonPositiveRoundCount
	// ErrNotColinear: a round's folded values fail the colinearity check.
	ErrNotColinear
	// ErrLastIterationTooHighDegree: the final codeword decodes to a
	// polynomial above the allowed degree bound δ.
	ErrLastIterationTooHighDegree
	// ErrBadMerkleRootForLastCodeword: the final codeword's Merkle root
	// does not match the committed one.
	ErrBadMerkleRootForLastCodeword
)

func (c ErrorCode) String() string {
	switch c {
	case ErrBadMerkleProof:
		return "BadMerkleProof"
	case ErrBadSizedProof:
		return "BadSizedProof"
	case ErrNonPositiveRoundCount:
		return "NonPositiveRoundCount"
	case ErrNotColinear:
		return "NotColinear"
	case ErrLastIterationTooHighDegree:
		return "LastIterationTooHighDegree"
	case ErrBadMerkleRootForLastCodeword:
		return "BadMerkleRootForLastCodeword"
	default:
		return "Unknown"
	}
}

// VerificationError is the error type Verify returns on rejection.
type VerificationError struct {
	Code  ErrorCode
	Round int // meaningful only for ErrNotColinear, -1 otherwise
}

func (e *VerificationError) Error() string {
	if e.Code == ErrNotColinear {
		return fmt.Sprintf("vybiumfri: %s(round=%d)", e.Code, e.Round)
	}
	return fmt.Sprintf("vybiumfri: %s", e.Code)
}

func wrapInternalError(err error) error {
	if err == nil {
		return nil
	}
	fe, ok := err.(*internalfri.Error)
	if !ok {
		return err
	}
	return &VerificationError{Code: ErrorCode(fe.Kind), Round: fe.Round}
}
