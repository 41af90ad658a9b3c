package qkd

import (
	"errors"
	"fmt"

	"github.com/sajeeb007/qkd-bb84-sim/internal/qkd/quantum"
)

// ErrEmptySiftedKey is returned when no basis choices matched between sender
// and receiver. Similarity is undefined over an empty sift; callers must not
// treat this as similarity 0 or 1.
var ErrEmptySiftedKey = errors.New("sifted key is empty: no matching basis positions")

// DistillationResult holds the sifted keys shared by sender and receiver
// along with the agreement metrics computed over the matched positions.
// SenderKey, ReceiverKey and MatchedPositions always have equal length.
type DistillationResult struct {
	SenderKey        []quantum.Bit
	ReceiverKey      []quantum.Bit
	MatchedPositions []int
	// Similarity is the fraction of matched positions where both keys agree.
	// It is computed strictly over the sifted positions, never the full run.
	Similarity   float64
	BitErrorRate float64
}

// Distill performs basis sifting over a completed exchange: every position
// where sender and receiver chose the same basis contributes the sender's bit
// to the sender key and the receiver's measured outcome to the receiver key.
func Distill(ex *Exchange) (*DistillationResult, error) {
	n := len(ex.SenderBits)
	if len(ex.SenderBases) != n || len(ex.ReceiverBases) != n || len(ex.Outcomes) != n {
		return nil, fmt.Errorf("exchange sequences must have equal length, got %d/%d/%d/%d",
			len(ex.SenderBits), len(ex.SenderBases), len(ex.ReceiverBases), len(ex.Outcomes))
	}

	result := &DistillationResult{}
	for i := 0; i < n; i++ {
		if ex.SenderBases[i] != ex.ReceiverBases[i] {
			continue
		}
		result.SenderKey = append(result.SenderKey, ex.SenderBits[i])
		result.ReceiverKey = append(result.ReceiverKey, ex.Outcomes[i])
		result.MatchedPositions = append(result.MatchedPositions, i)
	}

	if len(result.MatchedPositions) == 0 {
		return nil, ErrEmptySiftedKey
	}

	ber, err := quantum.CalculateBitError(result.SenderKey, result.ReceiverKey)
	if err != nil {
		return nil, fmt.Errorf("computing bit error rate: %w", err)
	}
	result.BitErrorRate = ber
	result.Similarity = 1 - ber

	return result, nil
}
