// Package crypto provides classical post-processing for simulated QKD keys.
package crypto

import (
	"golang.org/x/crypto/sha3"

	"github.com/sajeeb007/qkd-bb84-sim/internal/qkd/quantum"
)

// DeriveKey stretches or compresses a sifted bit sequence into exactly length
// bytes of cipher key material. The bits are packed MSB-first and fed through
// SHAKE256, so short keys are stretched and long keys are compressed
// deterministically, and any single-bit difference in the input changes the
// derived key with overwhelming probability. DeriveKey is total: it never
// fails, for any input length including zero.
func DeriveKey(key []quantum.Bit, length int) []byte {
	if length <= 0 {
		return nil
	}
	out := make([]byte, length)
	h := sha3.NewShake256()
	h.Write(quantum.BitsToBytes(key))
	h.Read(out)
	return out
}
