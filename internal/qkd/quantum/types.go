package quantum

import "fmt"

// Basis represents the measurement basis in the BB84 protocol
type Basis int

const (
	// RectilinearBasis represents the computational basis (Z-basis): |0⟩, |1⟩
	RectilinearBasis Basis = 0
	// DiagonalBasis represents the Hadamard basis (X-basis): |+⟩, |−⟩
	DiagonalBasis Basis = 1
)

func (b Basis) String() string {
	switch b {
	case RectilinearBasis:
		return "Rectilinear(+)"
	case DiagonalBasis:
		return "Diagonal(×)"
	default:
		return "Unknown"
	}
}

// Bit represents a classical bit (0 or 1)
type Bit int

const (
	Zero Bit = 0
	One  Bit = 1
)

// Qubit represents a quantum bit state: the classical value it was prepared
// with and the basis it was encoded in. No complex amplitudes are tracked;
// the measurement contract in Measure reproduces every observable statistic
// the protocol depends on.
type Qubit struct {
	// Value is the bit value encoded in the qubit
	Value Bit
	// Basis is the basis used to prepare this qubit
	Basis Basis
}

// PrepareQubit encodes a classical bit in the given basis.
func PrepareQubit(bit Bit, basis Basis) Qubit {
	return Qubit{
		Value: bit,
		Basis: basis,
	}
}

// Measure measures a qubit in the given basis. When the measurement basis
// matches the preparation basis the outcome equals the encoded value and the
// state is undisturbed. When the bases differ the state collapses into the
// measurement basis and the outcome is a uniform random bit, independent of
// the encoded value.
func Measure(q Qubit, basis Basis, rs *RandomSource) Bit {
	if basis == q.Basis {
		return q.Value
	}
	return rs.Bit()
}

// GenerateRandomBits draws length uniform random bits from rs.
func GenerateRandomBits(rs *RandomSource, length int) []Bit {
	bits := make([]Bit, length)
	for i := range bits {
		bits[i] = rs.Bit()
	}
	return bits
}

// GenerateRandomBases draws length uniform random bases from rs.
func GenerateRandomBases(rs *RandomSource, length int) []Basis {
	bases := make([]Basis, length)
	for i := range bases {
		bases[i] = rs.Basis()
	}
	return bases
}

// BitsToBytes packs a bit sequence into bytes, most-significant bit first.
// An incomplete trailing byte is zero-padded.
func BitsToBytes(bits []Bit) []byte {
	numBytes := (len(bits) + 7) / 8
	bytes := make([]byte, numBytes)

	for i, bit := range bits {
		if bit == One {
			byteIndex := i / 8
			bitIndex := uint(7 - (i % 8))
			bytes[byteIndex] |= (1 << bitIndex)
		}
	}

	return bytes
}

// BytesToBits unpacks bitLength bits from a byte array, most-significant bit
// first.
func BytesToBits(bytes []byte, bitLength int) []Bit {
	bits := make([]Bit, bitLength)

	for i := 0; i < bitLength; i++ {
		byteIndex := i / 8
		bitIndex := uint(7 - (i % 8))
		if bytes[byteIndex]&(1<<bitIndex) != 0 {
			bits[i] = One
		} else {
			bits[i] = Zero
		}
	}

	return bits
}

// CalculateBitError calculates the error rate between two bit sequences
func CalculateBitError(bits1, bits2 []Bit) (float64, error) {
	if len(bits1) != len(bits2) {
		return 0, fmt.Errorf("bit sequences must have the same length")
	}

	if len(bits1) == 0 {
		return 0, nil
	}

	errors := 0
	for i := range bits1 {
		if bits1[i] != bits2[i] {
			errors++
		}
	}

	return float64(errors) / float64(len(bits1)), nil
}
