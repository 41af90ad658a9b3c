package quantum

import (
	"fmt"
	"testing"
)

// TestBasisString tests the String method for Basis types
func TestBasisString(t *testing.T) {
	tests := []struct {
		name     string
		basis    Basis
		expected string
	}{
		{"Rectilinear basis", RectilinearBasis, "Rectilinear(+)"},
		{"Diagonal basis", DiagonalBasis, "Diagonal(×)"},
		{"Invalid basis", Basis(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.basis.String()
			if result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}

// TestPrepareQubit tests qubit preparation
func TestPrepareQubit(t *testing.T) {
	tests := []struct {
		name  string
		bit   Bit
		basis Basis
	}{
		{"Prepare |0⟩ in rectilinear", Zero, RectilinearBasis},
		{"Prepare |1⟩ in rectilinear", One, RectilinearBasis},
		{"Prepare |+⟩ (0 in diagonal)", Zero, DiagonalBasis},
		{"Prepare |-⟩ (1 in diagonal)", One, DiagonalBasis},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qubit := PrepareQubit(tt.bit, tt.basis)

			if qubit.Value != tt.bit {
				t.Errorf("expected bit %d, got %d", tt.bit, qubit.Value)
			}
			if qubit.Basis != tt.basis {
				t.Errorf("expected basis %v, got %v", tt.basis, qubit.Basis)
			}
		})
	}
}

// TestMeasure tests the measurement contract
func TestMeasure(t *testing.T) {
	t.Run("Matching basis is deterministic", func(t *testing.T) {
		rs := NewRandomSource(1)
		for _, bit := range []Bit{Zero, One} {
			for _, basis := range []Basis{RectilinearBasis, DiagonalBasis} {
				qubit := PrepareQubit(bit, basis)
				for i := 0; i < 100; i++ {
					if got := Measure(qubit, basis, rs); got != bit {
						t.Fatalf("measuring %d in same basis %v: expected %d, got %d",
							bit, basis, bit, got)
					}
				}
			}
		}
	})

	t.Run("Mismatched basis is unbiased", func(t *testing.T) {
		// Mismatched-basis outcomes must be indistinguishable from a fair
		// coin, independent of the encoded value. With 2000 trials three
		// standard deviations is about 0.034.
		rs := NewRandomSource(2)
		for _, bit := range []Bit{Zero, One} {
			qubit := PrepareQubit(bit, RectilinearBasis)
			trials := 2000
			ones := 0
			for i := 0; i < trials; i++ {
				if Measure(qubit, DiagonalBasis, rs) == One {
					ones++
				}
			}
			frac := float64(ones) / float64(trials)
			if frac < 0.45 || frac > 0.55 {
				t.Errorf("encoded %d: mismatched-basis outcome distribution off: %.1f%% ones (expected ~50%%)",
					bit, frac*100)
			}
		}
	})
}

// TestGenerateRandomBits tests random bit generation
func TestGenerateRandomBits(t *testing.T) {
	rs := NewRandomSource(3)

	tests := []struct {
		name   string
		length int
	}{
		{"Generate 0 bits", 0},
		{"Generate 1 bit", 1},
		{"Generate 1000 bits", 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bits := GenerateRandomBits(rs, tt.length)

			if len(bits) != tt.length {
				t.Errorf("expected %d bits, got %d", tt.length, len(bits))
			}

			for i, bit := range bits {
				if bit != Zero && bit != One {
					t.Errorf("bit at index %d has invalid value %d", i, bit)
				}
			}

			if tt.length >= 1000 {
				ones := 0
				for _, bit := range bits {
					if bit == One {
						ones++
					}
				}
				onePercent := float64(ones) / float64(tt.length)
				if onePercent < 0.4 || onePercent > 0.6 {
					t.Errorf("distribution seems off: %.1f%% ones (expected ~50%%)",
						onePercent*100)
				}
			}
		})
	}
}

// TestGenerateRandomBases tests random basis generation
func TestGenerateRandomBases(t *testing.T) {
	rs := NewRandomSource(4)
	bases := GenerateRandomBases(rs, 1000)

	if len(bases) != 1000 {
		t.Fatalf("expected 1000 bases, got %d", len(bases))
	}

	rectilinear := 0
	for i, basis := range bases {
		if basis != RectilinearBasis && basis != DiagonalBasis {
			t.Errorf("basis at index %d has invalid value %d", i, basis)
		}
		if basis == RectilinearBasis {
			rectilinear++
		}
	}

	rectilinearPercent := float64(rectilinear) / float64(len(bases))
	if rectilinearPercent < 0.4 || rectilinearPercent > 0.6 {
		t.Errorf("distribution seems off: %.1f%% rectilinear (expected ~50%%)",
			rectilinearPercent*100)
	}
}

// TestBitsToBytes tests bit-to-byte conversion
func TestBitsToBytes(t *testing.T) {
	tests := []struct {
		name     string
		bits     []Bit
		expected []byte
	}{
		{
			name:     "Empty",
			bits:     []Bit{},
			expected: []byte{},
		},
		{
			name:     "Single 1 bit",
			bits:     []Bit{One},
			expected: []byte{0x80},
		},
		{
			name:     "Pattern 10110001",
			bits:     []Bit{One, Zero, One, One, Zero, Zero, Zero, One},
			expected: []byte{0xB1},
		},
		{
			name:     "Not full byte (5 bits)",
			bits:     []Bit{One, One, One, One, One},
			expected: []byte{0xF8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := BitsToBytes(tt.bits)

			if len(result) != len(tt.expected) {
				t.Fatalf("expected %d bytes, got %d", len(tt.expected), len(result))
			}

			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("byte %d: expected 0x%02X, got 0x%02X", i, tt.expected[i], result[i])
				}
			}
		})
	}
}

// TestBitsRoundTrip tests conversion roundtrip
func TestBitsRoundTrip(t *testing.T) {
	rs := NewRandomSource(5)

	for _, bitLength := range []int{1, 8, 13, 64, 256} {
		t.Run(fmt.Sprintf("%d bits", bitLength), func(t *testing.T) {
			original := GenerateRandomBits(rs, bitLength)
			recovered := BytesToBits(BitsToBytes(original), bitLength)

			if len(recovered) != len(original) {
				t.Fatalf("length mismatch: original %d, recovered %d", len(original), len(recovered))
			}

			for i := range original {
				if original[i] != recovered[i] {
					t.Errorf("bit %d mismatch: original %d, recovered %d", i, original[i], recovered[i])
				}
			}
		})
	}
}

// TestCalculateBitError tests error rate calculation
func TestCalculateBitError(t *testing.T) {
	tests := []struct {
		name          string
		bits1         []Bit
		bits2         []Bit
		expectedError float64
		shouldError   bool
	}{
		{
			name:          "No errors (identical)",
			bits1:         []Bit{Zero, One, Zero, One},
			bits2:         []Bit{Zero, One, Zero, One},
			expectedError: 0.0,
		},
		{
			name:          "25% error",
			bits1:         []Bit{Zero, One, Zero, One},
			bits2:         []Bit{Zero, Zero, Zero, One},
			expectedError: 0.25,
		},
		{
			name:          "100% error",
			bits1:         []Bit{Zero, Zero, Zero, Zero},
			bits2:         []Bit{One, One, One, One},
			expectedError: 1.0,
		},
		{
			name:        "Length mismatch",
			bits1:       []Bit{Zero, One},
			bits2:       []Bit{Zero},
			shouldError: true,
		},
		{
			name:          "Empty sequences",
			bits1:         []Bit{},
			bits2:         []Bit{},
			expectedError: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errorRate, err := CalculateBitError(tt.bits1, tt.bits2)

			if tt.shouldError {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if errorRate != tt.expectedError {
				t.Errorf("expected error rate %.2f, got %.2f", tt.expectedError, errorRate)
			}
		})
	}
}

func BenchmarkMeasure(b *testing.B) {
	rs := NewRandomSource(6)
	qubit := PrepareQubit(One, DiagonalBasis)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Measure(qubit, RectilinearBasis, rs)
	}
}

func BenchmarkBitsToBytes(b *testing.B) {
	rs := NewRandomSource(7)
	bits := GenerateRandomBits(rs, 256)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		BitsToBytes(bits)
	}
}
