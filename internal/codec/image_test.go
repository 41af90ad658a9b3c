package codec

import (
	"testing"
)

// TestNewImage tests image allocation
func TestNewImage(t *testing.T) {
	tests := []struct {
		name       string
		dim        int
		shouldFail bool
	}{
		{"Valid dimension", 64, false},
		{"Single pixel", 1, false},
		{"Zero dimension", 0, true},
		{"Negative dimension", -16, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := NewImage(tt.dim)

			if tt.shouldFail {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if img.Dim != tt.dim || len(img.Pixels) != tt.dim*tt.dim {
				t.Errorf("expected %dx%d image, got dim %d with %d pixels",
					tt.dim, tt.dim, img.Dim, len(img.Pixels))
			}
		})
	}
}

// TestImageAccessors tests At, Set, Clone and Equal
func TestImageAccessors(t *testing.T) {
	img, err := NewImage(8)
	if err != nil {
		t.Fatalf("allocating image: %v", err)
	}

	img.Set(3, 5, 200)
	if got := img.At(3, 5); got != 200 {
		t.Errorf("expected 200 at (3,5), got %d", got)
	}
	if got := img.Pixels[5*8+3]; got != 200 {
		t.Errorf("expected row-major layout, got %d at offset 43", got)
	}

	clone := img.Clone()
	if !clone.Equal(img) {
		t.Error("clone differs from original")
	}

	clone.Set(0, 0, 99)
	if img.At(0, 0) == 99 {
		t.Error("mutating the clone altered the original")
	}
	if clone.Equal(img) {
		t.Error("mutated clone still equal to original")
	}
}

// TestTestPattern tests the built-in gradient pattern
func TestTestPattern(t *testing.T) {
	img := TestPattern(64)

	if img.Dim != 64 {
		t.Fatalf("expected dimension 64, got %d", img.Dim)
	}
	if img.At(0, 0) != 0 {
		t.Errorf("expected 0 at origin, got %d", img.At(0, 0))
	}
	if img.At(63, 63) != 255 {
		t.Errorf("expected 255 at far corner, got %d", img.At(63, 63))
	}

	// Constant along anti-diagonals.
	if img.At(10, 20) != img.At(20, 10) {
		t.Error("gradient not symmetric across the diagonal")
	}

	if !TestPattern(64).Equal(img) {
		t.Error("pattern is not deterministic")
	}

	single := TestPattern(1)
	if single.Pixels[0] != 128 {
		t.Errorf("expected 128 for single-pixel pattern, got %d", single.Pixels[0])
	}
}

// TestBlockErrorMap tests the per-block differing-pixel fractions
func TestBlockErrorMap(t *testing.T) {
	t.Run("Identical images", func(t *testing.T) {
		img := TestPattern(32)
		grid, err := BlockErrorMap(img, img.Clone(), 8)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(grid) != 4 {
			t.Fatalf("expected 4 block rows, got %d", len(grid))
		}
		for by := range grid {
			for bx, frac := range grid[by] {
				if frac != 0 {
					t.Errorf("block (%d,%d): expected 0, got %f", bx, by, frac)
				}
			}
		}
	})

	t.Run("Single corrupted block", func(t *testing.T) {
		a := TestPattern(32)
		b := a.Clone()
		// Flip half the pixels of block (1,2).
		for y := 16; y < 24; y++ {
			for x := 8; x < 12; x++ {
				b.Set(x, y, b.At(x, y)^0xFF)
			}
		}

		grid, err := BlockErrorMap(a, b, 8)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for by := range grid {
			for bx, frac := range grid[by] {
				expected := 0.0
				if bx == 1 && by == 2 {
					expected = 0.5
				}
				if frac != expected {
					t.Errorf("block (%d,%d): expected %f, got %f", bx, by, expected, frac)
				}
			}
		}
	})

	t.Run("Validation", func(t *testing.T) {
		a := TestPattern(32)
		b := TestPattern(64)
		if _, err := BlockErrorMap(a, b, 8); err == nil {
			t.Error("expected error for mismatched dimensions")
		}
		if _, err := BlockErrorMap(a, a, 0); err == nil {
			t.Error("expected error for zero block size")
		}
		if _, err := BlockErrorMap(a, a, 7); err == nil {
			t.Error("expected error for indivisible block size")
		}
	})
}
