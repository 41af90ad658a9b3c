// Package codec packs square grayscale images into byte streams and runs them
// through an AES-CBC encryption round trip.
package codec

import "fmt"

const (
	// DefaultImageDim is the default square image dimension in pixels
	DefaultImageDim = 256
	// DefaultPixelBlockSize is the default visualization partition size. It is
	// independent of the cipher's internal block size; the two merely share a
	// family of power-of-two defaults.
	DefaultPixelBlockSize = 16
)

// Image is a square 8-bit grayscale image stored row-major.
type Image struct {
	Dim    int
	Pixels []uint8
}

// NewImage allocates a dim×dim image with all pixels zero.
func NewImage(dim int) (Image, error) {
	if dim <= 0 {
		return Image{}, fmt.Errorf("image dimension must be positive, got %d", dim)
	}
	return Image{Dim: dim, Pixels: make([]uint8, dim*dim)}, nil
}

// At returns the pixel at column x, row y.
func (img Image) At(x, y int) uint8 {
	return img.Pixels[y*img.Dim+x]
}

// Set writes the pixel at column x, row y.
func (img Image) Set(x, y int, v uint8) {
	img.Pixels[y*img.Dim+x] = v
}

// Clone returns a deep copy of the image.
func (img Image) Clone() Image {
	px := make([]uint8, len(img.Pixels))
	copy(px, img.Pixels)
	return Image{Dim: img.Dim, Pixels: px}
}

// Equal reports whether two images have identical dimensions and pixels.
func (img Image) Equal(other Image) bool {
	if img.Dim != other.Dim || len(img.Pixels) != len(other.Pixels) {
		return false
	}
	for i := range img.Pixels {
		if img.Pixels[i] != other.Pixels[i] {
			return false
		}
	}
	return true
}

// IsZero reports whether the image is the zero value.
func (img Image) IsZero() bool {
	return img.Dim == 0 && img.Pixels == nil
}

// TestPattern returns a deterministic diagonal gradient image, used by demos
// and tests so the pipeline can run without any file I/O.
func TestPattern(dim int) Image {
	img, _ := NewImage(dim)
	if dim == 1 {
		img.Pixels[0] = 128
		return img
	}
	for y := 0; y < dim; y++ {
		for x := 0; x < dim; x++ {
			img.Set(x, y, uint8((x+y)*255/(2*dim-2)))
		}
	}
	return img
}

// BlockErrorMap partitions two images of equal dimension into non-overlapping
// size×size pixel blocks and returns, per block, the fraction of pixels that
// differ. The partition is a visualization aid for the plotting layer; it has
// nothing to do with cipher blocks.
func BlockErrorMap(a, b Image, size int) ([][]float64, error) {
	if a.Dim != b.Dim {
		return nil, fmt.Errorf("image dimensions must agree: %d != %d", a.Dim, b.Dim)
	}
	if size <= 0 {
		return nil, fmt.Errorf("pixel block size must be positive, got %d", size)
	}
	if a.Dim%size != 0 {
		return nil, fmt.Errorf("pixel block size %d must divide image dimension %d", size, a.Dim)
	}

	n := a.Dim / size
	grid := make([][]float64, n)
	for by := 0; by < n; by++ {
		grid[by] = make([]float64, n)
		for bx := 0; bx < n; bx++ {
			diff := 0
			for y := by * size; y < (by+1)*size; y++ {
				for x := bx * size; x < (bx+1)*size; x++ {
					if a.At(x, y) != b.At(x, y) {
						diff++
					}
				}
			}
			grid[by][bx] = float64(diff) / float64(size*size)
		}
	}
	return grid, nil
}
