package codec

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

const (
	// KeySize is the cipher key length in bytes (AES-256)
	KeySize = 32
	// IVSize is the initialization vector length in bytes
	IVSize = aes.BlockSize
)

// EncryptedImage carries the ciphertext of a flattened image together with
// the IV needed to invert it. The IV is not secret and is recorded alongside
// the ciphertext.
type EncryptedImage struct {
	Dim        int
	IV         []byte
	Ciphertext []byte
}

// Encrypt flattens img into a byte stream, pads it to a whole number of
// cipher blocks with PKCS#7 and encrypts it under AES-256-CBC with the given
// IV. The caller supplies the IV so that seeded simulation runs stay
// reproducible.
func Encrypt(img Image, key, iv []byte) (*EncryptedImage, error) {
	if img.Dim <= 0 || len(img.Pixels) != img.Dim*img.Dim {
		return nil, fmt.Errorf("image must be square with %d pixels, got %d", img.Dim*img.Dim, len(img.Pixels))
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("key must be %d bytes, got %d", KeySize, len(key))
	}
	if len(iv) != IVSize {
		return nil, fmt.Errorf("iv must be %d bytes, got %d", IVSize, len(iv))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	plain := pad(img.Pixels, aes.BlockSize)
	ct := make([]byte, len(plain))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ct, plain)

	ivCopy := make([]byte, IVSize)
	copy(ivCopy, iv)
	return &EncryptedImage{Dim: img.Dim, IV: ivCopy, Ciphertext: ct}, nil
}

// Decrypt reverses Encrypt with a possibly different key. With the correct
// key the output image is bit-identical to the input. With a wrong key the
// output is well-defined garbage: the blocks decrypt to noise and, when the
// resulting padding is structurally invalid, the trailing bytes are kept
// as-is and the reassembled image is truncated or zero-filled to the expected
// size, so the result is defined for every key.
func Decrypt(enc *EncryptedImage, key []byte) (Image, error) {
	if enc.Dim <= 0 {
		return Image{}, fmt.Errorf("encrypted image dimension must be positive, got %d", enc.Dim)
	}
	if len(key) != KeySize {
		return Image{}, fmt.Errorf("key must be %d bytes, got %d", KeySize, len(key))
	}
	if len(enc.IV) != IVSize {
		return Image{}, fmt.Errorf("iv must be %d bytes, got %d", IVSize, len(enc.IV))
	}
	if len(enc.Ciphertext) == 0 || len(enc.Ciphertext)%aes.BlockSize != 0 {
		return Image{}, fmt.Errorf("ciphertext length %d is not a positive multiple of the block size", len(enc.Ciphertext))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return Image{}, fmt.Errorf("creating cipher: %w", err)
	}

	plain := make([]byte, len(enc.Ciphertext))
	cipher.NewCBCDecrypter(block, enc.IV).CryptBlocks(plain, enc.Ciphertext)

	body, err := unpad(plain, aes.BlockSize)
	if err != nil {
		// Expected under a wrong key: keep the garbage bytes so the
		// degradation stage always has a defined baseline.
		body = plain
	}

	return reassemble(body, enc.Dim), nil
}

// pad appends PKCS#7 padding up to a whole number of blocks.
func pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+n)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

// unpad strips PKCS#7 padding, rejecting structurally invalid padding.
func unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("padded data length %d is not a multiple of %d", len(data), blockSize)
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, fmt.Errorf("invalid padding length %d", n)
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("inconsistent padding bytes")
		}
	}
	return data[:len(data)-n], nil
}

// reassemble reshapes a decrypted byte stream into a dim×dim image,
// truncating extra bytes and zero-filling any shortfall.
func reassemble(data []byte, dim int) Image {
	px := make([]uint8, dim*dim)
	copy(px, data)
	return Image{Dim: dim, Pixels: px}
}
