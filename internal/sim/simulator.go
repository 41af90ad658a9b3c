package sim

import (
	"bytes"
	crand "crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/sajeeb007/qkd-bb84-sim/internal/codec"
	"github.com/sajeeb007/qkd-bb84-sim/internal/degrade"
	models "github.com/sajeeb007/qkd-bb84-sim/internal/models/sim"
	"github.com/sajeeb007/qkd-bb84-sim/internal/qkd"
	qkdcrypto "github.com/sajeeb007/qkd-bb84-sim/internal/qkd/crypto"
	"github.com/sajeeb007/qkd-bb84-sim/internal/qkd/quantum"
)

// Result packages every output of one simulation run for the CLI and HTTP
// layers: the distillation metrics, both derived keys, the cipher round trip
// and the degraded image with the noise parameters applied to it.
type Result struct {
	Seed         uint64
	Distillation *qkd.DistillationResult
	SenderKey    []byte
	ReceiverKey  []byte
	KeysMatch    bool
	Original     codec.Image
	Encrypted    *codec.EncryptedImage
	Decrypted    codec.Image
	Degraded     codec.Image
	Noise        degrade.Applied
	// BlockErrors is the per pixel-block fraction of degraded pixels,
	// partitioned by Config.PixelBlockSize for the plotting layer.
	BlockErrors [][]float64
}

// Simulator runs the full pipeline: BB84 exchange, sifting, key derivation,
// image encryption, decryption with the receiver's key, and similarity-driven
// degradation.
type Simulator struct {
	cfg Config
}

// New validates cfg and returns a simulator for it.
func New(cfg Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Simulator{cfg: cfg}, nil
}

// Config returns the validated configuration, defaults filled in.
func (s *Simulator) Config() Config {
	return s.cfg
}

// Run executes the full pipeline against img. A zero-value img selects the
// deterministic test pattern. Randomness is consumed in a single logical
// sequence: the per-qubit protocol draws first (see Protocol.Run), then the
// IV bytes, then the degradation draws.
func (s *Simulator) Run(img codec.Image) (*Result, error) {
	if img.IsZero() {
		img = codec.TestPattern(s.cfg.ImageDim)
	}
	if img.Dim != s.cfg.ImageDim {
		return nil, fmt.Errorf("image dimension %d does not match configured dimension %d", img.Dim, s.cfg.ImageDim)
	}

	seed, err := s.seed()
	if err != nil {
		return nil, err
	}
	rs := quantum.NewRandomSource(seed)

	var links quantum.Pipeline
	if s.cfg.EavesdropperEnabled {
		links = append(links, quantum.NewEavesdropper(rs))
	}
	links = append(links, quantum.NewChannelNoise(s.cfg.NoiseParameters(), rs))

	proto, err := qkd.NewProtocol(s.cfg.QubitCount, links, rs)
	if err != nil {
		return nil, fmt.Errorf("building protocol: %w", err)
	}
	dist, err := qkd.Distill(proto.Run())
	if err != nil {
		return nil, fmt.Errorf("distilling key: %w", err)
	}

	senderKey := qkdcrypto.DeriveKey(dist.SenderKey, codec.KeySize)
	receiverKey := qkdcrypto.DeriveKey(dist.ReceiverKey, codec.KeySize)

	iv := rs.Bytes(codec.IVSize)
	enc, err := codec.Encrypt(img, senderKey, iv)
	if err != nil {
		return nil, fmt.Errorf("encrypting image: %w", err)
	}
	dec, err := codec.Decrypt(enc, receiverKey)
	if err != nil {
		return nil, fmt.Errorf("decrypting image: %w", err)
	}

	degraded, applied := s.cfg.Degradation.Apply(dec, dist.Similarity, rs)

	blockErrors, err := codec.BlockErrorMap(img, degraded, s.cfg.PixelBlockSize)
	if err != nil {
		return nil, fmt.Errorf("computing block error map: %w", err)
	}

	return &Result{
		Seed:         seed,
		Distillation: dist,
		SenderKey:    senderKey,
		ReceiverKey:  receiverKey,
		KeysMatch:    bytes.Equal(senderKey, receiverKey),
		Original:     img,
		Encrypted:    enc,
		Decrypted:    dec,
		Degraded:     degraded,
		Noise:        applied,
		BlockErrors:  blockErrors,
	}, nil
}

func (s *Simulator) seed() (uint64, error) {
	if s.cfg.RandomSeed != nil {
		return *s.cfg.RandomSeed, nil
	}
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("drawing seed: %w", err)
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// ValidateImagePayload checks that a raw pixel payload matches the configured
// image dimension and wraps it into an Image.
func ValidateImagePayload(pixels []byte, dim int) (codec.Image, error) {
	if len(pixels) != dim*dim {
		return codec.Image{}, models.ErrImageSizeMismatch
	}
	px := make([]uint8, len(pixels))
	copy(px, pixels)
	return codec.Image{Dim: dim, Pixels: px}, nil
}
