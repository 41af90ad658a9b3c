// Package sim wires the BB84 exchange to the image cipher pipeline and holds
// the run registry used by the API layer.
package sim

import (
	"github.com/sajeeb007/qkd-bb84-sim/internal/codec"
	"github.com/sajeeb007/qkd-bb84-sim/internal/degrade"
	models "github.com/sajeeb007/qkd-bb84-sim/internal/models/sim"
	"github.com/sajeeb007/qkd-bb84-sim/internal/qkd/quantum"
)

// Config is the full configuration surface for one simulation run.
type Config struct {
	QubitCount             int            `json:"qubit_count"`
	EavesdropperEnabled    bool           `json:"eavesdropper_enabled"`
	TransmissionDistanceKM float64        `json:"transmission_distance_km"`
	NoiseCoefficient       float64        `json:"noise_coefficient"`
	GaussianStdDev         float64        `json:"gaussian_std_dev"`
	MaxFlipProbability     float64        `json:"max_flip_probability"`
	ImageDim               int            `json:"image_dim"`
	PixelBlockSize         int            `json:"pixel_block_size"`
	Degradation            degrade.Policy `json:"degradation"`
	// RandomSeed makes the run reproducible; nil draws a fresh seed.
	RandomSeed *uint64 `json:"random_seed,omitempty"`
}

// Validate fills defaults for zero-valued optional fields and rejects invalid
// configuration before any simulation starts.
func (c *Config) Validate() error {
	if c.ImageDim == 0 {
		c.ImageDim = codec.DefaultImageDim
	}
	if c.PixelBlockSize == 0 {
		c.PixelBlockSize = codec.DefaultPixelBlockSize
	}
	if c.MaxFlipProbability == 0 {
		c.MaxFlipProbability = quantum.DefaultMaxFlipProbability
	}
	if c.Degradation == (degrade.Policy{}) {
		c.Degradation = degrade.DefaultPolicy()
	}

	if c.QubitCount <= 0 {
		return models.ErrInvalidQubitCount
	}
	if c.TransmissionDistanceKM < 0 {
		return models.ErrNegativeDistance
	}
	if c.NoiseCoefficient < 0 {
		return models.ErrNegativeCoefficient
	}
	if c.GaussianStdDev < 0 {
		return models.ErrNegativeStdDev
	}
	if c.MaxFlipProbability < 0 || c.MaxFlipProbability > 1 {
		return models.ErrInvalidFlipCap
	}
	if c.ImageDim < 0 {
		return models.ErrInvalidImageDim
	}
	if c.PixelBlockSize < 0 {
		return models.ErrInvalidPixelBlockSize
	}
	if c.ImageDim%c.PixelBlockSize != 0 {
		return models.ErrBlockSizeIndivisible
	}
	if c.Degradation.CleanThreshold <= 0 || c.Degradation.CleanThreshold > 1 || c.Degradation.MaxAmplitude < 0 {
		return models.ErrInvalidDegradation
	}
	return nil
}

// NoiseParameters returns the channel noise parameters for this config.
func (c *Config) NoiseParameters() quantum.NoiseParameters {
	return quantum.NoiseParameters{
		DistanceKM:         c.TransmissionDistanceKM,
		NoiseCoefficient:   c.NoiseCoefficient,
		GaussianStdDev:     c.GaussianStdDev,
		MaxFlipProbability: c.MaxFlipProbability,
	}
}
