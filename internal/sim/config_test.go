package sim

import (
	"errors"
	"testing"

	"github.com/sajeeb007/qkd-bb84-sim/internal/codec"
	"github.com/sajeeb007/qkd-bb84-sim/internal/degrade"
	models "github.com/sajeeb007/qkd-bb84-sim/internal/models/sim"
	"github.com/sajeeb007/qkd-bb84-sim/internal/qkd/quantum"
)

// TestConfigValidate tests validation and default filling
func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		expectedErr error
	}{
		{
			name: "Minimal valid config",
			cfg:  Config{QubitCount: 1024},
		},
		{
			name:        "Zero qubits",
			cfg:         Config{},
			expectedErr: models.ErrInvalidQubitCount,
		},
		{
			name:        "Negative qubits",
			cfg:         Config{QubitCount: -1},
			expectedErr: models.ErrInvalidQubitCount,
		},
		{
			name:        "Negative distance",
			cfg:         Config{QubitCount: 1024, TransmissionDistanceKM: -10},
			expectedErr: models.ErrNegativeDistance,
		},
		{
			name:        "Negative noise coefficient",
			cfg:         Config{QubitCount: 1024, NoiseCoefficient: -0.001},
			expectedErr: models.ErrNegativeCoefficient,
		},
		{
			name:        "Negative standard deviation",
			cfg:         Config{QubitCount: 1024, GaussianStdDev: -0.5},
			expectedErr: models.ErrNegativeStdDev,
		},
		{
			name:        "Flip cap above one",
			cfg:         Config{QubitCount: 1024, MaxFlipProbability: 1.5},
			expectedErr: models.ErrInvalidFlipCap,
		},
		{
			name:        "Negative image dimension",
			cfg:         Config{QubitCount: 1024, ImageDim: -64},
			expectedErr: models.ErrInvalidImageDim,
		},
		{
			name:        "Negative pixel block size",
			cfg:         Config{QubitCount: 1024, PixelBlockSize: -8},
			expectedErr: models.ErrInvalidPixelBlockSize,
		},
		{
			name:        "Block size does not divide dimension",
			cfg:         Config{QubitCount: 1024, ImageDim: 100, PixelBlockSize: 16},
			expectedErr: models.ErrBlockSizeIndivisible,
		},
		{
			name: "Bad degradation threshold",
			cfg: Config{
				QubitCount:  1024,
				Degradation: degrade.Policy{CleanThreshold: 1.5, MaxAmplitude: 0.5, Family: degrade.SaltPepper},
			},
			expectedErr: models.ErrInvalidDegradation,
		},
		{
			name: "Negative degradation amplitude",
			cfg: Config{
				QubitCount:  1024,
				Degradation: degrade.Policy{CleanThreshold: 0.9, MaxAmplitude: -0.1, Family: degrade.SaltPepper},
			},
			expectedErr: models.ErrInvalidDegradation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Errorf("expected %v, got %v", tt.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

// TestConfigDefaults tests that Validate fills zero-valued optional fields
func TestConfigDefaults(t *testing.T) {
	cfg := Config{QubitCount: 1024}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ImageDim != codec.DefaultImageDim {
		t.Errorf("expected default image dimension %d, got %d", codec.DefaultImageDim, cfg.ImageDim)
	}
	if cfg.PixelBlockSize != codec.DefaultPixelBlockSize {
		t.Errorf("expected default pixel block size %d, got %d", codec.DefaultPixelBlockSize, cfg.PixelBlockSize)
	}
	if cfg.MaxFlipProbability != quantum.DefaultMaxFlipProbability {
		t.Errorf("expected default flip cap %f, got %f", quantum.DefaultMaxFlipProbability, cfg.MaxFlipProbability)
	}
	if cfg.Degradation != degrade.DefaultPolicy() {
		t.Errorf("expected default degradation policy, got %+v", cfg.Degradation)
	}
}

// TestNoiseParameters tests the config-to-channel parameter mapping
func TestNoiseParameters(t *testing.T) {
	cfg := Config{
		QubitCount:             1024,
		TransmissionDistanceKM: 42,
		NoiseCoefficient:       0.002,
		GaussianStdDev:         0.01,
		MaxFlipProbability:     0.08,
	}

	params := cfg.NoiseParameters()
	if params.DistanceKM != 42 || params.NoiseCoefficient != 0.002 ||
		params.GaussianStdDev != 0.01 || params.MaxFlipProbability != 0.08 {
		t.Errorf("noise parameters do not match config: %+v", params)
	}
}
