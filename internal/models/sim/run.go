package sim

import (
	"time"

	"github.com/google/uuid"

	"github.com/sajeeb007/qkd-bb84-sim/internal/degrade"
)

// RunStatus represents the outcome of a simulation run
type RunStatus string

const (
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// RunRecord summarizes one completed (or failed) simulation run. Raw image
// buffers are kept out of the JSON body; the image endpoints serve them
// separately.
type RunRecord struct {
	RunID               uuid.UUID       `json:"run_id"`
	Status              RunStatus       `json:"status"`
	QubitCount          int             `json:"qubit_count"`
	EavesdropperEnabled bool            `json:"eavesdropper_enabled"`
	SiftedKeyLength     int             `json:"sifted_key_length"`
	SiftingEfficiency   float64         `json:"sifting_efficiency"`
	Similarity          float64         `json:"similarity"`
	BitErrorRate        float64         `json:"bit_error_rate"`
	KeysMatch           bool            `json:"keys_match"`
	Noise               degrade.Applied `json:"noise_applied"`
	BlockErrors         [][]float64     `json:"block_errors,omitempty"`
	Message             string          `json:"message,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	CompletedAt         *time.Time      `json:"completed_at,omitempty"`

	// Never exposed in JSON; served base64-encoded by the image endpoints
	OriginalPixels  []byte `json:"-"`
	CipherBytes     []byte `json:"-"`
	DecryptedPixels []byte `json:"-"`
	DegradedPixels  []byte `json:"-"`
	ImageDim        int    `json:"image_dim"`
}

// RunRequest is the HTTP request body for starting a simulation run.
type RunRequest struct {
	QubitCount             int            `json:"qubit_count"`
	EavesdropperEnabled    bool           `json:"eavesdropper_enabled"`
	TransmissionDistanceKM float64        `json:"transmission_distance_km"`
	NoiseCoefficient       float64        `json:"noise_coefficient"`
	GaussianStdDev         float64        `json:"gaussian_std_dev"`
	MaxFlipProbability     float64        `json:"max_flip_probability,omitempty"`
	ImageDim               int            `json:"image_dim,omitempty"`
	PixelBlockSize         int            `json:"pixel_block_size,omitempty"`
	RandomSeed             *uint64        `json:"random_seed,omitempty"`
	Degradation            degrade.Policy `json:"degradation,omitempty"`
	// ImageBase64 is an optional base64 row-major grayscale image of
	// image_dim × image_dim pixels; a test pattern is used when absent.
	ImageBase64 string `json:"image_base64,omitempty"`
}

// RunResponse represents the response when starting or querying a run
type RunResponse struct {
	Run   *RunRecord `json:"run"`
	Error string     `json:"error,omitempty"`
}

// ImageResponse carries one of a run's image buffers, base64 encoded.
type ImageResponse struct {
	RunID       string `json:"run_id"`
	Kind        string `json:"kind"`
	ImageDim    int    `json:"image_dim"`
	ImageBase64 string `json:"image_base64"`
	Error       string `json:"error,omitempty"`
}

// Custom errors
type SimError struct {
	Message string
}

func (e *SimError) Error() string {
	return e.Message
}

var (
	ErrInvalidQubitCount     = &SimError{"qubit count must be positive"}
	ErrNegativeDistance      = &SimError{"transmission distance must not be negative"}
	ErrNegativeCoefficient   = &SimError{"noise coefficient must not be negative"}
	ErrNegativeStdDev        = &SimError{"gaussian standard deviation must not be negative"}
	ErrInvalidFlipCap        = &SimError{"max flip probability must be in [0, 1]"}
	ErrInvalidImageDim       = &SimError{"image dimension must be positive"}
	ErrInvalidPixelBlockSize = &SimError{"pixel block size must be positive"}
	ErrBlockSizeIndivisible  = &SimError{"pixel block size must divide image dimension"}
	ErrInvalidDegradation    = &SimError{"degradation policy must have threshold in (0, 1] and non-negative amplitude"}
	ErrImageSizeMismatch     = &SimError{"image payload size must equal image_dim squared"}
	ErrRunNotFound           = &SimError{"run not found"}
	ErrInvalidRunID          = &SimError{"invalid run ID"}
)
