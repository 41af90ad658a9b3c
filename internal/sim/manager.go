package sim

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sajeeb007/qkd-bb84-sim/internal/codec"
	models "github.com/sajeeb007/qkd-bb84-sim/internal/models/sim"
)

// RunManager stores completed simulation runs in memory, keyed by run ID.
type RunManager struct {
	mu   sync.RWMutex
	runs map[uuid.UUID]*models.RunRecord
}

// NewRunManager creates an empty run registry.
func NewRunManager() *RunManager {
	return &RunManager{
		runs: make(map[uuid.UUID]*models.RunRecord),
	}
}

// Execute validates cfg, runs the full simulation against img (zero value
// selects the test pattern) and stores a record of the outcome. Failed runs
// are recorded with their message and the error is returned to the caller.
func (rm *RunManager) Execute(cfg Config, img codec.Image) (*models.RunRecord, error) {
	record := &models.RunRecord{
		RunID:     uuid.New(),
		CreatedAt: time.Now(),
	}

	simulator, err := New(cfg)
	if err != nil {
		rm.storeFailed(record, err)
		return nil, err
	}
	cfg = simulator.Config()
	record.QubitCount = cfg.QubitCount
	record.EavesdropperEnabled = cfg.EavesdropperEnabled
	record.ImageDim = cfg.ImageDim

	result, err := simulator.Run(img)
	if err != nil {
		rm.storeFailed(record, err)
		return nil, err
	}

	now := time.Now()
	record.Status = models.RunCompleted
	record.SiftedKeyLength = len(result.Distillation.SenderKey)
	record.SiftingEfficiency = float64(record.SiftedKeyLength) / float64(cfg.QubitCount)
	record.Similarity = result.Distillation.Similarity
	record.BitErrorRate = result.Distillation.BitErrorRate
	record.KeysMatch = result.KeysMatch
	record.Noise = result.Noise
	record.BlockErrors = result.BlockErrors
	record.OriginalPixels = result.Original.Pixels
	record.CipherBytes = result.Encrypted.Ciphertext
	record.DecryptedPixels = result.Decrypted.Pixels
	record.DegradedPixels = result.Degraded.Pixels
	record.CompletedAt = &now

	rm.mu.Lock()
	rm.runs[record.RunID] = record
	rm.mu.Unlock()

	return record, nil
}

func (rm *RunManager) storeFailed(record *models.RunRecord, err error) {
	now := time.Now()
	record.Status = models.RunFailed
	record.Message = err.Error()
	record.CompletedAt = &now

	rm.mu.Lock()
	rm.runs[record.RunID] = record
	rm.mu.Unlock()
}

// Get retrieves a run record by ID.
func (rm *RunManager) Get(runID uuid.UUID) (*models.RunRecord, error) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	record, exists := rm.runs[runID]
	if !exists {
		return nil, models.ErrRunNotFound
	}
	return record, nil
}

// List returns all stored run records.
func (rm *RunManager) List() []*models.RunRecord {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	records := make([]*models.RunRecord, 0, len(rm.runs))
	for _, r := range rm.runs {
		records = append(records, r)
	}
	return records
}

// Prune removes records older than maxAge and reports how many were removed.
func (rm *RunManager) Prune(maxAge time.Duration) int {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for id, r := range rm.runs {
		if r.CreatedAt.Before(cutoff) {
			delete(rm.runs, id)
			removed++
		}
	}
	return removed
}
