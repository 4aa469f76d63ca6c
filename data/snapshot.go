package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vi13x/shop-lite-cli/internal/domain"
)

// Snapshot is a point-in-time dump of the shop for auditing. The shop never
// restores its state from one.
type Snapshot struct {
	TakenAt   time.Time          `json:"taken_at"`
	Products  []*domain.Product  `json:"products"`
	Customers []*domain.Customer `json:"customers"`
}

func (s *Snapshot) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Load reads a snapshot written by Save, for audit tooling. The shop itself
// never calls it.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := &Snapshot{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return s, nil
}
