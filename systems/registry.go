package systems

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/spacedrift/components"
)

var (
	// ErrDuplicateStage is returned when two stages share an ID.
	ErrDuplicateStage = errors.New("systems: duplicate stage")

	// ErrAccessConflict is returned when a stage declares the same
	// component kind as both read and written.
	ErrAccessConflict = errors.New("systems: conflicting access")

	// ErrStageOrder is returned when a stage runs before a stage it
	// depends on.
	ErrStageOrder = errors.New("systems: stage ordering violated")
)

// StageInfo describes a stage for logging, perf tracking and the HUD.
type StageInfo struct {
	ID          string   // Internal identifier (used for perf tracking)
	Name        string   // Display name
	Description string   // What this stage does
	After       []string // IDs that must run earlier in the same frame
}

// Access declares the component kinds a stage reads and writes.
// A stage gets exclusive access to Writes and shared access to Reads;
// a kind that is written is implicitly readable and must not also be
// listed in Reads.
type Access struct {
	Reads  components.Kind
	Writes components.Kind
}

// Stage is one step of the per-frame update.
type Stage interface {
	Info() StageInfo
	Access() Access
	Run(ctx *Context)
}

// Validate checks a stage list for duplicate IDs, conflicting access
// declarations and ordering dependencies.
func Validate(stages []Stage) error {
	seen := make(map[string]int, len(stages))
	for i, st := range stages {
		info := st.Info()
		if _, dup := seen[info.ID]; dup {
			return fmt.Errorf("stage %q: %w", info.ID, ErrDuplicateStage)
		}

		acc := st.Access()
		if acc.Reads.Overlaps(acc.Writes) {
			return fmt.Errorf("stage %q reads and writes %s: %w",
				info.ID, acc.Reads&acc.Writes, ErrAccessConflict)
		}

		for _, dep := range info.After {
			if _, ok := seen[dep]; !ok {
				return fmt.Errorf("stage %q must run after %q: %w", info.ID, dep, ErrStageOrder)
			}
		}
		seen[info.ID] = i
	}
	return nil
}
