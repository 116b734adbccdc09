package telemetry

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Sink receives closed stats windows. OutputManager and RunStore are
// sinks.
type Sink interface {
	WriteStats(stats WindowStats) error
	WritePerf(stats PerfStats, windowEnd int64) error
	Close() error
}

// RunRecord identifies one simulation run in a RunStore.
type RunRecord struct {
	ID        uint `gorm:"primaryKey"`
	Seed      uint64
	Headless  bool
	StartedAt time.Time
}

// WindowRecord is a stored stats window.
type WindowRecord struct {
	ID    uint `gorm:"primaryKey"`
	RunID uint `gorm:"index"`
	WindowStats
}

// PerfRecord is a stored perf window.
type PerfRecord struct {
	ID    uint `gorm:"primaryKey"`
	RunID uint `gorm:"index"`
	PerfStatsCSV
}

// RunStore keeps window stats of many runs in one SQLite file, so runs
// with different seeds or settings can be compared with SQL.
type RunStore struct {
	db  *gorm.DB
	run RunRecord
}

// OpenRunStore opens (or creates) the database at path and registers a
// new run. An empty path returns nil, which is a valid no-op sink.
func OpenRunStore(path string, seed uint64, headless bool) (*RunStore, error) {
	if path == "" {
		return nil, nil
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening run store: %w", err)
	}
	if err := db.AutoMigrate(&RunRecord{}, &WindowRecord{}, &PerfRecord{}); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("migrating run store: %w", err)
	}

	rs := &RunStore{
		db:  db,
		run: RunRecord{Seed: seed, Headless: headless, StartedAt: time.Now()},
	}
	if err := db.Create(&rs.run).Error; err != nil {
		closeDB(db)
		return nil, fmt.Errorf("registering run: %w", err)
	}
	return rs, nil
}

// RunID returns the id of the current run.
func (rs *RunStore) RunID() uint {
	if rs == nil {
		return 0
	}
	return rs.run.ID
}

// WriteStats stores a window.
func (rs *RunStore) WriteStats(stats WindowStats) error {
	if rs == nil {
		return nil
	}
	rec := WindowRecord{RunID: rs.run.ID, WindowStats: stats}
	if err := rs.db.Create(&rec).Error; err != nil {
		return fmt.Errorf("storing window: %w", err)
	}
	return nil
}

// WritePerf stores a perf window.
func (rs *RunStore) WritePerf(stats PerfStats, windowEnd int64) error {
	if rs == nil {
		return nil
	}
	rec := PerfRecord{RunID: rs.run.ID, PerfStatsCSV: stats.ToCSV(windowEnd)}
	if err := rs.db.Create(&rec).Error; err != nil {
		return fmt.Errorf("storing perf: %w", err)
	}
	return nil
}

// Windows returns the stored windows of run in tick order.
func (rs *RunStore) Windows(run uint) ([]WindowStats, error) {
	if rs == nil {
		return nil, nil
	}
	var recs []WindowRecord
	if err := rs.db.Where("run_id = ?", run).Order("window_end_tick").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("loading windows: %w", err)
	}
	out := make([]WindowStats, len(recs))
	for i := range recs {
		out[i] = recs[i].WindowStats
	}
	return out, nil
}

// Runs returns every registered run, oldest first.
func (rs *RunStore) Runs() ([]RunRecord, error) {
	if rs == nil {
		return nil, nil
	}
	var runs []RunRecord
	if err := rs.db.Order("id").Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("loading runs: %w", err)
	}
	return runs, nil
}

// Close releases the database.
func (rs *RunStore) Close() error {
	if rs == nil {
		return nil
	}
	return closeDB(rs.db)
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
