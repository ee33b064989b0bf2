// Package history keeps a per-place record of successful runs in a local
// sqlite database so the tooltip can show how the temperature moved between
// invocations.
package history

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Repository interface {
	LogRun(place string, temperature float64, weatherCode int) error
	LastRun(place string) (*Run, error)
}

type SQLiteRepository struct {
	db *gorm.DB
}

// Open opens (or creates) the history database at path. The gorm logger is
// silenced: stdout must stay reserved for the bar payload.
func Open(path string) (*SQLiteRepository, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("cannot open history database: %w", err)
	}

	if err := db.AutoMigrate(&Run{}); err != nil {
		return nil, fmt.Errorf("cannot migrate history schema: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) LogRun(place string, temperature float64, weatherCode int) error {
	run := Run{
		Place:       place,
		Temperature: temperature,
		WeatherCode: weatherCode,
		CreatedAt:   time.Now(),
	}

	return r.db.Create(&run).Error
}

// LastRun returns the most recent run for place, or (nil, nil) when no run
// has been recorded yet.
func (r *SQLiteRepository) LastRun(place string) (*Run, error) {
	var run Run
	err := r.db.Where("place = ?", place).Order("created_at DESC").First(&run).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}
