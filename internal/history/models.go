package history

import (
	"time"
)

// Run is one successful weather fetch.
type Run struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Place       string    `json:"place" gorm:"index:idx_place;index:idx_place_created_at"`
	Temperature float64   `json:"temperature"`
	WeatherCode int       `json:"weather_code" gorm:"column:weather_code"`
	CreatedAt   time.Time `json:"created_at" gorm:"index:idx_place_created_at"`
}

func (Run) TableName() string {
	return "weather_runs"
}
