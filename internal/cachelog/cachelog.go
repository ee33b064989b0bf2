// Package cachelog persists rendered snapshots to an append-only
// newline-delimited JSON file, the last-resort data source when the network
// is down.
package cachelog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"statuskit/weatherbar/internal/render"
)

// ErrNoEntry is returned by Latest when no line in the log matches the
// requested place.
var ErrNoEntry = errors.New("no cache entry for place")

// Entry is one line of the cache log.
type Entry struct {
	Place     string          `json:"place"`
	Data      render.Snapshot `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

// Log is an append-only cache keyed by place name. There is no eviction and
// no locking; a periodic single-instance invocation is assumed.
type Log struct {
	path string
}

func New(path string) *Log {
	return &Log{path: path}
}

// Append writes one entry stamped with the current time. Each call is an
// open-append-close cycle.
func (l *Log) Append(place string, snapshot render.Snapshot) error {
	entry := Entry{
		Place:     place,
		Data:      snapshot,
		Timestamp: time.Now().Unix(),
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("cannot encode cache entry: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("cannot open cache log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("cannot append cache entry: %w", err)
	}

	return nil
}

// Latest returns the most recent entry for place, scanning the log
// newest-to-oldest. Malformed lines are skipped. A missing file reads as an
// empty log.
func (l *Log) Latest(place string) (*Entry, error) {
	raw, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoEntry
		}
		return nil, fmt.Errorf("cannot read cache log: %w", err)
	}

	lines := strings.Split(string(raw), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		var entry Entry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			continue
		}

		if entry.Place == place {
			return &entry, nil
		}
	}

	return nil, ErrNoEntry
}
