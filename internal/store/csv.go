package store

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/crimson-sun/funnelscope/internal/model"
)

// columns of the persisted event log, in order.
var columns = []string{"user_id", "session_id", "event_time", "event_name", "device", "city"}

// EventLog reads and writes the flat CSV event log.
type EventLog struct {
	path string
}

// NewEventLog creates an EventLog for the given path.
func NewEventLog(path string) *EventLog {
	return &EventLog{path: path}
}

// Path returns the event log location.
func (l *EventLog) Path() string {
	return l.path
}

// Write persists the events sorted by (user_id, event_time), creating
// parent directories as needed and replacing any existing file.
func (l *EventLog) Write(events []model.Event) error {
	sorted := append([]model.Event(nil), events...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].UserID != sorted[j].UserID {
			return sorted[i].UserID < sorted[j].UserID
		}
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "event log: create %s", dir)
		}
	}

	f, err := os.Create(l.path)
	if err != nil {
		return errors.Wrapf(err, "event log: create %s", l.path)
	}

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		f.Close()
		return errors.Wrap(err, "event log: write header")
	}
	for _, e := range sorted {
		row := []string{
			strconv.Itoa(e.UserID),
			e.SessionID,
			e.Timestamp.Format(time.RFC3339),
			string(e.Name),
			string(e.Device),
			e.City,
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return errors.Wrapf(err, "event log: write row for user %d", e.UserID)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return errors.Wrap(err, "event log: flush")
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "event log: close %s", l.path)
	}
	return nil
}

// Read loads the full event log. It fails hard on a malformed row or an
// event name outside the four funnel stages; a schema violation is never
// dropped or coerced.
func (l *EventLog) Read() ([]model.Event, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, errors.Wrapf(err, "event log: open %s", l.path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, errors.Wrapf(err, "event log: read header of %s", l.path)
	}
	if len(header) != len(columns) {
		return nil, errors.Errorf("event log: expected %d columns, got %d", len(columns), len(header))
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "event log: read %s", l.path)
	}

	events := make([]model.Event, 0, len(rows))
	for i, row := range rows {
		line := i + 2 // 1-based, after header
		userID, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, errors.Wrapf(err, "event log: line %d: user_id %q", line, row[0])
		}
		ts, err := time.Parse(time.RFC3339, row[2])
		if err != nil {
			return nil, errors.Wrapf(err, "event log: line %d: event_time %q", line, row[2])
		}
		name := model.EventName(row[3])
		if !name.Valid() {
			return nil, errors.Errorf("event log: line %d: unexpected event name %q", line, row[3])
		}
		events = append(events, model.Event{
			UserID:    userID,
			SessionID: row[1],
			Timestamp: ts,
			Name:      name,
			Device:    model.Device(row[4]),
			City:      row[5],
		})
	}
	return events, nil
}
