package marker

import (
	"time"
)

// Memory keeps the marker in process memory. Handy for tests and for
// callers that manage persistence elsewhere.
type Memory struct {
	date time.Time
	set  bool
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) LastMarker() (time.Time, bool, error) {
	return m.date, m.set, nil
}

func (m *Memory) SetMarker(date time.Time) error {
	m.date = date
	m.set = true
	return nil
}
