package marker

import (
	"time"
)

// Store holds the date of the last download the caller considers
// settled. The client only reads and writes it through this interface;
// where and how it persists is the caller's business.
//
// Implementations are not required to be safe for concurrent writers;
// callers sharing a store must serialize updates themselves.
type Store interface {
	// LastMarker returns the marker date and whether one has ever been
	// set.
	LastMarker() (time.Time, bool, error)

	// SetMarker overwrites the marker date.
	SetMarker(date time.Time) error
}
