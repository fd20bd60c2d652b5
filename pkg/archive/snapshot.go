package archive

import (
	"github.com/agentstation/utc"
)

// Snapshot is one run's complete archive state: new records first in
// processing order, then every carried-forward prior record.
type Snapshot struct {
	SchemaVersion int
	ColumnWidths  []float64
	Records       []Record
	CreatedAt     utc.Time
}

// NewSnapshot creates an empty snapshot stamped with the current date.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		SchemaVersion: SchemaVersion,
		CreatedAt:     utc.Now(),
	}
}

// Keys returns the set of unique keys present in the snapshot.
func (s *Snapshot) Keys() map[string]struct{} {
	keys := make(map[string]struct{}, len(s.Records))
	for _, r := range s.Records {
		keys[r.UniqueKey] = struct{}{}
	}
	return keys
}
