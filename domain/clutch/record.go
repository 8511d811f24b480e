// Package clutch models the clutch demo data: one metadata row per clutch and
// the egg analysis rows it owns.
package clutch

// RecordKind distinguishes the two row types sharing a clutch partition
type RecordKind string

const (
	KindMetadata RecordKind = "METADATA"
	KindEgg      RecordKind = "EGG"
)

// Record is a single table row addressed by its primary key
type Record interface {
	PartitionKey() string
	SortKey() string
	Kind() RecordKind
}

// CountByKind tallies records per kind
func CountByKind(records []Record) map[RecordKind]int {
	counts := make(map[RecordKind]int, 2)
	for _, r := range records {
		counts[r.Kind()]++
	}
	return counts
}

// Clutches returns the metadata records in sequence order
func Clutches(records []Record) []*Clutch {
	var out []*Clutch
	for _, r := range records {
		if c, ok := r.(*Clutch); ok {
			out = append(out, c)
		}
	}
	return out
}
