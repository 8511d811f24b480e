package clutch

import (
	"fmt"
	"strings"
)

// Key scheme for the single-table layout. A clutch's metadata row and all of
// its egg rows share one partition so a single Query returns the whole clutch.
const (
	PartitionPrefix = "CLUTCH#"
	EggSortPrefix   = "EGG#"
	MetadataSortKey = "METADATA"

	// ListingPartition is the GSI1 partition every clutch metadata row is
	// projected into; GSI1SK carries the upload timestamp.
	ListingPartition = "CLUTCHES"
)

// PartitionKey returns the pk for a clutch
func PartitionKey(clutchID string) string {
	return PartitionPrefix + clutchID
}

// EggSortKey returns the sk for an egg row
func EggSortKey(eggID string) string {
	return EggSortPrefix + eggID
}

// ClutchIDFromPartitionKey extracts the clutch ID from a pk
func ClutchIDFromPartitionKey(pk string) (string, error) {
	if !strings.HasPrefix(pk, PartitionPrefix) || len(pk) == len(PartitionPrefix) {
		return "", fmt.Errorf("not a clutch partition key: %q", pk)
	}
	return strings.TrimPrefix(pk, PartitionPrefix), nil
}

// IsEggSortKey reports whether sk addresses an egg row
func IsEggSortKey(sk string) bool {
	return strings.HasPrefix(sk, EggSortPrefix)
}
