package utils

import "time"

// TimestampLayout is the fixed-width UTC layout used for stored timestamps.
// Fixed width keeps GSI1SK values in chronological order when compared as
// strings.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// FormatTimestamp formats t in UTC using TimestampLayout
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// acceptedLayouts lists the formats other producers write into the table:
// RFC3339 with offset, and zone-less ISO-8601 (read as UTC).
var acceptedLayouts = []string{
	TimestampLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

// ParseTimestamp parses a stored timestamp in any accepted layout
func ParseTimestamp(s string) (time.Time, error) {
	var err error
	for _, layout := range acceptedLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, err
}
