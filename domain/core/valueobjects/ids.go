package valueobjects

import (
	"github.com/google/uuid"
)

const (
	clutchIDPrefix = "clutch-"
	eggIDPrefix    = "egg-"

	clutchIDHexLen = 8
	eggIDHexLen    = 6
)

// ClutchID is a value object identifying a clutch, e.g. "clutch-3f2a9c1d".
// The suffix is the leading hex of a random UUID.
type ClutchID struct {
	value string
}

// ClutchIDFromUUID derives a ClutchID from the given UUID
func ClutchIDFromUUID(u uuid.UUID) ClutchID {
	return ClutchID{value: clutchIDPrefix + hexPrefix(u, clutchIDHexLen)}
}

// String returns the string representation of the ClutchID
func (id ClutchID) String() string {
	return id.value
}

// EggID is a value object identifying a single egg within a clutch,
// e.g. "egg-9b01e4".
type EggID struct {
	value string
}

// EggIDFromUUID derives an EggID from the given UUID
func EggIDFromUUID(u uuid.UUID) EggID {
	return EggID{value: eggIDPrefix + hexPrefix(u, eggIDHexLen)}
}

// String returns the string representation of the EggID
func (id EggID) String() string {
	return id.value
}

// hexPrefix returns the first n hex digits of the UUID. The canonical form
// has its first hyphen at index 8, so n <= 8 never crosses one.
func hexPrefix(u uuid.UUID, n int) string {
	return u.String()[:n]
}
