package clutch

import (
	"fmt"
	"time"
)

// Clutch status and source values written by the populator
const (
	StatusAnalyzed = "analyzed"
	SourceDemoData = "demo_data"
)

// Clutch is the metadata row for a group of eggs photographed together.
// The consolidation fields stay nil until findings have been consolidated.
type Clutch struct {
	ID              string    `json:"id"`
	UploadTimestamp time.Time `json:"uploadTimestamp"`
	ImageKey        string    `json:"imageKey"`
	Status          string    `json:"status"`
	Source          string    `json:"source,omitempty"`

	TotalEggCount  *int       `json:"totalEggCount,omitempty"`
	ViableEggCount *int       `json:"viableEggCount,omitempty"`
	ConsolidatedAt *time.Time `json:"consolidatedAt,omitempty"`
}

// NewDemoClutch creates the metadata row for a seeded clutch
func NewDemoClutch(id string, uploadedAt time.Time) *Clutch {
	return &Clutch{
		ID:              id,
		UploadTimestamp: uploadedAt,
		ImageKey:        OriginalImageKey(id),
		Status:          StatusAnalyzed,
		Source:          SourceDemoData,
	}
}

// OriginalImageKey returns the object key of a clutch's uploaded photo
func OriginalImageKey(clutchID string) string {
	return fmt.Sprintf("clutches/%s/original.jpg", clutchID)
}

// PartitionKey implements Record
func (c *Clutch) PartitionKey() string { return PartitionKey(c.ID) }

// SortKey implements Record
func (c *Clutch) SortKey() string { return MetadataSortKey }

// Kind implements Record
func (c *Clutch) Kind() RecordKind { return KindMetadata }
