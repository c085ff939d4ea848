package protocol

// ItemType identifies a scheduled activity.
type ItemType string

const (
	ItemActivation    ItemType = "activation"
	ItemColdExposure  ItemType = "cold_exposure"
	ItemMeditation    ItemType = "meditation"
	ItemExercise      ItemType = "exercise"
	ItemDrill         ItemType = "nback"
	ItemSRSReview     ItemType = "srs_review"
	ItemPomodoro      ItemType = "pomodoro"
	ItemBreak         ItemType = "break"
	ItemHydration     ItemType = "hydration"
	ItemNonDominant   ItemType = "non_dominant"
	ItemVisualization ItemType = "visualization"
	ItemConsolidation ItemType = "consolidation"
	ItemWindDown      ItemType = "winddown"
)

// Status is the lifecycle state of a schedule item. Items start as
// upcoming and transition monotonically; regeneration resets everything
// back to upcoming.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusMissed    Status = "missed"
	StatusSkipped   Status = "skipped"
)

// Item is one entry in a generated daily schedule. Time is either an
// absolute "HH:MM" or a relative token such as "wake+15" depending on
// the profile's schedule type.
type Item struct {
	ID          string   `json:"id"`
	Time        string   `json:"time"`
	Type        ItemType `json:"type"`
	Duration    int      `json:"duration"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Level       int      `json:"level"`
	Required    bool     `json:"required"`
	Status      Status   `json:"status"`
}
