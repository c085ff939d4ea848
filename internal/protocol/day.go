package protocol

import (
	"math"

	"github.com/billyribeiro-ux/cognition-os/internal/timeutil"
)

// Day holds the mutable state of one generated schedule: item statuses
// plus the hydration and task-switch tallies. It is the explicit record
// the host mutates in place of framework-level reactivity.
type Day struct {
	Items        []Item `json:"items"`
	WaterOz      int    `json:"waterOz"`
	TaskSwitches int    `json:"taskSwitches"`
}

// NewDay wraps a freshly generated schedule.
func NewDay(items []Item) *Day {
	return &Day{Items: items}
}

// SetSchedule replaces the item list, resetting per-item state.
func (d *Day) SetSchedule(items []Item) {
	d.Items = items
}

// CompletedCount returns how many items are completed.
func (d *Day) CompletedCount() int {
	n := 0
	for _, it := range d.Items {
		if it.Status == StatusCompleted {
			n++
		}
	}
	return n
}

// RequiredItems returns the required subset of the schedule.
func (d *Day) RequiredItems() []Item {
	var required []Item
	for _, it := range d.Items {
		if it.Required {
			required = append(required, it)
		}
	}
	return required
}

// CompletionPercent is the share of required items completed, rounded to
// the nearest whole percent. A day counts toward the streak when this
// meets StreakCompletionThreshold.
func (d *Day) CompletionPercent() int {
	required := d.RequiredItems()
	if len(required) == 0 {
		return 0
	}
	completed := 0
	for _, it := range required {
		if it.Status == StatusCompleted {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(len(required)) * 100))
}

// NextUpcoming returns the first required item still upcoming, or nil.
func (d *Day) NextUpcoming() *Item {
	for i := range d.Items {
		if d.Items[i].Status == StatusUpcoming && d.Items[i].Required {
			return &d.Items[i]
		}
	}
	return nil
}

// ActiveItem returns the currently active item, or nil.
func (d *Day) ActiveItem() *Item {
	for i := range d.Items {
		if d.Items[i].Status == StatusActive {
			return &d.Items[i]
		}
	}
	return nil
}

// UpdateStatus sets the status of the item with the given ID. Unknown
// IDs are ignored.
func (d *Day) UpdateStatus(id string, status Status) {
	for i := range d.Items {
		if d.Items[i].ID == id {
			d.Items[i].Status = status
			return
		}
	}
}

func (d *Day) StartItem(id string) { d.UpdateStatus(id, StatusActive) }

func (d *Day) CompleteItem(id string) { d.UpdateStatus(id, StatusCompleted) }

func (d *Day) SkipItem(id string) { d.UpdateStatus(id, StatusSkipped) }

// AutoMissPast marks upcoming items whose end time has already passed as
// missed. Only absolute "HH:MM" items are considered; relative tokens
// cannot be judged without the day's anchor events. now is the current
// clock time as "HH:MM".
func (d *Day) AutoMissPast(now string) {
	for i := range d.Items {
		it := &d.Items[i]
		if it.Status != StatusUpcoming || !timeutil.IsClockTime(it.Time) {
			continue
		}
		end := timeutil.AddMinutes(it.Time, it.Duration)
		if end < now {
			it.Status = StatusMissed
		}
	}
}

// AddWater records ounces of water drunk.
func (d *Day) AddWater(oz int) {
	d.WaterOz += oz
}

// IncrementTaskSwitch bumps the task-switch counter.
func (d *Day) IncrementTaskSwitch() {
	d.TaskSwitches++
}

// Reset clears the day back to an empty state.
func (d *Day) Reset() {
	d.Items = nil
	d.WaterOz = 0
	d.TaskSwitches = 0
}
