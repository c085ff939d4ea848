package protocol

// ScheduleType describes how a user's day is anchored. Only fixed
// schedules receive absolute clock times; everything else gets relative
// tokens resolved by the host against the actual wake event.
type ScheduleType string

const (
	ScheduleFixed    ScheduleType = "fixed"
	ScheduleFlexible ScheduleType = "flexible"
	ScheduleNight    ScheduleType = "night"
	ScheduleSplit    ScheduleType = "split"
)

// Experience is a coarse prior-experience rating used to scale
// meditation and cold-exposure durations.
type Experience string

const (
	ExperienceNever   Experience = "never"
	ExperienceTried   Experience = "tried"
	ExperienceRegular Experience = "regular"
)

// TimeRange is a peak-performance window in "HH:MM" clock times.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Profile is the onboarding output consumed by the generator. Empty
// fields fall back to fixed defaults during generation; a zero Profile
// still produces a valid schedule.
type Profile struct {
	ScheduleType      ScheduleType    `json:"scheduleType" validate:"omitempty,oneof=fixed flexible night split"`
	WakeTime          string          `json:"wakeTime" validate:"omitempty,len=5"`
	BedTime           string          `json:"bedTime" validate:"omitempty,len=5"`
	WorkStart         string          `json:"workStart" validate:"omitempty,len=5"`
	WorkEnd           string          `json:"workEnd" validate:"omitempty,len=5"`
	CoffeeBreakTime   string          `json:"coffeeBreakTime,omitempty"`
	LunchBreakTime    string          `json:"lunchBreakTime,omitempty"`
	LunchDurationMin  int             `json:"lunchDurationMin,omitempty"`
	PeakHours         []TimeRange     `json:"peakHours,omitempty"`
	ExerciseLevel     Experience      `json:"exerciseLevel" validate:"omitempty,oneof=never tried regular sometimes rarely"`
	MeditationLevel   Experience      `json:"meditationLevel" validate:"omitempty,oneof=never tried regular"`
	ColdExposureLevel Experience      `json:"coldExposureLevel" validate:"omitempty,oneof=never tried regular"`
	CaffeineCups      int             `json:"caffeineCups,omitempty"`
	FirstCoffeeTime   string          `json:"firstCoffeeTime,omitempty"`
	LastCoffeeTime    string          `json:"lastCoffeeTime,omitempty"`
	Commitment        CommitmentLevel `json:"commitmentLevel" validate:"omitempty,oneof=standard aggressive elite"`
}
