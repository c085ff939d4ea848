package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	clockPattern  = regexp.MustCompile(`^\d{2}:\d{2}$`)
	offsetPattern = regexp.MustCompile(`([+-])(\d+)`)
)

// IsClockTime reports whether s is an absolute "HH:MM" time rather than a
// relative token like "wake+15" or "sleep-30".
func IsClockTime(s string) bool {
	return clockPattern.MatchString(s)
}

// parseClock splits an "HH:MM" string into hours and minutes. Malformed
// input falls back to midnight rather than returning an error.
func parseClock(s string) (int, int) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0
	}
	return h, m
}

// AddMinutes adds minutes to an "HH:MM" time string, wrapping past midnight.
func AddMinutes(t string, minutes int) string {
	h, m := parseClock(t)
	return MinutesToTime(h*60 + m + minutes)
}

// SubtractMinutes subtracts minutes from an "HH:MM" time string.
func SubtractMinutes(t string, minutes int) string {
	return AddMinutes(t, -minutes)
}

// TimeToMinutes converts a time string to minutes since midnight. Relative
// tokens such as "work-15" resolve to their signed offset magnitude, which
// keeps schedule ordering stable without knowing the actual anchor time.
func TimeToMinutes(t string) int {
	if strings.ContainsAny(t, "+-") {
		m := offsetPattern.FindStringSubmatch(t)
		if m == nil {
			return 0
		}
		n, _ := strconv.Atoi(m[2])
		if m[1] == "-" {
			return -n
		}
		return n
	}
	h, m := parseClock(t)
	return h*60 + m
}

// MinutesToTime converts minutes since midnight to an "HH:MM" string.
// Values outside a single day wrap around.
func MinutesToTime(total int) string {
	h := ((total%1440)+1440) % 1440 / 60
	m := ((total % 60) + 60) % 60
	return fmt.Sprintf("%02d:%02d", h, m)
}

// FormatTime12h formats an "HH:MM" string as "H:MM AM/PM".
func FormatTime12h(t string) string {
	h, m := parseClock(t)
	period := "AM"
	if h >= 12 {
		period = "PM"
	}
	displayH := h
	switch {
	case h == 0:
		displayH = 12
	case h > 12:
		displayH = h - 12
	}
	return fmt.Sprintf("%d:%02d %s", displayH, m, period)
}

// FormatCountdown formats a number of seconds as "MM:SS".
func FormatCountdown(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
