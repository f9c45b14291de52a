package services

import (
	"fmt"
	"math/rand"
	"time"

	"run4wish-backend/internal/models"
)

// WindowState classifies the wall clock against an answer window.
type WindowState string

const (
	WindowBefore WindowState = "before_window"
	WindowActive WindowState = "active"
	WindowAfter  WindowState = "after_window"
)

const (
	// Answer windows live inside [09:00, 21:00) local time.
	windowOpenHour      = 9
	windowLastStartHour = 20
	windowCloseOfDay    = "21:00:00"
)

// ClassifyWindow compares HH:MM:SS strings lexically; the format is
// fixed-width zero-padded so string order equals time order. Both window
// boundaries are inclusive.
func ClassifyWindow(current, start, end string) WindowState {
	if current < start {
		return WindowBefore
	}
	if current > end {
		return WindowAfter
	}
	return WindowActive
}

// TimeOfDay renders a local wall-clock time as HH:MM:SS.
func TimeOfDay(t time.Time) string {
	return t.Format("15:04:05")
}

// DateOnly strips the time-of-day component in local time.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// UserDay derives the 7d race day from elapsed calendar days since the
// registration anchor, clamped to [1, 7]. Day is always recomputed from the
// wall clock; it is never stored.
func UserDay(today, anchor time.Time) int {
	days := int(DateOnly(today).Sub(DateOnly(anchor)).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	if days > models.RaceDays7D {
		return models.RaceDays7D
	}
	return days
}

// RandomHourWindow picks a whole-hour window [H:00:00, H+1:00:00] with H
// uniform in [9, 20], so the window always fits inside [09:00, 21:00].
func RandomHourWindow(rng *rand.Rand) (string, string) {
	h := windowOpenHour + rng.Intn(windowLastStartHour-windowOpenHour+1)
	return fmt.Sprintf("%02d:00:00", h), fmt.Sprintf("%02d:00:00", h+1)
}

// Day1Window opens immediately at registration: [now rounded down to the
// minute, min(now+2h, 21:00)].
func Day1Window(now time.Time) (string, string) {
	start := now.Truncate(time.Minute)
	end := start.Add(2 * time.Hour)
	startStr := TimeOfDay(start)
	endStr := TimeOfDay(end)
	if endStr > windowCloseOfDay || end.Day() != start.Day() {
		endStr = windowCloseOfDay
	}
	return startStr, endStr
}

// SlotForHour maps an hour of day to a 24h-sprint slot. Hours 9..20 map to
// slots 1..12; any other hour has no active slot.
func SlotForHour(hour int) (int, bool) {
	if hour < windowOpenHour || hour > windowLastStartHour {
		return 0, false
	}
	return hour - 8, true
}

// SlotWindow is the fixed window for a 24h-sprint slot: [8+k:00, 9+k:00].
func SlotWindow(slot int) (string, string) {
	return fmt.Sprintf("%02d:00:00", 8+slot), fmt.Sprintf("%02d:00:00", 9+slot)
}
