package models

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleEntry binds a question to a day (7d races) or hour slot (24h
// sprint) and the time-of-day window during which it may be answered.
// UserID is nil for shared fallback rows. Exactly one of QuestionID and
// BankQuestionID is set.
type ScheduleEntry struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	RaceType       string     `gorm:"size:20;not null;uniqueIndex:idx_schedule_slot" json:"race_type"`
	UserID         *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_schedule_slot;index" json:"user_id,omitempty"`
	DayNumber      int        `gorm:"not null;default:0;uniqueIndex:idx_schedule_slot" json:"day_number"`
	SlotNumber     int        `gorm:"not null;default:0;uniqueIndex:idx_schedule_slot" json:"slot_number"`
	RunDate        time.Time  `gorm:"type:date;not null" json:"run_date"`
	WindowStart    string     `gorm:"size:8;not null" json:"window_start"`
	WindowEnd      string     `gorm:"size:8;not null" json:"window_end"`
	QuestionID     *uint      `json:"question_id,omitempty"`
	BankQuestionID *uint      `json:"bank_question_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

const (
	RaceType7D  = "7d_mvp"
	RaceType24H = "24h_sprint"
	RaceType30D = "30d_marathon"

	RaceDays7D   = 7
	RaceSlots24H = 12
)
