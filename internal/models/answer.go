package models

import (
	"time"

	"github.com/google/uuid"
)

type Answer struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_answer_unique" json:"user_id"`
	ScheduleEntryID uint      `gorm:"not null;uniqueIndex:idx_answer_unique" json:"schedule_entry_id"`
	SelectedOption  string    `gorm:"size:500;not null" json:"selected_option"`
	IsCorrect       bool      `gorm:"not null" json:"is_correct"`
	AnsweredAt      time.Time `gorm:"index" json:"answered_at"`
}
