package models

import (
	"encoding/json"
	"errors"
	"time"
)

// RaceQuestion belongs to the curated per-race pool: one (or more) question
// per race day, hand-picked for that day's theme.
type RaceQuestion struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	RaceType      string    `gorm:"size:20;not null;index:idx_race_day" json:"race_type"`
	DayNumber     int       `gorm:"not null;index:idx_race_day" json:"day_number"`
	Text          string    `gorm:"type:text;not null" json:"text"`
	Options       string    `gorm:"type:text;not null" json:"-"`
	CorrectOption string    `gorm:"size:500;not null" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
}

// OptionList resolves the stored options column into an ordered list. The
// column holds either a JSON array of strings or, in older rows, a JSON
// string that itself contains the encoded array.
func (q *RaceQuestion) OptionList() ([]string, error) {
	var opts []string
	if err := json.Unmarshal([]byte(q.Options), &opts); err == nil {
		return opts, nil
	}

	var encoded string
	if err := json.Unmarshal([]byte(q.Options), &encoded); err == nil {
		if err := json.Unmarshal([]byte(encoded), &opts); err == nil {
			return opts, nil
		}
	}

	return nil, errors.New("question options are not a valid option list")
}

// BankQuestion belongs to the shared general-purpose bank used by the 24h
// sprint. CorrectOption is a letter code ("a", "b" or "c").
type BankQuestion struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	QuestionText  string `gorm:"size:500;uniqueIndex;not null" json:"question_text"`
	OptionA       string `gorm:"size:500;not null" json:"option_a"`
	OptionB       string `gorm:"size:500;not null" json:"option_b"`
	OptionC       string `gorm:"size:500;not null" json:"option_c"`
	CorrectOption string `gorm:"size:1;not null" json:"-"`
	Category      string `gorm:"size:100" json:"category,omitempty"`
	Difficulty    string `gorm:"size:20" json:"difficulty,omitempty"`
}

// OptionList returns the bank question's options in letter order.
func (q *BankQuestion) OptionList() []string {
	return []string{q.OptionA, q.OptionB, q.OptionC}
}

// CorrectText resolves the letter code to the option text.
func (q *BankQuestion) CorrectText() string {
	switch q.CorrectOption {
	case "a":
		return q.OptionA
	case "b":
		return q.OptionB
	case "c":
		return q.OptionC
	}
	return ""
}
