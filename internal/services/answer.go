package services

import (
	"errors"
	"time"

	"run4wish-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNoWishes        = errors.New("no wishes left")
	ErrAlreadyAnswered = errors.New("question already answered")
	ErrWindowClosed    = errors.New("answer window is not active")
)

type AnswerService struct {
	db       *gorm.DB
	schedule *ScheduleService
	now      func() time.Time
}

func NewAnswerService(db *gorm.DB, schedule *ScheduleService) *AnswerService {
	return &AnswerService{db: db, schedule: schedule, now: time.Now}
}

type AnswerResult struct {
	Correct    bool        `json:"correct"`
	Wishes     int         `json:"wishes"`
	NextWindow *WindowInfo `json:"next_window,omitempty"`
}

// SubmitAnswer judges the selected option against the scheduled question.
// Every attempt costs one wish. A correct 7d answer before the final day
// reschedules the next day's window and returns it for display.
func (s *AnswerService) SubmitAnswer(userID uuid.UUID, scheduleEntryID uint, selected string) (*AnswerResult, error) {
	var entry models.ScheduleEntry
	if err := s.db.First(&entry, scheduleEntryID).Error; err != nil {
		return nil, errors.New("schedule entry not found")
	}
	if entry.UserID != nil && *entry.UserID != userID {
		return nil, errors.New("schedule entry belongs to another user")
	}

	if ClassifyWindow(TimeOfDay(s.now()), entry.WindowStart, entry.WindowEnd) != WindowActive {
		return nil, ErrWindowClosed
	}

	var existing int64
	if err := s.db.Model(&models.Answer{}).
		Where("user_id = ? AND schedule_entry_id = ?", userID, entry.ID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrAlreadyAnswered
	}

	correct, err := s.judge(&entry, selected)
	if err != nil {
		return nil, err
	}

	var profile models.Profile
	tx := s.db.Begin()
	if err := tx.First(&profile, "id = ?", userID).Error; err != nil {
		tx.Rollback()
		return nil, errors.New("profile not found")
	}
	if profile.Wishes <= 0 {
		tx.Rollback()
		return nil, ErrNoWishes
	}
	if err := tx.Model(&profile).
		Update("wishes", gorm.Expr("wishes - ?", 1)).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	answer := models.Answer{
		UserID:          userID,
		ScheduleEntryID: entry.ID,
		SelectedOption:  selected,
		IsCorrect:       correct,
		AnsweredAt:      s.now(),
	}
	if err := tx.Create(&answer).Error; err != nil {
		tx.Rollback()
		return nil, ErrAlreadyAnswered
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	result := &AnswerResult{Correct: correct, Wishes: profile.Wishes - 1}

	if correct && entry.RaceType == models.RaceType7D && entry.DayNumber < models.RaceDays7D {
		window, err := s.schedule.RescheduleNextDay(userID, entry.DayNumber)
		if err != nil {
			return nil, err
		}
		result.NextWindow = window
	}

	return result, nil
}

func (s *AnswerService) judge(entry *models.ScheduleEntry, selected string) (bool, error) {
	switch {
	case entry.QuestionID != nil:
		var q models.RaceQuestion
		if err := s.db.First(&q, *entry.QuestionID).Error; err != nil {
			return false, errors.New("scheduled question not found")
		}
		return selected == q.CorrectOption, nil

	case entry.BankQuestionID != nil:
		var q models.BankQuestion
		if err := s.db.First(&q, *entry.BankQuestionID).Error; err != nil {
			return false, errors.New("scheduled question not found")
		}
		// Clients may send the letter code or the option text.
		return selected == q.CorrectOption || selected == q.CorrectText(), nil

	default:
		return false, errors.New("schedule entry references no question")
	}
}
