package services

import (
	"fmt"
	"time"

	"run4wish-backend/internal/database"
	"run4wish-backend/internal/models"

	"gorm.io/gorm"
)

// AdminService backs the operator-only endpoints: bank loading, bulk
// schedule resets and day simulation for testing race progression.
type AdminService struct {
	db       *gorm.DB
	schedule *ScheduleService
	now      func() time.Time
}

func NewAdminService(db *gorm.DB, schedule *ScheduleService) *AdminService {
	return &AdminService{db: db, schedule: schedule, now: time.Now}
}

// LoadQuestionBank (re)seeds the general question bank. Returns how many new
// questions were inserted; existing ones are left alone.
func (s *AdminService) LoadQuestionBank() (int, error) {
	return database.SeedBankQuestions(s.db)
}

// Regenerate7DSchedules wipes and reprovisions the 7d schedule of every
// registered user. Users keep today as their new anchor date.
func (s *AdminService) Regenerate7DSchedules() (int, error) {
	var profiles []models.Profile
	if err := s.db.Find(&profiles).Error; err != nil {
		return 0, err
	}

	count := 0
	for _, p := range profiles {
		if err := s.db.Where("race_type = ? AND user_id = ?", models.RaceType7D, p.ID).
			Delete(&models.ScheduleEntry{}).Error; err != nil {
			return count, err
		}
		if err := s.schedule.EnsureSchedule(p.ID, models.RaceType7D); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// ResetUsersDay1 rebases every 7d anchor to today. The current day is always
// recomputed from the anchor, so this collapses everyone back to day 1.
func (s *AdminService) ResetUsersDay1() (int64, error) {
	res := s.db.Model(&models.ScheduleEntry{}).
		Where("race_type = ? AND user_id IS NOT NULL", models.RaceType7D).
		Update("run_date", DateOnly(s.now()))
	return res.RowsAffected, res.Error
}

// SimulateDailyProgress shifts every 7d anchor back so the computed day
// equals dayNumber.
func (s *AdminService) SimulateDailyProgress(dayNumber int) (int64, error) {
	if dayNumber < 1 || dayNumber > models.RaceDays7D {
		return 0, fmt.Errorf("day_number must be between 1 and %d", models.RaceDays7D)
	}
	anchor := DateOnly(s.now()).AddDate(0, 0, -(dayNumber - 1))
	res := s.db.Model(&models.ScheduleEntry{}).
		Where("race_type = ? AND user_id IS NOT NULL", models.RaceType7D).
		Update("run_date", anchor)
	return res.RowsAffected, res.Error
}
