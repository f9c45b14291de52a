package services

import (
	"sort"

	"run4wish-backend/internal/models"

	"gorm.io/gorm"
)

type LeaderboardService struct {
	db *gorm.DB
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{db: db}
}

type StandingEntry struct {
	Position        int    `json:"position"`
	Email           string `json:"email"`
	CorrectAnswers  int    `json:"correct_answers"`
	ProgressPercent int    `json:"progress_percent"`
	Wishes          int    `json:"wishes"`
}

// Standings ranks every registered user by correct answers within a race,
// wishes as the tiebreak.
func (s *LeaderboardService) Standings(raceType string) ([]StandingEntry, error) {
	expected, err := expectedEntries(raceType)
	if err != nil {
		return nil, err
	}

	var profiles []models.Profile
	if err := s.db.Find(&profiles).Error; err != nil {
		return nil, err
	}

	entries := make([]StandingEntry, 0, len(profiles))
	for _, p := range profiles {
		var correct int64
		if err := s.db.Model(&models.Answer{}).
			Joins("JOIN schedule_entries ON schedule_entries.id = answers.schedule_entry_id").
			Where("answers.user_id = ? AND answers.is_correct = ? AND schedule_entries.race_type = ?",
				p.ID, true, raceType).
			Count(&correct).Error; err != nil {
			return nil, err
		}

		entries = append(entries, StandingEntry{
			Email:           p.Email,
			CorrectAnswers:  int(correct),
			ProgressPercent: int(correct) * 100 / expected,
			Wishes:          p.Wishes,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].CorrectAnswers != entries[j].CorrectAnswers {
			return entries[i].CorrectAnswers > entries[j].CorrectAnswers
		}
		return entries[i].Wishes > entries[j].Wishes
	})
	for i := range entries {
		entries[i].Position = i + 1
	}
	return entries, nil
}
