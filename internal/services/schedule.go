package services

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"run4wish-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Daily-question status values surfaced to clients.
const (
	StatusNoSchedule   = "no_schedule"
	StatusBeforeWindow = string(WindowBefore)
	StatusActive       = string(WindowActive)
	StatusAfterWindow  = string(WindowAfter)
	StatusAnswered     = "answered"
	StatusError        = "error"
)

var (
	ErrUnsupportedRace = errors.New("unsupported race type")
	errNoActiveSlot    = errors.New("no active slot at this hour")
)

type ScheduleService struct {
	db         *gorm.DB
	rng        *rand.Rand
	retryDelay time.Duration
	now        func() time.Time
}

func NewScheduleService(db *gorm.DB, retryDelay time.Duration) *ScheduleService {
	return &ScheduleService{
		db:         db,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		retryDelay: retryDelay,
		now:        time.Now,
	}
}

type WindowInfo struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type QuestionView struct {
	ScheduleEntryID uint     `json:"schedule_entry_id"`
	Text            string   `json:"text"`
	Options         []string `json:"options"`
	Category        string   `json:"category,omitempty"`
	Difficulty      string   `json:"difficulty,omitempty"`
}

type DailyQuestionState struct {
	Status   string        `json:"status"`
	RaceType string        `json:"race_type"`
	Day      int           `json:"day,omitempty"`
	Slot     int           `json:"slot,omitempty"`
	Window   *WindowInfo   `json:"window,omitempty"`
	Question *QuestionView `json:"question,omitempty"`
}

func expectedEntries(raceType string) (int, error) {
	switch raceType {
	case models.RaceType7D:
		return models.RaceDays7D, nil
	case models.RaceType24H:
		return models.RaceSlots24H, nil
	default:
		return 0, ErrUnsupportedRace
	}
}

// TodayEntry resolves the schedule row the user should see right now.
// For 7d races the day is derived from elapsed calendar days since the
// earliest run_date (the registration anchor), never from run_date equality
// with today. Returns gorm.ErrRecordNotFound on a read miss.
func (s *ScheduleService) TodayEntry(raceType string, userID uuid.UUID) (*models.ScheduleEntry, error) {
	now := s.now()

	switch raceType {
	case models.RaceType7D:
		var anchor models.ScheduleEntry
		err := s.db.Where("race_type = ? AND user_id = ?", raceType, userID).
			Order("run_date ASC, day_number ASC").
			First(&anchor).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.globalFallback(raceType, now)
		}
		if err != nil {
			return nil, err
		}

		day := UserDay(now, anchor.RunDate)
		var entry models.ScheduleEntry
		if err := s.db.Where("race_type = ? AND user_id = ? AND day_number = ?",
			raceType, userID, day).First(&entry).Error; err != nil {
			return nil, err
		}
		return &entry, nil

	case models.RaceType24H:
		slot, ok := SlotForHour(now.Hour())
		if !ok {
			return nil, errNoActiveSlot
		}
		var entry models.ScheduleEntry
		if err := s.db.Where("race_type = ? AND user_id = ? AND run_date = ? AND slot_number = ?",
			raceType, userID, DateOnly(now), slot).First(&entry).Error; err != nil {
			return nil, err
		}
		return &entry, nil

	default:
		return nil, ErrUnsupportedRace
	}
}

func (s *ScheduleService) globalFallback(raceType string, now time.Time) (*models.ScheduleEntry, error) {
	var entry models.ScheduleEntry
	if err := s.db.Where("race_type = ? AND user_id IS NULL AND run_date = ?",
		raceType, DateOnly(now)).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// EnsureSchedule lazily provisions the user's full personalized schedule.
// Idempotent: a complete set is left untouched. An incomplete set is fully
// reset inside one transaction; the composite unique key plus ON CONFLICT
// DO NOTHING keeps concurrent provisioners from interleaving partial sets.
func (s *ScheduleService) EnsureSchedule(userID uuid.UUID, raceType string) error {
	expected, err := expectedEntries(raceType)
	if err != nil {
		return err
	}

	var existing []models.ScheduleEntry
	if err := s.db.Where("race_type = ? AND user_id = ?", raceType, userID).
		Find(&existing).Error; err != nil {
		return err
	}
	if scheduleComplete(existing, raceType, expected) {
		return nil
	}

	rows, err := s.buildSchedule(userID, raceType)
	if err != nil {
		return err
	}

	tx := s.db.Begin()
	if err := tx.Where("race_type = ? AND user_id = ?", raceType, userID).
		Delete(&models.ScheduleEntry{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

func scheduleComplete(entries []models.ScheduleEntry, raceType string, expected int) bool {
	if len(entries) != expected {
		return false
	}
	seen := make(map[int]bool, expected)
	for _, e := range entries {
		idx := e.DayNumber
		if raceType == models.RaceType24H {
			idx = e.SlotNumber
		}
		seen[idx] = true
	}
	for i := 1; i <= expected; i++ {
		if !seen[i] {
			return false
		}
	}
	return true
}

func (s *ScheduleService) buildSchedule(userID uuid.UUID, raceType string) ([]models.ScheduleEntry, error) {
	now := s.now()
	runDate := DateOnly(now)
	uid := userID

	switch raceType {
	case models.RaceType7D:
		rows := make([]models.ScheduleEntry, 0, models.RaceDays7D)
		for day := 1; day <= models.RaceDays7D; day++ {
			question, err := s.questionForDay(raceType, day)
			if err != nil {
				return nil, err
			}
			var start, end string
			if day == 1 {
				start, end = Day1Window(now)
			} else {
				start, end = RandomHourWindow(s.rng)
			}
			qid := question.ID
			rows = append(rows, models.ScheduleEntry{
				RaceType:    raceType,
				UserID:      &uid,
				DayNumber:   day,
				RunDate:     runDate,
				WindowStart: start,
				WindowEnd:   end,
				QuestionID:  &qid,
			})
		}
		return rows, nil

	case models.RaceType24H:
		var bank []models.BankQuestion
		if err := s.db.Find(&bank).Error; err != nil {
			return nil, err
		}
		if len(bank) < models.RaceSlots24H {
			return nil, fmt.Errorf("question bank has %d questions, need %d", len(bank), models.RaceSlots24H)
		}
		s.rng.Shuffle(len(bank), func(i, j int) {
			bank[i], bank[j] = bank[j], bank[i]
		})

		rows := make([]models.ScheduleEntry, 0, models.RaceSlots24H)
		for slot := 1; slot <= models.RaceSlots24H; slot++ {
			start, end := SlotWindow(slot)
			bqid := bank[slot-1].ID
			rows = append(rows, models.ScheduleEntry{
				RaceType:       raceType,
				UserID:         &uid,
				SlotNumber:     slot,
				RunDate:        runDate,
				WindowStart:    start,
				WindowEnd:      end,
				BankQuestionID: &bqid,
			})
		}
		return rows, nil

	default:
		return nil, ErrUnsupportedRace
	}
}

// questionForDay picks the curated question for a race day, deterministically
// the earliest-created one.
func (s *ScheduleService) questionForDay(raceType string, day int) (*models.RaceQuestion, error) {
	var q models.RaceQuestion
	err := s.db.Where("race_type = ? AND day_number = ?", raceType, day).
		Order("created_at ASC, id ASC").
		First(&q).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("no curated question for day %d", day)
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// GetDailyQuestion is the read path the question page drives: fetch today's
// entry, provision on miss, re-read once after a short delay, then classify
// the window. The question payload is only attached while the window is
// active and never includes the correct option.
func (s *ScheduleService) GetDailyQuestion(userID uuid.UUID, raceType string) (*DailyQuestionState, error) {
	if _, err := expectedEntries(raceType); err != nil {
		return nil, err
	}

	entry, err := s.TodayEntry(raceType, userID)
	if errors.Is(err, errNoActiveSlot) {
		// Keep the sprint schedule provisioned even outside play hours.
		if provErr := s.EnsureSchedule(userID, raceType); provErr != nil {
			return nil, provErr
		}
		return s.offHoursState(raceType), nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if provErr := s.EnsureSchedule(userID, raceType); provErr != nil {
			return nil, provErr
		}
		time.Sleep(s.retryDelay)
		entry, err = s.TodayEntry(raceType, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &DailyQuestionState{Status: StatusNoSchedule, RaceType: raceType}, nil
		}
	}
	if err != nil {
		return nil, err
	}

	return s.stateForEntry(userID, entry)
}

func (s *ScheduleService) offHoursState(raceType string) *DailyQuestionState {
	state := &DailyQuestionState{Status: StatusBeforeWindow, RaceType: raceType}
	if s.now().Hour() >= windowOpenHour {
		state.Status = StatusAfterWindow
		state.Slot = models.RaceSlots24H
	} else {
		state.Slot = 1
	}
	start, end := SlotWindow(state.Slot)
	state.Window = &WindowInfo{Start: start, End: end}
	return state
}

func (s *ScheduleService) stateForEntry(userID uuid.UUID, entry *models.ScheduleEntry) (*DailyQuestionState, error) {
	state := &DailyQuestionState{
		RaceType: entry.RaceType,
		Day:      entry.DayNumber,
		Slot:     entry.SlotNumber,
		Window:   &WindowInfo{Start: entry.WindowStart, End: entry.WindowEnd},
	}

	var answered int64
	if err := s.db.Model(&models.Answer{}).
		Where("user_id = ? AND schedule_entry_id = ?", userID, entry.ID).
		Count(&answered).Error; err != nil {
		return nil, err
	}
	if answered > 0 {
		state.Status = StatusAnswered
		return state, nil
	}

	state.Status = string(ClassifyWindow(TimeOfDay(s.now()), entry.WindowStart, entry.WindowEnd))
	if state.Status != StatusActive {
		return state, nil
	}

	view, err := s.questionView(entry)
	if err != nil {
		return nil, err
	}
	state.Question = view
	return state, nil
}

func (s *ScheduleService) questionView(entry *models.ScheduleEntry) (*QuestionView, error) {
	switch {
	case entry.QuestionID != nil:
		var q models.RaceQuestion
		if err := s.db.First(&q, *entry.QuestionID).Error; err != nil {
			return nil, errors.New("scheduled question not found")
		}
		opts, err := q.OptionList()
		if err != nil {
			return nil, err
		}
		return &QuestionView{ScheduleEntryID: entry.ID, Text: q.Text, Options: opts}, nil

	case entry.BankQuestionID != nil:
		var q models.BankQuestion
		if err := s.db.First(&q, *entry.BankQuestionID).Error; err != nil {
			return nil, errors.New("scheduled question not found")
		}
		return &QuestionView{
			ScheduleEntryID: entry.ID,
			Text:            q.QuestionText,
			Options:         q.OptionList(),
			Category:        q.Category,
			Difficulty:      q.Difficulty,
		}, nil

	default:
		return nil, errors.New("schedule entry references no question")
	}
}

// RescheduleNextDay assigns a fresh random window for day+1 after a correct
// answer, updating the existing row or inserting it if missing. The window
// is returned so the client can show when tomorrow's question opens.
func (s *ScheduleService) RescheduleNextDay(userID uuid.UUID, day int) (*WindowInfo, error) {
	if day < 1 || day >= models.RaceDays7D {
		return nil, nil
	}
	nextDay := day + 1
	start, end := RandomHourWindow(s.rng)

	var entry models.ScheduleEntry
	err := s.db.Where("race_type = ? AND user_id = ? AND day_number = ?",
		models.RaceType7D, userID, nextDay).First(&entry).Error
	if err == nil {
		entry.WindowStart = start
		entry.WindowEnd = end
		if err := s.db.Save(&entry).Error; err != nil {
			return nil, err
		}
		return &WindowInfo{Start: start, End: end}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	question, err := s.questionForDay(models.RaceType7D, nextDay)
	if err != nil {
		return nil, err
	}
	qid := question.ID
	uid := userID
	runDate := DateOnly(s.now())
	if anchor, aErr := s.anchorDate(userID); aErr == nil {
		runDate = anchor
	}
	entry = models.ScheduleEntry{
		RaceType:    models.RaceType7D,
		UserID:      &uid,
		DayNumber:   nextDay,
		RunDate:     runDate,
		WindowStart: start,
		WindowEnd:   end,
		QuestionID:  &qid,
	}
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error; err != nil {
		return nil, err
	}
	return &WindowInfo{Start: start, End: end}, nil
}

// UsersWithWindowsOpening reports the users whose answer window opens on the
// current minute. Feeds the websocket window watcher.
func (s *ScheduleService) UsersWithWindowsOpening(now time.Time) ([]uuid.UUID, error) {
	minute := now.Truncate(time.Minute).Format("15:04:05")

	var entries []models.ScheduleEntry
	if err := s.db.Where("user_id IS NOT NULL AND window_start = ?", minute).
		Find(&entries).Error; err != nil {
		return nil, err
	}

	var users []uuid.UUID
	for _, e := range entries {
		switch e.RaceType {
		case models.RaceType7D:
			anchor, err := s.anchorDate(*e.UserID)
			if err != nil {
				continue
			}
			if UserDay(now, anchor) == e.DayNumber {
				users = append(users, *e.UserID)
			}
		case models.RaceType24H:
			if DateOnly(e.RunDate).Equal(DateOnly(now)) {
				users = append(users, *e.UserID)
			}
		}
	}
	return users, nil
}

func (s *ScheduleService) anchorDate(userID uuid.UUID) (time.Time, error) {
	var anchor models.ScheduleEntry
	if err := s.db.Where("race_type = ? AND user_id = ?", models.RaceType7D, userID).
		Order("run_date ASC, day_number ASC").
		First(&anchor).Error; err != nil {
		return time.Time{}, err
	}
	return anchor.RunDate, nil
}
