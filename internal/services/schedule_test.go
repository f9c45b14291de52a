package services

import (
	"math/rand"
	"testing"
	"time"

	"run4wish-backend/internal/database"
	"run4wish-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Profile{},
		&models.RaceQuestion{},
		&models.BankQuestion{},
		&models.ScheduleEntry{},
		&models.Answer{},
	))
	return db
}

func newTestScheduleService(t *testing.T, db *gorm.DB, now time.Time) *ScheduleService {
	t.Helper()
	s := NewScheduleService(db, 0)
	s.rng = rand.New(rand.NewSource(1))
	s.now = func() time.Time { return now }
	return s
}

func seedRaceQuestions(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, database.SeedRaceQuestions(db))
}

func seedBank(t *testing.T, db *gorm.DB) {
	t.Helper()
	_, err := database.SeedBankQuestions(db)
	require.NoError(t, err)
}

var registration = time.Date(2025, 1, 1, 10, 0, 0, 0, time.Local)

func TestEnsureScheduleProvisions7Days(t *testing.T) {
	db := newTestDB(t)
	seedRaceQuestions(t, db)
	s := newTestScheduleService(t, db, registration)
	userID := uuid.New()

	require.NoError(t, s.EnsureSchedule(userID, models.RaceType7D))

	var entries []models.ScheduleEntry
	require.NoError(t, db.Where("user_id = ?", userID).Order("day_number ASC").Find(&entries).Error)
	require.Len(t, entries, 7)

	runDate := entries[0].RunDate
	for i, e := range entries {
		assert.Equal(t, i+1, e.DayNumber)
		assert.True(t, DateOnly(e.RunDate).Equal(DateOnly(runDate)), "all rows share the registration run_date")
		assert.NotNil(t, e.QuestionID)
		assert.Nil(t, e.BankQuestionID)
	}

	// Day 1 opens immediately: [now truncated to minute, now+2h].
	assert.Equal(t, "10:00:00", entries[0].WindowStart)
	assert.Equal(t, "12:00:00", entries[0].WindowEnd)

	// Days 2..7 get whole-hour windows inside [09:00, 21:00].
	for _, e := range entries[1:] {
		assert.GreaterOrEqual(t, e.WindowStart, "09:00:00")
		assert.LessOrEqual(t, e.WindowEnd, "21:00:00")
		assert.Regexp(t, `^\d{2}:00:00$`, e.WindowStart)
	}
}

func TestEnsureScheduleIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	seedRaceQuestions(t, db)
	s := newTestScheduleService(t, db, registration)
	userID := uuid.New()

	require.NoError(t, s.EnsureSchedule(userID, models.RaceType7D))

	var before []models.ScheduleEntry
	require.NoError(t, db.Where("user_id = ?", userID).Order("day_number ASC").Find(&before).Error)

	require.NoError(t, s.EnsureSchedule(userID, models.RaceType7D))

	var after []models.ScheduleEntry
	require.NoError(t, db.Where("user_id = ?", userID).Order("day_number ASC").Find(&after).Error)

	require.Len(t, after, 7)
	for i := range before {
		assert.Equal(t, before[i].ID, after[i].ID, "second call must not rewrite rows")
		assert.Equal(t, before[i].WindowStart, after[i].WindowStart)
	}
}

func TestEnsureScheduleRebuildsIncompleteSet(t *testing.T) {
	db := newTestDB(t)
	seedRaceQuestions(t, db)
	s := newTestScheduleService(t, db, registration)
	userID := uuid.New()

	require.NoError(t, s.EnsureSchedule(userID, models.RaceType7D))
	require.NoError(t, db.Where("user_id = ? AND day_number = ?", userID, 4).
		Delete(&models.ScheduleEntry{}).Error)

	require.NoError(t, s.EnsureSchedule(userID, models.RaceType7D))

	var entries []models.ScheduleEntry
	require.NoError(t, db.Where("user_id = ?", userID).Order("day_number ASC").Find(&entries).Error)
	require.Len(t, entries, 7)
	for i, e := range entries {
		assert.Equal(t, i+1, e.DayNumber)
	}
}

func TestEnsureScheduleFailsWithoutCuratedPool(t *testing.T) {
	db := newTestDB(t)
	s := newTestScheduleService(t, db, registration)

	err := s.EnsureSchedule(uuid.New(), models.RaceType7D)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no curated question for day 1")

	var count int64
	db.Model(&models.ScheduleEntry{}).Count(&count)
	assert.Zero(t, count, "failed provisioning must persist nothing")
}

func TestEnsureScheduleRejectsUnsupportedRace(t *testing.T) {
	db := newTestDB(t)
	s := newTestScheduleService(t, db, registration)

	assert.ErrorIs(t, s.EnsureSchedule(uuid.New(), models.RaceType30D), ErrUnsupportedRace)
	assert.ErrorIs(t, s.EnsureSchedule(uuid.New(), "bogus"), ErrUnsupportedRace)
}

func TestEnsureScheduleProvisions24hSprint(t *testing.T) {
	db := newTestDB(t)
	seedBank(t, db)
	s := newTestScheduleService(t, db, registration)
	userID := uuid.New()

	require.NoError(t, s.EnsureSchedule(userID, models.RaceType24H))

	var entries []models.ScheduleEntry
	require.NoError(t, db.Where("user_id = ?", userID).Order("slot_number ASC").Find(&entries).Error)
	require.Len(t, entries, 12)

	seenQuestions := make(map[uint]bool)
	for i, e := range entries {
		slot := i + 1
		assert.Equal(t, slot, e.SlotNumber)
		wantStart, wantEnd := SlotWindow(slot)
		assert.Equal(t, wantStart, e.WindowStart)
		assert.Equal(t, wantEnd, e.WindowEnd)
		assert.Nil(t, e.QuestionID)
		require.NotNil(t, e.BankQuestionID)
		assert.False(t, seenQuestions[*e.BankQuestionID], "bank questions must be distinct")
		seenQuestions[*e.BankQuestionID] = true
		assert.True(t, DateOnly(e.RunDate).Equal(DateOnly(registration)))
	}
}

func TestTodayEntryDerivesDayFromAnchorNotRunDate(t *testing.T) {
	db := newTestDB(t)
	seedRaceQuestions(t, db)
	s := newTestScheduleService(t, db, registration)
	userID := uuid.New()

	require.NoError(t, s.EnsureSchedule(userID, models.RaceType7D))

	// Two calendar days later: run_date is frozen at registration, but the
	// derived day moves to 3.
	s.now = func() time.Time { return registration.AddDate(0, 0, 2) }

	entry, err := s.TodayEntry(models.RaceType7D, userID)
	require.NoError(t, err)
	assert.Equal(t, 3, entry.DayNumber)
	assert.True(t, DateOnly(entry.RunDate).Equal(DateOnly(registration)))
}

func TestTodayEntryClampsToFinalDay(t *testing.T) {
	db := newTestDB(t)
	seedRaceQuestions(t, db)
	s := newTestScheduleService(t, db, registration)
	userID := uuid.New()

	require.NoError(t, s.EnsureSchedule(userID, models.RaceType7D))
	s.now = func() time.Time { return registration.AddDate(0, 0, 30) }

	entry, err := s.TodayEntry(models.RaceType7D, userID)
	require.NoError(t, err)
	assert.Equal(t, 7, entry.DayNumber)
}

func TestTodayEntryGlobalFallback(t *testing.T) {
	db := newTestDB(t)
	s := newTestScheduleService(t, db, registration)

	qid := uint(1)
	require.NoError(t, db.Create(&models.ScheduleEntry{
		RaceType:    models.RaceType7D,
		DayNumber:   1,
		RunDate:     DateOnly(registration),
		WindowStart: "09:00:00",
		WindowEnd:   "21:00:00",
		QuestionID:  &qid,
	}).Error)

	entry, err := s.TodayEntry(models.RaceType7D, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, entry.UserID)
}

func TestGetDailyQuestionProvisionsOnMiss(t *testing.T) {
	db := newTestDB(t)
	seedRaceQuestions(t, db)
	s := newTestScheduleService(t, db, registration)
	userID := uuid.New()

	state, err := s.GetDailyQuestion(userID, models.RaceType7D)
	require.NoError(t, err)

	assert.Equal(t, StatusActive, state.Status)
	assert.Equal(t, 1, state.Day)
	require.NotNil(t, state.Window)
	assert.Equal(t, "10:00:00", state.Window.Start)
	require.NotNil(t, state.Question)
	assert.NotEmpty(t, state.Question.Text)
	assert.Len(t, state.Question.Options, 3)
}

func TestGetDailyQuestionWindowStates(t *testing.T) {
	db := newTestDB(t)
	seedRaceQuestions(t, db)
	s := newTestScheduleService(t, db, registration)
	userID := uuid.New()

	require.NoError(t, s.EnsureSchedule(userID, models.RaceType7D))

	// Day 1 window is [10:00, 12:00].
	s.now = func() time.Time { return time.Date(2025, 1, 1, 9, 30, 0, 0, time.Local) }
	state, err := s.GetDailyQuestion(userID, models.RaceType7D)
	require.NoError(t, err)
	assert.Equal(t, StatusBeforeWindow, state.Status)
	assert.Nil(t, state.Question, "question is hidden outside the window")

	s.now = func() time.Time { return time.Date(2025, 1, 1, 13, 0, 0, 0, time.Local) }
	state, err = s.GetDailyQuestion(userID, models.RaceType7D)
	require.NoError(t, err)
	assert.Equal(t, StatusAfterWindow, state.Status)
	assert.Nil(t, state.Question)
}

func TestGetDailyQuestionNoScheduleAvailable(t *testing.T) {
	db := newTestDB(t)
	seedBank(t, db)
	s := newTestScheduleService(t, db, registration)

	// 24h sprint at 09:30: slot 1's window [09:00, 10:00] is live and the
	// first fetch provisions today's rows, so the read retry succeeds.
	s.now = func() time.Time { return time.Date(2025, 1, 1, 9, 30, 0, 0, time.Local) }
	state, err := s.GetDailyQuestion(uuid.New(), models.RaceType24H)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, state.Status)
	assert.Equal(t, 1, state.Slot)
}

func TestGetDailyQuestion24hOffHours(t *testing.T) {
	db := newTestDB(t)
	seedBank(t, db)
	s := newTestScheduleService(t, db, registration)
	userID := uuid.New()

	s.now = func() time.Time { return time.Date(2025, 1, 1, 7, 0, 0, 0, time.Local) }
	state, err := s.GetDailyQuestion(userID, models.RaceType24H)
	require.NoError(t, err)
	assert.Equal(t, StatusBeforeWindow, state.Status)
	assert.Equal(t, 1, state.Slot)

	// Off-hours fetch still provisions the sprint schedule.
	var count int64
	db.Model(&models.ScheduleEntry{}).Where("user_id = ?", userID).Count(&count)
	assert.EqualValues(t, 12, count)

	s.now = func() time.Time { return time.Date(2025, 1, 1, 22, 0, 0, 0, time.Local) }
	state, err = s.GetDailyQuestion(userID, models.RaceType24H)
	require.NoError(t, err)
	assert.Equal(t, StatusAfterWindow, state.Status)
	assert.Equal(t, 12, state.Slot)
}

func TestRescheduleNextDayUpdatesExistingRow(t *testing.T) {
	db := newTestDB(t)
	seedRaceQuestions(t, db)
	s := newTestScheduleService(t, db, registration)
	userID := uuid.New()

	require.NoError(t, s.EnsureSchedule(userID, models.RaceType7D))

	var before models.ScheduleEntry
	require.NoError(t, db.Where("user_id = ? AND day_number = ?", userID, 2).First(&before).Error)

	window, err := s.RescheduleNextDay(userID, 1)
	require.NoError(t, err)
	require.NotNil(t, window)
	assert.GreaterOrEqual(t, window.Start, "09:00:00")
	assert.LessOrEqual(t, window.End, "21:00:00")

	var after models.ScheduleEntry
	require.NoError(t, db.Where("user_id = ? AND day_number = ?", userID, 2).First(&after).Error)
	assert.Equal(t, before.ID, after.ID, "existing row is patched, not replaced")
	assert.Equal(t, window.Start, after.WindowStart)
	assert.Equal(t, window.End, after.WindowEnd)
}

func TestRescheduleNextDayInsertsMissingRow(t *testing.T) {
	db := newTestDB(t)
	seedRaceQuestions(t, db)
	s := newTestScheduleService(t, db, registration)
	userID := uuid.New()

	require.NoError(t, s.EnsureSchedule(userID, models.RaceType7D))
	require.NoError(t, db.Where("user_id = ? AND day_number = ?", userID, 2).
		Delete(&models.ScheduleEntry{}).Error)

	window, err := s.RescheduleNextDay(userID, 1)
	require.NoError(t, err)
	require.NotNil(t, window)

	var entry models.ScheduleEntry
	require.NoError(t, db.Where("user_id = ? AND day_number = ?", userID, 2).First(&entry).Error)
	assert.NotNil(t, entry.QuestionID)
	assert.True(t, DateOnly(entry.RunDate).Equal(DateOnly(registration)), "inserted row keeps the anchor run_date")
}

func TestRescheduleNextDayNoopOnFinalDay(t *testing.T) {
	db := newTestDB(t)
	s := newTestScheduleService(t, db, registration)

	window, err := s.RescheduleNextDay(uuid.New(), 7)
	require.NoError(t, err)
	assert.Nil(t, window)
}

func TestUsersWithWindowsOpening(t *testing.T) {
	db := newTestDB(t)
	seedRaceQuestions(t, db)
	s := newTestScheduleService(t, db, registration)
	userID := uuid.New()

	require.NoError(t, s.EnsureSchedule(userID, models.RaceType7D))

	var day1 models.ScheduleEntry
	require.NoError(t, db.Where("user_id = ? AND day_number = ?", userID, 1).First(&day1).Error)

	// Day 1 opens at 10:00 on the registration day.
	users, err := s.UsersWithWindowsOpening(time.Date(2025, 1, 1, 10, 0, 30, 0, time.Local))
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, userID, users[0])

	// Two days later the user is on day 3. Day 1's 10:00 opening must not
	// fire anymore; only day 3's own window counts.
	require.NoError(t, db.Model(&models.ScheduleEntry{}).
		Where("user_id = ? AND day_number = ?", userID, 3).
		Updates(map[string]interface{}{"window_start": "15:00:00", "window_end": "16:00:00"}).Error)

	users, err = s.UsersWithWindowsOpening(time.Date(2025, 1, 3, 10, 0, 0, 0, time.Local))
	require.NoError(t, err)
	assert.NotContains(t, users, userID)

	users, err = s.UsersWithWindowsOpening(time.Date(2025, 1, 3, 15, 0, 0, 0, time.Local))
	require.NoError(t, err)
	assert.Contains(t, users, userID)
}
