package database

import (
	"log"

	"run4wish-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedRaceQuestions loads the curated 7-day question pool if it is empty.
// Day provisioning picks the earliest-created question per day, so ordering
// here matters: the first listed question for a day is the one players get.
func SeedRaceQuestions(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.RaceQuestion{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if err := db.Create(&raceQuestionSeed).Error; err != nil {
		return err
	}
	log.Printf("seeded %d race questions", len(raceQuestionSeed))
	return nil
}

// SeedBankQuestions loads the general question bank. Safe to re-run: rows
// conflict on question_text and are skipped.
func SeedBankQuestions(db *gorm.DB) (int, error) {
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&bankQuestionSeed)
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}

var raceQuestionSeed = []models.RaceQuestion{
	{RaceType: models.RaceType7D, DayNumber: 1, Text: "What distance is a marathon?",
		Options: `["42.195 km","40 km","45 km"]`, CorrectOption: "42.195 km"},
	{RaceType: models.RaceType7D, DayNumber: 2, Text: "Which muscle group does a runner use most on uphill climbs?",
		Options: `["Glutes and calves","Biceps","Neck"]`, CorrectOption: "Glutes and calves"},
	{RaceType: models.RaceType7D, DayNumber: 3, Text: "What does a negative split mean in a race?",
		Options: `["Running the second half faster","Finishing last","Skipping a water station"]`, CorrectOption: "Running the second half faster"},
	{RaceType: models.RaceType7D, DayNumber: 4, Text: "How long is an Olympic track lap?",
		Options: `["400 m","300 m","500 m"]`, CorrectOption: "400 m"},
	{RaceType: models.RaceType7D, DayNumber: 5, Text: "Which of these is a recommended recovery practice after a long run?",
		Options: `["Light stretching and hydration","Sprinting again immediately","Skipping meals"]`, CorrectOption: "Light stretching and hydration"},
	{RaceType: models.RaceType7D, DayNumber: 6, Text: "What does VO2 max measure?",
		Options: `["Maximum oxygen uptake","Shoe size","Stride length"]`, CorrectOption: "Maximum oxygen uptake"},
	{RaceType: models.RaceType7D, DayNumber: 7, Text: "In which city is the oldest annual marathon held?",
		Options: `["Boston","Paris","Tokyo"]`, CorrectOption: "Boston"},
}

var bankQuestionSeed = []models.BankQuestion{
	{QuestionText: "How many days does the Run4Wish MVP race last?",
		OptionA: "7", OptionB: "14", OptionC: "30", CorrectOption: "a", Category: "run4wish", Difficulty: "easy"},
	{QuestionText: "Which planet is known as the Red Planet?",
		OptionA: "Venus", OptionB: "Mars", OptionC: "Jupiter", CorrectOption: "b", Category: "science", Difficulty: "easy"},
	{QuestionText: "What is the capital of Australia?",
		OptionA: "Sydney", OptionB: "Melbourne", OptionC: "Canberra", CorrectOption: "c", Category: "geography", Difficulty: "medium"},
	{QuestionText: "Who painted the Mona Lisa?",
		OptionA: "Leonardo da Vinci", OptionB: "Pablo Picasso", OptionC: "Vincent van Gogh", CorrectOption: "a", Category: "art", Difficulty: "easy"},
	{QuestionText: "What is the largest ocean on Earth?",
		OptionA: "Atlantic", OptionB: "Pacific", OptionC: "Indian", CorrectOption: "b", Category: "geography", Difficulty: "easy"},
	{QuestionText: "How many minutes are in a full week?",
		OptionA: "10080", OptionB: "8640", OptionC: "11200", CorrectOption: "a", Category: "math", Difficulty: "medium"},
	{QuestionText: "Which element has the chemical symbol O?",
		OptionA: "Gold", OptionB: "Osmium", OptionC: "Oxygen", CorrectOption: "c", Category: "science", Difficulty: "easy"},
	{QuestionText: "In what year did the first modern Olympic Games take place?",
		OptionA: "1896", OptionB: "1900", OptionC: "1924", CorrectOption: "a", Category: "sports", Difficulty: "medium"},
	{QuestionText: "What is the longest river in the world?",
		OptionA: "Amazon", OptionB: "Nile", OptionC: "Yangtze", CorrectOption: "b", Category: "geography", Difficulty: "medium"},
	{QuestionText: "Which country invented paper?",
		OptionA: "Egypt", OptionB: "Greece", OptionC: "China", CorrectOption: "c", Category: "history", Difficulty: "medium"},
	{QuestionText: "How many players are on a soccer team on the field?",
		OptionA: "11", OptionB: "10", OptionC: "12", CorrectOption: "a", Category: "sports", Difficulty: "easy"},
	{QuestionText: "What gas do plants absorb from the atmosphere?",
		OptionA: "Oxygen", OptionB: "Carbon dioxide", OptionC: "Nitrogen", CorrectOption: "b", Category: "science", Difficulty: "easy"},
	{QuestionText: "Which instrument has 88 keys?",
		OptionA: "Organ", OptionB: "Accordion", OptionC: "Piano", CorrectOption: "c", Category: "music", Difficulty: "easy"},
	{QuestionText: "What is the smallest prime number?",
		OptionA: "2", OptionB: "1", OptionC: "3", CorrectOption: "a", Category: "math", Difficulty: "easy"},
	{QuestionText: "Which mountain is the tallest above sea level?",
		OptionA: "K2", OptionB: "Everest", OptionC: "Kilimanjaro", CorrectOption: "b", Category: "geography", Difficulty: "easy"},
	{QuestionText: "Who wrote Don Quixote?",
		OptionA: "Lope de Vega", OptionB: "Federico García Lorca", OptionC: "Miguel de Cervantes", CorrectOption: "c", Category: "literature", Difficulty: "medium"},
	{QuestionText: "How many hearts does an octopus have?",
		OptionA: "3", OptionB: "1", OptionC: "5", CorrectOption: "a", Category: "science", Difficulty: "hard"},
	{QuestionText: "Which city hosted the 1992 Summer Olympics?",
		OptionA: "Madrid", OptionB: "Barcelona", OptionC: "Seville", CorrectOption: "b", Category: "sports", Difficulty: "medium"},
	{QuestionText: "What is the currency of Japan?",
		OptionA: "Won", OptionB: "Yuan", OptionC: "Yen", CorrectOption: "c", Category: "economy", Difficulty: "easy"},
	{QuestionText: "How many time zones does mainland Spain use?",
		OptionA: "1", OptionB: "2", OptionC: "3", CorrectOption: "a", Category: "geography", Difficulty: "hard"},
	{QuestionText: "Which vitamin does sunlight help the body produce?",
		OptionA: "Vitamin C", OptionB: "Vitamin D", OptionC: "Vitamin A", CorrectOption: "b", Category: "health", Difficulty: "easy"},
	{QuestionText: "What is the fastest land animal?",
		OptionA: "Greyhound", OptionB: "Pronghorn", OptionC: "Cheetah", CorrectOption: "c", Category: "nature", Difficulty: "easy"},
	{QuestionText: "How many continents are there?",
		OptionA: "7", OptionB: "5", OptionC: "6", CorrectOption: "a", Category: "geography", Difficulty: "easy"},
	{QuestionText: "Which blood type is the universal donor?",
		OptionA: "AB+", OptionB: "O-", OptionC: "A+", CorrectOption: "b", Category: "health", Difficulty: "medium"},
}
