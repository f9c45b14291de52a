package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRaceQuestionOptionList(t *testing.T) {
	t.Run("json array", func(t *testing.T) {
		q := RaceQuestion{Options: `["a","b","c"]`}
		opts, err := q.OptionList()
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, opts)
	})

	t.Run("double-encoded legacy rows", func(t *testing.T) {
		q := RaceQuestion{Options: `"[\"a\",\"b\"]"`}
		opts, err := q.OptionList()
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, opts)
	})

	t.Run("garbage", func(t *testing.T) {
		q := RaceQuestion{Options: `not json`}
		_, err := q.OptionList()
		assert.Error(t, err)
	})

	t.Run("encoded garbage", func(t *testing.T) {
		q := RaceQuestion{Options: `"still not a list"`}
		_, err := q.OptionList()
		assert.Error(t, err)
	})
}

func TestBankQuestionCorrectText(t *testing.T) {
	q := BankQuestion{OptionA: "first", OptionB: "second", OptionC: "third"}

	q.CorrectOption = "a"
	assert.Equal(t, "first", q.CorrectText())
	q.CorrectOption = "b"
	assert.Equal(t, "second", q.CorrectText())
	q.CorrectOption = "c"
	assert.Equal(t, "third", q.CorrectText())
	q.CorrectOption = "d"
	assert.Equal(t, "", q.CorrectText())

	assert.Equal(t, []string{"first", "second", "third"}, q.OptionList())
}
