package medication

import (
	"testing"

	"github.com/Naveenp7/meditrack-ai-sub001/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestParseFrequency_OnceDaily(t *testing.T) {
	times := ParseFrequency("Once daily")
	assert.Equal(t, []types.ReminderTime{{Hour: 9}}, times)
}

func TestParseFrequency_OnceDailyMorning(t *testing.T) {
	times := ParseFrequency("once daily in the morning")
	assert.Equal(t, []types.ReminderTime{{Hour: 8}}, times)
}

func TestParseFrequency_OnceDailyEvening(t *testing.T) {
	times := ParseFrequency("once a day at night")
	assert.Equal(t, []types.ReminderTime{{Hour: 20}}, times)
}

func TestParseFrequency_TwiceDaily(t *testing.T) {
	expected := []types.ReminderTime{{Hour: 9}, {Hour: 21}}

	assert.Equal(t, expected, ParseFrequency("Twice daily"))
	assert.Equal(t, expected, ParseFrequency("take twice daily with water"))
	assert.Equal(t, expected, ParseFrequency("1 tablet BID"))
}

func TestParseFrequency_AbbreviationsMatchInsideWords(t *testing.T) {
	// bid/tid/qid are matched as bare substrings, so text that merely
	// contains them is read as the abbreviation.
	assert.Equal(t,
		[]types.ReminderTime{{Hour: 9}, {Hour: 21}},
		ParseFrequency("forbidden with alcohol"))
}

func TestParseFrequency_ThreeTimesDaily(t *testing.T) {
	expected := []types.ReminderTime{{Hour: 9}, {Hour: 14}, {Hour: 21}}

	assert.Equal(t, expected, ParseFrequency("three times daily"))
	assert.Equal(t, expected, ParseFrequency("TID"))
}

func TestParseFrequency_FourTimesDaily(t *testing.T) {
	expected := []types.ReminderTime{{Hour: 8}, {Hour: 12}, {Hour: 16}, {Hour: 20}}

	assert.Equal(t, expected, ParseFrequency("four times daily"))
	assert.Equal(t, expected, ParseFrequency("qid"))
}

func TestParseFrequency_EveryMorning(t *testing.T) {
	assert.Equal(t, []types.ReminderTime{{Hour: 8}}, ParseFrequency("every morning"))
}

func TestParseFrequency_EveryEvening(t *testing.T) {
	assert.Equal(t, []types.ReminderTime{{Hour: 20}}, ParseFrequency("every evening"))
	assert.Equal(t, []types.ReminderTime{{Hour: 20}}, ParseFrequency("every night before bed"))
}

func TestParseFrequency_Meals(t *testing.T) {
	assert.Equal(t,
		[]types.ReminderTime{{Hour: 8}, {Hour: 13}, {Hour: 19}},
		ParseFrequency("with meals"))

	assert.Equal(t,
		[]types.ReminderTime{{Hour: 7, Minute: 30}, {Hour: 12, Minute: 30}, {Hour: 18, Minute: 30}},
		ParseFrequency("30 minutes before meals"))

	assert.Equal(t,
		[]types.ReminderTime{{Hour: 8, Minute: 30}, {Hour: 13, Minute: 30}, {Hour: 19, Minute: 30}},
		ParseFrequency("after meals"))
}

func TestParseFrequency_EveryNHours(t *testing.T) {
	assert.Equal(t,
		[]types.ReminderTime{{Hour: 0}, {Hour: 8}, {Hour: 16}},
		ParseFrequency("every 8 hours"))

	assert.Equal(t,
		[]types.ReminderTime{{Hour: 0}, {Hour: 6}, {Hour: 12}, {Hour: 18}},
		ParseFrequency("Every 6 Hours as needed"))

	assert.Equal(t,
		[]types.ReminderTime{{Hour: 0}, {Hour: 12}},
		ParseFrequency("every 12 hours"))

	assert.Equal(t,
		[]types.ReminderTime{{Hour: 0}},
		ParseFrequency("every 24 hours"))
}

func TestParseFrequency_EveryNHoursOutOfRange(t *testing.T) {
	// An interval the rule cannot express yields no reminders rather
	// than the default time.
	assert.Empty(t, ParseFrequency("every 48 hours"))
	assert.Empty(t, ParseFrequency("every 0 hours"))
}

func TestParseFrequency_Default(t *testing.T) {
	expected := []types.ReminderTime{{Hour: 9}}

	assert.Equal(t, expected, ParseFrequency(""))
	assert.Equal(t, expected, ParseFrequency("as directed"))
	assert.Equal(t, expected, ParseFrequency("when symptoms occur"))
}

func TestParseFrequency_FirstMatchWins(t *testing.T) {
	// "once daily" outranks the "every N hours" rule when both appear.
	assert.Equal(t,
		[]types.ReminderTime{{Hour: 9}},
		ParseFrequency("once daily or every 8 hours"))
}

func TestReminderTime_String(t *testing.T) {
	assert.Equal(t, "09:00", types.ReminderTime{Hour: 9}.String())
	assert.Equal(t, "07:30", types.ReminderTime{Hour: 7, Minute: 30}.String())
	assert.Equal(t, "00:00", types.ReminderTime{}.String())
}
