package medication

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Naveenp7/meditrack-ai-sub001/pkg/types"
)

var everyNHoursPattern = regexp.MustCompile(`every\s+(\d+)\s+hours?`)

// ParseFrequency maps a free-text medication frequency description to the
// clock times at which reminders should fire. Matching is case-insensitive
// and the first matching rule wins. Unrecognized or empty input falls back
// to a single 9 AM reminder; the function never fails.
//
// The bid/tid/qid abbreviations are matched as bare substrings, so any
// word containing them (such as "forbidden") triggers the rule too.
func ParseFrequency(frequency string) []types.ReminderTime {
	freq := strings.ToLower(frequency)

	switch {
	case strings.Contains(freq, "once daily"), strings.Contains(freq, "once a day"):
		if strings.Contains(freq, "morning") {
			return []types.ReminderTime{{Hour: 8}}
		}
		if strings.Contains(freq, "evening") || strings.Contains(freq, "night") {
			return []types.ReminderTime{{Hour: 20}}
		}
		return []types.ReminderTime{{Hour: 9}}

	case strings.Contains(freq, "twice daily"), strings.Contains(freq, "bid"):
		return []types.ReminderTime{{Hour: 9}, {Hour: 21}}

	case strings.Contains(freq, "three times daily"), strings.Contains(freq, "tid"):
		return []types.ReminderTime{{Hour: 9}, {Hour: 14}, {Hour: 21}}

	case strings.Contains(freq, "four times daily"), strings.Contains(freq, "qid"):
		return []types.ReminderTime{{Hour: 8}, {Hour: 12}, {Hour: 16}, {Hour: 20}}

	case strings.Contains(freq, "every morning"):
		return []types.ReminderTime{{Hour: 8}}

	case strings.Contains(freq, "every evening"), strings.Contains(freq, "every night"):
		return []types.ReminderTime{{Hour: 20}}

	case strings.Contains(freq, "with meals"):
		return []types.ReminderTime{{Hour: 8}, {Hour: 13}, {Hour: 19}}

	case strings.Contains(freq, "before meals"):
		return []types.ReminderTime{{Hour: 7, Minute: 30}, {Hour: 12, Minute: 30}, {Hour: 18, Minute: 30}}

	case strings.Contains(freq, "after meals"):
		return []types.ReminderTime{{Hour: 8, Minute: 30}, {Hour: 13, Minute: 30}, {Hour: 19, Minute: 30}}
	}

	if m := everyNHoursPattern.FindStringSubmatch(freq); m != nil {
		// An interval outside 1-24 hours produces no times for this
		// branch rather than falling back to the default.
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 || n > 24 {
			return nil
		}
		times := make([]types.ReminderTime, 0, 24/n)
		for hour := 0; hour < 24; hour += n {
			times = append(times, types.ReminderTime{Hour: hour})
		}
		return times
	}

	return []types.ReminderTime{{Hour: 9}}
}
