package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduleWindowValidate(t *testing.T) {
	valid := ScheduleWindow{DayOfWeek: 1, StartTime: "08:00", EndTime: "10:00"}
	assert.NoError(t, valid.Validate())

	tests := map[string]ScheduleWindow{
		"day too large":     {DayOfWeek: 7, StartTime: "08:00", EndTime: "10:00"},
		"negative day":      {DayOfWeek: -1, StartTime: "08:00", EndTime: "10:00"},
		"bad start":         {DayOfWeek: 1, StartTime: "8am", EndTime: "10:00"},
		"bad end":           {DayOfWeek: 1, StartTime: "08:00", EndTime: "25:00"},
		"start equals end":  {DayOfWeek: 1, StartTime: "08:00", EndTime: "08:00"},
		"start after end":   {DayOfWeek: 1, StartTime: "11:00", EndTime: "08:00"},
	}
	for name, w := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, w.Validate())
		})
	}
}

func TestScheduleWindowContains(t *testing.T) {
	w := ScheduleWindow{DayOfWeek: 1, StartTime: "08:00", EndTime: "10:00"}
	monday := func(h, m int) time.Time {
		return time.Date(2025, 3, 10, h, m, 0, 0, time.UTC)
	}

	assert.True(t, w.Contains(monday(8, 0)))
	assert.True(t, w.Contains(monday(9, 30)))
	assert.True(t, w.Contains(monday(10, 0)))
	assert.False(t, w.Contains(monday(7, 59)))
	assert.False(t, w.Contains(monday(10, 1)))
	// Same clock time on a Tuesday.
	assert.False(t, w.Contains(time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC)))
}

func TestParticipationRangeValid(t *testing.T) {
	assert.False(t, ParticipationRangeValid(0))
	assert.True(t, ParticipationRangeValid(MinParticipants))
	assert.True(t, ParticipationRangeValid(3))
	assert.True(t, ParticipationRangeValid(MaxParticipants))
	assert.False(t, ParticipationRangeValid(MaxParticipants+1))
}
