package trip

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func mustLoc(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return loc
}

// TestBuildSchedule_allDaySingleDay verifies a one-day all-day trip stores
// an exclusive end of the following midnight.
func TestBuildSchedule_allDaySingleDay(t *testing.T) {
	loc := mustLoc(t)

	sched, err := BuildSchedule(ScheduleInput{StartDate: "2024-06-01"}, loc)

	require.NoError(t, err)
	require.True(t, sched.AllDay)
	require.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, loc), sched.Start)
	require.Equal(t, time.Date(2024, 6, 2, 0, 0, 0, 0, loc), sched.End)
}

// TestBuildSchedule_allDayRange verifies the officer's inclusive end date is
// translated to the exclusive stored form.
func TestBuildSchedule_allDayRange(t *testing.T) {
	loc := mustLoc(t)

	sched, err := BuildSchedule(ScheduleInput{StartDate: "2024-06-01", EndDate: "2024-06-03"}, loc)

	require.NoError(t, err)
	require.True(t, sched.AllDay)
	require.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, loc), sched.Start)
	require.Equal(t, time.Date(2024, 6, 4, 0, 0, 0, 0, loc), sched.End)
}

func TestBuildSchedule_allDayEndBeforeStart(t *testing.T) {
	loc := mustLoc(t)

	_, err := BuildSchedule(ScheduleInput{StartDate: "2024-06-03", EndDate: "2024-06-01"}, loc)

	require.Error(t, err)
	require.ErrorContains(t, err, "endDate must be on/after startDate")
}

// TestBuildSchedule_timedDefaultDuration verifies a timed trip without an
// end time runs for two hours.
func TestBuildSchedule_timedDefaultDuration(t *testing.T) {
	loc := mustLoc(t)

	sched, err := BuildSchedule(ScheduleInput{StartDate: "2024-09-10", StartTime: "18:30"}, loc)

	require.NoError(t, err)
	require.False(t, sched.AllDay)
	require.Equal(t, time.Date(2024, 9, 10, 18, 30, 0, 0, loc), sched.Start)
	require.Equal(t, time.Date(2024, 9, 10, 20, 30, 0, 0, loc), sched.End)
}

// TestBuildSchedule_timedOvernight verifies an explicit end time on a later
// end date is honored as-is.
func TestBuildSchedule_timedOvernight(t *testing.T) {
	loc := mustLoc(t)

	sched, err := BuildSchedule(ScheduleInput{
		StartDate: "2024-09-10",
		StartTime: "22:00",
		EndDate:   "2024-09-11",
		EndTime:   "06:00",
	}, loc)

	require.NoError(t, err)
	require.False(t, sched.AllDay)
	require.Equal(t, time.Date(2024, 9, 10, 22, 0, 0, 0, loc), sched.Start)
	require.Equal(t, time.Date(2024, 9, 11, 6, 0, 0, 0, loc), sched.End)
}

func TestBuildSchedule_timedEndNotAfterStart(t *testing.T) {
	loc := mustLoc(t)

	_, err := BuildSchedule(ScheduleInput{
		StartDate: "2024-09-10",
		StartTime: "18:00",
		EndTime:   "18:00",
	}, loc)

	require.Error(t, err)
	require.ErrorContains(t, err, "end must be after start")
}

func TestBuildSchedule_formatErrors(t *testing.T) {
	loc := mustLoc(t)

	cases := []struct {
		name    string
		in      ScheduleInput
		wantErr string
	}{
		{"missing start date", ScheduleInput{}, "startDate is required"},
		{"bad start date", ScheduleInput{StartDate: "06/01/2024"}, "invalid startDate"},
		{"bad end date", ScheduleInput{StartDate: "2024-06-01", EndDate: "tomorrow"}, "invalid endDate"},
		{"bad start time", ScheduleInput{StartDate: "2024-06-01", StartTime: "6pm"}, "invalid startTime"},
		{"bad end time", ScheduleInput{StartDate: "2024-06-01", StartTime: "18:00", EndTime: "late"}, "invalid endTime"},
		{"impossible date", ScheduleInput{StartDate: "2024-02-31"}, "invalid startDate"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildSchedule(tc.in, loc)
			require.Error(t, err)
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}

// TestDateTimeParts_roundTrip verifies a stored instant converts back to the
// exact date and time the officer submitted.
func TestDateTimeParts_roundTrip(t *testing.T) {
	loc := mustLoc(t)

	sched, err := BuildSchedule(ScheduleInput{StartDate: "2024-09-10", StartTime: "18:30"}, loc)
	require.NoError(t, err)

	date, clock := DateTimeParts(sched.Start.UTC(), loc)
	require.Equal(t, "2024-09-10", date)
	require.Equal(t, "18:30", clock)
}

func TestAddDaysToDateString(t *testing.T) {
	got, err := addDaysToDateString("2024-02-28", 1)
	require.NoError(t, err)
	require.Equal(t, "2024-02-29", got)

	got, err = addDaysToDateString("2024-12-31", 1)
	require.NoError(t, err)
	require.Equal(t, "2025-01-01", got)
}
