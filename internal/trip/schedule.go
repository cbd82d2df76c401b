package trip

import (
	"regexp"
	"time"

	"github.com/outingclub/trips-backend/internal/apierr"
)

// defaultDuration is applied to timed trips submitted without an end time.
const defaultDuration = 2 * time.Hour

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// ScheduleInput is the raw date/time part of an officer submission.
// Dates are YYYY-MM-DD, times HH:MM; an empty StartTime means all-day.
type ScheduleInput struct {
	StartDate string
	EndDate   string
	StartTime string
	EndTime   string
}

// Schedule is the normalized result. For all-day trips Start and End are
// local midnights and End is already the exclusive day after the officer's
// inclusive end date, matching the calendar convention. Officers never see
// the exclusive form; the translation happens only at this boundary.
type Schedule struct {
	Start  time.Time
	End    time.Time
	AllDay bool
}

// BuildSchedule normalizes officer date/time input in the display timezone.
//
// All-day (no start time): start/end are local midnights, end date defaults
// to the start date and must not precede it; the stored end is start-of-day
// after the inclusive end. Timed: end defaults to start + 2h and must be
// strictly after start.
func BuildSchedule(in ScheduleInput, loc *time.Location) (Schedule, error) {
	if in.StartDate == "" {
		return Schedule{}, apierr.Required("startDate")
	}
	endDate := in.EndDate
	if endDate == "" {
		endDate = in.StartDate
	}

	if in.StartTime == "" {
		start, err := parseDateOnly(in.StartDate, "startDate", loc)
		if err != nil {
			return Schedule{}, err
		}
		end, err := parseDateOnly(endDate, "endDate", loc)
		if err != nil {
			return Schedule{}, err
		}
		if end.Before(start) {
			return Schedule{}, apierr.Validation("endDate must be on/after startDate")
		}
		return Schedule{Start: start, End: end.AddDate(0, 0, 1), AllDay: true}, nil
	}

	start, err := parseDateAndTime(in.StartDate, in.StartTime, "startDate", "startTime", loc)
	if err != nil {
		return Schedule{}, err
	}
	var end time.Time
	if in.EndTime != "" {
		end, err = parseDateAndTime(endDate, in.EndTime, "endDate", "endTime", loc)
		if err != nil {
			return Schedule{}, err
		}
	} else {
		end = start.Add(defaultDuration)
	}
	if !end.After(start) {
		return Schedule{}, apierr.Validation("end must be after start")
	}
	return Schedule{Start: start, End: end}, nil
}

func parseDateOnly(value, field string, loc *time.Location) (time.Time, error) {
	if !datePattern.MatchString(value) {
		return time.Time{}, apierr.Validation("invalid " + field + ": " + value)
	}
	t, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return time.Time{}, apierr.Validation("invalid " + field + ": " + value)
	}
	return t, nil
}

func parseDateAndTime(dateValue, timeValue, dateField, timeField string, loc *time.Location) (time.Time, error) {
	if !datePattern.MatchString(dateValue) {
		return time.Time{}, apierr.Validation("invalid " + dateField + ": " + dateValue)
	}
	if !timePattern.MatchString(timeValue) {
		return time.Time{}, apierr.Validation("invalid " + timeField + ": " + timeValue)
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", dateValue+" "+timeValue, loc)
	if err != nil {
		return time.Time{}, apierr.Validation("invalid " + timeField + ": " + timeValue)
	}
	return t, nil
}

// DateTimeParts recovers the local {date, time} form of a stored instant,
// for edit forms and for rebuilding calendar payloads during sync. It
// round-trips exactly with BuildSchedule for any instant it produced.
func DateTimeParts(t time.Time, loc *time.Location) (date, clock string) {
	local := t.In(loc)
	return local.Format("2006-01-02"), local.Format("15:04")
}

// addDaysToDateString shifts a YYYY-MM-DD string by whole days without any
// timezone involvement.
func addDaysToDateString(date string, days int) (string, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, days).Format("2006-01-02"), nil
}
