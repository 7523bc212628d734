package weather

import (
	"fmt"
	"time"
)

const (
	// TimestampLayout is the layout of the remote dt_txt field.
	TimestampLayout = "2006-01-02 15:04:05"

	dateKeyLayout   = "Mon Jan 02 2006"
	timeLabelLayout = "15:04:05"
)

// LocalTime interprets timestampText as a UTC instant, shifts it by
// offsetSeconds and returns the result labelled as UTC. This is a fixed
// offset shift: there is no DST or zone database lookup.
func LocalTime(timestampText string, offsetSeconds int) (time.Time, error) {
	ts, err := parseTimestamp(timestampText)
	if err != nil {
		return time.Time{}, err
	}
	return shift(ts, offsetSeconds), nil
}

// DateKey returns the calendar-date-plus-weekday label of a local time,
// e.g. "Mon Jan 01 2024".
func DateKey(local time.Time) string {
	return local.Format(dateKeyLayout)
}

// TimeLabel returns the time-of-day part of a local time, e.g. "23:00:00".
func TimeLabel(local time.Time) string {
	return local.Format(timeLabelLayout)
}

// TodayKey returns the date key of "now" as seen at the given offset.
func TodayKey(now time.Time, offsetSeconds int) string {
	return DateKey(shift(now, offsetSeconds))
}

// EntryLocalTime resolves the local time of an entry. The text timestamp is
// authoritative; the numeric dt is used when the text cannot be parsed.
func EntryLocalTime(e Entry, offsetSeconds int) (time.Time, error) {
	local, err := LocalTime(e.TimestampText, offsetSeconds)
	if err == nil {
		return local, nil
	}
	if e.Dt != 0 {
		return shift(time.Unix(e.Dt, 0), offsetSeconds), nil
	}
	return time.Time{}, err
}

func shift(t time.Time, offsetSeconds int) time.Time {
	return t.UTC().Add(time.Duration(offsetSeconds) * time.Second)
}

// parseTimestamp accepts the dt_txt layout or RFC3339.
func parseTimestamp(s string) (time.Time, error) {
	if ts, err := time.Parse(TimestampLayout, s); err == nil {
		return ts, nil
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}
