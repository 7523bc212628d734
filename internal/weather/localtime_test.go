package weather

import (
	"testing"
	"time"
)

func TestLocalTime_SameDay(t *testing.T) {
	local, err := LocalTime("2024-01-01 21:00:00", 7200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2024, time.January, 1, 23, 0, 0, 0, time.UTC)
	if !local.Equal(want) {
		t.Fatalf("expected %v, got %v", want, local)
	}
	if got := DateKey(local); got != "Mon Jan 01 2024" {
		t.Errorf("expected date key %q, got %q", "Mon Jan 01 2024", got)
	}
	if got := TimeLabel(local); got != "23:00:00" {
		t.Errorf("expected time label %q, got %q", "23:00:00", got)
	}
}

func TestLocalTime_CrossesMidnight(t *testing.T) {
	local, err := LocalTime("2024-01-01 23:00:00", 7200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := DateKey(local); got != "Tue Jan 02 2024" {
		t.Errorf("expected date key %q, got %q", "Tue Jan 02 2024", got)
	}
	if got := TimeLabel(local); got != "01:00:00" {
		t.Errorf("expected time label %q, got %q", "01:00:00", got)
	}
}

func TestLocalTime_NegativeOffset(t *testing.T) {
	local, err := LocalTime("2024-01-01 02:00:00", -5*3600)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := DateKey(local); got != "Sun Dec 31 2023" {
		t.Errorf("expected date key %q, got %q", "Sun Dec 31 2023", got)
	}
}

func TestLocalTime_IsDeterministic(t *testing.T) {
	a, errA := LocalTime("2024-06-15 12:00:00", 19800)
	b, errB := LocalTime("2024-06-15 12:00:00", 19800)
	if errA != nil || errB != nil {
		t.Fatalf("unexpected errors: %v, %v", errA, errB)
	}
	if !a.Equal(b) || a.Location() != b.Location() {
		t.Fatalf("expected identical results, got %v and %v", a, b)
	}
}

func TestLocalTime_AcceptsRFC3339(t *testing.T) {
	local, err := LocalTime("2024-01-01T21:00:00Z", 3600)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := TimeLabel(local); got != "22:00:00" {
		t.Errorf("expected %q, got %q", "22:00:00", got)
	}
}

func TestLocalTime_Invalid(t *testing.T) {
	if _, err := LocalTime("not a time", 0); err == nil {
		t.Fatal("expected error for invalid timestamp")
	}
}

func TestEntryLocalTime_FallsBackToDt(t *testing.T) {
	// 2024-01-01 21:00:00 UTC
	e := Entry{Dt: 1704142800, TimestampText: "garbage"}

	local, err := EntryLocalTime(e, 7200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := TimeLabel(local); got != "23:00:00" {
		t.Errorf("expected %q, got %q", "23:00:00", got)
	}
}

func TestTodayKey(t *testing.T) {
	now := time.Date(2024, time.January, 1, 23, 30, 0, 0, time.UTC)

	if got := TodayKey(now, 0); got != "Mon Jan 01 2024" {
		t.Errorf("expected %q, got %q", "Mon Jan 01 2024", got)
	}
	if got := TodayKey(now, 3600); got != "Tue Jan 02 2024" {
		t.Errorf("expected %q, got %q", "Tue Jan 02 2024", got)
	}
}
