package schedule

import (
	"errors"
	"testing"
	"time"
)

func TestScheduledAt(t *testing.T) {
	s := &TopUpSchedule{
		ScheduledDate: time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC),
		ScheduledTime: "14:30",
	}

	want := time.Date(2024, time.July, 15, 14, 30, 0, 0, time.UTC)
	if got := s.ScheduledAt(); !got.Equal(want) {
		t.Errorf("ScheduledAt() = %v, want %v", got, want)
	}
}

func TestScheduledAtBadTimeFallsBackToDate(t *testing.T) {
	s := &TopUpSchedule{
		ScheduledDate: time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC),
		ScheduledTime: "bogus",
	}
	if got := s.ScheduledAt(); !got.Equal(s.ScheduledDate) {
		t.Errorf("ScheduledAt() = %v, want date %v", got, s.ScheduledDate)
	}
}

func TestIsUpcoming(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusScheduled, true},
		{StatusProcessing, true},
		{StatusCompleted, false},
		{StatusFailed, false},
	}
	for _, tt := range tests {
		s := &TopUpSchedule{Status: tt.status}
		if got := s.IsUpcoming(); got != tt.want {
			t.Errorf("IsUpcoming(%s) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestResolveWhen(t *testing.T) {
	now := time.Date(2024, time.June, 1, 9, 45, 0, 0, time.UTC)

	t.Run("immediate uses now", func(t *testing.T) {
		date, hhmm, err := resolveWhen(true, "", "", now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !date.Equal(now) || hhmm != "09:45" {
			t.Errorf("got %v %s, want %v 09:45", date, hhmm, now)
		}
	})

	t.Run("future date accepted", func(t *testing.T) {
		date, hhmm, err := resolveWhen(false, "2024-06-02", "08:00", now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if date.Format("2006-01-02") != "2024-06-02" || hhmm != "08:00" {
			t.Errorf("got %v %s", date, hhmm)
		}
	})

	t.Run("missing time defaults to midnight", func(t *testing.T) {
		_, hhmm, err := resolveWhen(false, "2024-06-02", "", now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if hhmm != "00:00" {
			t.Errorf("got %s, want 00:00", hhmm)
		}
	})

	t.Run("past instant rejected", func(t *testing.T) {
		if _, _, err := resolveWhen(false, "2024-06-01", "09:00", now); !errors.Is(err, ErrPastScheduleTime) {
			t.Fatalf("expected ErrPastScheduleTime, got %v", err)
		}
	})

	t.Run("missing date rejected", func(t *testing.T) {
		if _, _, err := resolveWhen(false, "", "10:00", now); !errors.Is(err, ErrPastScheduleTime) {
			t.Fatalf("expected ErrPastScheduleTime, got %v", err)
		}
	})
}
