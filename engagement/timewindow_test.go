package engagement

import (
	"testing"
	"time"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 8, 13, hour, minute, 0, 0, time.UTC)
}

func TestWithinMinutes(t *testing.T) {
	tests := []struct {
		name      string
		reminder  string
		now       time.Time
		threshold int
		want      bool
	}{
		{"exact match", "09:00", at(9, 0), 60, true},
		{"half hour before", "09:30", at(9, 0), 60, true},
		{"just inside window", "10:00", at(9, 0), 60, true},
		{"just outside window", "10:01", at(9, 0), 60, false},
		{"iso timestamp input", "2025-08-13T09:15:00Z", at(9, 0), 60, true},
		{"iso without zone", "2025-08-13T09:15:00", at(9, 0), 60, true},
		{"no day wrap near midnight", "23:50", at(0, 5), 60, false},
		{"one minute threshold hit", "09:01", at(9, 0), 1, true},
		{"one minute threshold miss", "09:02", at(9, 0), 1, false},
		{"empty input", "", at(9, 0), 60, false},
		{"garbage input", "soon", at(9, 0), 60, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithinMinutes(tt.reminder, tt.now, tt.threshold); got != tt.want {
				t.Errorf("WithinMinutes(%q, %v, %d) = %v, want %v", tt.reminder, tt.now, tt.threshold, got, tt.want)
			}
		})
	}
}

func TestIsAfter(t *testing.T) {
	tests := []struct {
		name     string
		reminder string
		now      time.Time
		want     bool
	}{
		{"now past reminder", "08:00", at(10, 0), true},
		{"same minute is not after", "10:00", at(10, 0), false},
		{"now before reminder", "11:00", at(10, 0), false},
		{"no wrap for late reminder", "23:50", at(0, 5), false},
		{"unparseable", "??", at(10, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAfter(tt.reminder, tt.now); got != tt.want {
				t.Errorf("IsAfter(%q, %v) = %v, want %v", tt.reminder, tt.now, got, tt.want)
			}
		})
	}
}

func TestRefillNear(t *testing.T) {
	now := time.Date(2025, 8, 13, 14, 30, 0, 0, time.UTC)
	tests := []struct {
		name   string
		refill string
		want   bool
	}{
		{"same day", "2025-08-13", true},
		{"two days ahead", "2025-08-15", true},
		{"threshold boundary", "2025-08-16", true},
		{"past threshold", "2025-08-17", false},
		{"already passed", "2025-08-12", false},
		{"timestamp form", "2025-08-14T00:00:00Z", true},
		{"empty", "", false},
		{"garbage", "next week", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RefillNear(tt.refill, now, 3); got != tt.want {
				t.Errorf("RefillNear(%q) = %v, want %v", tt.refill, got, tt.want)
			}
		})
	}
}

func TestInPeriod(t *testing.T) {
	tests := []struct {
		name     string
		reminder string
		start    int
		end      int
		want     bool
	}{
		{"inside", "10:30", 8, 12, true},
		{"start inclusive", "08:00", 8, 12, true},
		{"end exclusive", "12:00", 8, 12, false},
		{"before", "07:59", 8, 12, false},
		{"iso input", "2025-08-13T09:00:00Z", 8, 12, true},
		{"unparseable", "noonish", 8, 12, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InPeriod(tt.reminder, tt.start, tt.end); got != tt.want {
				t.Errorf("InPeriod(%q, %d, %d) = %v, want %v", tt.reminder, tt.start, tt.end, got, tt.want)
			}
		})
	}
}
