package scheduling

import (
	"errors"
	"testing"
	"time"
)

func TestDateInPast(t *testing.T) {
	old := today
	today = func() time.Time { return time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC) }
	defer func() { today = old }()

	tests := []struct {
		date string
		past bool
		err  error
	}{
		{"2025-06-14", true, nil},
		{"2025-06-15", false, nil}, // same day is bookable
		{"2025-06-16", false, nil},
		{"2024-12-31", true, nil},
		{"15-06-2025", false, ErrInvalidDate},
		{"", false, ErrInvalidDate},
	}

	for _, tt := range tests {
		past, err := dateInPast(tt.date)
		if !errors.Is(err, tt.err) {
			t.Errorf("dateInPast(%q) err = %v, want %v", tt.date, err, tt.err)
			continue
		}
		if err == nil && past != tt.past {
			t.Errorf("dateInPast(%q) = %v, want %v", tt.date, past, tt.past)
		}
	}
}
