package analytics

import (
	"testing"
	"time"
)

func TestWindowContains(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		w    Window
		d    time.Time
		want bool
	}{
		{"this month inside", Window{Range: RangeThisMonth}, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), true},
		{"this month other month", Window{Range: RangeThisMonth}, time.Date(2024, time.February, 28, 0, 0, 0, 0, time.UTC), false},
		{"this month same month last year", Window{Range: RangeThisMonth}, time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC), false},
		{"last month inside", Window{Range: RangeLastMonth}, time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC), true},
		{"last month too old", Window{Range: RangeLastMonth}, time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC), false},
		{"this week inside", Window{Range: RangeThisWeek}, now.AddDate(0, 0, -3), true},
		{"this week boundary", Window{Range: RangeThisWeek}, now.AddDate(0, 0, -7), true},
		{"this week too old", Window{Range: RangeThisWeek}, now.AddDate(0, 0, -8), false},
		{"this year inside", Window{Range: RangeThisYear}, time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), true},
		{"this year outside", Window{Range: RangeThisYear}, time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC), false},
		{"custom inside", Window{Range: RangeCustom, Start: &start, End: &end}, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), true},
		{"custom end of last day", Window{Range: RangeCustom, Start: &start, End: &end}, time.Date(2024, time.March, 10, 23, 0, 0, 0, time.UTC), true},
		{"custom after end", Window{Range: RangeCustom, Start: &start, End: &end}, time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC), false},
		{"custom missing end fails open", Window{Range: RangeCustom, Start: &start}, time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC), true},
		{"all time", Window{Range: RangeAllTime}, time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC), true},
		{"unknown range passes everything", Window{Range: Range("bogus")}, time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.w.Contains(tt.d, now); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.d, got, tt.want)
			}
		})
	}
}

func TestWindowContainsLastMonthYearWrap(t *testing.T) {
	now := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	w := Window{Range: RangeLastMonth}
	if !w.Contains(time.Date(2023, time.December, 25, 0, 0, 0, 0, time.UTC), now) {
		t.Error("December of the previous year should fall in last month")
	}
	if w.Contains(time.Date(2024, time.December, 25, 0, 0, 0, 0, time.UTC), now) {
		t.Error("December of the current year should not fall in last month")
	}
}

func TestWindowDays(t *testing.T) {
	now := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		w    Window
		want int
	}{
		{"this month", Window{Range: RangeThisMonth}, 31},
		{"last month leap february", Window{Range: RangeLastMonth}, 29},
		{"this week", Window{Range: RangeThisWeek}, 7},
		{"this year", Window{Range: RangeThisYear}, 365},
		{"all time", Window{Range: RangeAllTime}, 365},
		{"custom inclusive span", Window{Range: RangeCustom, Start: &start, End: &end}, 10},
		{"custom missing bounds", Window{Range: RangeCustom}, 30},
		{"custom same day", Window{Range: RangeCustom, Start: &start, End: &start}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.w.Days(now); got != tt.want {
				t.Errorf("Days() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWindowLabel(t *testing.T) {
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		w    Window
		want string
	}{
		{Window{Range: RangeThisWeek}, "This Week"},
		{Window{Range: RangeThisMonth}, "This Month"},
		{Window{Range: RangeLastMonth}, "Last Month"},
		{Window{Range: RangeThisYear}, "This Year"},
		{Window{Range: RangeCustom, Start: &start, End: &end}, "2024-03-01 - 2024-03-10"},
		{Window{Range: RangeCustom}, "Custom Range"},
		{Window{Range: RangeAllTime}, "All Time"},
		{Window{Range: Range("bogus")}, "All Time"},
	}
	for _, tt := range tests {
		if got := tt.w.Label(); got != tt.want {
			t.Errorf("Label(%q) = %q, want %q", tt.w.Range, got, tt.want)
		}
	}
}

func TestParseRange(t *testing.T) {
	if got := ParseRange("thisMonth"); got != RangeThisMonth {
		t.Errorf("ParseRange(thisMonth) = %q", got)
	}
	if got := ParseRange("whatever"); got != RangeAllTime {
		t.Errorf("ParseRange(whatever) = %q, want allTime", got)
	}
	if got := ParseRange(""); got != RangeAllTime {
		t.Errorf("ParseRange(empty) = %q, want allTime", got)
	}
}
