package timeofday

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      TimeOfDay
		wantError bool
	}{
		{
			name:  "midnight",
			input: "00:00",
			want:  0,
		},
		{
			name:  "morning slot",
			input: "09:15",
			want:  9*60 + 15,
		},
		{
			name:  "last slot of the day",
			input: "23:45",
			want:  23*60 + 45,
		},
		{
			name:      "hour out of range",
			input:     "24:00",
			wantError: true,
		},
		{
			name:      "minute out of range",
			input:     "10:60",
			wantError: true,
		},
		{
			name:      "wrong separator",
			input:     "10-30",
			wantError: true,
		},
		{
			name:      "empty",
			input:     "",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantError {
				if err == nil {
					t.Fatalf("Parse(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestString_WrapsPastMidnight(t *testing.T) {
	tests := []struct {
		tod  TimeOfDay
		want string
	}{
		{0, "00:00"},
		{9 * 60, "09:00"},
		{23*60 + 45, "23:45"},
		{MinutesPerDay, "00:00"},
		{23*60 + TimeOfDay(120), "01:00"},
	}

	for _, tt := range tests {
		if got := tt.tod.String(); got != tt.want {
			t.Errorf("TimeOfDay(%d).String() = %q, want %q", tt.tod, got, tt.want)
		}
	}
}

func TestAdd_NotWrapped(t *testing.T) {
	start := TimeOfDay(23 * 60)
	end := start.Add(120)
	if end != TimeOfDay(25*60) {
		t.Errorf("expected raw minutes 1500, got %d", end)
	}
	if end.String() != "01:00" {
		t.Errorf("expected wrapped rendering 01:00, got %s", end.String())
	}
}

func TestAligned(t *testing.T) {
	if !TimeOfDay(9 * 60).Aligned() {
		t.Error("09:00 should be aligned")
	}
	if TimeOfDay(9*60 + 10).Aligned() {
		t.Error("09:10 should not be aligned")
	}
}
