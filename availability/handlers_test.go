package availability

import (
	"testing"

	"hawurwanda/models"
)

func TestValidSchedule(t *testing.T) {
	tests := []struct {
		name    string
		weekly  map[string][]models.TimeWindow
		wantErr bool
	}{
		{
			name: "valid week",
			weekly: map[string][]models.TimeWindow{
				"monday":   {{Start: "08:00", End: "12:00", Available: true}},
				"saturday": {{Start: "09:00", End: "17:00", Available: true}},
			},
		},
		{
			name: "unknown weekday",
			weekly: map[string][]models.TimeWindow{
				"Monday": {{Start: "08:00", End: "12:00"}},
			},
			wantErr: true,
		},
		{
			name: "inverted window",
			weekly: map[string][]models.TimeWindow{
				"monday": {{Start: "12:00", End: "08:00"}},
			},
			wantErr: true,
		},
		{
			name: "bad time format",
			weekly: map[string][]models.TimeWindow{
				"monday": {{Start: "8am", End: "12:00"}},
			},
			wantErr: true,
		},
		{
			name:   "empty schedule is valid",
			weekly: map[string][]models.TimeWindow{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validSchedule(tt.weekly)
			if (msg != "") != tt.wantErr {
				t.Errorf("validSchedule() = %q, wantErr %v", msg, tt.wantErr)
			}
		})
	}
}
