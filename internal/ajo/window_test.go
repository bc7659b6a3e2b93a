package ajo

import (
	"testing"

	"github.com/ajoapp/backend/internal/models"
)

func TestCycleWindow(t *testing.T) {
	g := &models.Group{CycleStartTime: 1000, CycleDuration: 604800}

	start, end := CycleWindow(g)
	if start != 1000 {
		t.Errorf("start = %d, want 1000", start)
	}
	if end != 1000+604800 {
		t.Errorf("end = %d, want %d", end, 1000+604800)
	}
}

func TestCycleActive(t *testing.T) {
	g := &models.Group{CycleStartTime: 1000, CycleDuration: 100}

	tests := []struct {
		name string
		now  int64
		want bool
	}{
		{"before window", 999, false},
		{"at start", 1000, true},
		{"inside window", 1050, true},
		{"one second before end", 1099, true},
		{"at end boundary is excluded", 1100, false},
		{"after window", 1101, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CycleActive(g, tt.now); got != tt.want {
				t.Errorf("CycleActive(now=%d) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}
