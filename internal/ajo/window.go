package ajo

import "github.com/ajoapp/backend/internal/models"

// CycleWindow returns the current cycle's contribution window as Unix
// seconds. The window is the half-open interval [start, end).
func CycleWindow(g *models.Group) (start, end int64) {
	start = g.CycleStartTime
	end = start + g.CycleDuration
	return start, end
}

// CycleActive reports whether now falls inside the current cycle's
// contribution window. The end boundary is exclusive: a contribution at
// exactly start+duration belongs to no window, which gives payout
// execution a clean handoff between cycles.
func CycleActive(g *models.Group, now int64) bool {
	start, end := CycleWindow(g)
	return now >= start && now < end
}
