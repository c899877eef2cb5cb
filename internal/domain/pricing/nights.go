package pricing

import "math"

// NightsPolicy tunes the suggested-nights heuristic.
type NightsPolicy struct {
	AvgSpeedKmh      float64
	DayBudgetMinutes int
}

// DefaultNightsPolicy assumes 60 km/h and an eight-hour touring day.
func DefaultNightsPolicy() NightsPolicy {
	return NightsPolicy{AvgSpeedKmh: 60, DayBudgetMinutes: 480}
}

// TravelMinutes converts road km into driving minutes.
func (p NightsPolicy) TravelMinutes(roadKm float64) float64 {
	speed := p.AvgSpeedKmh
	if speed <= 0 {
		speed = DefaultNightsPolicy().AvgSpeedKmh
	}
	return roadKm / speed * 60
}

// SuggestedNights floors total travel and activity time over the day budget.
// Once more than one stop is chosen at least one night is suggested. There is no upper bound.
func SuggestedNights(roadKm float64, activityMinutes, stopCount int, policy NightsPolicy) int {
	budget := policy.DayBudgetMinutes
	if budget <= 0 {
		budget = DefaultNightsPolicy().DayBudgetMinutes
	}

	total := policy.TravelMinutes(roadKm) + float64(activityMinutes)
	nights := int(math.Floor(total / float64(budget)))

	if stopCount > 1 && nights < 1 {
		nights = 1
	}
	if nights < 0 {
		nights = 0
	}
	return nights
}
