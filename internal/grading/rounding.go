package grading

// Figures are rounded half-up in integer arithmetic so the stored percentage,
// the statistics and the exported report always agree.

// percentOf returns round(100*part/whole), or 0 when whole is not positive
func percentOf(part, whole int) int {
	if whole <= 0 || part <= 0 {
		return 0
	}
	return (200*part + whole) / (2 * whole)
}

// roundedMean returns round(sum/n), or 0 for an empty set
func roundedMean(sum, n int) int {
	if n <= 0 || sum <= 0 {
		return 0
	}
	return (2*sum + n) / (2 * n)
}
