package indicators

// PerfectOrder reports whether moving averages ordered from shortest to
// longest period are all present and strictly descending (shortest on
// top). Any missing value or any non-strict pair makes the result false;
// this is an all-or-nothing predicate, not a partial score.
func PerfectOrder(mas []*float64) bool {
	if len(mas) == 0 {
		return false
	}

	for _, ma := range mas {
		if ma == nil {
			return false
		}
	}

	for i := 0; i < len(mas)-1; i++ {
		if *mas[i] <= *mas[i+1] {
			return false
		}
	}
	return true
}
