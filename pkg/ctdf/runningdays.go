package ctdf

// RunningDays is the provider's 7 character '0'/'1' weekly mask.
// Index 0 is Thursday, see schedulecalendar for the full ordering.
type RunningDays string

func (r RunningDays) Valid() bool {
	if len(r) != 7 {
		return false
	}

	for _, ch := range r {
		if ch != '0' && ch != '1' {
			return false
		}
	}

	return true
}

func (r RunningDays) RunsOn(index int) bool {
	if index < 0 || index >= len(r) {
		return false
	}

	return r[index] == '1'
}
