package render

// SelectSteps keeps only the listed steps of view. Unknown numbers are
// ignored and an empty list keeps every step.
func SelectSteps(view *View, steps ...int) {
	if view == nil || len(steps) == 0 {
		return
	}
	keep := make(map[int]struct{}, len(steps))
	for _, n := range steps {
		keep[n] = struct{}{}
	}

	filtered := view.Steps[:0]
	for _, step := range view.Steps {
		if _, ok := keep[step.Number]; ok {
			filtered = append(filtered, step)
		}
	}
	view.Steps = filtered
}
