package planner

// resolveEnergy maps the input energy integer (0..3) onto the three-level
// scale the template catalog resizes against. 0 and 1 both read as a
// relaxed pace; 2 is the default; 3 is a packed day.
func resolveEnergy(energy int) string {
	switch {
	case energy <= 1:
		return "low"
	case energy == 2:
		return "medium"
	default:
		return "high"
	}
}
