package experience

import "github.com/jonathan/resume-analyzer/internal/types"

// levelFloors are the lower bounds in years of each level, descending. The
// first floor at or below the candidate's years wins.
var levelFloors = []struct {
	years float64
	level types.ExperienceLevel
}{
	{15, types.LevelExecutive},
	{12, types.LevelPrincipal},
	{8, types.LevelLead},
	{5, types.LevelSenior},
	{3, types.LevelMid},
	{1, types.LevelJunior},
	{0, types.LevelEntry},
}

// LevelForYears buckets years of experience into an ExperienceLevel.
func LevelForYears(years float64) types.ExperienceLevel {
	for _, f := range levelFloors {
		if years >= f.years {
			return f.level
		}
	}
	return types.LevelEntry
}

// Distance returns how many buckets apart a and b are, or -1 if either is unknown.
func Distance(a, b types.ExperienceLevel) int {
	ra, rb := a.Rank(), b.Rank()
	if ra < 0 || rb < 0 {
		return -1
	}
	if ra > rb {
		return ra - rb
	}
	return rb - ra
}

// Adjacent reports whether a and b are exactly one bucket apart.
func Adjacent(a, b types.ExperienceLevel) bool {
	return Distance(a, b) == 1
}
