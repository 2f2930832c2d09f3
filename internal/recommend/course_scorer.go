package recommend

import (
	"github.com/edupath/edupath-backend/internal/catalog"
)

const baseScore = 50.0

// scoreCourse rates a candidate course against the student's topic profile.
// Level fit is judged on counts alone: many weaknesses push toward beginner
// material, a surplus of strengths toward advanced.
func scoreCourse(c catalog.Course, weaknesses, strengths int) float64 {
	s := baseScore
	switch c.Level {
	case catalog.LevelBeginner:
		if weaknesses > strengths {
			s += 10
		}
	case catalog.LevelIntermediate:
		if weaknesses == strengths {
			s += 10
		}
	case catalog.LevelAdvanced:
		if strengths > weaknesses {
			s += 10
		}
	}
	for _, cat := range c.Categories {
		if cat.IsPrimary {
			s += 5
		}
	}
	return clampScore(s)
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

func categoryNames(cats []catalog.Category) []string {
	out := make([]string, 0, len(cats))
	for _, c := range cats {
		out = append(out, c.Name)
	}
	return out
}
