package analyzer

import "math"

// Sub-band edges of the keyword density curve outside the optimal band.
const (
	densityVeryLow  = 0.5
	densitySlightly = 4.0
)

func clampScore(score float64) float64 {
	return math.Max(0, math.Min(100, score))
}

func scoreKeywordDensity(density, min, max float64) float64 {
	switch {
	case density >= min && density <= max:
		return 100
	case density < min:
		// very low density is punished harder than slightly low density
		if density < densityVeryLow {
			return clampScore(density * 60)
		}
		return clampScore(density * 85)
	case density <= densitySlightly:
		return clampScore(100 - (density-max)*15)
	default:
		return clampScore(100 - (density-max)*20)
	}
}

func scoreTitleLength(length int, min, max float64) float64 {
	l := float64(length)
	switch {
	case l >= min && l <= max:
		return 100
	case l < min:
		return clampScore(l / min * 100)
	default:
		return clampScore(100 - (l-max)*1.5)
	}
}

func scoreKeywordInTitle(atStart, found bool) float64 {
	switch {
	case atStart:
		return 100
	case found:
		return 85
	default:
		return 40
	}
}

func scoreContentLength(wordCount int) float64 {
	switch {
	case wordCount < 100:
		return 40
	case wordCount < 200:
		return 70
	case wordCount < 300:
		return 85
	case wordCount < 500:
		return 95
	default:
		return 100
	}
}

// scoreReadability rates the average sentence length in words. Zero means
// there was nothing to measure.
func scoreReadability(avg float64) float64 {
	switch {
	case avg == 0:
		return 50
	case avg >= 15 && avg <= 20:
		return 100
	case avg >= 10 && avg < 15:
		return 90
	case avg > 20 && avg <= 25:
		return 85
	case avg < 10:
		return 75
	default:
		return math.Max(50, 100-(avg-25)*3)
	}
}
