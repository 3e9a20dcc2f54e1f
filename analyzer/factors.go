package analyzer

import (
	"fmt"
	"math"
)

// factor bundles everything needed to evaluate one dimension. Curves read
// their band from the policy rule so variants only differ in data.
type factor struct {
	banded    bool
	value     func(d *document) interface{}
	score     func(d *document, rule ScoringRule) float64
	feedback  func(d *document, rule ScoringRule) string
	recommend func(d *document, rule ScoringRule) string
}

// factorOrder is the canonical evaluation order. Recommendations for factors
// with equal scores keep this order.
var factorOrder = []FactorName{
	KeywordDensity,
	TitleLength,
	KeywordInTitle,
	ContentLength,
	Readability,
}

var factorTable = map[FactorName]factor{
	KeywordDensity: {
		banded: true,
		value:  func(d *document) interface{} { return round2(d.density) },
		score: func(d *document, r ScoringRule) float64 {
			return scoreKeywordDensity(d.density, *r.Min, *r.Max)
		},
		feedback:  keywordDensityFeedback,
		recommend: keywordDensityRecommendation,
	},
	TitleLength: {
		banded: true,
		value:  func(d *document) interface{} { return d.titleLength },
		score: func(d *document, r ScoringRule) float64 {
			return scoreTitleLength(d.titleLength, *r.Min, *r.Max)
		},
		feedback:  titleLengthFeedback,
		recommend: titleLengthRecommendation,
	},
	KeywordInTitle: {
		value: func(d *document) interface{} { return d.keywordInTitle },
		score: func(d *document, _ ScoringRule) float64 {
			return scoreKeywordInTitle(d.keywordAtStart, d.keywordInTitle)
		},
		feedback: keywordInTitleFeedback,
		recommend: func(*document, ScoringRule) string {
			return "Include the target keyword in the title"
		},
	},
	ContentLength: {
		value: func(d *document) interface{} { return d.wordCount },
		score: func(d *document, _ ScoringRule) float64 {
			return scoreContentLength(d.wordCount)
		},
		feedback: contentLengthFeedback,
		recommend: func(*document, ScoringRule) string {
			return "Expand the content with more valuable information"
		},
	},
	Readability: {
		value: func(d *document) interface{} { return round2(d.avgSentenceLength) },
		score: func(d *document, _ ScoringRule) float64 {
			return scoreReadability(d.avgSentenceLength)
		},
		feedback:  readabilityFeedback,
		recommend: readabilityRecommendation,
	},
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func keywordDensityFeedback(d *document, r ScoringRule) string {
	// a policy band may start below the fixed very-low edge
	veryLow := math.Min(densityVeryLow, *r.Min)
	switch density := d.density; {
	case density < veryLow:
		return fmt.Sprintf("Keyword density is very low (%.1f%%). Consider using the target keyword more naturally throughout the content.", density)
	case density < *r.Min:
		return fmt.Sprintf("Keyword density is low (%.1f%%). Try to include the keyword a few more times naturally.", density)
	case density <= *r.Max:
		return fmt.Sprintf("Good keyword density (%.1f%%) for SEO.", density)
	case density <= densitySlightly:
		return fmt.Sprintf("Keyword density is slightly high (%.1f%%). Consider reducing keyword usage slightly.", density)
	default:
		return fmt.Sprintf("Keyword density is too high (%.1f%%). This might be considered keyword stuffing by search engines.", density)
	}
}

func keywordDensityRecommendation(d *document, r ScoringRule) string {
	if d.density < *r.Min {
		return "Increase keyword usage naturally throughout the content"
	}
	return "Reduce keyword density to avoid over-optimization"
}

func titleLengthFeedback(d *document, r ScoringRule) string {
	ideal := fmt.Sprintf("%.0f-%.0f characters is ideal", *r.Min, *r.Max)
	switch l := float64(d.titleLength); {
	case l < *r.Min:
		return fmt.Sprintf("Title is too short (%d chars). Consider making it more descriptive (%s).", d.titleLength, ideal)
	case l > *r.Max:
		return fmt.Sprintf("Title is too long (%d chars). It might be truncated in search results (%s).", d.titleLength, ideal)
	default:
		return fmt.Sprintf("Title length is optimal (%d characters) for SEO.", d.titleLength)
	}
}

func titleLengthRecommendation(d *document, r ScoringRule) string {
	if float64(d.titleLength) < *r.Min {
		return "Make the title longer and more descriptive"
	}
	return "Shorten the title to prevent truncation in search results"
}

func keywordInTitleFeedback(d *document, _ ScoringRule) string {
	switch {
	case d.keywordAtStart:
		return "Excellent! Keyword is at the beginning of title"
	case d.keywordInTitle:
		return "Good! Keyword found in title"
	default:
		return "Consider including the target keyword in the title"
	}
}

func contentLengthFeedback(d *document, _ ScoringRule) string {
	switch n := d.wordCount; {
	case n < 100:
		return fmt.Sprintf("Content is quite short (%d words). Consider adding more valuable information for better SEO.", n)
	case n < 200:
		return fmt.Sprintf("Content length is decent (%d words). Consider expanding with more details if relevant.", n)
	case n < 300:
		return fmt.Sprintf("Good content length (%d words) for SEO.", n)
	default:
		return fmt.Sprintf("Excellent content length (%d words) for comprehensive SEO coverage.", n)
	}
}

func readabilityFeedback(d *document, _ ScoringRule) string {
	switch avg := d.avgSentenceLength; {
	case avg == 0:
		return "Unable to analyze readability - insufficient content."
	case avg < 10:
		return fmt.Sprintf("Sentences are very short (avg: %.1f words). Consider combining some sentences for better flow.", avg)
	case avg <= 20:
		return fmt.Sprintf("Good sentence length (avg: %.1f words) for readability.", avg)
	case avg <= 25:
		return fmt.Sprintf("Sentences are slightly long (avg: %.1f words). Consider breaking some into shorter sentences.", avg)
	default:
		return fmt.Sprintf("Sentences are too long (avg: %.1f words). Break them into shorter sentences for better readability.", avg)
	}
}

func readabilityRecommendation(d *document, _ ScoringRule) string {
	switch avg := d.avgSentenceLength; {
	case avg == 0:
		return "Write complete sentences so readability can be evaluated"
	case avg > 25:
		return "Break long sentences into shorter ones for better readability"
	case avg < 10:
		return "Combine very short sentences for better flow"
	default:
		return "Improve content readability and sentence structure"
	}
}
