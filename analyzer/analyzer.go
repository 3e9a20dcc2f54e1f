package analyzer

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	recommendationThreshold = 80
	maxRecommendations      = 5

	allGoodMessage    = "Excellent! Your content is well-optimized for SEO"
	minorTweakMessage = "Good SEO optimization! Minor improvements could enhance performance further"
)

var sentenceSplitter = regexp.MustCompile(`[.!?]+`)

// Analyzer scores content, keyword and title triples for on-page SEO. It
// holds only its immutable policy and is safe for concurrent use.
type Analyzer struct {
	policy Policy
}

// New creates an Analyzer using the default policy
func New() *Analyzer {
	return &Analyzer{policy: DefaultPolicy()}
}

// NewWithPolicy creates an Analyzer for the given policy. The policy is
// validated up front so Analyze never meets a missing factor.
func NewWithPolicy(policy Policy) (*Analyzer, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &Analyzer{policy: policy}, nil
}

// Policy returns the scoring policy in use
func (a *Analyzer) Policy() Policy {
	return a.policy
}

// Analyze performs a complete SEO analysis of the given content
func (a *Analyzer) Analyze(content, keyword, title string) ScoreReport {
	doc := measure(content, keyword, title)

	report := ScoreReport{
		Factors: make(map[FactorName]ScoreFactor, len(factorOrder)),
	}

	overall := 0.0
	for _, name := range factorOrder {
		f := factorTable[name]
		rule := a.policy.Rules[name]

		score := clampScore(f.score(doc, rule))
		report.Factors[name] = ScoreFactor{
			Value:    f.value(doc),
			Score:    score,
			Feedback: f.feedback(doc, rule),
		}
		overall += score * rule.Weight
	}

	report.OverallScore = math.Round(clampScore(overall)*10) / 10
	report.Recommendations = a.generateRecommendations(doc, report.Factors)

	return report
}

// measure takes every raw measurement the factors need in one pass
func measure(content, keyword, title string) *document {
	doc := &document{
		wordCount:   len(strings.Fields(content)),
		titleLength: utf8.RuneCountInString(title),
	}

	lowerKeyword := strings.ToLower(keyword)
	lowerTitle := strings.ToLower(title)

	if lowerKeyword != "" {
		pattern := regexp.MustCompile(regexp.QuoteMeta(lowerKeyword))
		doc.occurrences = len(pattern.FindAllStringIndex(strings.ToLower(content), -1))
		doc.keywordInTitle = strings.Contains(lowerTitle, lowerKeyword)
		doc.keywordAtStart = strings.HasPrefix(lowerTitle, lowerKeyword)
	}

	if doc.wordCount > 0 {
		doc.density = float64(doc.occurrences) * 100 / float64(doc.wordCount)
	}

	for _, sentence := range sentenceSplitter.Split(content, -1) {
		if strings.TrimSpace(sentence) != "" {
			doc.sentenceCount++
		}
	}
	if doc.sentenceCount > 0 && doc.wordCount > 0 {
		doc.avgSentenceLength = float64(doc.wordCount) / float64(doc.sentenceCount)
	}

	return doc
}

// generateRecommendations lists one message per weak factor, worst first
func (a *Analyzer) generateRecommendations(doc *document, factors map[FactorName]ScoreFactor) []string {
	ranked := make([]FactorName, len(factorOrder))
	copy(ranked, factorOrder)
	sort.SliceStable(ranked, func(i, j int) bool {
		return factors[ranked[i]].Score < factors[ranked[j]].Score
	})

	recommendations := make([]string, 0, maxRecommendations)
	weak := 0
	for _, name := range ranked {
		if factors[name].Score >= recommendationThreshold {
			continue
		}
		weak++
		if text := factorTable[name].recommend(doc, a.policy.Rules[name]); text != "" {
			recommendations = append(recommendations, text)
		}
	}

	switch {
	case weak == 0:
		recommendations = append(recommendations, allGoodMessage)
	case len(recommendations) == 0:
		recommendations = append(recommendations, minorTweakMessage)
	}

	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}
	return recommendations
}
