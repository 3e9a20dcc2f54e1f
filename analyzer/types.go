package analyzer

// FactorName identifies one scored dimension of SEO quality
type FactorName string

const (
	KeywordDensity FactorName = "keyword_density"
	TitleLength    FactorName = "title_length"
	KeywordInTitle FactorName = "keyword_in_title"
	ContentLength  FactorName = "content_length"
	Readability    FactorName = "readability"
)

// ScoreFactor is the evaluation of a single factor
type ScoreFactor struct {
	Value    interface{} `json:"value"`
	Score    float64     `json:"score"`
	Feedback string      `json:"feedback"`
}

// ScoreReport represents the complete analysis of a content/keyword/title triple
type ScoreReport struct {
	OverallScore    float64                    `json:"overall_score"`
	Factors         map[FactorName]ScoreFactor `json:"factors"`
	Recommendations []string                   `json:"recommendations"`
}

// ScoringRule is the static configuration of one factor. Min and Max bound
// the optimal band for factors that have one.
type ScoringRule struct {
	Weight float64  `json:"weight" yaml:"weight"`
	Min    *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max    *float64 `json:"max,omitempty" yaml:"max,omitempty"`
}

// document holds the measurements taken once per Analyze call and shared by
// every factor.
type document struct {
	wordCount         int
	occurrences       int
	density           float64
	titleLength       int
	keywordInTitle    bool
	keywordAtStart    bool
	sentenceCount     int
	avgSentenceLength float64
}
