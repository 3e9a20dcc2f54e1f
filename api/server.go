package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seo-optimizer/llm-service/analyzer"
	"github.com/seo-optimizer/llm-service/generator"
	"github.com/seo-optimizer/llm-service/logging"
	"github.com/seo-optimizer/llm-service/middleware"
	"github.com/seo-optimizer/llm-service/stats"
)

const (
	serviceName          = "LLM Service"
	generationSourceHead = "X-Generation-Source"
	maxWordCount         = 5000
)

// UsageStore counts analyses and generations
type UsageStore interface {
	RecordAnalysis()
	RecordGeneration(fromProvider bool)
	GetCurrentStats() stats.MonthlyStats
}

// Config holds the collaborators of the HTTP server
type Config struct {
	Analyzer        *analyzer.Analyzer
	Generator       *generator.Generator
	Usage           UsageStore
	Statistics      *logging.Statistics
	Metrics         *middleware.Metrics
	GenerationRate  float64
	GenerationBurst int
	Logger          *slog.Logger
}

// Server exposes the analyzer and the generator over HTTP
type Server struct {
	analyzer    *analyzer.Analyzer
	generator   *generator.Generator
	usage       UsageStore
	statistics  *logging.Statistics
	metrics     *middleware.Metrics
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

// NewServer creates a server, filling in defaults for missing collaborators
func NewServer(config Config) *Server {
	s := &Server{
		analyzer:   config.Analyzer,
		generator:  config.Generator,
		usage:      config.Usage,
		statistics: config.Statistics,
		metrics:    config.Metrics,
		logger:     config.Logger,
	}

	if s.analyzer == nil {
		s.analyzer = analyzer.New()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.generator == nil {
		s.generator = generator.New(nil, generator.WithLogger(s.logger))
	}
	if s.statistics == nil {
		s.statistics = logging.NewStatistics(false)
	}
	if s.metrics == nil {
		s.metrics = middleware.NewMetrics()
	}
	if config.GenerationRate > 0 {
		s.rateLimiter = middleware.NewRateLimiter(config.GenerationRate, config.GenerationBurst)
	}

	return s
}

// Router builds the gin engine with middleware and routes
func (s *Server) Router() *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(s.logger))
	r.Use(middleware.CORS())
	r.Use(s.metrics.Instrument())
	r.Use(middleware.StatsMiddleware(s.statistics))
	// innermost, so recovered panics still reach the recorders above
	r.Use(middleware.ErrorHandler(s.logger))

	r.GET("/health", s.handleHealth)
	r.GET("/statistics", s.handleStatistics)
	r.GET("/metrics", s.metrics.Handler())

	r.POST("/analyze-seo", s.handleAnalyzeSEO)

	generation := r.Group("/")
	if s.rateLimiter != nil {
		generation.Use(s.rateLimiter.RateLimit())
	}
	generation.POST("/generate-keywords", s.handleGenerateKeywords)
	generation.POST("/generate-titles", s.handleGenerateTitles)
	generation.POST("/generate-topics", s.handleGenerateTopics)
	generation.POST("/generate-content", s.handleGenerateContent)

	return r
}

// AnalyzeRequest is the body of POST /analyze-seo
type AnalyzeRequest struct {
	Content string `json:"content" binding:"required"`
	Keyword string `json:"keyword" binding:"required"`
	Title   string `json:"title" binding:"required"`
}

// KeywordsRequest is the body of POST /generate-keywords
type KeywordsRequest struct {
	SeedKeyword string `json:"seed_keyword" binding:"required"`
}

// KeywordsResponse is the response of POST /generate-keywords
type KeywordsResponse struct {
	Keywords       []string `json:"keywords"`
	ProcessingTime float64  `json:"processing_time"`
}

// TitlesRequest is the body of POST /generate-titles
type TitlesRequest struct {
	Keyword string `json:"keyword" binding:"required"`
	Tone    string `json:"tone"`
}

// TitlesResponse is the response of POST /generate-titles
type TitlesResponse struct {
	Titles         []string `json:"titles"`
	ProcessingTime float64  `json:"processing_time"`
}

// TopicsRequest is the body of POST /generate-topics
type TopicsRequest struct {
	Title   string `json:"title" binding:"required"`
	Keyword string `json:"keyword" binding:"required"`
}

// TopicsResponse is the response of POST /generate-topics
type TopicsResponse struct {
	Topics         []generator.Outline `json:"topics"`
	ProcessingTime float64             `json:"processing_time"`
}

// ContentRequest is the body of POST /generate-content
type ContentRequest struct {
	Title       string          `json:"title" binding:"required"`
	Keyword     string          `json:"keyword" binding:"required"`
	Outline     json.RawMessage `json:"outline"`
	ContentType string          `json:"content_type"`
	WordCount   int             `json:"word_count"`
}

// ContentResponse is the response of POST /generate-content
type ContentResponse struct {
	Content        string  `json:"content"`
	ProcessingTime float64 `json:"processing_time"`
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": float64(time.Now().UnixMilli()) / 1000,
		"service":   serviceName,
	})
}

func (s *Server) handleStatistics(c *gin.Context) {
	result := s.statistics.GetStatistics()
	result["scoringPolicy"] = s.analyzer.Policy().Version
	result["providerConfigured"] = s.generator.HasProvider()
	if s.usage != nil {
		result["usage"] = s.usage.GetCurrentStats()
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleAnalyzeSEO(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "content, keyword, and title are required")
		return
	}

	report := s.analyzer.Analyze(req.Content, req.Keyword, req.Title)

	s.metrics.ObserveScore(report.OverallScore)
	if s.usage != nil {
		s.usage.RecordAnalysis()
	}

	c.JSON(http.StatusOK, report)
}

// recordGeneration publishes where a generated value came from
func (s *Server) recordGeneration(c *gin.Context, task string, source generator.Source, err error) {
	c.Header(generationSourceHead, string(source))
	s.metrics.ObserveGeneration(task, string(source))
	if s.usage != nil {
		s.usage.RecordGeneration(source == generator.SourceProvider)
	}
	if err != nil {
		s.logger.Debug("generation served from fallback",
			"task", task,
			"error", err,
			"request_id", c.GetString(middleware.RequestIDKey),
		)
	}
}

func (s *Server) handleGenerateKeywords(c *gin.Context) {
	var req KeywordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "seed_keyword is required")
		return
	}

	start := time.Now()
	result := s.generator.GenerateKeywords(c.Request.Context(), req.SeedKeyword)
	elapsed := time.Since(start).Seconds()

	s.recordGeneration(c, "keywords", result.Source, result.Err)
	c.JSON(http.StatusOK, KeywordsResponse{
		Keywords:       result.Value,
		ProcessingTime: elapsed,
	})
}

func (s *Server) handleGenerateTitles(c *gin.Context) {
	var req TitlesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "keyword is required")
		return
	}
	if req.Tone == "" {
		req.Tone = generator.DefaultTone
	}

	start := time.Now()
	result := s.generator.GenerateTitles(c.Request.Context(), req.Keyword, req.Tone)
	elapsed := time.Since(start).Seconds()

	s.recordGeneration(c, "titles", result.Source, result.Err)
	c.JSON(http.StatusOK, TitlesResponse{
		Titles:         result.Value,
		ProcessingTime: elapsed,
	})
}

func (s *Server) handleGenerateTopics(c *gin.Context) {
	var req TopicsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "title and keyword are required")
		return
	}

	start := time.Now()
	result := s.generator.GenerateTopics(c.Request.Context(), req.Title, req.Keyword)
	elapsed := time.Since(start).Seconds()

	s.recordGeneration(c, "topics", result.Source, result.Err)
	c.JSON(http.StatusOK, TopicsResponse{
		Topics:         result.Value,
		ProcessingTime: elapsed,
	})
}

func (s *Server) handleGenerateContent(c *gin.Context) {
	var req ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "title and keyword are required")
		return
	}
	if req.WordCount < 0 || req.WordCount > maxWordCount {
		badRequest(c, "word_count must be between 0 and 5000 (0 uses the default)")
		return
	}

	start := time.Now()
	result := s.generator.GenerateContent(c.Request.Context(), generator.ContentRequest{
		Title:       req.Title,
		Keyword:     req.Keyword,
		Outline:     req.Outline,
		ContentType: req.ContentType,
		WordCount:   req.WordCount,
	})
	elapsed := time.Since(start).Seconds()

	s.recordGeneration(c, "content", result.Source, result.Err)
	c.JSON(http.StatusOK, ContentResponse{
		Content:        result.Value,
		ProcessingTime: elapsed,
	})
}
