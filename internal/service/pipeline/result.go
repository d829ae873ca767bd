package pipeline

import "github.com/heartmarshall/lexitrack/internal/domain"

// Processor labels.
const (
	ProcessorLemmatizer = "lemmatizer"
	ProcessorFallback   = "fallback"
)

// ProcessResult is the response for one processed sentence.
type ProcessResult struct {
	Success          bool             `json:"success"`
	ProcessingTimeMs float64          `json:"processingTimeMs"`
	Processor        string           `json:"processor"`
	Processed        ProcessedSummary `json:"processed"`
	User             UserSummary      `json:"user"`
	FallbackUsed     bool             `json:"fallbackUsed,omitempty"`
}

// ProcessedSummary describes the sentence itself.
type ProcessedSummary struct {
	TotalWords        int      `json:"totalWords"`
	UniqueWordsCount  int      `json:"uniqueWordsCount"`
	UniqueWords       []string `json:"uniqueWords"`
	NewlyLearnedWords []string `json:"newlyLearnedWords"`
	NewlyLearnedCount int      `json:"newlyLearnedCount"`
	SkippedTokens     int      `json:"skippedTokens,omitempty"`
}

// UserSummary describes the user's statistics after the sentence was merged.
type UserSummary struct {
	UserID                  int64              `json:"userId"`
	TotalUniqueWordsLearned int                `json:"totalUniqueWordsLearned"`
	TodayWordsProcessed     int                `json:"todayWordsProcessed"`
	TodayUniqueWords        int                `json:"todayUniqueWords"`
	MostUsedWords           []domain.WordCount `json:"mostUsedWords"`
}
