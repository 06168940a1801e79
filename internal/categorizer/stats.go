package categorizer

import (
	"github.com/bank-statementer/statementer/internal/logging"
	"github.com/bank-statementer/statementer/internal/metrics"
)

// Stats counts the outcome of one categorization pass.
type Stats struct {
	Total         int
	Matched       int // a tag cleared the threshold
	Preserved     int // no match, prior category kept
	Uncategorized int
}

// Record counts one transaction under result, one of the metrics.Result* values.
func (s *Stats) Record(result string) {
	s.Total++
	switch result {
	case metrics.ResultMatched:
		s.Matched++
	case metrics.ResultPreserved:
		s.Preserved++
	default:
		s.Uncategorized++
	}
}

// MatchRate is the matched share of Total as a percentage.
func (s Stats) MatchRate() float64 {
	if s.Total == 0 {
		return 0.0
	}
	return float64(s.Matched) / float64(s.Total) * 100.0
}

// LogSummary logs the counts at info level.
func (s Stats) LogSummary(logger logging.Logger, tagCount int) {
	if logger == nil {
		return
	}
	logger.Info("Categorized transactions",
		logging.F(logging.FieldCount, s.Total),
		logging.F("matched", s.Matched),
		logging.F("preserved", s.Preserved),
		logging.F("uncategorized", s.Uncategorized),
		logging.F("match_rate", s.MatchRate()),
		logging.F(logging.FieldTagCount, tagCount))
}
