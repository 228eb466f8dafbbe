package report

import (
	"github.com/kudastat/kudastat/internal/model"
)

// Summary is everything shown for one statement.
type Summary struct {
	Account       model.StatementMetadata `json:"-"`
	Metrics       Metrics                 `json:"metrics"`
	TopRecipients []Recipient             `json:"top_recipients"`
	Monthly       []Month                 `json:"monthly"`
	Categories    Breakdown               `json:"categories"`
}

// Summarize computes every section of the summary over t.
func Summarize(t *model.StatementTable, topN int) Summary {
	return Summary{
		Account:       t.Metadata,
		Metrics:       ComputeMetrics(t),
		TopRecipients: TopRecipients(t, topN),
		Monthly:       Monthly(t),
		Categories:    CategoryBreakdown(t),
	}
}
