package importer

import (
	"fmt"
	"strings"

	"github.com/JonMunkholm/leadlist/internal/lead"
)

// DefaultSummaryLimit is how many duplicates and errors a summary lists.
const DefaultSummaryLimit = 5

// Report is the outcome of one import batch.
type Report struct {
	Admitted         int             `json:"admitted"`
	DuplicateSkipped int             `json:"duplicateSkipped"`
	Invalid          int             `json:"invalid"`
	Duplicates       []string        `json:"duplicates"`
	Errors           []lead.RowError `json:"errors"`
	Encoding         string          `json:"encoding,omitempty"`
	DryRun           bool            `json:"dryRun,omitempty"`
}

func newReport() Report {
	return Report{Duplicates: []string{}, Errors: []lead.RowError{}}
}

// Summary is a Report truncated for display.
type Summary struct {
	Admitted         int
	DuplicateSkipped int
	Invalid          int
	Duplicates       []string
	MoreDuplicates   int
	Errors           []lead.RowError
	MoreErrors       int
}

// Summary keeps the first limit duplicates and errors and counts the rest.
func (r Report) Summary(limit int) Summary {
	if limit < 0 {
		limit = 0
	}
	s := Summary{
		Admitted:         r.Admitted,
		DuplicateSkipped: r.DuplicateSkipped,
		Invalid:          r.Invalid,
	}
	s.Duplicates, s.MoreDuplicates = truncate(r.Duplicates, limit)
	s.Errors, s.MoreErrors = truncate(r.Errors, limit)
	return s
}

func truncate[T any](items []T, limit int) ([]T, int) {
	if len(items) <= limit {
		return items, 0
	}
	return items[:limit], len(items) - limit
}

// Text renders the report as the Japanese completion message shown to
// users after an import.
func (r Report) Text() string {
	s := r.Summary(DefaultSummaryLimit)

	var b strings.Builder
	b.WriteString("インポート完了\n\n")
	fmt.Fprintf(&b, "✅ 新規追加: %d件\n", s.Admitted)
	if s.DuplicateSkipped > 0 {
		fmt.Fprintf(&b, "⏭️ スキップ（重複）: %d件\n", s.DuplicateSkipped)
	}
	if s.Invalid > 0 {
		fmt.Fprintf(&b, "❌ エラー: %d件\n", s.Invalid)
	}

	if len(s.Duplicates) > 0 {
		b.WriteString("\n重複した企業:\n")
		for _, name := range s.Duplicates {
			fmt.Fprintf(&b, "- %s\n", name)
		}
		if s.MoreDuplicates > 0 {
			fmt.Fprintf(&b, "...他%d件\n", s.MoreDuplicates)
		}
	}

	if len(s.Errors) > 0 {
		b.WriteString("\nエラー詳細:\n")
		for _, e := range s.Errors {
			b.WriteString(e.Error())
			b.WriteByte('\n')
		}
		if s.MoreErrors > 0 {
			fmt.Fprintf(&b, "\n...他%d件のエラー", s.MoreErrors)
		}
	}
	return b.String()
}
