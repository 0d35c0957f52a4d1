package templates

import (
	"context"
	"strings"
	"testing"

	"github.com/JonMunkholm/leadlist/internal/importer"
	"github.com/JonMunkholm/leadlist/internal/lead"
)

func TestErrorAlert_Escapes(t *testing.T) {
	var b strings.Builder
	if err := ErrorAlert("<script>", "retry", "VAL001").Render(context.Background(), &b); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	if strings.Contains(out, "<script>") {
		t.Errorf("message not escaped: %s", out)
	}
	if !strings.Contains(out, "Code: VAL001") || !strings.Contains(out, "retry") {
		t.Errorf("missing code or action: %s", out)
	}
}

func TestImportSummary(t *testing.T) {
	s := importer.Summary{
		Admitted:         2,
		DuplicateSkipped: 7,
		Invalid:          1,
		Duplicates:       []string{"A&B商事"},
		MoreDuplicates:   6,
		Errors:           []lead.RowError{{Line: 3, Reason: "必須項目が不足しています"}},
	}

	var b strings.Builder
	if err := ImportSummary(s, true).Render(context.Background(), &b); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	for _, want := range []string{"インポートプレビュー", "新規追加: 2件", "スキップ（重複）: 7件", "A&amp;B商事", "...他6件", "行3: 必須項目が不足しています"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}
