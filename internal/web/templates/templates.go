// Package templates renders the HTML fragments returned to htmx requests.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/leadlist/internal/importer"
)

// ErrorAlert renders a dismissible error box with the support code.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<div class="alert alert-error" role="alert"><p class="alert-message">%s</p>`,
			templ.EscapeString(message))
		if err != nil {
			return err
		}
		if action != "" {
			if _, err := fmt.Fprintf(w, `<p class="alert-action">%s</p>`, templ.EscapeString(action)); err != nil {
				return err
			}
		}
		_, err = fmt.Fprintf(w, `<p class="alert-code">Code: %s</p></div>`, templ.EscapeString(code))
		return err
	})
}

// ImportSummary renders the outcome of an import or preview.
func ImportSummary(s importer.Summary, dryRun bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}

		title := "インポート完了"
		if dryRun {
			title = "インポートプレビュー"
		}
		p.printf(`<div class="import-summary"><h3>%s</h3><ul class="counts">`, templ.EscapeString(title))
		p.printf(`<li class="added">✅ 新規追加: %d件</li>`, s.Admitted)
		if s.DuplicateSkipped > 0 {
			p.printf(`<li class="skipped">⏭️ スキップ（重複）: %d件</li>`, s.DuplicateSkipped)
		}
		if s.Invalid > 0 {
			p.printf(`<li class="invalid">❌ エラー: %d件</li>`, s.Invalid)
		}
		p.printf(`</ul>`)

		if len(s.Duplicates) > 0 {
			p.printf(`<h4>重複した企業</h4><ul class="duplicates">`)
			for _, name := range s.Duplicates {
				p.printf(`<li>%s</li>`, templ.EscapeString(name))
			}
			if s.MoreDuplicates > 0 {
				p.printf(`<li class="more">...他%d件</li>`, s.MoreDuplicates)
			}
			p.printf(`</ul>`)
		}

		if len(s.Errors) > 0 {
			p.printf(`<h4>エラー詳細</h4><ul class="errors">`)
			for _, e := range s.Errors {
				p.printf(`<li>%s</li>`, templ.EscapeString(e.Error()))
			}
			if s.MoreErrors > 0 {
				p.printf(`<li class="more">...他%d件</li>`, s.MoreErrors)
			}
			p.printf(`</ul>`)
		}

		p.printf(`</div>`)
		return p.err
	})
}

// printer keeps the first write error so fragments can be written
// without checking every call.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
