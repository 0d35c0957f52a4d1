// Package importer admits CSV lead lists into a lead.Store.
//
// An import batch decodes the file, then offers each valid row to the
// store in file order. Rows that duplicate an existing lead, including one
// admitted earlier in the same batch, are skipped and named in the report.
// Malformed rows are reported with their line number. A header problem
// aborts the batch before any row is admitted.
package importer

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/JonMunkholm/leadlist/internal/lead"
	"github.com/JonMunkholm/leadlist/internal/leadcsv"
	"github.com/JonMunkholm/leadlist/internal/logging"
)

// Importer runs import batches against one store.
type Importer struct {
	store *lead.Store
}

// New returns an Importer that admits rows into store.
func New(store *lead.Store) *Importer {
	return &Importer{store: store}
}

// ImportBatch imports CSV text.
//
// Decoding failures (ErrNoData, *lead.SchemaError) are returned with an
// empty report. If a store write fails the batch stops and the partial
// report is returned with the error; rows admitted before the failure stay
// admitted.
func (im *Importer) ImportBatch(ctx context.Context, text string) (Report, error) {
	d, err := leadcsv.Decode(text)
	if err != nil {
		return newReport(), err
	}
	return im.run(ctx, im.store, d, false)
}

// ImportReader is ImportBatch over a reader whose encoding is detected.
func (im *Importer) ImportReader(ctx context.Context, r io.Reader) (Report, error) {
	d, err := leadcsv.DecodeReader(r)
	if err != nil {
		return newReport(), err
	}
	return im.run(ctx, im.store, d, false)
}

// Preview reports what ImportBatch would do without changing the store.
func (im *Importer) Preview(ctx context.Context, text string) (Report, error) {
	d, err := leadcsv.Decode(text)
	if err != nil {
		return newReport(), err
	}
	return im.run(ctx, im.store.Scratch(), d, true)
}

// PreviewReader is Preview over a reader whose encoding is detected.
func (im *Importer) PreviewReader(ctx context.Context, r io.Reader) (Report, error) {
	d, err := leadcsv.DecodeReader(r)
	if err != nil {
		return newReport(), err
	}
	return im.run(ctx, im.store.Scratch(), d, true)
}

func (im *Importer) run(ctx context.Context, store *lead.Store, d *leadcsv.Decoded, dryRun bool) (Report, error) {
	logger := logging.WithFields(ctx,
		"lines", d.Lines(),
		"encoding", d.Encoding,
		"dry_run", dryRun,
	)

	rep := newReport()
	rep.Encoding = d.Encoding
	rep.DryRun = dryRun
	rep.Errors = append(rep.Errors, d.Errors...)

	err := im.admit(ctx, store, d.Rows, &rep)
	slices.SortStableFunc(rep.Errors, func(a, b lead.RowError) int { return cmp.Compare(a.Line, b.Line) })
	rep.Invalid = len(rep.Errors)

	if err != nil {
		logger.Error("import aborted",
			"error", err,
			"admitted", rep.Admitted,
			"duplicates", rep.DuplicateSkipped,
		)
		return rep, err
	}

	logger.Info("import finished",
		"admitted", rep.Admitted,
		"duplicates", rep.DuplicateSkipped,
		"invalid", rep.Invalid,
	)
	if !dryRun {
		lead.LogAudit(ctx, lead.ActionImport, lead.Record{},
			slog.Int("admitted", rep.Admitted),
			slog.Int("duplicates", rep.DuplicateSkipped),
			slog.Int("invalid", rep.Invalid),
		)
	}
	return rep, nil
}

func (im *Importer) admit(ctx context.Context, store *lead.Store, rows []leadcsv.Row, rep *Report) error {
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("import stopped before line %d: %w", row.Line, err)
		}

		_, created, err := store.CreateUnlessDuplicate(ctx, row.Fields)
		var ve *lead.ValidationError
		switch {
		case errors.As(err, &ve):
			rep.Errors = append(rep.Errors, lead.RowError{Line: row.Line, Reason: leadcsv.ReasonMissingRequired})
		case err != nil:
			return fmt.Errorf("import line %d: %w", row.Line, err)
		case created:
			rep.Admitted++
		default:
			rep.DuplicateSkipped++
			rep.Duplicates = append(rep.Duplicates, row.Fields.CompanyName)
		}
	}
	return nil
}
