// Package leadcsv reads and writes lead lists as CSV.
//
// The dialect is deliberately small: comma separated, double-quote quoting
// with "" as an escaped quote, header row of Japanese labels (see package
// schema). Decoding is forgiving about line endings, blank lines, BOMs and
// missing trailing cells, and reports bad rows individually instead of
// failing the whole file.
package leadcsv

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/JonMunkholm/leadlist/internal/lead"
	"github.com/JonMunkholm/leadlist/internal/schema"
)

// ErrNoData is returned when the input has no header or no data row.
var ErrNoData = errors.New("empty file: CSV has no data rows")

// ReasonMissingRequired is the RowError reason for a row with a blank
// company name, contact person or industry.
const ReasonMissingRequired = "必須項目（会社名、担当者名、業種）が不足しています"

// ReasonUnterminatedQuote is the RowError reason for a row whose quoted
// field is never closed.
const ReasonUnterminatedQuote = "引用符が閉じられていません"

const bom = "\uFEFF"

// Row is one successfully decoded data row.
type Row struct {
	Line   int
	Fields lead.Fields
}

// Decoded is the result of decoding a CSV file. Rows and Errors are each in
// file order; together they account for every data line.
type Decoded struct {
	Header   []string
	Rows     []Row
	Errors   []lead.RowError
	Encoding string
}

// Lines returns how many data lines were decoded, good or bad.
func (d *Decoded) Lines() int {
	return len(d.Rows) + len(d.Errors)
}

// ParseLine splits one logical CSV line into cells.
//
// A double quote at the start of a cell opens a quoted field; inside it ""
// is a literal quote and commas or newlines are literal. A quote anywhere
// else is an ordinary character. Cells are not trimmed.
func ParseLine(line string) []string {
	var (
		cells     []string
		cur       strings.Builder
		inQuote   bool
		cellStart = true
	)
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case inQuote:
			if c != '"' {
				cur.WriteByte(c)
			} else if i+1 < len(line) && line[i+1] == '"' {
				cur.WriteByte('"')
				i++
			} else {
				inQuote = false
			}
		case c == '"' && cellStart:
			inQuote = true
		case c == ',':
			cells = append(cells, cur.String())
			cur.Reset()
			cellStart = true
			continue
		default:
			cur.WriteByte(c)
		}
		cellStart = false
	}
	return append(cells, cur.String())
}

// scanQuotes advances the quoting state of ParseLine over s.
func scanQuotes(s string, inQuote, cellStart bool) (bool, bool) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inQuote:
			if c == '"' {
				if i+1 < len(s) && s[i+1] == '"' {
					i++
				} else {
					inQuote = false
				}
			}
		case c == '"' && cellStart:
			inQuote = true
		case c == ',':
			cellStart = true
			continue
		}
		cellStart = false
	}
	return inQuote, cellStart
}

// logicalLine is one CSV record's text. Unterminated is set when a quoted
// field opened on this line never closed; Text is then only the first
// physical line.
type logicalLine struct {
	Text         string
	Unterminated bool
}

// splitLines breaks text into logical lines. A newline inside an open
// quoted field continues the current line. A quoted field still open at
// end of input yields one unterminated line and splitting resumes on the
// next physical line. Trailing carriage returns are stripped and blank
// lines dropped.
func splitLines(text string) []logicalLine {
	physical := strings.Split(text, "\n")
	for i := range physical {
		physical[i] = strings.TrimSuffix(physical[i], "\r")
	}

	var lines []logicalLine
	for i := 0; i < len(physical); {
		inQuote, cellStart := scanQuotes(physical[i], false, true)
		end := i
		for inQuote && end+1 < len(physical) {
			end++
			inQuote, cellStart = scanQuotes(physical[end], true, cellStart)
		}

		if inQuote {
			lines = append(lines, logicalLine{Text: physical[i], Unterminated: true})
			i++
			continue
		}
		joined := strings.Join(physical[i:end+1], "\n")
		if strings.TrimSpace(joined) != "" {
			lines = append(lines, logicalLine{Text: joined})
		}
		i = end + 1
	}
	return lines
}

// Decode parses a whole CSV document.
//
// It fails with ErrNoData when there is no data line and with a
// *lead.SchemaError when a required header is missing; in both cases no
// row is examined. Otherwise every data line yields either a Row or a
// RowError. Line numbers count non-blank logical lines, header = 1.
func Decode(text string) (*Decoded, error) {
	lines := splitLines(strings.TrimPrefix(text, bom))
	if len(lines) < 2 {
		return nil, ErrNoData
	}

	header := ParseLine(lines[0].Text)
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	if missing := schema.MissingHeaders(header); len(missing) > 0 {
		return nil, &lead.SchemaError{Missing: missing}
	}

	// Later duplicates of a label win.
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[h] = i
	}

	d := &Decoded{Header: header, Encoding: EncodingUTF8}
	for i, line := range lines[1:] {
		lineNo := i + 2
		if line.Unterminated {
			d.Errors = append(d.Errors, lead.RowError{Line: lineNo, Reason: ReasonUnterminatedQuote})
			continue
		}
		f, err := decodeRow(ParseLine(line.Text), pos)
		if err != nil {
			d.Errors = append(d.Errors, lead.RowError{Line: lineNo, Reason: err.Error()})
			continue
		}
		d.Rows = append(d.Rows, Row{Line: lineNo, Fields: f})
	}
	return d, nil
}

// DecodeReader reads r, normalizing its encoding, and decodes it.
func DecodeReader(r io.Reader) (*Decoded, error) {
	text, enc, err := ReadText(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	d, err := Decode(text)
	if err != nil {
		return nil, err
	}
	d.Encoding = enc
	return d, nil
}

func decodeRow(cells []string, pos map[string]int) (f lead.Fields, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	get := func(label string) string {
		i, ok := pos[label]
		if !ok || i >= len(cells) {
			return ""
		}
		return strings.TrimSpace(cells[i])
	}

	f = lead.Fields{
		CompanyName:   get(schema.CompanyName),
		ContactPerson: get(schema.ContactPerson),
		Phone:         get(schema.Phone),
		Email:         get(schema.Email),
		Address:       get(schema.Address),
		Industry:      get(schema.Industry),
		Status:        lead.ParseStatus(get(schema.Status)),
		ProspectLevel: lead.ParseProspectLevel(get(schema.ProspectLevel)),
		Notes:         get(schema.Notes),
	}
	if f.CompanyName == "" || f.ContactPerson == "" || f.Industry == "" {
		return lead.Fields{}, errors.New(ReasonMissingRequired)
	}

	raw := get(schema.LastContact)
	f.LastContact, err = lead.ParseDate(raw)
	if err != nil {
		return lead.Fields{}, fmt.Errorf("%sの形式が不正です: %s", schema.LastContact, raw)
	}
	return f, nil
}

// Encode writes records as CSV: a BOM, an unquoted header of column
// labels, then one row per record with every cell quoted. Rows are
// separated by "\n" with no trailing newline.
func Encode(w io.Writer, records []lead.Record, cols []schema.Column) error {
	var b strings.Builder
	b.WriteString(bom)
	b.WriteString(strings.Join(schema.Labels(cols), ","))
	for _, r := range records {
		b.WriteByte('\n')
		for i, c := range cols {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(c.Value(r), `"`, `""`))
			b.WriteByte('"')
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// ExportFileName returns the download name for an export made at now.
func ExportFileName(now time.Time) string {
	return "営業リスト_" + now.Format(lead.DateLayout) + ".csv"
}
