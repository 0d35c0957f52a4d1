package leadcsv

import (
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/leadlist/internal/lead"
	"github.com/JonMunkholm/leadlist/internal/schema"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"plain", "a,b,c", []string{"a", "b", "c"}},
		{"quoted comma", `"a,b",c`, []string{"a,b", "c"}},
		{"escaped quote", `"say ""hi""",x`, []string{`say "hi"`, "x"}},
		{"empty cells", ",,", []string{"", "", ""}},
		{"no trimming", " a , b ", []string{" a ", " b "}},
		{"quoted newline", "\"line1\nline2\",z", []string{"line1\nline2", "z"}},
		{"quote mid cell is literal", `ab"c,d"e`, []string{`ab"c`, `d"e`}},
		{"inch mark", `A Co,3" pipe`, []string{"A Co", `3" pipe`}},
		{"text after closing quote", `"ab"c,d`, []string{"abc", "d"}},
		{"empty line", "", []string{""}},
		{"japanese", `"株式会社テスト","東京都,港区"`, []string{"株式会社テスト", "東京都,港区"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLine(tt.line); !slices.Equal(got, tt.want) {
				t.Errorf("ParseLine(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	text := "\uFEFF会社名,担当者名,電話番号,住所,業種,ステータス,見込み度,最終接触日,メモ\r\n" +
		"\r\n" +
		" 山田建設 ,山田, 03-1111-2222 ,東京都,建築,商談中,脈あり,2024/04/01,\"複数行\nのメモ\"\r\n" +
		"鈴木運送,,,,運送,,,,\r\n" +
		"伊藤食品,伊藤,,,食品工場,保留,すごく良い,,\r\n" +
		"佐藤工業,佐藤,,,建築,,,来週,\r\n" +
		"短い行,田中,\n"

	d, err := Decode(text)
	require.NoError(t, err)

	require.Len(t, d.Rows, 2)
	first := d.Rows[0]
	assert.Equal(t, 2, first.Line)
	assert.Equal(t, lead.Fields{
		CompanyName:   "山田建設",
		ContactPerson: "山田",
		Phone:         "03-1111-2222",
		Address:       "東京都",
		Industry:      "建築",
		Status:        lead.StatusNegotiating,
		ProspectLevel: lead.ProspectPromising,
		LastContact:   lead.NewDate(2024, 4, 1),
		Notes:         "複数行\nのメモ",
	}, first.Fields)

	second := d.Rows[1]
	assert.Equal(t, 4, second.Line)
	assert.Equal(t, lead.StatusUntouched, second.Fields.Status, "unknown status coerced")
	assert.Equal(t, lead.ProspectUnrated, second.Fields.ProspectLevel, "unknown prospect coerced")

	require.Len(t, d.Errors, 3)
	assert.Equal(t, lead.RowError{Line: 3, Reason: ReasonMissingRequired}, d.Errors[0])
	assert.Equal(t, 5, d.Errors[1].Line)
	assert.Contains(t, d.Errors[1].Reason, "来週")
	assert.Equal(t, lead.RowError{Line: 6, Reason: ReasonMissingRequired}, d.Errors[2])
	assert.Equal(t, 5, d.Lines())
}

func TestDecode_StrayQuoteCostsOneRow(t *testing.T) {
	text := "会社名,担当者名,業種,メモ\n" +
		"A Co,Taro,Retail,3\" pipe\n" +
		"B Co,Jiro,Retail,ok\n" +
		"C Co,Saburo,Retail,ok\n" +
		"D Co,Shiro,Retail,ok\n"

	d, err := Decode(text)
	require.NoError(t, err)
	require.Empty(t, d.Errors)
	require.Len(t, d.Rows, 4)
	assert.Equal(t, `3" pipe`, d.Rows[0].Fields.Notes)
	assert.Equal(t, "D Co", d.Rows[3].Fields.CompanyName)
	assert.Equal(t, 5, d.Rows[3].Line)
}

func TestDecode_UnterminatedQuotedField(t *testing.T) {
	text := "会社名,担当者名,業種,メモ\n" +
		"C Co,Saburo,Retail,\"two\nlines\"\n" +
		"A Co,Taro,Retail,\"never closed\n" +
		"B Co,Jiro,Retail,ok\n"

	d, err := Decode(text)
	require.NoError(t, err)
	require.Len(t, d.Errors, 1)
	assert.Equal(t, lead.RowError{Line: 3, Reason: ReasonUnterminatedQuote}, d.Errors[0])

	require.Len(t, d.Rows, 2)
	assert.Equal(t, "two\nlines", d.Rows[0].Fields.Notes)
	assert.Equal(t, 2, d.Rows[0].Line)
	assert.Equal(t, "B Co", d.Rows[1].Fields.CompanyName)
	assert.Equal(t, 4, d.Rows[1].Line)
}

func TestDecode_NoData(t *testing.T) {
	for _, text := range []string{"", "\n\n", "会社名,担当者名,業種\n", "\uFEFF会社名,担当者名,業種\r\n  \r\n"} {
		_, err := Decode(text)
		if !errors.Is(err, ErrNoData) {
			t.Errorf("Decode(%q) err = %v, want ErrNoData", text, err)
		}
	}
}

func TestDecode_MissingHeader(t *testing.T) {
	_, err := Decode("会社名,担当者名,電話番号\nA Co,Taro,03\n")

	var se *lead.SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, []string{schema.Industry}, se.Missing)
}

func TestDecode_HeaderCellsTrimmedAndQuoted(t *testing.T) {
	d, err := Decode(`" 会社名 ", 担当者名 ,"業種"` + "\n" + `A Co,Taro,Retail`)
	require.NoError(t, err)
	require.Len(t, d.Rows, 1)
	assert.Equal(t, "A Co", d.Rows[0].Fields.CompanyName)
	assert.Equal(t, "Retail", d.Rows[0].Fields.Industry)
}

func TestDecodeReader(t *testing.T) {
	d, err := DecodeReader(strings.NewReader("\uFEFF会社名,担当者名,業種\nA,B,C"))
	require.NoError(t, err)
	assert.Equal(t, EncodingUTF8, d.Encoding)
	assert.Len(t, d.Rows, 1)
}

func encodeString(t *testing.T, records []lead.Record, cols []schema.Column) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, Encode(&b, records, cols))
	return b.String()
}

func TestEncode(t *testing.T) {
	records := []lead.Record{
		{
			CompanyName:   `株式会社"テスト"`,
			ContactPerson: "山田",
			Industry:      "建築",
			Status:        lead.StatusClosed,
			ProspectLevel: lead.ProspectPromising,
			LastContact:   lead.NewDate(2024, 1, 2),
			Notes:         "a,b",
		},
	}

	got := encodeString(t, records, schema.Columns)
	want := "\uFEFF会社名,担当者名,電話番号,メールアドレス,住所,業種,ステータス,見込み度,最終接触日,メモ\n" +
		`"株式会社""テスト""","山田","","","","建築","成約","脈あり","2024-01-02","a,b"`
	assert.Equal(t, want, got)

	assert.Equal(t, "\uFEFF会社名,担当者名,電話番号,メールアドレス,住所,業種,ステータス,見込み度,最終接触日,メモ",
		encodeString(t, nil, schema.Columns), "header only")
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	records := []lead.Record{
		{
			ID: "1", CompanyName: "山田建設", ContactPerson: "山田", Phone: "03-1111-2222",
			Email: "y@example.jp", Address: "東京都港区1-1", Industry: "建築",
			Status: lead.StatusNegotiating, ProspectLevel: lead.ProspectNeedsFollowUp,
			LastContact: lead.NewDate(2024, 2, 29), Notes: "He said \"call back\"\n来月",
		},
		{
			ID: "2", CompanyName: "鈴木運送", ContactPerson: "鈴木", Industry: "運送",
			Status: lead.StatusUntouched, ProspectLevel: lead.ProspectUnrated,
		},
	}

	d, err := Decode(encodeString(t, records, schema.Columns))
	require.NoError(t, err)
	require.Empty(t, d.Errors)
	require.Len(t, d.Rows, len(records))
	for i, r := range records {
		assert.Equal(t, r.Fields(), d.Rows[i].Fields)
	}
}

func TestExportFileName(t *testing.T) {
	now := time.Date(2024, 7, 9, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "営業リスト_2024-07-09.csv", ExportFileName(now))
}
