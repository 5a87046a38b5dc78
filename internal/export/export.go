package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/scan-io-git/meetup-data/internal/record"
)

// Format selects how records are serialized.
type Format string

const (
	// FormatRaw writes the nested records as one JSON array.
	FormatRaw Format = "json"
	// FormatCSV writes flattened records as CSV with a sorted header.
	FormatCSV Format = "csv"
	// FormatFlatJSON writes flattened records as one JSON array.
	FormatFlatJSON Format = "flat-json"
)

// Output encodings for CSV.
const (
	EncodingUTF8        = "utf-8"
	EncodingUTF8BOM     = "utf-8-bom"
	EncodingWindows1252 = "windows-1252"
	EncodingWindows1251 = "windows-1251"
)

// ErrNoRecords is returned when asked to export an empty record set.
var ErrNoRecords = errors.New("no records to export")

var encodings = map[string]encoding.Encoding{
	EncodingUTF8:        nil,
	EncodingUTF8BOM:     unicode.UTF8BOM,
	EncodingWindows1252: charmap.Windows1252,
	EncodingWindows1251: charmap.Windows1251,
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatRaw, FormatCSV, FormatFlatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// ValidateEncoding checks that name is a supported output encoding.
func ValidateEncoding(name string) error {
	if _, ok := encodings[strings.ToLower(name)]; !ok {
		return fmt.Errorf("unsupported encoding %q, expected one of: %s", name, strings.Join(SupportedEncodings(), ", "))
	}
	return nil
}

// SupportedEncodings lists the accepted encoding names.
func SupportedEncodings() []string {
	names := make([]string, 0, len(encodings))
	for name := range encodings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Exporter serializes a record set to a writer.
type Exporter struct {
	Format Format
	// Encoding applies to CSV output only; JSON is always UTF-8.
	Encoding string
}

// NewExporter creates an exporter, validating format and encoding.
func NewExporter(format Format, enc string) (*Exporter, error) {
	if _, err := ParseFormat(string(format)); err != nil {
		return nil, err
	}
	if enc == "" {
		enc = EncodingUTF8
	}
	if err := ValidateEncoding(enc); err != nil {
		return nil, err
	}
	if format != FormatCSV && strings.ToLower(enc) != EncodingUTF8 {
		return nil, fmt.Errorf("encoding %q is only supported for csv output", enc)
	}
	return &Exporter{Format: format, Encoding: strings.ToLower(enc)}, nil
}

// Export writes records to w. It refuses an empty record set.
func (e *Exporter) Export(records []record.Value, w io.Writer) error {
	if len(records) == 0 {
		return ErrNoRecords
	}

	switch e.Format {
	case FormatRaw:
		return writeJSON(w, records)
	case FormatFlatJSON:
		return writeJSON(w, flattenAll(records))
	case FormatCSV:
		return e.writeCSV(w, flattenAll(records))
	default:
		return fmt.Errorf("unknown output format %q", e.Format)
	}
}

func flattenAll(records []record.Value) []record.Value {
	rows := make([]record.Value, len(records))
	for i, rec := range records {
		rows[i] = Flatten(rec, true)
	}
	return rows
}

// writeJSON writes values as a single-line JSON array followed by a newline.
func writeJSON(w io.Writer, values []record.Value) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(values); err != nil {
		return fmt.Errorf("failed to write json: %w", err)
	}
	return nil
}

func (e *Exporter) writeCSV(w io.Writer, rows []record.Value) (err error) {
	out := w
	if enc := encodings[e.Encoding]; enc != nil {
		tw := transform.NewWriter(w, encoding.ReplaceUnsupported(enc.NewEncoder()))
		defer func() {
			if cerr := tw.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("failed to flush encoded output: %w", cerr)
			}
		}()
		out = tw
	}

	header := Header(rows)
	writer := csv.NewWriter(out)
	writer.UseCRLF = true
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	cells := make([]string, len(header))
	for _, row := range rows {
		for i, key := range header {
			cells[i] = ""
			if v, ok := row.Get(key); ok {
				cells[i] = Cell(v)
			}
		}
		if err := writer.Write(cells); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}
