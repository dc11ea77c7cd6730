package csvimport

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// CSVParser reads a header-mapped CSV file. A UTF-8 BOM is stripped and
// header names are normalized through the alias table.
type CSVParser struct {
	delimiter  rune
	sniff      bool
	headerMap  map[string]int
	headers    []string
	currentRow int
	totalRows  int
	reader     *csv.Reader
	bufReader  *bufio.Reader
}

// ParserOption configures a CSVParser
type ParserOption func(*CSVParser)

// WithDelimiter forces the field delimiter and disables sniffing
func WithDelimiter(d rune) ParserOption {
	return func(p *CSVParser) {
		p.delimiter = d
		p.sniff = false
	}
}

// headerAliases maps accepted header spellings to canonical column names.
var headerAliases = map[string]string{
	"staff":      ColumnStaff,
	"name":       ColumnStaff,
	"setorista":  ColumnStaff,
	"vendedor":   ColumnStaff,
	"month":      ColumnMonth,
	"mes":        ColumnMonth,
	"mês":        ColumnMonth,
	"year":       ColumnYear,
	"ano":        ColumnYear,
	"sales":      ColumnSales,
	"vendas":     ColumnSales,
	"commission": ColumnCommission,
	"comissao":   ColumnCommission,
	"comissão":   ColumnCommission,
	"bonus":      ColumnBonus,
	"bônus":      ColumnBonus,
	"expenses":   ColumnExpenses,
	"despesas":   ColumnExpenses,
}

// NewCSVParser creates a parser over r. Unless WithDelimiter is given, the
// delimiter is ';' when the first line holds more semicolons than commas.
func NewCSVParser(r io.Reader, opts ...ParserOption) (*CSVParser, error) {
	p := &CSVParser{
		delimiter: ',',
		sniff:     true,
		headerMap: make(map[string]int),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.bufReader = bufio.NewReader(r)

	bom, err := p.bufReader.Peek(3)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(bom) >= 3 && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		_, _ = p.bufReader.Discard(3)
	}

	head, err := peekHead(p.bufReader)
	if err != nil {
		return nil, err
	}
	if p.sniff {
		firstLine := head
		if i := bytes.IndexByte(head, '\n'); i >= 0 {
			firstLine = head[:i]
		}
		if bytes.Count(firstLine, []byte{';'}) > bytes.Count(firstLine, []byte{','}) {
			p.delimiter = ';'
		}
	}

	p.reader = csv.NewReader(p.bufReader)
	p.reader.Comma = p.delimiter
	p.reader.LazyQuotes = true
	p.reader.TrimLeadingSpace = true
	p.reader.FieldsPerRecord = -1

	return p, nil
}

// peekHead returns the first bytes of the stream after checking that they
// are valid UTF-8.
func peekHead(r *bufio.Reader) ([]byte, error) {
	const checkSize = 4096
	content, err := r.Peek(checkSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("failed to read file for encoding validation: %w", err)
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, ErrEmptyFile
	}
	// A multi-byte rune may be cut at the peek boundary.
	if len(content) == checkSize {
		for i := 0; i < utf8.UTFMax && len(content) > 0 && !utf8.Valid(content); i++ {
			content = content[:len(content)-1]
		}
	}
	if !utf8.Valid(content) {
		return nil, ErrInvalidEncoding
	}
	return content, nil
}

// Delimiter returns the delimiter in use
func (p *CSVParser) Delimiter() rune {
	return p.delimiter
}

// ParseHeader reads the header row and builds the column index.
func (p *CSVParser) ParseHeader() error {
	record, err := p.reader.Read()
	if err == io.EOF {
		return ErrMissingHeader
	}
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	p.headers = make([]string, len(record))
	for i, h := range record {
		name := NormalizeHeader(h)
		p.headers[i] = name
		if _, seen := p.headerMap[name]; !seen && name != "" {
			p.headerMap[name] = i
		}
	}
	if len(p.headerMap) == 0 {
		return ErrMissingHeader
	}

	p.currentRow = 1
	return nil
}

// NormalizeHeader lowercases and trims a header cell and resolves aliases.
func NormalizeHeader(h string) string {
	name := strings.ToLower(strings.TrimSpace(h))
	if canonical, ok := headerAliases[name]; ok {
		return canonical
	}
	return name
}

// Headers returns the normalized header names in file order
func (p *CSVParser) Headers() []string {
	return p.headers
}

// HasHeader reports whether a normalized column is present
func (p *CSVParser) HasHeader(name string) bool {
	_, ok := p.headerMap[name]
	return ok
}

// ValidateHeaders returns the required columns missing from the header.
func (p *CSVParser) ValidateHeaders(required []string) []string {
	var missing []string
	for _, h := range required {
		if !p.HasHeader(h) {
			missing = append(missing, h)
		}
	}
	return missing
}

// Row is one data row keyed by normalized header.
type Row struct {
	LineNumber int
	Data       map[string]string
}

// Get returns the value for a column
func (r *Row) Get(column string) string {
	return r.Data[column]
}

// IsEmpty reports whether every cell is blank
func (r *Row) IsEmpty() bool {
	for _, v := range r.Data {
		if v != "" {
			return false
		}
	}
	return true
}

// ReadRow reads the next row. It returns io.EOF at the end of input.
func (p *CSVParser) ReadRow() (*Row, error) {
	record, err := p.reader.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	p.currentRow++
	if err != nil {
		return nil, NewRowError(p.currentRow, "", ErrCodeImportMalformedRow, err.Error())
	}
	p.totalRows++

	row := &Row{
		LineNumber: p.currentRow,
		Data:       make(map[string]string, len(p.headerMap)),
	}
	for name, i := range p.headerMap {
		if i < len(record) {
			row.Data[name] = strings.TrimSpace(record[i])
		} else {
			row.Data[name] = ""
		}
	}
	return row, nil
}

// ReadAllRows reads the remaining rows, skipping blank ones. Malformed rows
// are returned as RowErrors through the collection and reading continues.
func (p *CSVParser) ReadAllRows(errs *ErrorCollection) ([]*Row, error) {
	var rows []*Row
	for {
		row, err := p.ReadRow()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			rowErr, ok := err.(RowError)
			if !ok || errs == nil {
				return rows, err
			}
			errs.Add(rowErr)
			continue
		}
		if row.IsEmpty() {
			continue
		}
		rows = append(rows, row)
	}
}

// CurrentRow returns the last line read (1-indexed, header included)
func (p *CSVParser) CurrentRow() int {
	return p.currentRow
}

// TotalRows returns the number of data rows read
func (p *CSVParser) TotalRows() int {
	return p.totalRows
}

// ParseFromBytes creates a parser from a byte slice
func ParseFromBytes(data []byte, opts ...ParserOption) (*CSVParser, error) {
	return NewCSVParser(bytes.NewReader(data), opts...)
}
