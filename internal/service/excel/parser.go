package excel

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Parser reads header-row tables out of a workbook
type Parser struct {
	file *excelize.File
}

// NewParser creates a parser
func NewParser() *Parser {
	return &Parser{}
}

// LoadFile opens a workbook from reader
func (p *Parser) LoadFile(reader io.Reader) error {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return fmt.Errorf("failed to open excel: %w", err)
	}
	p.file = file
	return nil
}

// ReadTable reads sheet as a table; an empty sheet name means the first sheet.
func (p *Parser) ReadTable(sheet string) (*Table, error) {
	if p.file == nil {
		return nil, errors.New("no file loaded")
	}
	if sheet == "" {
		sheets := p.file.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	// stored values, not the number-formatted display text
	rows, err := p.file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s: empty sheet", sheet)
	}

	// column name -> index
	header := make([]string, len(rows[0]))
	colIndex := make(map[string]int, len(rows[0]))
	for i, col := range rows[0] {
		col = strings.TrimSpace(col)
		header[i] = col
		if col == "" {
			continue
		}
		if _, dup := colIndex[col]; !dup {
			colIndex[col] = i
		}
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		records = append(records, Record{row: row, colIndex: colIndex, RowNum: i + 2})
	}

	return &Table{Sheet: sheet, Header: header, colIndex: colIndex, Records: records}, nil
}

// Close closes the workbook
func (p *Parser) Close() error {
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

// Table header row plus data records of one sheet
type Table struct {
	Sheet    string
	Header   []string
	Records  []Record
	colIndex map[string]int
}

// HasColumn reports whether the header contains col
func (t *Table) HasColumn(col string) bool {
	_, ok := t.colIndex[col]
	return ok
}

// MissingColumns returns the columns of want that the header lacks, in order.
func (t *Table) MissingColumns(want ...string) []string {
	var missing []string
	for _, col := range want {
		if !t.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	return missing
}

// Index groups records by the trimmed value of keyCol; the first record wins.
func (t *Table) Index(keyCol string) (map[string]Record, error) {
	if !t.HasColumn(keyCol) {
		return nil, fmt.Errorf("sheet %s: no column %q", t.Sheet, keyCol)
	}
	out := make(map[string]Record, len(t.Records))
	for _, r := range t.Records {
		key := r.Value(keyCol)
		if key == "" {
			continue
		}
		if _, ok := out[key]; !ok {
			out[key] = r
		}
	}
	return out, nil
}

// Record one data row
type Record struct {
	RowNum   int
	row      []string
	colIndex map[string]int
}

// Value trimmed cell text, empty when the column or cell is absent
func (r Record) Value(col string) string {
	if idx, ok := r.colIndex[col]; ok && idx < len(r.row) {
		return strings.TrimSpace(r.row[idx])
	}
	return ""
}

// Float parses a numeric cell; blank cells read as 0.
func (r Record) Float(col string) (float64, error) {
	val := r.Value(col)
	if val == "" {
		return 0, nil
	}
	// thousands separators
	val = strings.ReplaceAll(val, ",", "")
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("row %d column %q: %q is not a number", r.RowNum, col, val)
	}
	return f, nil
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
