package ingest

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"riskbook/domain/core"

	"github.com/xuri/excelize/v2"
)

// RawTable is an untyped view of a source file: a header row and data rows
type RawTable struct {
	Header []string
	Rows   [][]string
}

// TableReader reads pipe-delimited text, CSV and XLSX files into a RawTable
type TableReader struct {
	delimiter rune // 0 means sniff from the first line
}

// NewTableReader creates a reader. delimiter is "|", "," or "" to sniff.
func NewTableReader(delimiter string) *TableReader {
	var d rune
	if delimiter != "" {
		d = rune(delimiter[0])
	}
	return &TableReader{delimiter: d}
}

// Read loads the file at path. The file handle is scoped to this call.
func (r *TableReader) Read(path string) (*RawTable, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx":
		return r.readExcel(path)
	case ".txt", ".csv", ".psv":
		return r.readDelimited(path)
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedFormat, ext)
	}
}

func (r *TableReader) readDelimited(path string) (*RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrDataFormat, err)
	}
	defer f.Close()

	delim := r.delimiter
	br := bufio.NewReader(f)
	if delim == 0 {
		d, err := sniffDelimiter(br)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", core.ErrDataFormat, err)
		}
		delim = d
	}

	cr := csv.NewReader(br)
	cr.Comma = delim
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	all, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrDataFormat, err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%w: file is empty", core.ErrDataFormat)
	}

	header := make([]string, len(all[0]))
	for i, h := range all[0] {
		header[i] = strings.TrimSpace(h)
	}
	return &RawTable{Header: header, Rows: all[1:]}, nil
}

func (r *TableReader) readExcel(path string) (*RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrDataFormat, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", core.ErrDataFormat)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrDataFormat, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet is empty", core.ErrDataFormat)
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}
	return &RawTable{Header: header, Rows: rows[1:]}, nil
}

// sniffDelimiter decides between pipe and comma by counting occurrences in
// the header line, the way the original book is shipped as |-delimited text
// and processed samples as CSV.
func sniffDelimiter(br *bufio.Reader) (rune, error) {
	first, err := br.Peek(64 * 1024)
	if err != nil && len(first) == 0 {
		return 0, err
	}
	line := string(first)
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	if strings.Count(line, ",") > strings.Count(line, "|") {
		return ',', nil
	}
	return '|', nil
}
