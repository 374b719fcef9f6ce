// Package spreadsheet reads uploaded workbook exports into header order plus
// string-valued row maps, preserving cell text exactly as the export wrote it.
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/confidence-group/hr-analytics-go/internal/pkg/rowmap"
)

var ErrUnsupportedFileType = errors.New("unsupported file type: upload a .xlsx or .csv file")

// Read parses the uploaded file by extension. The header row is required;
// a workbook that cannot be opened or has no header is rejected as a whole,
// nothing is partially ingested.
func Read(filename string, content []byte) (header []string, rows []rowmap.Row, err error) {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".csv"):
		return readCSV(content)
	case strings.HasSuffix(lower, ".xlsx"):
		return readXLSX(content)
	default:
		return nil, nil, ErrUnsupportedFileType
	}
}

func readCSV(content []byte) ([]string, []rowmap.Row, error) {
	// Strip UTF-8 BOM that Excel prepends to CSV exports.
	content = bytes.TrimPrefix(content, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil, errors.New("file is empty")
		}
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	header, kept := dedupeHeader(header)

	var rows []rowmap.Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		rows = append(rows, recordToRow(header, kept, record))
	}
	return header, rows, nil
}

func readXLSX(content []byte) ([]string, []rowmap.Row, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, errors.New("workbook has no sheets")
	}

	raw, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(raw) == 0 {
		return nil, nil, errors.New("sheet has no header row")
	}

	header := make([]string, len(raw[0]))
	for i, h := range raw[0] {
		header[i] = strings.TrimSpace(h)
	}
	header, kept := dedupeHeader(header)

	var rows []rowmap.Row
	for _, record := range raw[1:] {
		row := recordToRow(header, kept, record)
		if isBlank(row) {
			continue
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}

// dedupeHeader drops later columns whose name collapses to one already seen
// after lower-casing and trimming. The first physical column wins, so a
// re-parse of the same file always resolves fields the same way. The kept
// indices map the surviving headers back to their source columns.
func dedupeHeader(header []string) ([]string, []int) {
	out := make([]string, 0, len(header))
	kept := make([]int, 0, len(header))
	seen := make(map[string]struct{}, len(header))
	for i, col := range header {
		if col == "" {
			col = fmt.Sprintf("Col%d", i+1)
		}
		key := strings.ToLower(strings.TrimSpace(col))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, col)
		kept = append(kept, i)
	}
	return out, kept
}

func recordToRow(header []string, kept []int, record []string) rowmap.Row {
	row := make(rowmap.Row, len(header))
	for i, col := range header {
		src := kept[i]
		if src < len(record) {
			row[col] = record[src]
		} else {
			row[col] = ""
		}
	}
	return row
}

func isBlank(row rowmap.Row) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
