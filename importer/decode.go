package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Format is a supported upload format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DetectFormat picks a decoder from the file extension.
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx", ".xls":
		return FormatXLSX, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// Decode turns an uploaded file into rows. Any failure is a *BatchError.
func Decode(filename string, data []byte) ([]Row, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, &BatchError{Reason: "cannot import " + filepath.Base(filename), Err: err}
	}

	var rows []Row
	switch format {
	case FormatCSV:
		rows, err = DecodeCSV(bytes.NewReader(data))
	default:
		rows, err = DecodeXLSX(bytes.NewReader(data))
	}
	if err != nil {
		var batchErr *BatchError
		if errors.As(err, &batchErr) {
			return nil, err
		}
		return nil, &BatchError{Reason: "failed to parse " + string(format) + " file", Err: err}
	}
	return rows, nil
}

// DecodeCSV reads a header row followed by data rows. Rows may be ragged.
func DecodeCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], string(utf8BOM))
	}
	return recordsToRows(records), nil
}

// DecodeXLSX reads the first worksheet of a workbook.
func DecodeXLSX(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &BatchError{Reason: "workbook has no sheets"}
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return recordsToRows(records), nil
}

func recordsToRows(records [][]string) []Row {
	if len(records) < 2 {
		return []Row{}
	}
	header := records[0]
	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(Row, len(header))
		for i, cell := range record {
			if i >= len(header) || strings.TrimSpace(header[i]) == "" {
				continue
			}
			if strings.TrimSpace(cell) == "" {
				continue
			}
			key := header[i]
			if _, dup := row[key]; dup {
				continue
			}
			row[key] = cell
		}
		if len(row) == 0 {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}
