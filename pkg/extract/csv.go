// pkg/extract/csv.go
package extract

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/satiap/feedback-ingress/pkg/model"
)

// CSVExtractor reads a delimited feedback export into a Table. The first
// record is promoted to the header row; columns the export leaves unnamed get
// positional "Unnamed: N" headers and repeated headers are disambiguated with
// an occurrence suffix, so the resulting table always has unique column names.
type CSVExtractor struct {
	path      string
	delimiter rune
	logger    *zap.Logger
}

// NewCSVExtractor creates an extractor for the given file path.
func NewCSVExtractor(path string, delimiter rune, logger *zap.Logger) (*CSVExtractor, error) {
	if path == "" {
		return nil, fmt.Errorf("csv path cannot be empty")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if delimiter == 0 {
		delimiter = ','
	}

	return &CSVExtractor{
		path:      path,
		delimiter: delimiter,
		logger:    logger,
	}, nil
}

// Extract reads the whole file into a Table.
func (x *CSVExtractor) Extract() (*model.Table, error) {
	f, err := os.Open(x.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	x.logger.Info("Reading CSV export", zap.String("path", x.path))

	table, err := x.Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", x.path, err)
	}

	x.logger.Info("CSV export loaded",
		zap.Int("rows", table.RowCount()),
		zap.Int("columns", table.ColumnCount()))
	return table, nil
}

// Read parses CSV data from a reader into a Table.
func (x *CSVExtractor) Read(r io.Reader) (*model.Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = x.delimiter
	// Survey exports pad or truncate trailing cells per record
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	columns := promoteHeaders(header)

	var rows [][]string
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read line %d: %w", line, err)
		}

		if len(record) > len(columns) {
			x.logger.Warn("Record carries more cells than the header row, dropping the overflow",
				zap.Int("line", line),
				zap.Int("cells", len(record)),
				zap.Int("columns", len(columns)))
		}

		row := make([]string, len(columns))
		for j := 0; j < len(columns) && j < len(record); j++ {
			row[j] = record[j]
		}
		rows = append(rows, row)
	}

	return model.NewTable(columns, rows)
}

// promoteHeaders turns the raw header record into unique column names.
func promoteHeaders(header []string) []string {
	columns := make([]string, len(header))
	counts := make(map[string]int, len(header))

	for j, raw := range header {
		name := strings.TrimPrefix(strings.TrimSpace(raw), "\ufeff")
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", j)
		}

		counts[name]++
		if counts[name] > 1 {
			name = fmt.Sprintf("%s (%d)", name, counts[name])
		}
		columns[j] = name
	}
	return columns
}
