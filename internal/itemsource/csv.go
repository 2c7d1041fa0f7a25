// =============================================================================
// UPD XML Generator - CSV Item Source
// =============================================================================
//
// Reads the goods/services table from a CSV export. The first row is the
// header row; settings cover the delimiter variations seen in accounting
// exports (comma, semicolon, tab).
//
// =============================================================================

package itemsource

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/glavbuh/updgen/internal/upd"
)

// CSVSettings contains settings for parsing the items CSV file.
type CSVSettings struct {
	// Delimiter is the field separator. Common values: ',', ';', '\t'.
	// Default: ','.
	Delimiter rune

	// HeaderRow is the 1-based row carrying the column names. Rows above it
	// are skipped. Default: 1.
	HeaderRow int
}

// DefaultCSVSettings returns the default CSV parsing settings.
func DefaultCSVSettings() CSVSettings {
	return CSVSettings{
		Delimiter: ',',
		HeaderRow: 1,
	}
}

// LoadCSV reads line items from a CSV file.
func LoadCSV(path string, settings CSVSettings) ([]upd.Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open items CSV: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	if settings.Delimiter != 0 {
		reader.Comma = settings.Delimiter
	}
	// Exports frequently have ragged trailing columns.
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse items CSV: %w", err)
	}

	headerRow := settings.HeaderRow
	if headerRow < 1 {
		headerRow = 1
	}
	if len(rows) < headerRow {
		return nil, fmt.Errorf("items CSV has no header row (expected at row %d)", headerRow)
	}

	return rowsToItems(rows[headerRow-1], rows[headerRow:]), nil
}
