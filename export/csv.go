// Package export provides data-export sinks for the waveform engine.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/RyanBlaney/sonido-scope/logging"
)

// CSV persists named numeric columns as comma-delimited text tables, one
// file per table, under a base directory.
type CSV struct {
	dir    string
	logger logging.Logger
}

// NewCSV creates a CSV exporter writing into dir. The directory is created
// on first write.
func NewCSV(dir string) *CSV {
	return &CSV{
		dir: dir,
		logger: logging.WithFields(logging.Fields{
			"component": "csv_exporter",
			"dir":       dir,
		}),
	}
}

// Export writes one table: a header row followed by the columns transposed
// into rows. All columns must have equal length.
func (c *CSV) Export(name string, header []string, columns ...[]float64) error {
	if len(columns) == 0 {
		return fmt.Errorf("no columns to export")
	}
	rows := len(columns[0])
	for i, col := range columns {
		if len(col) != rows {
			return fmt.Errorf("column %d has %d rows, expected %d", i, len(col), rows)
		}
	}
	if len(header) != 0 && len(header) != len(columns) {
		return fmt.Errorf("header has %d entries for %d columns", len(header), len(columns))
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	path := filepath.Join(c.dir, name+".csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if len(header) != 0 {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	record := make([]string, len(columns))
	for r := 0; r < rows; r++ {
		for i, col := range columns {
			record[i] = strconv.FormatFloat(col[r], 'g', -1, 64)
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", r, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}

	c.logger.Debug("table exported", logging.Fields{
		"name": name, "rows": rows, "columns": len(columns),
	})

	return nil
}
