package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

type CSVWriter struct{}

func NewCSVWriter() *CSVWriter {
	return &CSVWriter{}
}

func (w *CSVWriter) Run(out io.Writer, rows []Row) error {
	cw := csv.NewWriter(out)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		record := []string{
			row.Type,
			row.Content,
			strconv.Itoa(row.Priority),
			strconv.Itoa(row.Indent),
			row.Author,
			row.Responsible,
			row.Date,
			row.DateLang,
			row.Timezone,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	return nil
}

// WriteFile replaces the file at path with the rows.
func (w *CSVWriter) WriteFile(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := w.Run(f, rows); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
