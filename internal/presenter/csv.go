package presenter

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/couchcryptid/impact-sim/internal/domain"
)

type seriesRow struct {
	Year            int     `csv:"year"`
	TemperatureDrop float64 `csv:"temperature_drop_c"`
}

// WriteSeriesCSV writes the recovery series as CSV with a header row.
func WriteSeriesCSV(w io.Writer, series domain.RecoverySeries) error {
	rows := make([]seriesRow, len(series))
	for i, pt := range series {
		rows[i] = seriesRow{Year: pt.Year, TemperatureDrop: pt.TemperatureDrop}
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("marshal recovery series: %w", err)
	}
	return nil
}

// SaveSeriesCSV writes the recovery series to a CSV file at path.
func SaveSeriesCSV(path string, series domain.RecoverySeries) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close csv file: %w", cerr)
		}
	}()
	return WriteSeriesCSV(f, series)
}
