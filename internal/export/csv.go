package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/tkhs/beerlog/internal/store"
)

// ToCSV writes all drink records to a CSV file. The file starts with a
// UTF-8 BOM so Excel detects the encoding.
func ToCSV(drinks []store.Drink, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString("\uFEFF"); err != nil {
		return err
	}

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Name", "Amount (ml)", "Date", "Time", "Notes"}); err != nil {
		return err
	}

	for _, d := range drinks {
		row := []string{
			d.ID,
			d.Name,
			fmt.Sprintf("%d", d.Amount),
			d.Date,
			d.Time,
			d.Notes,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
