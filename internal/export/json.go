package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/tkhs/beerlog/internal/store"
)

type jsonExport struct {
	ExportedAt string       `json:"exported_at"`
	Version    string       `json:"version"`
	Count      int          `json:"count"`
	Records    []jsonRecord `json:"records"`
}

type jsonRecord struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Amount int    `json:"amount"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	Notes  string `json:"notes,omitempty"`
}

// ToJSON writes all drink records as a backup document.
func ToJSON(drinks []store.Drink, path string) error {
	doc := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Version:    "1.0",
		Count:      len(drinks),
	}

	for _, d := range drinks {
		doc.Records = append(doc.Records, jsonRecord{
			ID:     d.ID,
			Name:   d.Name,
			Amount: d.Amount,
			Date:   d.Date,
			Time:   d.Time,
			Notes:  d.Notes,
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
