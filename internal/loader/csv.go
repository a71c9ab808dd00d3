package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"YieldSentinel/internal/model"
)

// CSVSource loads observations from a local CSV export.
type CSVSource struct {
	Path string
}

// NewCSVSource creates a source reading from the given file path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

func (s *CSVSource) Name() string { return "csv" }

// Load reads and parses the CSV file. Rows with unparseable timestamps or
// non-numeric prices are dropped, not reported as errors.
func (s *CSVSource) Load(_ context.Context) ([]model.Observation, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	obs, dropped, err := parseObservations(f)
	if err != nil {
		return nil, fmt.Errorf("parse csv %s: %w", s.Path, err)
	}
	if dropped > 0 {
		log.Printf("[WARN] csv source: dropped %d unparseable rows from %s", dropped, s.Path)
	}
	return obs, nil
}

// Accepted header names after trimming and lowercasing. The Bloomberg export
// uses "Date" and "Decimal"; other exports vary.
var (
	timestampColumns = []string{"datetime", "date", "timestamp", "time"}
	priceColumns     = []string{"decimal", "decimalprice", "price", "last"}
)

// Timestamp layouts tried in order.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"2006/01/02 15:04:05",
}

// parseObservations reads CSV rows and returns the valid observations along
// with the count of rows dropped for bad timestamps or prices.
func parseObservations(r io.Reader) ([]model.Observation, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("read header: %w", err)
	}

	tsCol := findColumn(header, timestampColumns)
	priceCol := findColumn(header, priceColumns)
	if tsCol < 0 || priceCol < 0 {
		return nil, 0, errors.New("csv header has no recognizable timestamp and price columns")
	}

	var obs []model.Observation
	dropped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			dropped++
			continue
		}
		if tsCol >= len(row) || priceCol >= len(row) {
			dropped++
			continue
		}
		ts, ok := parseTimestamp(strings.TrimSpace(row[tsCol]))
		if !ok {
			dropped++
			continue
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(row[priceCol]), 64)
		if err != nil {
			dropped++
			continue
		}
		obs = append(obs, model.Observation{Timestamp: ts, Price: price})
	}
	return obs, dropped, nil
}

func findColumn(header []string, candidates []string) int {
	for _, want := range candidates {
		for i, h := range header {
			if strings.ToLower(strings.TrimSpace(h)) == want {
				return i
			}
		}
	}
	return -1
}

func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
