// Package dataset loads product, review and event exports from disk.
// Format is detected by file extension: CSV, JSONL and Parquet are
// supported. Malformed rows are logged and skipped rather than failing
// the whole load.
package dataset

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// LoadProducts loads the product catalog export.
func LoadProducts(path string) ([]ProductRecord, error) {
	switch detectFormat(path) {
	case ".parquet":
		return loadParquet[ProductRecord](path)
	case ".jsonl", ".json":
		return loadJSONL[ProductRecord](path)
	case ".csv":
		return loadCSV(path, func(row map[string]string) ProductRecord {
			return ProductRecord{
				Name:       row["name"],
				URL:        row["url"],
				Category:   row["category"],
				PriceRange: row["price_range"],
			}
		})
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .csv, .jsonl, .parquet)", filepath.Ext(path))
	}
}

// LoadReviews loads a raw review export for one source platform.
func LoadReviews(path string) ([]ReviewRecord, error) {
	switch detectFormat(path) {
	case ".parquet":
		return loadParquet[ReviewRecord](path)
	case ".jsonl", ".json":
		return loadJSONL[ReviewRecord](path)
	case ".csv":
		return loadCSV(path, func(row map[string]string) ReviewRecord {
			return ReviewRecord{
				Reviewer: row["reviewer"],
				Title:    row["title"],
				Body:     row["body"],
				Rating:   row["rating"],
				Date:     row["date"],
			}
		})
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .csv, .jsonl, .parquet)", filepath.Ext(path))
	}
}

// LoadEvents loads the event calendar export.
func LoadEvents(path string) ([]EventRecord, error) {
	switch detectFormat(path) {
	case ".parquet":
		return loadParquet[EventRecord](path)
	case ".jsonl", ".json":
		return loadJSONL[EventRecord](path)
	case ".csv":
		return loadCSV(path, func(row map[string]string) EventRecord {
			return EventRecord{
				Title:    row["title"],
				URL:      row["url"],
				Start:    row["start"],
				State:    row["state"],
				Location: row["location"],
			}
		})
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .csv, .jsonl, .parquet)", filepath.Ext(path))
	}
}

func detectFormat(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// loadJSONL reads one JSON object per line. A file containing a single
// JSON array also works, since that is how some platforms export.
func loadJSONL[T any](path string) ([]T, error) {
	slog.Debug("Opening JSONL file", "path", path)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)

	// Some platforms export a single JSON array instead of JSONL.
	if first, err := reader.Peek(1); err == nil && first[0] == '[' {
		return loadJSONArray[T](reader)
	}

	scanner := bufio.NewScanner(reader)

	// Review bodies can be long; give the scanner headroom.
	const maxCapacity = 1024 * 1024
	buf := make([]byte, maxCapacity)
	scanner.Buffer(buf, maxCapacity)

	var records []T
	lineNum := 0
	skipped := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()

		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		var record T
		if err := json.Unmarshal(line, &record); err != nil {
			slog.Warn("Skipping malformed record", "path", path, "line", lineNum, "error", err)
			skipped++
			continue
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading dataset: %w", err)
	}

	slog.Debug("Finished reading JSONL file", "path", path, "records", len(records), "skipped", skipped)
	return records, nil
}

func loadJSONArray[T any](r io.Reader) ([]T, error) {
	var records []T
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to parse JSON array: %w", err)
	}
	return records, nil
}

// loadCSV reads a header-indexed CSV file. Rows shorter than the header
// are skipped with a warning; unknown columns are ignored.
func loadCSV[T any](path string, fromRow func(map[string]string) T) ([]T, error) {
	slog.Debug("Opening CSV file", "path", path)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var records []T
	lineNum := 1
	skipped := 0
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		lineNum++
		if err != nil {
			slog.Warn("Skipping malformed record", "path", path, "line", lineNum, "error", err)
			skipped++
			continue
		}
		if len(fields) < len(header) {
			slog.Warn("Skipping short record", "path", path, "line", lineNum, "fields", len(fields))
			skipped++
			continue
		}

		row := make(map[string]string, len(header))
		for i, h := range header {
			row[h] = strings.TrimSpace(fields[i])
		}
		records = append(records, fromRow(row))
	}

	slog.Debug("Finished reading CSV file", "path", path, "records", len(records), "skipped", skipped)
	return records, nil
}

func loadParquet[T any](path string) ([]T, error) {
	slog.Debug("Opening Parquet file", "path", path)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[T](pf)
	defer reader.Close()

	var records []T
	rows := make([]T, 128)
	for {
		n, err := reader.Read(rows)
		if n > 0 {
			records = append(records, rows[:n]...)
		}
		if err != nil {
			break
		}
	}

	slog.Debug("Finished reading Parquet file", "path", path, "records", len(records))
	return records, nil
}
