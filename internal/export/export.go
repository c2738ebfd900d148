// Package export writes extracted game records to CSV, JSON and XLSX files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"mlbb-extractor/internal/extract"
)

// Format identifies an output encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// FormatForPath maps a file extension to its format.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".xlsx":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unsupported export extension %q", filepath.Ext(path))
}

// header is the column order shared by the CSV and XLSX writers.
var header = []string{
	"source_image", "nickname", "position", "result",
	"kills", "deaths", "assists", "gold", "medal", "rating",
	"my_team_score", "adversary_team_score", "duration",
}

func row(rec extract.GameRecord) []string {
	return []string{
		filepath.Base(rec.SourceImage),
		rec.Nickname,
		strconv.Itoa(rec.Position),
		string(rec.Result),
		strconv.Itoa(rec.Kills),
		strconv.Itoa(rec.Deaths),
		strconv.Itoa(rec.Assists),
		strconv.Itoa(rec.Gold),
		string(rec.Medal),
		strconv.FormatFloat(rec.Ratio, 'f', 1, 64),
		strconv.Itoa(rec.MyTeamScore),
		strconv.Itoa(rec.AdversaryTeamScore),
		rec.Duration,
	}
}

// Write encodes records into path, choosing the format from the extension.
func Write(path string, records []extract.GameRecord) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}
	switch format {
	case FormatCSV:
		return WriteCSV(path, records)
	case FormatJSON:
		return WriteJSON(path, records)
	case FormatXLSX:
		return WriteXLSX(path, records)
	}
	return fmt.Errorf("unsupported export format %q", format)
}

// WriteCSV writes records with a header row, replacing any existing file.
func WriteCSV(path string, records []extract.GameRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, rec := range records {
		if err := w.Write(row(rec)); err != nil {
			return fmt.Errorf("writing record for %q: %w", rec.Nickname, err)
		}
	}
	w.Flush()
	return w.Error()
}

// AppendCSV adds records to an existing CSV file, creating it with a header
// row first when it does not exist.
func AppendCSV(path string, records []extract.GameRecord) error {
	_, statErr := os.Stat(path)
	fresh := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for _, rec := range records {
		if err := w.Write(row(rec)); err != nil {
			return fmt.Errorf("writing record for %q: %w", rec.Nickname, err)
		}
	}
	w.Flush()
	return w.Error()
}

// WriteJSON writes records as an indented JSON array.
func WriteJSON(path string, records []extract.GameRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding records: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// WriteXLSX writes records as a single-sheet workbook.
func WriteXLSX(path string, records []extract.GameRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Matches"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i, rec := range records {
		if err := setRow(f, sheet, i+2, row(rec)); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, n int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return fmt.Errorf("row %d: %w", n, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing row %d: %w", n, err)
	}
	return nil
}
