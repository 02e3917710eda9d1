package services

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
)

// ExpandCodedCSV liest eine Kodierungs-CSV (filename, output) ein und
// schreibt eine breite CSV, in der jeder JSON-Schlüssel aus der
// Output-Spalte eine eigene Spalte bekommt. Die Spalten sind alphabetisch
// sortiert; fehlt ein Schlüssel in einer Zeile, bleibt die Zelle leer.
func ExpandCodedCSV(inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("Eingabe-CSV konnte nicht geöffnet werden: %w", err)
	}
	defer in.Close()

	reader := csv.NewReader(in)
	records, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("Eingabe-CSV konnte nicht gelesen werden: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("Eingabe-CSV ist leer")
	}

	header := records[0]
	filenameIdx, outputIdx := -1, -1
	for i, col := range header {
		switch col {
		case "filename":
			filenameIdx = i
		case "output":
			outputIdx = i
		}
	}
	if filenameIdx < 0 || outputIdx < 0 {
		return fmt.Errorf("Eingabe-CSV hat nicht die erwarteten Spalten filename und output")
	}

	type expandedRow struct {
		filename string
		values   map[string]interface{}
	}

	var rows []expandedRow
	keySet := map[string]bool{}
	for _, record := range records[1:] {
		var values map[string]interface{}
		if err := json.Unmarshal([]byte(record[outputIdx]), &values); err != nil {
			return fmt.Errorf("Output-Spalte von %q ist kein gültiges JSON: %w", record[filenameIdx], err)
		}
		for key := range values {
			keySet[key] = true
		}
		rows = append(rows, expandedRow{filename: record[filenameIdx], values: values})
	}

	keys := make([]string, 0, len(keySet))
	for key := range keySet {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("Ausgabe-CSV konnte nicht erstellt werden: %w", err)
	}
	defer out.Close()

	writer := csv.NewWriter(out)
	if err := writer.Write(append([]string{"filename"}, keys...)); err != nil {
		return err
	}
	for _, row := range rows {
		record := make([]string, 0, len(keys)+1)
		record = append(record, row.filename)
		for _, key := range keys {
			record = append(record, formatCell(row.values[key]))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// formatCell wandelt einen JSON-Wert in seine CSV-Darstellung um.
func formatCell(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(data)
	}
}
