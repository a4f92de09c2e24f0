package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mailvec/internal/core/domain"
)

// Supported output formats.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputCSV   = "csv"
)

// payloadValueLimit caps rendered payload values in table output.
const payloadValueLimit = 200

func validateOutput(format string) error {
	switch format {
	case outputTable, outputJSON, outputCSV:
		return nil
	}
	return fmt.Errorf("unknown output format %q (want table, json or csv)", format)
}

func renderStoredPoints(cmd *cobra.Command, points []domain.StoredPoint, format string) error {
	switch format {
	case outputJSON:
		type entry struct {
			ID      uint64         `json:"id"`
			Payload map[string]any `json:"payload"`
		}
		entries := make([]entry, len(points))
		for i, p := range points {
			entries[i] = entry{ID: p.ID, Payload: p.Payload}
		}
		return renderJSON(cmd, entries)
	case outputCSV:
		rows := make([]csvRow, len(points))
		for i, p := range points {
			rows[i] = csvRow{id: p.ID, payload: p.Payload}
		}
		renderCSV(cmd, rows)
		return nil
	default:
		for i, p := range points {
			cmd.Printf("Point %d (ID: %d):\n", i+1, p.ID)
			renderPayloadTable(cmd, p.Payload)
			cmd.Println(strings.Repeat("-", 80))
		}
		return nil
	}
}

func renderScoredPoints(cmd *cobra.Command, points []domain.ScoredPoint, format string) error {
	if format == outputJSON {
		type entry struct {
			ID      uint64         `json:"id"`
			Score   float32        `json:"score"`
			Payload map[string]any `json:"payload"`
		}
		entries := make([]entry, len(points))
		for i, p := range points {
			entries[i] = entry{ID: p.ID, Score: p.Score, Payload: p.Payload}
		}
		return renderJSON(cmd, entries)
	}

	for i, p := range points {
		cmd.Printf("Result %d (ID: %d, Score: %.4f):\n", i+1, p.ID, p.Score)
		renderPayloadTable(cmd, p.Payload)
		cmd.Println(strings.Repeat("-", 80))
	}
	return nil
}

func renderJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// renderPayloadTable prints payload fields in sorted key order, truncating
// long values.
func renderPayloadTable(cmd *cobra.Command, payload map[string]any) {
	keys := sortedKeys(payload)
	for _, k := range keys {
		value := fmt.Sprint(payload[k])
		if len(value) > payloadValueLimit {
			value = value[:payloadValueLimit] + "..."
		}
		cmd.Printf("  %s: %s\n", k, value)
	}
}

type csvRow struct {
	id      uint64
	payload map[string]any
}

// renderCSV writes rows with a header built from the sorted union of all
// payload keys. Every payload field is quoted, embedded quotes doubled.
// Missing keys render as empty quoted fields.
func renderCSV(cmd *cobra.Command, rows []csvRow) {
	keySet := make(map[string]bool)
	for _, row := range rows {
		for k := range row.payload {
			keySet[k] = true
		}
	}
	keys := make([]string, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	header := make([]string, 0, len(keys)+1)
	header = append(header, "id")
	for _, k := range keys {
		header = append(header, csvQuote(k))
	}
	cmd.Println(strings.Join(header, ","))

	for _, row := range rows {
		fields := make([]string, 0, len(keys)+1)
		fields = append(fields, fmt.Sprint(row.id))
		for _, k := range keys {
			value := ""
			if v, ok := row.payload[k]; ok {
				value = fmt.Sprint(v)
			}
			fields = append(fields, csvQuote(value))
		}
		cmd.Println(strings.Join(fields, ","))
	}
}

func csvQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
