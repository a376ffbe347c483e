// Package summary renders a completed ResultsMap: a colorized console
// table, and optionally a JSON file when the caller asks for one.
package summary

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pterm/pterm"

	"neoscan/internal/engine"
	"neoscan/internal/model"
)

// Print renders results as a pterm table, one row per port, ordered
// ascending. Calling Print twice on the same ResultsMap yields
// identical output (spec.md §8 Idempotence).
func Print(target string, results *engine.ResultsMap) error {
	ordered := results.Ordered()

	tableData := pterm.TableData{{"PORT", "STATUS"}}
	for _, r := range ordered {
		tableData = append(tableData, []string{
			fmt.Sprintf("%d", r.Port),
			colorize(r.Status),
		})
	}

	pterm.Info.Printfln("scan results for %s (%d ports)", target, len(ordered))
	return pterm.DefaultTable.
		WithHasHeader(true).
		WithBoxed(false).
		WithData(tableData).
		Render()
}

func colorize(status model.PortStatus) string {
	switch status {
	case model.Open:
		return pterm.Green(status.String())
	case model.Closed:
		return pterm.Red(status.String())
	case model.Filtered:
		return pterm.Yellow(status.String())
	case model.Unfiltered, model.OpenFiltered:
		return pterm.Magenta(status.String())
	default:
		return status.String()
	}
}

// jsonResult is one row of the optional JSON output.
type jsonResult struct {
	Port   uint16 `json:"port"`
	Status string `json:"status"`
}

// WriteJSON writes results to path as a JSON array, ordered by port
// (the -o/--output supplemented flag).
func WriteJSON(path string, results *engine.ResultsMap) error {
	ordered := results.Ordered()
	rows := make([]jsonResult, 0, len(ordered))
	for _, r := range ordered {
		rows = append(rows, jsonResult{Port: r.Port, Status: r.Status.String()})
	}

	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
