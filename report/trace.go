package report

import (
	"encoding/json"
	"fmt"
	"os"

	"prediction-maker-go/internal/engine"
)

// WriteTrace serializes the ordered per-tick trace to path as indented
// JSON. encoding/json emits map keys sorted, so a given trace always
// produces identical bytes.
func WriteTrace(path string, trace []map[string]engine.StepResult) error {
	data, err := json.MarshalIndent(trace, "", "  ")
	if err != nil {
		return fmt.Errorf("write trace: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write trace: %w", err)
	}
	return nil
}
