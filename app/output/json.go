package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/osukit/diffcalc/app/runner"
)

// RenderJSON serializes the result set to the structured document form.
func RenderJSON(set *runner.ResultSet) ([]byte, error) {
	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(data, '\n'), nil
}

// WriteJSON streams the structured document to w and, when path is not
// empty, persists the identical bytes to that file. A failed file write is
// an error even if the stream write succeeded, because the requested
// persistence could not be honored.
func WriteJSON(w io.Writer, set *runner.ResultSet, path string) error {
	data, err := RenderJSON(set)
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if path != "" {
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	return nil
}
