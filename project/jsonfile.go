package project

import (
	"encoding/json"
	"fmt"
	"os"
)

const filePerms = 0644

func saveJSON(v any, path string) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, b, filePerms); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// loadJSON decodes path over the current value of v, so fields absent from
// the file keep their defaults. v is only modified when decoding succeeds.
func loadJSON[T any](v *T, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	tmp := *v
	if err := json.Unmarshal(b, &tmp); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	*v = tmp
	return nil
}
