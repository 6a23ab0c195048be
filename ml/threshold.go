package ml

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadThreshold reads the stored decision threshold: a single JSON scalar
// in [0,1]. It is fixed for the life of the process once loaded.
func LoadThreshold(path string) (float64, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read threshold artifact: %w", err)
	}

	var threshold float64
	if err := json.Unmarshal(payload, &threshold); err != nil {
		return 0, fmt.Errorf("decode threshold artifact: %w", err)
	}

	if threshold < 0 || threshold > 1 {
		return 0, fmt.Errorf("threshold %v is outside [0,1]", threshold)
	}
	return threshold, nil
}
