// Package settings loads the user_settings.json document.
package settings

import (
	"encoding/json"
	"fmt"
	"os"

	"svodka/internal/core"
)

// Load reads the tracked currency and stock lists. A missing or empty file
// yields a nil settings object with no error; the digest renders the quote
// sections as null in that case. A malformed document is an error.
func Load(path string) (*core.Settings, error) {
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}

	var s core.Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}
	return &s, nil
}
