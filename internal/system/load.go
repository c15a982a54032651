package system

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/heartmarshall/melani-orthography/internal/steno"
)

// Load returns the layout described by the YAML file at path, or the
// bundled Melani layout when path is empty.
//
// Example file:
//
//	keys: ["S-", "T-", "-E", "-R"]
//	implicit_hyphen_keys: ["-E"]
func Load(path string) (*steno.Layout, error) {
	if path == "" {
		return Melani, nil
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("layout: file %s: %w", path, err)
	}

	var spec steno.Spec
	if err := cleanenv.ReadConfig(path, &spec); err != nil {
		return nil, fmt.Errorf("layout: read %s: %w", path, err)
	}

	layout, err := steno.NewLayout(spec)
	if err != nil {
		return nil, fmt.Errorf("layout: %s: %w", path, err)
	}
	return layout, nil
}
