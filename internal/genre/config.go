package genre

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is an optional YAML genre configuration file. Entries override the
// built-in characteristics for existing genres and add new ones:
//
//	genres:
//	  jazz:
//	    tempo_range: [70, 160]
//	    scales: [C, D, E, F, G, A, B]
//	    chords: [Cmaj7, Dm7, G7]
type Config struct {
	Genres map[string]Characteristics `yaml:"genres"`
}

// LoadConfig reads a YAML genre configuration and returns the built-in
// table with the file's entries merged over it. An empty path returns the
// defaults unchanged.
func LoadConfig(path string) (Table, error) {
	table := Defaults()
	if path == "" {
		return table, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read genre config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse genre config %s: %w", path, err)
	}

	for name, c := range config.Genres {
		if len(c.Scales) == 0 {
			return nil, fmt.Errorf("genre %q: scales must not be empty", name)
		}
		if c.TempoRange[0] <= 0 || c.TempoRange[1] < c.TempoRange[0] {
			return nil, fmt.Errorf("genre %q: invalid tempo range %v", name, c.TempoRange)
		}
		table[strings.ToLower(name)] = c
	}
	return table, nil
}
