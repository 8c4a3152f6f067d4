package scenarios

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Dir is the on-disk scenario directory; files there shadow the embedded
// ones.
const Dir = "scenarios"

//go:embed *.yaml
var ScenariosFS embed.FS

var ErrUnknownScenario = errors.New("scenarios: unknown scenario")

// Names lists the embedded scenarios without their extension.
func Names() []string {
	entries, err := fs.ReadDir(ScenariosFS, ".")
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".yaml" {
			continue
		}
		out = append(out, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(out)
	return out
}

// Load reads and validates a scenario by name ("boids") or file name
// ("boids.yaml", "scenarios/boids.yaml").
func Load(name string) (*Scenario, error) {
	file := fileName(name)
	data, err := os.ReadFile(filepath.Join(Dir, file))
	if err != nil {
		data, err = fs.ReadFile(ScenariosFS, file)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScenario, name)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scenarios: load %s: %w", name, err)
	}
	return sc, nil
}

// Parse decodes and validates scenario YAML.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func fileName(name string) string {
	s := filepath.ToSlash(strings.TrimSpace(name))
	s = strings.TrimPrefix(s, Dir+"/")
	if filepath.Ext(s) == "" {
		s += ".yaml"
	}
	return s
}
