package conformance

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures/*.yaml
var fixturesFS embed.FS

// LoadSuites reads every embedded fixture, adapted from the teacher's
// LoadAllTests (conformance/loader.go): this library ships no external
// files at runtime, so the fixtures travel inside the binary via
// embed.FS rather than a filesystem walk.
func LoadSuites() ([]TestSuite, error) {
	entries, err := fixturesFS.ReadDir("fixtures")
	if err != nil {
		return nil, err
	}
	var suites []TestSuite
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := fixturesFS.ReadFile("fixtures/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name(), err)
		}
		var suite TestSuite
		if err := yaml.Unmarshal(data, &suite); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", entry.Name(), err)
		}
		suites = append(suites, suite)
	}
	return suites, nil
}
