package conformance

import "testing"

// TestFixtures runs every embedded YAML scenario through the real
// Init/Typing/Eval pipeline, in the teacher's conformance_test.go
// style (conformance/conformance_test.go): one Go test iterating a
// data-driven suite rather than one Go test per scenario.
func TestFixtures(t *testing.T) {
	suites, err := LoadSuites()
	if err != nil {
		t.Fatalf("LoadSuites: %v", err)
	}
	if len(suites) == 0 {
		t.Fatal("no fixture suites loaded")
	}
	for _, r := range Run(suites) {
		r := r
		t.Run(r.Suite+"/"+r.Case, func(t *testing.T) {
			if !r.Passed {
				t.Errorf("%s", r.Detail)
			}
		})
	}
}
