// Package conformance runs YAML-described end-to-end scenarios through
// the real Init/Typing/Eval pipeline, grounded on the teacher's
// conformance/{schema,loader,runner}.go. Unlike the teacher's MOO
// suite, a BLisp test case names no object database or permission
// level — only a user program, an expression to evaluate, and an
// expected outcome.
package conformance

// TestSuite is one YAML fixture file.
type TestSuite struct {
	Name  string     `yaml:"name"`
	Tests []TestCase `yaml:"tests"`
}

// TestCase is a single scenario: an optional program (parsed alongside
// the bundled prelude), an expression to evaluate against it, and the
// expected Ok/Err outcome.
type TestCase struct {
	Name    string      `yaml:"name"`
	Program string      `yaml:"program,omitempty"`
	Expr    string      `yaml:"expr"`
	Expect  Expectation `yaml:"expect"`
}

// Expectation names exactly one of Value (the expected display string
// of an Ok outcome) or Error (a substring expected in an Err outcome's
// message).
type Expectation struct {
	Value string `yaml:"value,omitempty"`
	Error string `yaml:"error,omitempty"`
}
