package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden renders a scenario and compares the pipeline text against
// testdata/golden/{scenario.Name}.golden.
//
// Golden files are the source of truth for generated pipeline text; any
// intentional output change must regenerate them with -update and show up
// in review as a golden diff.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	text, err := scenario.Generate()
	if err != nil {
		return err
	}
	AssertGolden(t, scenario.Name, text)
	return nil
}

// AssertGolden compares already rendered pipeline text against a golden
// file. Useful when the caller needs the text for further checks (for
// example YAML well-formedness) without rendering twice.
func AssertGolden(t *testing.T, name, text string) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(text))
}
