package mail_test

import (
	"flag"
	"fmt"
	"os"
	"testing"
)

// Fails a passing run made with -cover if coverage is below -minimum-coverage.
func TestMain(m *testing.M) {
	minCoverage := flag.Float64(
		"minimum-coverage",
		0.75,
		"minimum coverage for passing tests from 0.0 (none) - 1.0 (all lines.)",
	)
	flag.Parse()

	testResults := m.Run()

	if testResults == 0 && testing.CoverMode() != "" {
		coverage := testing.Coverage()
		if coverage < *minCoverage {
			fmt.Printf(
				"tests passed but coverage of %.2f does not meet the minimum of %.2f\n",
				coverage,
				*minCoverage,
			)
			testResults = 1
		}
	}

	os.Exit(testResults)
}
