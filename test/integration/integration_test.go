//go:build integration

package integration

import (
	"os"
	"testing"

	"github.com/cucumber/godog"

	"github.com/ledgerly/backend/test/integration/steps"
)

func TestMain(m *testing.M) {
	_ = os.Setenv("ENV", "test")
	os.Exit(m.Run())
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		TestSuiteInitializer: steps.InitializeTestSuite,
		ScenarioInitializer:  steps.InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
			Strict:   true,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
