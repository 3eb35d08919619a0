package testutils

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
)

type TestHelper struct {
	T      *testing.T
	Logger *logrus.Logger
	Logs   *bytes.Buffer
}

// NewTestHelper creates a test helper whose debug logger writes to an in-memory
// buffer, so tests can assert on log output without polluting test results.
func NewTestHelper(t *testing.T) *TestHelper {
	logs := &bytes.Buffer{}
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)
	logger.SetOutput(logs)
	return &TestHelper{
		T:      t,
		Logger: logger,
		Logs:   logs,
	}
}
