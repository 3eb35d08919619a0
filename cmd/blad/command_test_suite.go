package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/stretchr/testify/suite"
)

// CommandTestSuite provides command execution helpers.
// All cmd/blad test suites should embed it.
type CommandTestSuite struct {
	suite.Suite
	dir string
}

// SetupTest gives every test its own temporary directory.
func (s *CommandTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
}

// ExecuteCommand runs blad with args and stdin, returns the combined output and error.
func (s *CommandTestSuite) ExecuteCommand(stdin string, args ...string) (string, error) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// WriteFile writes body to name in the test directory and returns its path.
func (s *CommandTestSuite) WriteFile(name, body string) string {
	path := filepath.Join(s.dir, name)
	s.Require().NoError(os.WriteFile(path, []byte(body), 0o600), "test file MUST be written")
	return path
}
