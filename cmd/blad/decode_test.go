package main

import (
	"testing"

	"github.com/srg/blad/internal/testutils"
	"github.com/stretchr/testify/suite"
)

// flags, 16-bit list {180d}, complete name "HRM"
const heartRatePayload = "02010603030d18040948524d"

type DecodeTestSuite struct {
	CommandTestSuite
}

func (s *DecodeTestSuite) TestTable() {
	output, err := s.ExecuteCommand("", "decode", heartRatePayload)
	s.Require().NoError(err)

	testutils.NewTextAsserter(s.T()).Assert(output, `
#  NAME  SERVICES  PAYLOAD
--------------------------------------------------------------------------------
1  HRM  180d  02010603030d18040948524d
`)
}

func (s *DecodeTestSuite) TestJSON() {
	output, err := s.ExecuteCommand("", "decode", "--format", "json", heartRatePayload, "0000")
	s.Require().NoError(err)

	testutils.NewJSONAsserter(s.T()).Assert(output, `[
		{
			"payload": "02010603030d18040948524d",
			"service_uuids": ["0000180d-0000-1000-8000-00805f9b34fb"],
			"local_name": {"value": "HRM", "status": "present"}
		},
		{
			"payload": "0000",
			"service_uuids": [],
			"local_name": {"status": "absent"}
		}
	]`)
}

func (s *DecodeTestSuite) TestStdin() {
	stdin := "# captured\n" + heartRatePayload + "\n\n03 03 0f 18\n"

	output, err := s.ExecuteCommand(stdin, "decode", "--workers", "2")
	s.Require().NoError(err)

	s.Contains(output, "1  HRM")
	s.Contains(output, "2  -    180f")
}

func (s *DecodeTestSuite) TestNames() {
	output, err := s.ExecuteCommand("", "decode", "--names", "0503 0d18 ffff")
	s.Require().NoError(err)
	s.Contains(output, "180d (Heart Rate),ffff")
}

func (s *DecodeTestSuite) TestMalformedName() {
	output, err := s.ExecuteCommand("", "decode", "0209ff")
	s.Require().NoError(err)
	s.Contains(output, "<malformed ff>")
}

func (s *DecodeTestSuite) TestTruncatedPayloadKeepsEarlierFields() {
	output, err := s.ExecuteCommand("", "decode", "--format", "json", "03030d18 1009 4142")
	s.Require().NoError(err)

	testutils.NewJSONAsserter(s.T()).Assert(output, `[{
		"service_uuids": ["0000180d-0000-1000-8000-00805f9b34fb"],
		"local_name": {"status": "absent"}
	}]`)
}

func (s *DecodeTestSuite) TestConfigFormat() {
	cfg := s.WriteFile("blad.yaml", "output_format: json\n")

	output, err := s.ExecuteCommand("", "decode", "--config", cfg, heartRatePayload)
	s.Require().NoError(err)
	s.Contains(output, `"payload": "02010603030d18040948524d"`)
}

func (s *DecodeTestSuite) TestErrors() {
	tests := []struct {
		name  string
		stdin string
		args  []string
		msg   string
	}{
		{
			name: "invalid hex",
			args: []string{"decode", "0g"},
			msg:  `invalid payload: #1 "0g"`,
		},
		{
			name: "invalid hex on stdin",
			args: []string{"decode"},
			stdin: "0303 0d18\n" +
				"xyz\n",
			msg: `invalid payload: #2 "xyz"`,
		},
		{
			name: "nothing to decode",
			args: []string{"decode"},
			msg:  "invalid payload: no payloads given",
		},
		{
			name: "invalid format",
			args: []string{"decode", "--format", "xml", heartRatePayload},
			msg:  "invalid format 'xml': must be one of [table json]",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.ExecuteCommand(tt.stdin, tt.args...)
			s.Require().Error(err)
			s.Contains(err.Error(), tt.msg)
		})
	}
}

func TestDecodeTestSuite(t *testing.T) {
	suite.Run(t, new(DecodeTestSuite))
}
