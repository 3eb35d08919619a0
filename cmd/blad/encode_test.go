package main

import (
	"strings"
	"testing"

	"github.com/srg/blad/internal/adv"
	"github.com/srg/blad/internal/testutils"
	"github.com/stretchr/testify/suite"
)

type EncodeTestSuite struct {
	CommandTestSuite
}

func (s *EncodeTestSuite) TestHex() {
	desc := s.WriteFile("hrm.yaml", heartRateDescription)

	output, err := s.ExecuteCommand("", "encode", "-f", desc)
	s.Require().NoError(err)
	s.Equal("02010603030d180409446576\n", output)
}

func (s *EncodeTestSuite) TestJSON() {
	desc := s.WriteFile("hrm.yaml", heartRateDescription)

	output, err := s.ExecuteCommand("", "encode", "-f", desc, "--flags=false", "--format", "json")
	s.Require().NoError(err)

	testutils.NewJSONAsserter(s.T()).Assert(output, `{"payload": "03030d180409446576", "length": 9}`)
}

func (s *EncodeTestSuite) TestDecodesBack() {
	desc := s.WriteFile("hrm.yaml", heartRateDescription)

	encoded, err := s.ExecuteCommand("", "encode", "-f", desc)
	s.Require().NoError(err)

	output, err := s.ExecuteCommand("", "decode", strings.TrimSpace(encoded))
	s.Require().NoError(err)
	s.Contains(output, "1  Dev  180d")
}

func (s *EncodeTestSuite) TestOverBudget() {
	desc := s.WriteFile("uart.yaml", `
services:
  - 6e400001-b5a3-f393-e0a9-e50e24dcca9e
include_device_name: true
device_name: Nordic UART
`)

	output, err := s.ExecuteCommand("", "encode", "-f", desc)
	s.ErrorIs(err, adv.ErrPayloadTooLarge)
	s.Empty(output)

	_, err = s.ExecuteCommand("", "encode", "-f", desc, "--limit", "62")
	s.NoError(err)
}

func TestEncodeTestSuite(t *testing.T) {
	suite.Run(t, new(EncodeTestSuite))
}
