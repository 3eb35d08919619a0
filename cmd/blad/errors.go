package main

import (
	"errors"
	"fmt"

	"github.com/srg/blad/internal/adv"
)

// Command-level errors
var (
	// ErrInvalidPayload indicates input that could not be read as a hex payload.
	// Payloads that are valid hex but malformed as advertising data are not an
	// error: they decode to whatever could be recovered.
	ErrInvalidPayload = errors.New("invalid payload")

	// ErrInvalidInput indicates a malformed line in a sightings capture.
	ErrInvalidInput = errors.New("invalid input")
)

// FormatUserError turns an error into a message for the terminal.
func FormatUserError(err error) string {
	var budgetErr *adv.BudgetError
	switch {
	case errors.As(err, &budgetErr):
		return fmt.Sprintf("advertising payload needs %d bytes but only %d fit; drop fields or shorten the name",
			budgetErr.Size, budgetErr.Limit)
	case errors.Is(err, adv.ErrFieldTooLong):
		return fmt.Sprintf("%s (a single field holds at most 254 bytes)", err)
	default:
		return err.Error()
	}
}
