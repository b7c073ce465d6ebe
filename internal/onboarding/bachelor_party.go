// Package onboarding holds the UI-agnostic onboarding steps. A step reports
// the user's choice through its callback and never persists anything itself.
package onboarding

import (
	"fmt"

	"vivaha-be/internal/entities"
)

const (
	OptIn  = "opt-in"
	OptOut = "opt-out"
)

const (
	BachelorPartyTitle  = "Bachelor / Bachelorette Trip"
	BachelorPartyPrompt = "Would you like to use Vivaha to plan and coordinate your bachelor or bachelorette trip as well?"
)

// Option is one selectable answer of a step.
type Option struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Selected    bool   `json:"selected"`
}

// BachelorPartyStep asks whether the couple also wants to plan a bachelor or
// bachelorette trip. There is no undecided state: Wants picks the selected
// option.
type BachelorPartyStep struct {
	Wants    bool
	OnChange func(bool)
}

// Options returns opt-in and opt-out, exactly one of them selected.
func (s BachelorPartyStep) Options() []Option {
	return []Option{
		{
			ID:          OptIn,
			Title:       "Yes, plan my trip too!",
			Description: "Get a dedicated dashboard for budget tracking, flights, stays, and expense splitting",
			Selected:    s.Wants,
		},
		{
			ID:          OptOut,
			Title:       "No, just wedding planning",
			Description: "Focus on the wedding. You can always add this later!",
			Selected:    !s.Wants,
		},
	}
}

// Select reports the chosen option through OnChange, once per call. Wants is
// not modified.
func (s BachelorPartyStep) Select(id string) error {
	var value bool
	switch id {
	case OptIn:
		value = true
	case OptOut:
		value = false
	default:
		return fmt.Errorf("unknown bachelor party option %q", id)
	}
	if s.OnChange != nil {
		s.OnChange(value)
	}
	return nil
}

// Apply returns an OnChange callback that records the choice in data.
func Apply(data *entities.OnboardingData) func(bool) {
	return func(wants bool) {
		data.WantsBachelorParty = wants
	}
}

// BachelorPartyFor builds the step from stored onboarding answers, writing
// any selection back into them.
func BachelorPartyFor(data *entities.OnboardingData) BachelorPartyStep {
	return BachelorPartyStep{Wants: data.WantsBachelorParty, OnChange: Apply(data)}
}
