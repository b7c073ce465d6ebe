package models

import "vivaha-be/internal/onboarding"

// OnboardingStepResponse renders one onboarding step.
type OnboardingStepResponse struct {
	Title   string              `json:"title"`
	Prompt  string              `json:"prompt"`
	Options []onboarding.Option `json:"options"`
}

// SelectOptionRequest picks an option of an onboarding step by ID.
type SelectOptionRequest struct {
	Option string `json:"option" binding:"required"`
}
