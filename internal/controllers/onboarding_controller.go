package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vivaha-be/internal/entities"
	"vivaha-be/internal/models"
	"vivaha-be/internal/onboarding"
	"vivaha-be/internal/service"
)

type OnboardingController struct {
	onboardingService service.OnboardingService
}

func NewOnboardingController(onboardingService service.OnboardingService) *OnboardingController {
	return &OnboardingController{onboardingService: onboardingService}
}

// Get handles GET /api/onboarding
func (oc *OnboardingController) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	data, err := oc.onboardingService.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK(data))
}

// Save handles POST and PUT /api/onboarding. Both replace the answers.
func (oc *OnboardingController) Save(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var data entities.OnboardingData
	if err := c.ShouldBindJSON(&data); err != nil {
		respondBindError(c, err)
		return
	}

	if _, err := oc.onboardingService.Save(c.Request.Context(), userID, &data); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK(data))
}

// BachelorParty handles GET /api/onboarding/bachelor-party
func (oc *OnboardingController) BachelorParty(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	data, err := oc.onboardingService.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK(bachelorPartyView(onboarding.BachelorPartyFor(data))))
}

// SelectBachelorParty handles POST /api/onboarding/bachelor-party
func (oc *OnboardingController) SelectBachelorParty(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.SelectOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	data, err := oc.onboardingService.Get(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := onboarding.BachelorPartyFor(data).Select(req.Option); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail(err.Error()))
		return
	}

	if _, err := oc.onboardingService.SaveDraft(ctx, userID, data); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK(bachelorPartyView(onboarding.BachelorPartyFor(data))))
}

func bachelorPartyView(step onboarding.BachelorPartyStep) models.OnboardingStepResponse {
	return models.OnboardingStepResponse{
		Title:   onboarding.BachelorPartyTitle,
		Prompt:  onboarding.BachelorPartyPrompt,
		Options: step.Options(),
	}
}
