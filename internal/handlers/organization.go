package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SoufianeJm/mooja/internal/dto"
	apierrors "github.com/SoufianeJm/mooja/internal/errors"
	"github.com/SoufianeJm/mooja/internal/middleware"
	"github.com/SoufianeJm/mooja/internal/services"
)

// OrganizationHandler coordinates organization lifecycle HTTP handlers.
type OrganizationHandler struct {
	orgService *services.OrganizationService
}

// NewOrganizationHandler creates a new OrganizationHandler.
func NewOrganizationHandler(orgService *services.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{
		orgService: orgService,
	}
}

// Register creates a new pending organization.
func (h *OrganizationHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	org, err := h.orgService.Register(services.RegisterInput{
		Name:                req.Name,
		Username:            req.Username,
		Password:            req.Password,
		Country:             req.Country,
		SocialMediaPlatform: req.SocialMediaPlatform,
		SocialMediaHandle:   req.SocialMediaHandle,
		PictureURL:          req.PictureURL,
	})
	if err != nil {
		respondOrgError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{
		Message: "Organization registered successfully. Please verify with your invite code.",
		Org:     dto.ToOrganizationDTO(*org),
	})
}

// VerifyCode validates an invite code for an approved application without
// consuming it (pre-registration step).
func (h *OrganizationHandler) VerifyCode(c *gin.Context) {
	type request struct {
		ApplicationID string `json:"application_id" binding:"required"`
		InviteCode    string `json:"invite_code" binding:"required"`
	}

	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.orgService.VerifyApplicationCode(req.ApplicationID, req.InviteCode)
	if err != nil {
		respondOrgError(c, err)
		return
	}

	orgDTO := dto.ToOrganizationDTO(*result.Org)
	if result.AlreadyVerified {
		c.JSON(http.StatusOK, dto.VerificationResponse{
			Message:  "Organization is already verified",
			Verified: true,
			Org:      &orgDTO,
		})
		return
	}

	c.JSON(http.StatusOK, dto.VerificationResponse{
		Message:   "Invite code validated successfully. Please create your account to complete verification.",
		Validated: true,
		Org:       &orgDTO,
	})
}

// VerifyWithCode verifies the authenticated organization, consuming the code.
func (h *OrganizationHandler) VerifyWithCode(c *gin.Context) {
	orgID, exists := middleware.GetOrgID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type request struct {
		InviteCode string `json:"invite_code" binding:"required"`
	}

	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.orgService.VerifyWithInviteCode(orgID, req.InviteCode)
	if err != nil {
		respondOrgError(c, err)
		return
	}

	if result.AlreadyVerified {
		c.JSON(http.StatusOK, dto.VerificationResponse{
			Message:  "Organization is already verified",
			Verified: true,
		})
		return
	}

	orgDTO := dto.ToOrganizationDTO(*result.Org)
	c.JSON(http.StatusOK, dto.VerificationResponse{
		Message:  "Organization verified successfully",
		Verified: true,
		Org:      &orgDTO,
	})
}

// RequestVerification handles the legacy free-form verification request.
func (h *OrganizationHandler) RequestVerification(c *gin.Context) {
	type request struct {
		Name                string `json:"name" binding:"required,max=255"`
		Country             string `json:"country"`
		SocialMediaPlatform string `json:"social_media_platform"`
		SocialMediaHandle   string `json:"social_media_handle"`
	}

	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	org, err := h.orgService.RequestVerification(services.RequestVerificationInput{
		Name:                req.Name,
		Country:             req.Country,
		SocialMediaPlatform: req.SocialMediaPlatform,
		SocialMediaHandle:   req.SocialMediaHandle,
	})
	if err != nil {
		respondOrgError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{
		Message: "Verification request submitted. You will receive credentials once verified.",
		Org:     dto.ToOrganizationDTO(*org),
	})
}

// ListByCountry returns organizations filtered by country. Without a country
// the list is empty rather than global.
func (h *OrganizationHandler) ListByCountry(c *gin.Context) {
	country := c.Query("country")
	if country == "" {
		c.JSON(http.StatusOK, []dto.OrganizationDTO{})
		return
	}

	orgs, err := h.orgService.FindByCountry(country)
	if err != nil {
		respondOrgError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationDTOs(orgs))
}

// UsernameStatus reports whether a username is available. The underlying
// check is timing-normalized.
func (h *OrganizationHandler) UsernameStatus(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		apierrors.BadRequest(c, "username query parameter is required")
		return
	}

	available, err := h.orgService.CheckUsernameAvailability(username)
	if err != nil {
		respondOrgError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username":     username,
		"is_available": available,
	})
}

// ApplicationStatus reports where an application sits in the verification
// workflow.
func (h *OrganizationHandler) ApplicationStatus(c *gin.Context) {
	org, err := h.orgService.FindByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrOrgNotFound) {
			apierrors.NotFound(c, services.ErrApplicationNotFound.Error())
			return
		}
		respondOrgError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToApplicationStatusDTO(*org))
}

// GetByUsername returns an organization's public data by username.
func (h *OrganizationHandler) GetByUsername(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		apierrors.BadRequest(c, "username query parameter is required")
		return
	}

	org, err := h.orgService.FindByUsername(username)
	if err != nil {
		respondOrgError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationDTO(*org))
}

func respondOrgError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUsernameTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrOrgNotFound),
		errors.Is(err, services.ErrApplicationNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotApproved),
		errors.Is(err, services.ErrInvalidInviteCode),
		errors.Is(err, services.ErrInviteCodeUsed),
		errors.Is(err, services.ErrInviteCodeExpired):
		apierrors.BadRequest(c, err.Error())
	default:
		log.Printf("organization handler error: %v", err)
		apierrors.InternalError(c, "")
	}
}
