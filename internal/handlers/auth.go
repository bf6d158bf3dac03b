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

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
	orgService  *services.OrganizationService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, orgService *services.OrganizationService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		orgService:  orgService,
	}
}

// Register registers an organization and returns usable credentials.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.Register(services.RegisterInput{
		Name:                req.Name,
		Username:            req.Username,
		Password:            req.Password,
		Country:             req.Country,
		SocialMediaPlatform: req.SocialMediaPlatform,
		SocialMediaHandle:   req.SocialMediaHandle,
		PictureURL:          req.PictureURL,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		Message:      result.Message,
		Org:          dto.ToOrganizationDTO(*result.Org),
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
	})
}

// RegisterByApplicationID completes a code-validated application with chosen
// credentials.
func (h *AuthHandler) RegisterByApplicationID(c *gin.Context) {
	type request struct {
		Username string `json:"username" binding:"required,min=3,max=50"`
		Password string `json:"password" binding:"required,min=8"`
	}

	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.RegisterByApplicationID(c.Param("applicationId"), req.Username, req.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		Message:      result.Message,
		Org:          dto.ToOrganizationDTO(*result.Org),
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
	})
}

// Login authenticates an organization and returns a token pair.
func (h *AuthHandler) Login(c *gin.Context) {
	type request struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	org, pair, err := h.authService.Login(services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Org:          dto.ToOrganizationDTO(*org),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Refresh rotates a token pair from a refresh token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	type request struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Unauthorized(c, "Refresh token is required")
		return
	}

	org, pair, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Org:          dto.ToOrganizationDTO(*org),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Profile returns the authenticated organization.
func (h *AuthHandler) Profile(c *gin.Context) {
	orgID, exists := middleware.GetOrgID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	org, err := h.orgService.FindByID(orgID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationDTO(*org))
}

// Activate completes the two-phase invite workflow for the authenticated org.
func (h *AuthHandler) Activate(c *gin.Context) {
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

	result, err := h.orgService.ActivateAccount(orgID, req.InviteCode)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	if result.AlreadyVerified {
		c.JSON(http.StatusOK, dto.VerificationResponse{
			Message:  "Account is already verified",
			Verified: true,
		})
		return
	}

	orgDTO := dto.ToOrganizationDTO(*result.Org)
	c.JSON(http.StatusOK, dto.VerificationResponse{
		Message:  "Account successfully activated!",
		Verified: true,
		Org:      &orgDTO,
	})
}

// registerRequest is shared by both registration variants.
type registerRequest struct {
	Name                string `json:"name" binding:"required,max=255"`
	Username            string `json:"username" binding:"required,min=3,max=50"`
	Password            string `json:"password" binding:"required,min=8"`
	Country             string `json:"country"`
	SocialMediaPlatform string `json:"social_media_platform"`
	SocialMediaHandle   string `json:"social_media_handle"`
	PictureURL          string `json:"picture_url"`
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUsernameTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrOrgNotAllowed),
		errors.Is(err, services.ErrNoCredentialsSet),
		errors.Is(err, services.ErrInvalidRefreshToken):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrOrgNotFound),
		errors.Is(err, services.ErrApplicationNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotApproved),
		errors.Is(err, services.ErrCodeNotValidated),
		errors.Is(err, services.ErrInvalidInviteCode),
		errors.Is(err, services.ErrInviteCodeUsed),
		errors.Is(err, services.ErrInviteCodeExpired):
		apierrors.BadRequest(c, err.Error())
	default:
		log.Printf("auth handler error: %v", err)
		apierrors.InternalError(c, "")
	}
}
