package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SoufianeJm/mooja/internal/constants"
	apierrors "github.com/SoufianeJm/mooja/internal/errors"
	"github.com/SoufianeJm/mooja/internal/services"
)

// RequireOrgAuth guards routes with a bearer access token. The token must
// verify, carry type "org", and reference an organization that still exists.
func RequireOrgAuth(tokens *services.TokenService, orgService *services.OrganizationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		claims, err := tokens.VerifyAccess(token)
		if err != nil {
			switch err {
			case services.ErrExpiredToken:
				apierrors.Unauthorized(c, "Token has expired")
			case services.ErrWrongTokenUse:
				apierrors.Unauthorized(c, "Invalid token type")
			default:
				apierrors.Unauthorized(c, "Invalid token")
			}
			c.Abort()
			return
		}

		// The org must still exist; a deleted org's tokens stop working.
		org, err := orgService.FindByID(claims.Subject)
		if err != nil {
			apierrors.Unauthorized(c, "Organization not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyOrgID, org.ID)
		c.Set(constants.ContextKeyOrgUsername, org.Username)
		c.Next()
	}
}

// GetOrgID retrieves the authenticated organization ID from context.
func GetOrgID(c *gin.Context) (string, bool) {
	value, exists := c.Get(constants.ContextKeyOrgID)
	if !exists {
		return "", false
	}
	id, ok := value.(string)
	return id, ok
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
