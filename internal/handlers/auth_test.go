package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/SoufianeJm/mooja/internal/config"
	"github.com/SoufianeJm/mooja/internal/constants"
	"github.com/SoufianeJm/mooja/internal/database"
	"github.com/SoufianeJm/mooja/internal/middleware"
	"github.com/SoufianeJm/mooja/internal/models"
	"github.com/SoufianeJm/mooja/internal/repository"
	"github.com/SoufianeJm/mooja/internal/services"
	"golang.org/x/crypto/bcrypt"
)

type authTestEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	authService *services.AuthService
	orgService  *services.OrganizationService
	tokens      *services.TokenService
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:            "test-access-secret",
		JWTRefreshSecret:     "test-refresh-secret",
		JWTExpiration:        15 * time.Minute,
		JWTRefreshExpiration: 7 * 24 * time.Hour,
	}
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Organization{},
		&models.InviteCode{},
		&models.Protest{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	orgRepo := repository.NewOrganizationRepository(db)
	inviteRepo := repository.NewInviteCodeRepository(db)
	tokens := services.NewTokenService(testConfig())
	orgService := services.NewOrganizationService(orgRepo, inviteRepo)
	authService := services.NewAuthService(orgService, orgRepo, tokens)

	authHandler := NewAuthHandler(authService, orgService)

	requireAuth := middleware.RequireOrgAuth(tokens, orgService)

	r := gin.New()
	r.POST("/api/auth/org/register", authHandler.Register)
	r.POST("/api/auth/org/login", authHandler.Login)
	r.POST("/api/auth/refresh", authHandler.Refresh)
	r.GET("/api/auth/org/profile", requireAuth, authHandler.Profile)
	r.POST("/api/auth/org/activate", requireAuth, authHandler.Activate)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:          db,
		router:      r,
		authService: authService,
		orgService:  orgService,
		tokens:      tokens,
	}
}

func (env authTestEnv) createOrg(t *testing.T, username, password, status string) *models.Organization {
	t.Helper()

	org := &models.Organization{
		Name:               username,
		Username:           username,
		VerificationStatus: status,
	}
	if password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		require.NoError(t, err)
		passwordHash := string(hashed)
		org.PasswordHash = &passwordHash
	}
	require.NoError(t, env.db.Create(org).Error)
	return org
}

func (env authTestEnv) createInviteCode(t *testing.T, code string, expiresAt time.Time, used bool) *models.InviteCode {
	t.Helper()

	invite := &models.InviteCode{
		Code:      code,
		IsUsed:    used,
		ExpiresAt: expiresAt,
		SentTo:    "org@example.com",
		SentAt:    time.Now(),
	}
	require.NoError(t, env.db.Create(invite).Error)
	return invite
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)

	tests := []struct {
		name       string
		username   string
		password   string
		status     string
		loginAs    string
		loginWith  string
		wantStatus int
	}{
		{"verified org logs in", "verified_org", "supersecret", constants.StatusVerified, "verified_org", "supersecret", http.StatusOK},
		{"pending org logs in", "pending_org", "supersecret", constants.StatusPending, "pending_org", "supersecret", http.StatusOK},
		{"approved org logs in", "approved_org", "supersecret", constants.StatusApproved, "approved_org", "supersecret", http.StatusOK},
		{"rejected org is refused", "rejected_org", "supersecret", constants.StatusRejected, "rejected_org", "supersecret", http.StatusUnauthorized},
		{"wrong password is refused", "other_org", "supersecret", constants.StatusVerified, "other_org", "wrong", http.StatusUnauthorized},
		{"unknown username is refused", "known_org", "supersecret", constants.StatusVerified, "no_such_org", "supersecret", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env.createOrg(t, tt.username, tt.password, tt.status)

			w := postJSON(t, env.router, "/api/auth/org/login", map[string]string{
				"username": tt.loginAs,
				"password": tt.loginWith,
			}, "")
			require.Equal(t, tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusOK {
				var resp struct {
					AccessToken  string `json:"access_token"`
					RefreshToken string `json:"refresh_token"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				require.NotEmpty(t, resp.AccessToken)
				require.NotEmpty(t, resp.RefreshToken)
			}
		})
	}
}

func TestAuthHandler_Login_NoPasswordSet(t *testing.T) {
	env := setupAuthTestEnv(t)
	env.createOrg(t, "no_creds_org", "", constants.StatusApproved)

	w := postJSON(t, env.router, "/api/auth/org/login", map[string]string{
		"username": "no_creds_org",
		"password": "anything",
	}, "")

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Login_PasswordNeverReturned(t *testing.T) {
	env := setupAuthTestEnv(t)
	env.createOrg(t, "secretive_org", "supersecret", constants.StatusVerified)

	w := postJSON(t, env.router, "/api/auth/org/login", map[string]string{
		"username": "secretive_org",
		"password": "supersecret",
	}, "")

	require.Equal(t, http.StatusOK, w.Code)
	require.NotContains(t, w.Body.String(), "password")
}

func TestAuthHandler_Register_ReturnsTokens(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := postJSON(t, env.router, "/api/auth/org/register", map[string]string{
		"name":     "Acme Rights",
		"username": "acme",
		"password": "supersecret",
	}, "")

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Org struct {
			Username           string `json:"username"`
			VerificationStatus string `json:"verification_status"`
		} `json:"org"`
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "acme", resp.Org.Username)
	require.Equal(t, constants.StatusPending, resp.Org.VerificationStatus)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)
}

func TestAuthHandler_Refresh_RotatesPair(t *testing.T) {
	env := setupAuthTestEnv(t)
	org := env.createOrg(t, "refresh_org", "supersecret", constants.StatusVerified)

	pair, err := env.tokens.IssuePair(org.ID, org.Username)
	require.NoError(t, err)

	w := postJSON(t, env.router, "/api/auth/refresh", map[string]string{
		"refresh_token": pair.RefreshToken,
	}, "")

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)
}

func TestAuthHandler_Refresh_RejectsAccessToken(t *testing.T) {
	env := setupAuthTestEnv(t)
	org := env.createOrg(t, "sneaky_org", "supersecret", constants.StatusVerified)

	pair, err := env.tokens.IssuePair(org.ID, org.Username)
	require.NoError(t, err)

	// An access token must not pass as a refresh token.
	w := postJSON(t, env.router, "/api/auth/refresh", map[string]string{
		"refresh_token": pair.AccessToken,
	}, "")

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Refresh_RejectsRejectedOrg(t *testing.T) {
	env := setupAuthTestEnv(t)
	org := env.createOrg(t, "soon_rejected", "supersecret", constants.StatusVerified)

	pair, err := env.tokens.IssuePair(org.ID, org.Username)
	require.NoError(t, err)

	require.NoError(t, env.db.Model(org).Update("verification_status", constants.StatusRejected).Error)

	w := postJSON(t, env.router, "/api/auth/refresh", map[string]string{
		"refresh_token": pair.RefreshToken,
	}, "")

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Profile(t *testing.T) {
	env := setupAuthTestEnv(t)
	org := env.createOrg(t, "profile_org", "supersecret", constants.StatusVerified)

	pair, err := env.tokens.IssuePair(org.ID, org.Username)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/org/profile", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "profile_org", resp.Username)
}

func TestAuthHandler_Profile_RequiresToken(t *testing.T) {
	env := setupAuthTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/org/profile", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Activate_ConsumesCodeOnce(t *testing.T) {
	env := setupAuthTestEnv(t)

	org := env.createOrg(t, "activating_org", "supersecret", constants.StatusApproved)
	env.createInviteCode(t, "CODE-1234", time.Now().Add(24*time.Hour), false)

	// Pre-registration validation records the code without consuming it.
	result, err := env.orgService.VerifyApplicationCode(org.ID, "CODE-1234")
	require.NoError(t, err)
	require.True(t, result.Validated)

	var invite models.InviteCode
	require.NoError(t, env.db.First(&invite, "code = ?", "CODE-1234").Error)
	require.False(t, invite.IsUsed)

	pair, err := env.tokens.IssuePair(org.ID, org.Username)
	require.NoError(t, err)

	w := postJSON(t, env.router, "/api/auth/org/activate", map[string]string{
		"invite_code": "CODE-1234",
	}, pair.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Organization
	require.NoError(t, env.db.First(&updated, "id = ?", org.ID).Error)
	require.Equal(t, constants.StatusVerified, updated.VerificationStatus)
	require.NotNil(t, updated.VerifiedAt)

	require.NoError(t, env.db.First(&invite, "code = ?", "CODE-1234").Error)
	require.True(t, invite.IsUsed)

	// A second activation of an already-verified org reports success without
	// touching the code again; a different approved org reusing the code must
	// be refused.
	other := env.createOrg(t, "second_org", "supersecret", constants.StatusApproved)
	code := "CODE-1234"
	require.NoError(t, env.db.Model(other).Update("invite_code_used", &code).Error)

	otherPair, err := env.tokens.IssuePair(other.ID, other.Username)
	require.NoError(t, err)

	w = postJSON(t, env.router, "/api/auth/org/activate", map[string]string{
		"invite_code": "CODE-1234",
	}, otherPair.AccessToken)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "already been used")
}

func TestAuthHandler_Activate_WrongCodeRejected(t *testing.T) {
	env := setupAuthTestEnv(t)

	org := env.createOrg(t, "replay_org", "supersecret", constants.StatusApproved)
	env.createInviteCode(t, "CODE-GOOD", time.Now().Add(24*time.Hour), false)
	env.createInviteCode(t, "CODE-OTHER", time.Now().Add(24*time.Hour), false)

	_, err := env.orgService.VerifyApplicationCode(org.ID, "CODE-GOOD")
	require.NoError(t, err)

	pair, err := env.tokens.IssuePair(org.ID, org.Username)
	require.NoError(t, err)

	// Activation must present the same code that was validated earlier.
	w := postJSON(t, env.router, "/api/auth/org/activate", map[string]string{
		"invite_code": "CODE-OTHER",
	}, pair.AccessToken)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
