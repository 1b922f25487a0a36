// File: internal/auth/oauth_service.go
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"salehunt_backend/internal/common"
	"salehunt_backend/internal/config"
	"salehunt_backend/internal/firebase"
	"salehunt_backend/internal/shared"
)

const (
	googleUserInfoURL    = "https://www.googleapis.com/oauth2/v3/userinfo"
	oauthStateCookieName = "sh_oauth_state"
	oauthStateMaxAge     = 10 * 60
)

// OAuthService runs the Google sign-in flow. The exchange and profile fetch
// happen server-side; the browser finishes sign-in with a provider custom
// token so that all sessions look the same afterwards.
type OAuthService struct {
	cfg    *config.Config
	fb     *firebase.FirebaseService
	logger *zap.Logger
}

// NewOAuthService creates a new OAuth service.
func NewOAuthService(cfg *config.Config, fb *firebase.FirebaseService, logger *zap.Logger) *OAuthService {
	return &OAuthService{
		cfg:    cfg,
		fb:     fb,
		logger: logger.Named("oauth"),
	}
}

func (s *OAuthService) googleConfig() *oauth2.Config {
	base := s.cfg.OAuthRedirectBaseURL
	if base == "" {
		base = s.cfg.PublicBaseURL
	}
	return &oauth2.Config{
		ClientID:     s.cfg.GoogleOAuthClientID,
		ClientSecret: s.cfg.GoogleOAuthClientSecret,
		RedirectURL:  strings.TrimRight(base, "/") + "/api/v1/auth/google/callback",
		Scopes:       []string{"openid", "profile", "email"},
		Endpoint:     google.Endpoint,
	}
}

// GoogleLoginURL generates the consent screen URL and stores the CSRF state
// in a short-lived cookie.
func (s *OAuthService) GoogleLoginURL(c *gin.Context) (string, error) {
	state, err := generateState()
	if err != nil {
		s.logger.Error("Failed to generate OAuth state", zap.Error(err))
		return "", common.ErrInternalServer.WithDetails("Could not initiate Google login.")
	}
	setStateCookie(c, state)

	authURL := s.googleConfig().AuthCodeURL(state, oauth2.AccessTypeOffline)
	return authURL, nil
}

// HandleGoogleCallback validates state, exchanges the code, fetches the
// Google profile and returns a provider custom token for the browser.
func (s *OAuthService) HandleGoogleCallback(c *gin.Context, code, state string) (string, error) {
	storedState, err := c.Cookie(oauthStateCookieName)
	clearStateCookie(c)
	if err != nil || storedState == "" || state != storedState {
		s.logger.Warn("OAuth state mismatch on Google callback")
		return "", common.ErrBadRequest.WithDetails("OAuth state mismatch.")
	}

	ctx := context.WithValue(c.Request.Context(), oauth2.HTTPClient, http.DefaultClient)
	token, err := s.googleConfig().Exchange(ctx, code)
	if err != nil {
		s.logger.Error("Failed to exchange Google auth code", zap.Error(err))
		return "", common.ErrServiceUnavailable.WithDetails("Could not exchange Google auth code.")
	}

	userProfile, err := s.fetchGoogleProfile(ctx, token)
	if err != nil {
		return "", err
	}
	if !userProfile.EmailVerified || userProfile.Email == "" {
		return "", common.ErrUnauthorized.WithDetails("Google account email is not verified.")
	}

	uid, err := s.fb.ImportOAuthUser(ctx, userProfile.Email, userProfile.FullName, userProfile.PictureURL)
	if err != nil {
		return "", common.ErrInternalServer.WithDetails("Could not link Google account.")
	}

	customToken, err := s.fb.CustomToken(ctx, uid)
	if err != nil {
		return "", common.ErrInternalServer.WithDetails("Could not finish Google sign-in.")
	}

	s.logger.Info("Google OAuth callback processed", zap.String("uid", uid))
	return customToken, nil
}

func (s *OAuthService) fetchGoogleProfile(ctx context.Context, token *oauth2.Token) (*shared.OAuthUserProfile, error) {
	client := s.googleConfig().Client(ctx, token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		s.logger.Error("Failed to fetch user info from Google", zap.Error(err))
		return nil, common.ErrServiceUnavailable.WithDetails("Could not fetch user info from Google.")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Error("Google user info request failed", zap.Int("status", resp.StatusCode))
		return nil, common.ErrServiceUnavailable.WithDetails(fmt.Sprintf("Google returned status %d for user info.", resp.StatusCode))
	}

	var googleUser struct {
		Sub           string `json:"sub"`
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&googleUser); err != nil {
		s.logger.Error("Failed to decode Google user info", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not process Google user information.")
	}

	return &shared.OAuthUserProfile{
		Provider:      "google",
		ProviderID:    googleUser.Sub,
		Email:         strings.ToLower(googleUser.Email),
		FullName:      googleUser.Name,
		PictureURL:    googleUser.Picture,
		EmailVerified: googleUser.EmailVerified,
	}, nil
}

func generateState() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func setStateCookie(c *gin.Context, state string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     oauthStateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   oauthStateMaxAge,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearStateCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     oauthStateCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
