package handlers

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"gradi/server/internal/database"
	"gradi/server/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// GoogleOAuthURL generates the Google OAuth URL
func GoogleOAuthURL(c *fiber.Ctx) error {
	// Get OAuth config from environment
	googleClientID := os.Getenv("GOOGLE_CLIENT_ID")
	googleRedirectURL := os.Getenv("GOOGLE_REDIRECT_URL")

	if googleClientID == "" || googleRedirectURL == "" {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Google OAuth not configured",
		})
	}

	// Generate state token for CSRF protection
	state := generateStateToken()

	// Store state in cookie for verification
	c.Cookie(&fiber.Cookie{
		Name:     "oauth_state",
		Value:    state,
		HTTPOnly: true,
		Secure:   false,
		SameSite: "Lax",
		MaxAge:   300, // 5 minutes
	})

	// Build OAuth URL
	oauthURL := fmt.Sprintf(
		"https://accounts.google.com/o/oauth2/v2/auth?client_id=%s&redirect_uri=%s&response_type=code&scope=openid email profile&state=%s",
		googleClientID,
		googleRedirectURL,
		state,
	)

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"url": oauthURL,
		},
	})
}

// GoogleOAuthCallback handles the OAuth callback
func GoogleOAuthCallback(c *fiber.Ctx) error {
	// Get state from cookie
	cookieState := c.Cookies("oauth_state")
	queryState := c.Query("state")

	// Verify state token
	if cookieState == "" || cookieState != queryState {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid state parameter",
		})
	}

	// Clear state cookie
	c.Cookie(&fiber.Cookie{
		Name:     "oauth_state",
		Value:    "",
		HTTPOnly: true,
		MaxAge:   -1,
	})

	// Get authorization code
	code := c.Query("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Authorization code not found",
		})
	}

	// Exchange code for access token
	tokenData, err := exchangeCodeForToken(code)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to exchange code for token",
		})
	}

	// Get user info from Google
	googleUser, err := getGoogleUserInfo(tokenData.AccessToken)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to get user info",
		})
	}

	// Check if a profile already exists for this email
	var profile models.Profile
	err = database.Pool.QueryRow(context.Background(), `
		SELECT id, username, full_name, avatar_url, bio, email, has_password, auth_provider, google_id, created_at, updated_at
		FROM profiles WHERE email = $1
	`, googleUser.Email).Scan(&profile.ID, &profile.Username, &profile.FullName, &profile.AvatarURL, &profile.Bio,
		&profile.Email, &profile.HasPassword, &profile.AuthProvider, &profile.GoogleID, &profile.CreatedAt, &profile.UpdatedAt)

	if err == pgx.ErrNoRows {
		// Create a new profile; Google accounts start without a password
		insertQuery := `
			INSERT INTO profiles (id, full_name, avatar_url, email, has_password, auth_provider, google_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, false, 'google', $5, $6, $7)
			RETURNING id, username, full_name, avatar_url, bio, email, has_password, auth_provider, google_id, created_at, updated_at
		`
		err = database.Pool.QueryRow(context.Background(), insertQuery,
			uuid.New().String(), googleUser.Name, googleUser.Picture, googleUser.Email, googleUser.Sub, time.Now(), time.Now()).
			Scan(&profile.ID, &profile.Username, &profile.FullName, &profile.AvatarURL, &profile.Bio,
				&profile.Email, &profile.HasPassword, &profile.AuthProvider, &profile.GoogleID, &profile.CreatedAt, &profile.UpdatedAt)

		if err != nil {
			log.Printf("Failed to create profile: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "Failed to create user",
			})
		}
	} else if err != nil {
		log.Printf("Database error while checking profile: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Database error",
		})
	} else if profile.GoogleID == nil {
		// Existing email/password account signing in with Google for the
		// first time: link the Google identity
		_, _ = database.Pool.Exec(context.Background(),
			"UPDATE profiles SET google_id = $1, updated_at = $2 WHERE id = $3",
			googleUser.Sub, time.Now(), profile.ID)
	}

	if err := issueTokenPair(c, profile.ID, profile.Email); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to generate token",
		})
	}

	// Redirect to frontend
	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:5173"
	}

	return c.Redirect(frontendURL)
}

// TokenResponse represents Google OAuth token response
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// GoogleUser represents user info from Google
type GoogleUser struct {
	Sub           string `json:"sub"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
}

// exchangeCodeForToken exchanges authorization code for access token
func exchangeCodeForToken(code string) (*TokenResponse, error) {
	googleClientID := os.Getenv("GOOGLE_CLIENT_ID")
	googleClientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	googleRedirectURL := os.Getenv("GOOGLE_REDIRECT_URL")

	tokenURL := "https://oauth2.googleapis.com/token"

	data := fmt.Sprintf(
		"code=%s&client_id=%s&client_secret=%s&redirect_uri=%s&grant_type=authorization_code",
		code, googleClientID, googleClientSecret, googleRedirectURL,
	)

	resp, err := http.Post(tokenURL, "application/x-www-form-urlencoded", strings.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get token, status: %d", resp.StatusCode)
	}

	var tokenResp TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, err
	}

	return &tokenResp, nil
}

// getGoogleUserInfo gets user information from Google
func getGoogleUserInfo(accessToken string) (*GoogleUser, error) {
	userInfoURL := "https://www.googleapis.com/oauth2/v2/userinfo"

	req, err := http.NewRequest("GET", userInfoURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to get user info, status: %d, body: %s", resp.StatusCode, string(body))
	}

	var googleUser GoogleUser
	if err := json.NewDecoder(resp.Body).Decode(&googleUser); err != nil {
		return nil, err
	}

	return &googleUser, nil
}

// generateStateToken generates a random state token
func generateStateToken() string {
	b := make([]byte, 32)
	rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}
