package auth

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Credentials is the persisted token pair for the scenyx API.
type Credentials struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	Updated      time.Time `json:"updated"`
}

func authPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".scenyx", "auth.json"), nil
}

// Save persists a token pair for later use by the CLI.
func Save(creds Credentials) error {
	creds.AccessToken = strings.TrimSpace(creds.AccessToken)
	creds.RefreshToken = strings.TrimSpace(creds.RefreshToken)
	if creds.AccessToken == "" {
		return errors.New("empty access token")
	}
	path, err := authPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	creds.Updated = time.Now()
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Load returns the stored credentials, zero-valued when none are present.
func Load() (Credentials, error) {
	path, err := authPath()
	if err != nil {
		return Credentials{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Credentials{}, nil
		}
		return Credentials{}, err
	}
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}, err
	}
	creds.AccessToken = strings.TrimSpace(creds.AccessToken)
	creds.RefreshToken = strings.TrimSpace(creds.RefreshToken)
	return creds, nil
}

// Clear removes any stored credentials.
func Clear() error {
	path, err := authPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Subject returns the access token's sub claim, or "" when the token is not a
// JWT. The backend wants the creator id on scene creation.
func Subject(accessToken string) string {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(strings.TrimSpace(accessToken), &claims); err != nil {
		return ""
	}
	return claims.Subject
}

// expirySkew refreshes slightly early so a token does not expire mid-request.
const expirySkew = 30 * time.Second

// Expired reports whether the access token's exp claim has passed (or is about
// to). Tokens that are not JWTs or carry no exp claim are treated as
// non-expiring; the server remains the authority either way.
func Expired(accessToken string, now time.Time) bool {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return true
	}
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(accessToken, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !now.Add(expirySkew).Before(claims.ExpiresAt.Time)
}
