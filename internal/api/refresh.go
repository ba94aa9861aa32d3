package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// RefreshAccessToken exchanges a refresh token for a new token pair. It is a
// plain function so the login flow can use it before any Client exists.
func RefreshAccessToken(ctx context.Context, httpClient *http.Client, baseURL, refreshToken string) (access, refresh string, err error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return "", "", errors.New("no refresh token stored")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	body, err := json.Marshal(struct {
		RefreshToken string `json:"refresh_token"`
	}{RefreshToken: refreshToken})
	if err != nil {
		return "", "", err
	}

	endpoint := strings.TrimRight(strings.TrimSpace(baseURL), "/") + "/api/v1/auth/refresh"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", "", err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return "", "", ErrUnauthorized
	}
	if resp.StatusCode >= 400 {
		return "", "", fmt.Errorf("refresh: status %d: %s", resp.StatusCode, previewBody(data))
	}

	var res struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.Unmarshal(data, &res); err != nil {
		return "", "", fmt.Errorf("decode refresh response: %w", err)
	}
	if strings.TrimSpace(res.AccessToken) == "" {
		return "", "", errors.New("refresh response missing access token")
	}
	if strings.TrimSpace(res.RefreshToken) == "" {
		res.RefreshToken = refreshToken
	}
	return res.AccessToken, res.RefreshToken, nil
}
