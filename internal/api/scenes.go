package api

import (
	"context"
	"errors"
	"net/url"
	"strings"
)

// Scene is the detail payload for a single scene.
type Scene struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ArtistName  string `json:"artistName"`
	Listeners   int    `json:"listeners"`
	ActiveUsers int    `json:"activeUsers"`
}

// History returns the ordered scene identifiers for the authenticated user,
// most recent first as the backend defines it. The order is preserved as-is.
func (c *Client) History(ctx context.Context) ([]string, error) {
	var res struct {
		Resources []string `json:"resources"`
	}
	if err := c.getJSON(ctx, "/api/v1/scenes/history", nil, &res); err != nil {
		return nil, err
	}
	return res.Resources, nil
}

// Name returns the display name for one scene.
func (c *Client) Name(ctx context.Context, sceneID string) (string, error) {
	if strings.TrimSpace(sceneID) == "" {
		return "", errors.New("empty scene id")
	}
	var res struct {
		Name string `json:"name"`
	}
	query := url.Values{"scene_id": []string{sceneID}}
	if err := c.getJSON(ctx, "/api/v1/scenes/name", query, &res); err != nil {
		return "", err
	}
	return res.Name, nil
}

// Thumbnail returns the raw PNG/JPEG preview bytes for one scene.
func (c *Client) Thumbnail(ctx context.Context, sceneID string) ([]byte, error) {
	if strings.TrimSpace(sceneID) == "" {
		return nil, errors.New("empty scene id")
	}
	query := url.Values{"scene_id": []string{sceneID}}
	data, err := c.do(ctx, "GET", "/api/v1/scenes/thumbnail", query, nil)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("empty thumbnail payload")
	}
	return data, nil
}

// SceneData returns the detail data for one scene.
func (c *Client) SceneData(ctx context.Context, sceneID string) (Scene, error) {
	if strings.TrimSpace(sceneID) == "" {
		return Scene{}, errors.New("empty scene id")
	}
	req := struct {
		SceneID string `json:"sceneID"`
	}{SceneID: sceneID}
	var res Scene
	if err := c.postJSON(ctx, "/api/v1/scenes/data", req, &res); err != nil {
		return Scene{}, err
	}
	res.ID = sceneID
	return res, nil
}

// Create creates a scene and returns it.
func (c *Client) Create(ctx context.Context, name, artistName, creatorID string) (Scene, error) {
	if strings.TrimSpace(name) == "" {
		return Scene{}, errors.New("empty scene name")
	}
	req := struct {
		Name       string `json:"name"`
		ArtistName string `json:"artistName"`
		CreatorID  string `json:"CreatorID"`
	}{Name: name, ArtistName: artistName, CreatorID: creatorID}
	var res Scene
	if err := c.postJSON(ctx, "/api/v1/scenes/create", req, &res); err != nil {
		return Scene{}, err
	}
	return res, nil
}

// ShareLink verifies the scene is shareable and returns a join URL for it.
func (c *Client) ShareLink(ctx context.Context, sceneID string) (string, error) {
	if strings.TrimSpace(sceneID) == "" {
		return "", errors.New("empty scene id")
	}
	var res struct {
		SceneID string `json:"sceneID"`
	}
	query := url.Values{"scene_id": []string{sceneID}}
	if err := c.getJSON(ctx, "/api/v1/scenes/generate-share-link", query, &res); err != nil {
		return "", err
	}
	join := *c.base
	join.Path = strings.TrimRight(join.Path, "/") + "/api/v1/scenes/join-by-link"
	join.RawQuery = url.Values{"scene_id": []string{res.SceneID}}.Encode()
	return join.String(), nil
}
