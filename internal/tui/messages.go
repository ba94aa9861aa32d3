package tui

import (
	"context"

	"scenyx-cli/internal/api"
)

// SceneService abstracts the API client so tests can drive the model without
// a server.
type SceneService interface {
	History(ctx context.Context) ([]string, error)
	Name(ctx context.Context, sceneID string) (string, error)
	Thumbnail(ctx context.Context, sceneID string) ([]byte, error)
	SceneData(ctx context.Context, sceneID string) (api.Scene, error)
	Create(ctx context.Context, name, artistName, creatorID string) (api.Scene, error)
	ShareLink(ctx context.Context, sceneID string) (string, error)
}

type historyMsg struct {
	IDs []string
	Err error
}

type nameMsg struct {
	ID   string
	Name string
	Err  error
}

type thumbMsg struct {
	ID    string
	Image string // rendered cells, empty on failure
	Err   error
}

type sceneDataMsg struct {
	Scene api.Scene
	Err   error
}

type sceneCreatedMsg struct {
	Scene api.Scene
	Err   error
}

type shareLinkMsg struct {
	Link string
	Err  error
}

type clipboardMsg struct {
	Err error
}
