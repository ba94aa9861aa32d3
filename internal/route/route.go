// Package route names the app's screens the way the web client names its
// pages, so deep links and log lines stay comparable across the two.
package route

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	GalleryPath = "/history"
	ScenePath   = "/scene"
	CreatePath  = "/create"
)

// SceneDetail builds the detail route for a scene. Both parameters are
// percent-encoded; scene names regularly contain spaces, ampersands and
// unicode, and must survive the round trip intact.
func SceneDetail(id, name string) string {
	v := url.Values{}
	v.Set("id", id)
	v.Set("name", name)
	return ScenePath + "?" + v.Encode()
}

// ParseSceneDetail extracts the scene id and display name from a detail route.
func ParseSceneDetail(raw string) (id, name string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("parse route %q: %w", raw, err)
	}
	if u.Path != ScenePath {
		return "", "", fmt.Errorf("not a scene route: %q", u.Path)
	}
	q := u.Query()
	id = q.Get("id")
	if strings.TrimSpace(id) == "" {
		return "", "", errors.New("scene route missing id")
	}
	return id, q.Get("name"), nil
}
