package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestViewLoadingOverlayBlocksEverything(t *testing.T) {
	t.Parallel()

	m := New(Options{Service: &fakeService{}, PageSize: 10})
	out := m.View()
	if !strings.Contains(out, "Loading scene history") {
		t.Fatalf("overlay missing: %q", out)
	}
	if strings.Contains(out, "Scene History") {
		t.Fatalf("overlay should hide the gallery chrome")
	}
}

func TestViewErrorBannerWithEmptyHistory(t *testing.T) {
	t.Parallel()

	m := New(Options{Service: &fakeService{}, PageSize: 10})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m.Update(historyMsg{Err: errors.New("boom")})

	out := m.View()
	if !strings.Contains(out, "Failed to load scene history") {
		t.Fatalf("missing banner: %q", out)
	}
	if !strings.Contains(out, "No scenes yet") {
		t.Fatalf("missing empty state: %q", out)
	}
	if strings.Contains(out, cardLoadingText) {
		t.Fatalf("no cards expected on failure")
	}
}

func TestViewCardStates(t *testing.T) {
	t.Parallel()

	m := newLoadedModel(t, []string{"a", "b", "c"})
	m.Update(nameMsg{ID: "b", Name: "Sunset Jam"})
	m.Update(thumbMsg{ID: "b", Image: "thumb-cells"})
	m.Update(thumbMsg{ID: "c", Err: errors.New("boom")})

	out := m.View()
	if !strings.Contains(out, cardLoadingText) {
		t.Fatalf("pending card should say %q:\n%s", cardLoadingText, out)
	}
	if !strings.Contains(out, "Sunset Jam") {
		t.Fatalf("loaded card should show its name:\n%s", out)
	}
	if !strings.Contains(out, "thumb-cells") {
		t.Fatalf("loaded card should show its thumbnail:\n%s", out)
	}
	// The failed text wraps to the card width, so match its first words.
	if !strings.Contains(out, "Failed to load") {
		t.Fatalf("failed card should say %q:\n%s", cardFailedText, out)
	}
}

func TestViewPartialNameRendersEarly(t *testing.T) {
	t.Parallel()

	m := newLoadedModel(t, []string{"a"})
	m.Update(nameMsg{ID: "a", Name: "Half Done"})

	out := m.View()
	if !strings.Contains(out, "Half Done") {
		t.Fatalf("partial card should already show the name:\n%s", out)
	}
	if !strings.Contains(out, cardLoadingText) {
		t.Fatalf("partial card still loads its image:\n%s", out)
	}
}

func TestViewStatusLine(t *testing.T) {
	t.Parallel()

	m := newLoadedModel(t, ids(15))
	out := m.View()
	if !strings.Contains(out, "Page 1/2") {
		t.Fatalf("missing page status:\n%s", out)
	}
	if !strings.Contains(out, "10 per page") {
		t.Fatalf("missing page size:\n%s", out)
	}
	if !strings.Contains(out, "15 scenes") {
		t.Fatalf("missing scene count:\n%s", out)
	}
}

func TestViewLongNamesAreTruncated(t *testing.T) {
	t.Parallel()

	m := newLoadedModel(t, []string{"a"})
	long := strings.Repeat("VeryLongSceneName", 5)
	m.Update(nameMsg{ID: "a", Name: long})
	m.Update(thumbMsg{ID: "a", Image: "img"})

	out := m.View()
	if strings.Contains(out, long) {
		t.Fatalf("name should be truncated to the card width")
	}
	if !strings.Contains(out, "…") {
		t.Fatalf("expected ellipsis for truncated name:\n%s", out)
	}
}
