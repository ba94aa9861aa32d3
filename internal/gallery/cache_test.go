package gallery

import "testing"

func TestMarkPendingIsIdempotent(t *testing.T) {
	t.Parallel()

	c := NewCache()
	if !c.MarkPending("x") {
		t.Fatalf("first MarkPending should succeed")
	}
	if c.MarkPending("x") {
		t.Fatalf("second MarkPending should be a no-op")
	}
	if got := c.State("x"); got != StatePending {
		t.Fatalf("State = %v", got)
	}
}

func TestUnrequestedSkipsEveryKnownState(t *testing.T) {
	t.Parallel()

	c := NewCache()
	c.MarkPending("pending")
	c.MarkPending("partial")
	c.ResolveName("partial", "Foo")
	c.MarkPending("loaded")
	c.ResolveThumbnail("loaded", "img")
	c.MarkPending("failed")
	c.FailThumbnail("failed")

	visible := []string{"fresh", "pending", "partial", "loaded", "failed", "fresh2"}
	got := c.Unrequested(visible)
	if len(got) != 2 || got[0] != "fresh" || got[1] != "fresh2" {
		t.Fatalf("Unrequested = %v", got)
	}

	// Navigating away and back: still nothing to fetch for known ids.
	if again := c.Unrequested([]string{"loaded", "failed", "partial", "pending"}); len(again) != 0 {
		t.Fatalf("Unrequested after revisit = %v", again)
	}
}

func TestNameThenThumbnail(t *testing.T) {
	t.Parallel()

	c := NewCache()
	c.MarkPending("x")
	c.ResolveName("x", "Foo")

	p, ok := c.Preview("x")
	if !ok || p.Name != "Foo" || p.Image != "" {
		t.Fatalf("partial preview = %+v ok=%v", p, ok)
	}
	if c.State("x") != StatePartialName {
		t.Fatalf("State = %v", c.State("x"))
	}

	c.ResolveThumbnail("x", "img-x")
	p, ok = c.Preview("x")
	if !ok || p.Name != "Foo" || p.Image != "img-x" {
		t.Fatalf("loaded preview = %+v ok=%v", p, ok)
	}
	if c.State("x") != StateLoaded {
		t.Fatalf("State = %v", c.State("x"))
	}
}

func TestThumbnailFailureDiscardsName(t *testing.T) {
	t.Parallel()

	c := NewCache()
	c.MarkPending("x")
	c.ResolveName("x", "Foo")
	c.FailThumbnail("x")

	if c.State("x") != StateFailed {
		t.Fatalf("State = %v", c.State("x"))
	}
	if _, ok := c.Preview("x"); ok {
		t.Fatalf("failed entry should expose no preview")
	}

	// Terminal: nothing revives the entry.
	c.ResolveName("x", "Foo again")
	c.ResolveThumbnail("x", "late-img")
	if c.State("x") != StateFailed {
		t.Fatalf("State after late writes = %v", c.State("x"))
	}
}

func TestThumbnailBeforeNameIsUnknownForever(t *testing.T) {
	t.Parallel()

	c := NewCache()
	c.MarkPending("x")
	c.ResolveThumbnail("x", "img-x")

	p, ok := c.Preview("x")
	if !ok || p.Name != UnknownName {
		t.Fatalf("preview = %+v ok=%v, want name %q", p, ok, UnknownName)
	}

	// The name arriving later must not amend the terminal entry: once a card
	// has rendered, it never changes under the user.
	c.ResolveName("x", "Foo")
	p, _ = c.Preview("x")
	if p.Name != UnknownName {
		t.Fatalf("name after late resolve = %q, want %q", p.Name, UnknownName)
	}
	if c.State("x") != StateLoaded {
		t.Fatalf("State = %v", c.State("x"))
	}
}

func TestNameFailureFallsBackToUnknown(t *testing.T) {
	t.Parallel()

	c := NewCache()
	c.MarkPending("x")
	c.FailName("x")
	if c.State("x") != StatePending {
		t.Fatalf("name failure alone should stay pending, got %v", c.State("x"))
	}

	c.ResolveThumbnail("x", "img-x")
	p, ok := c.Preview("x")
	if !ok || p.Name != UnknownName || p.Image != "img-x" {
		t.Fatalf("preview = %+v ok=%v", p, ok)
	}
}

func TestBothFailuresFail(t *testing.T) {
	t.Parallel()

	c := NewCache()
	c.MarkPending("x")
	c.FailName("x")
	c.FailThumbnail("x")
	if c.State("x") != StateFailed {
		t.Fatalf("State = %v", c.State("x"))
	}
}

func TestWritesWithoutPendingAreIgnored(t *testing.T) {
	t.Parallel()

	c := NewCache()
	c.ResolveName("ghost", "Foo")
	c.ResolveThumbnail("ghost", "img")
	c.FailThumbnail("ghost")
	if got := c.State("ghost"); got != StateUnrequested {
		t.Fatalf("State = %v, want unrequested", got)
	}
}

func TestLoadedNames(t *testing.T) {
	t.Parallel()

	c := NewCache()
	for _, id := range []string{"a", "b", "c", "d"} {
		c.MarkPending(id)
	}
	c.ResolveName("a", "Alpha")
	c.ResolveThumbnail("b", "img-b") // Unknown name
	c.ResolveName("c", "Gamma")
	c.ResolveThumbnail("c", "img-c")
	c.FailThumbnail("d")

	ids, names := c.LoadedNames([]string{"a", "b", "c", "d", "missing"})
	if len(ids) != 3 || len(names) != 3 {
		t.Fatalf("LoadedNames = %v / %v", ids, names)
	}
	if ids[0] != "a" || names[0] != "Alpha" || ids[2] != "c" || names[2] != "Gamma" {
		t.Fatalf("LoadedNames = %v / %v", ids, names)
	}
	if names[1] != UnknownName {
		t.Fatalf("names[1] = %q", names[1])
	}
}
