package gallery

// UnknownName is rendered when a thumbnail resolves before (or without) a
// display name.
const UnknownName = "Unknown"

// State is the per-scene preview lifecycle. Transitions only move forward:
//
//	Unrequested -> Pending -> PartialName -> Loaded | Failed
//	                       \______________-> Loaded | Failed
//
// Loaded and Failed are terminal; writes arriving after them are discarded,
// which makes late fetch results for scenes the user has paged away from
// harmless.
type State int

const (
	StateUnrequested State = iota
	StatePending
	StatePartialName
	StateLoaded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnrequested:
		return "unrequested"
	case StatePending:
		return "pending"
	case StatePartialName:
		return "partial"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

func (s State) terminal() bool {
	return s == StateLoaded || s == StateFailed
}

// Preview is one scene's display data. Image is a display-ready rendition of
// the thumbnail (empty while only the name has arrived).
type Preview struct {
	Image string
	Name  string
}

type cacheEntry struct {
	state      State
	preview    Preview
	nameFailed bool
}

// Cache maps scene identifiers to preview state for the life of the program.
// Entries are never evicted and never leave a terminal state. All mutation
// happens inside the Bubble Tea update loop, so no locking is needed.
type Cache struct {
	entries map[string]*cacheEntry
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]*cacheEntry)}
}

// State returns the lifecycle state for a scene id.
func (c *Cache) State(id string) State {
	if e, ok := c.entries[id]; ok {
		return e.state
	}
	return StateUnrequested
}

// Preview returns the display data for a scene in the PartialName or Loaded
// state.
func (c *Cache) Preview(id string) (Preview, bool) {
	e, ok := c.entries[id]
	if !ok || (e.state != StatePartialName && e.state != StateLoaded) {
		return Preview{}, false
	}
	return e.preview, true
}

// MarkPending records that fetches have been issued for id. It returns false
// when the id already has an entry, which is what makes the visibility scan
// idempotent: a scene is fetched at most once per program run, no matter how
// often it re-enters the visible slice.
func (c *Cache) MarkPending(id string) bool {
	if _, ok := c.entries[id]; ok {
		return false
	}
	c.entries[id] = &cacheEntry{state: StatePending}
	return true
}

// ResolveName records a successful name fetch. The name renders immediately
// while the thumbnail is still in flight. Terminal entries are left alone: a
// name arriving after the thumbnail already resolved does not amend the card.
func (c *Cache) ResolveName(id, name string) {
	e, ok := c.entries[id]
	if !ok || e.state.terminal() {
		return
	}
	e.state = StatePartialName
	e.preview.Name = name
}

// FailName records a failed name fetch. The entry stays non-terminal: the
// card's fate is decided by the thumbnail fetch, which will fall back to
// UnknownName on success.
func (c *Cache) FailName(id string) {
	e, ok := c.entries[id]
	if !ok || e.state.terminal() {
		return
	}
	e.nameFailed = true
}

// ResolveThumbnail records a successful thumbnail fetch and moves the entry to
// Loaded. When the name has not resolved (still in flight, or failed), the
// card shows UnknownName permanently, per the once-set policy.
func (c *Cache) ResolveThumbnail(id, image string) {
	e, ok := c.entries[id]
	if !ok || e.state.terminal() {
		return
	}
	name := e.preview.Name
	if e.state != StatePartialName || name == "" {
		name = UnknownName
	}
	e.state = StateLoaded
	e.preview = Preview{Image: image, Name: name}
}

// FailThumbnail moves the entry to Failed. A usable card needs both halves, so
// the thumbnail failing degrades the whole entry even when the name had
// already arrived.
func (c *Cache) FailThumbnail(id string) {
	e, ok := c.entries[id]
	if !ok || e.state.terminal() {
		return
	}
	e.state = StateFailed
	e.preview = Preview{}
}

// Unrequested returns, in order, the ids from visible that have no cache entry
// yet. Re-running it after any state change is cheap and safe.
func (c *Cache) Unrequested(visible []string) []string {
	var out []string
	for _, id := range visible {
		if c.State(id) == StateUnrequested {
			out = append(out, id)
		}
	}
	return out
}

// LoadedNames returns id/name pairs for every loaded or name-bearing entry,
// for fuzzy filtering against names the user can actually see.
func (c *Cache) LoadedNames(ids []string) (matchedIDs, names []string) {
	for _, id := range ids {
		if p, ok := c.Preview(id); ok && p.Name != "" {
			matchedIDs = append(matchedIDs, id)
			names = append(names, p.Name)
		}
	}
	return matchedIDs, names
}
