package tui

import (
	"context"
	"strings"

	"scenyx-cli/internal/api"
	"scenyx-cli/internal/gallery"
	"scenyx-cli/internal/imgrender"
	"scenyx-cli/internal/logger"
	"scenyx-cli/internal/route"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
)

// Thumbnail cell size inside a card.
const (
	thumbCols = 20
	thumbRows = 5
)

type screen int

const (
	screenGallery screen = iota
	screenDetail
	screenCreate
)

type Options struct {
	Service    SceneService
	PageSize   int
	ArtistName string
	UserID     string
}

// Model is the whole UI: the history gallery plus the detail and create
// screens it navigates to. All state changes happen in Update, which is what
// serializes concurrent fetch results.
type Model struct {
	service SceneService
	log     *logger.LogEntry

	screen screen
	width  int
	height int

	// Gallery. The history list is fetched once per program run; the cache
	// outlives page changes and screen switches.
	loading bool
	errMsg  string
	history []string
	pager   gallery.Paginator
	cache   *gallery.Cache
	cursor  int
	spin    spinner.Model

	// Fuzzy filter over loaded preview names.
	filtering   bool
	filterInput textinput.Model
	filterQuery string
	filtered    []string

	// Detail screen.
	detailID      string
	detailName    string
	detailLoading bool
	detailErr     string
	scene         api.Scene
	detailBody    string
	shareStatus   string

	// Create screen.
	createInput textinput.Model
	createErr   string
	creating    bool
	artistName  string
	userID      string
}

func New(opts Options) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	filter := textinput.New()
	filter.Placeholder = "filter by name"
	filter.CharLimit = 64

	create := textinput.New()
	create.Placeholder = "scene name"
	create.CharLimit = 80

	artist := strings.TrimSpace(opts.ArtistName)
	if artist == "" {
		artist = gallery.UnknownName
	}

	return &Model{
		service:     opts.Service,
		log:         logger.Named("tui"),
		loading:     true,
		pager:       gallery.NewPaginator(opts.PageSize),
		cache:       gallery.NewCache(),
		spin:        sp,
		filterInput: filter,
		createInput: create,
		artistName:  artist,
		userID:      opts.UserID,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.loadHistory())
}

// visibleHistory is the sequence the paginator slices: the full history, or
// the fuzzy-filtered subset while a filter is set.
func (m *Model) visibleHistory() []string {
	if m.filterQuery != "" {
		return m.filtered
	}
	return m.history
}

// visibleSlice is the page of scene ids currently on screen.
func (m *Model) visibleSlice() []string {
	return m.pager.VisibleSlice(m.visibleHistory())
}

// scanVisible issues name and thumbnail fetches for every visible scene that
// has no cache entry yet. Marking entries pending here, before the commands
// run, keeps the scan idempotent: repeated scans never duplicate a fetch.
func (m *Model) scanVisible() tea.Cmd {
	var cmds []tea.Cmd
	for _, id := range m.cache.Unrequested(m.visibleSlice()) {
		if !m.cache.MarkPending(id) {
			continue
		}
		cmds = append(cmds, m.fetchName(id), m.fetchThumbnail(id))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) loadHistory() tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		ids, err := svc.History(context.Background())
		return historyMsg{IDs: ids, Err: err}
	}
}

func (m *Model) fetchName(id string) tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		name, err := svc.Name(context.Background(), id)
		return nameMsg{ID: id, Name: name, Err: err}
	}
}

func (m *Model) fetchThumbnail(id string) tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		data, err := svc.Thumbnail(context.Background(), id)
		if err != nil {
			return thumbMsg{ID: id, Err: err}
		}
		image, err := imgrender.Render(data, thumbCols, thumbRows)
		if err != nil {
			return thumbMsg{ID: id, Err: err}
		}
		return thumbMsg{ID: id, Image: image}
	}
}

func (m *Model) fetchSceneData(id string) tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		scene, err := svc.SceneData(context.Background(), id)
		return sceneDataMsg{Scene: scene, Err: err}
	}
}

func (m *Model) createScene(name string) tea.Cmd {
	svc := m.service
	artist, user := m.artistName, m.userID
	return func() tea.Msg {
		scene, err := svc.Create(context.Background(), name, artist, user)
		return sceneCreatedMsg{Scene: scene, Err: err}
	}
}

func (m *Model) fetchShareLink(id string) tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		link, err := svc.ShareLink(context.Background(), id)
		return shareLinkMsg{Link: link, Err: err}
	}
}

func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return clipboardMsg{Err: clipboard.WriteAll(text)}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.detailLoading && !m.creating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case historyMsg:
		m.loading = false
		if msg.Err != nil {
			m.log.Warnf("history fetch failed: %v", msg.Err)
			m.errMsg = "Failed to load scene history"
			return m, nil
		}
		m.history = msg.IDs
		m.log.WithFields(logger.Fields{"scenes": len(m.history)}).Info("history loaded")
		return m, m.scanVisible()

	case nameMsg:
		if msg.Err != nil {
			m.cache.FailName(msg.ID)
		} else {
			m.cache.ResolveName(msg.ID, msg.Name)
			m.reapplyFilter()
		}
		return m, nil

	case thumbMsg:
		if msg.Err != nil {
			m.log.WithFields(logger.Fields{"scene_id": msg.ID}).Warnf("thumbnail failed: %v", msg.Err)
			m.cache.FailThumbnail(msg.ID)
		} else {
			m.cache.ResolveThumbnail(msg.ID, msg.Image)
			// The thumbnail may have settled the name to UnknownName, which
			// an active filter can match.
			m.reapplyFilter()
		}
		return m, nil

	case sceneDataMsg:
		m.detailLoading = false
		if msg.Err != nil {
			m.detailErr = "Failed to load scene details"
			return m, nil
		}
		m.scene = msg.Scene
		m.detailErr = ""
		m.detailBody = renderDetailBody(msg.Scene, m.width)
		return m, nil

	case sceneCreatedMsg:
		m.creating = false
		if msg.Err != nil {
			m.createErr = "Failed to create scene"
			return m, nil
		}
		// The new scene becomes the newest history entry; its preview loads
		// through the normal visibility scan when the gallery shows it.
		m.history = append([]string{msg.Scene.ID}, m.history...)
		return m, m.navigate(route.SceneDetail(msg.Scene.ID, msg.Scene.Name))

	case shareLinkMsg:
		if msg.Err != nil {
			m.shareStatus = "Share link unavailable"
			return m, nil
		}
		m.shareStatus = "Copied share link"
		return m, copyToClipboard(msg.Link)

	case clipboardMsg:
		if msg.Err != nil {
			m.shareStatus = "Clipboard unavailable"
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.filtering {
		return m.handleFilterKey(msg)
	}
	switch m.screen {
	case screenDetail:
		return m.handleDetailKey(msg)
	case screenCreate:
		return m.handleCreateKey(msg)
	default:
		return m.handleGalleryKey(msg)
	}
}

func (m *Model) handleGalleryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "left", "h":
		m.moveCursor(-1)
	case "right", "l":
		m.moveCursor(1)
	case "up", "k":
		m.moveCursor(-m.gridColumns())
	case "down", "j":
		m.moveCursor(m.gridColumns())
	case "[", "pgup":
		m.pager = m.pager.PrevPage(len(m.visibleHistory()))
		m.cursor = 0
		return m, m.scanVisible()
	case "]", "pgdown":
		m.pager = m.pager.NextPage(len(m.visibleHistory()))
		m.cursor = 0
		return m, m.scanVisible()
	case "s":
		m.pager = m.pager.CycleSize()
		m.cursor = 0
		return m, m.scanVisible()
	case "/":
		m.filtering = true
		m.filterInput.SetValue(m.filterQuery)
		m.filterInput.Focus()
		return m, textinput.Blink
	case "n":
		m.screen = screenCreate
		m.createErr = ""
		m.createInput.SetValue("")
		m.createInput.Focus()
		return m, textinput.Blink
	case "enter":
		return m.openSelected()
	}
	return m, nil
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.filtering = false
		m.filterInput.Blur()
		return m, m.setFilter("")
	case tea.KeyEnter:
		m.filtering = false
		m.filterInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	if value := m.filterInput.Value(); value != m.filterQuery {
		return m, tea.Batch(cmd, m.setFilter(value))
	}
	return m, cmd
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		// Back to the gallery. The cache is untouched, so revisited cards do
		// not refetch, but the history may have grown behind this screen (a
		// scene created from here lands on page 1), so the slice is rescanned.
		m.screen = screenGallery
		m.shareStatus = ""
		return m, m.scanVisible()
	case "c":
		if m.detailID != "" {
			m.shareStatus = "Fetching share link…"
			return m, m.fetchShareLink(m.detailID)
		}
	}
	return m, nil
}

func (m *Model) handleCreateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.screen = screenGallery
		m.createInput.Blur()
		return m, nil
	case tea.KeyEnter:
		name := strings.TrimSpace(m.createInput.Value())
		if name == "" {
			m.createErr = "Scene name cannot be empty"
			return m, nil
		}
		m.creating = true
		m.createErr = ""
		return m, tea.Batch(m.spin.Tick, m.createScene(name))
	}
	var cmd tea.Cmd
	m.createInput, cmd = m.createInput.Update(msg)
	return m, cmd
}

// setFilter replaces the filter query, resets to page 1 and rescans, since
// the visible slice just changed.
func (m *Model) setFilter(query string) tea.Cmd {
	m.filterQuery = strings.TrimSpace(query)
	m.reapplyFilter()
	m.pager = m.pager.SetPage(1, len(m.visibleHistory()))
	m.cursor = 0
	return m.scanVisible()
}

// reapplyFilter recomputes the filtered id sequence. Matching runs against
// names that have actually loaded; unresolved scenes cannot match.
func (m *Model) reapplyFilter() {
	if m.filterQuery == "" {
		m.filtered = nil
		return
	}
	ids, names := m.cache.LoadedNames(m.history)
	matches := fuzzy.Find(m.filterQuery, names)
	filtered := make([]string, 0, len(matches))
	for _, match := range matches {
		filtered = append(filtered, ids[match.Index])
	}
	m.filtered = filtered
}

func (m *Model) moveCursor(delta int) {
	visible := m.visibleSlice()
	if len(visible) == 0 {
		m.cursor = 0
		return
	}
	next := m.cursor + delta
	if next < 0 {
		next = 0
	}
	if next >= len(visible) {
		next = len(visible) - 1
	}
	m.cursor = next
}

// openSelected navigates to the detail route for the selected card. Only
// loaded cards are clickable; pending and failed placeholders ignore enter.
func (m *Model) openSelected() (tea.Model, tea.Cmd) {
	visible := m.visibleSlice()
	if m.cursor >= len(visible) {
		return m, nil
	}
	id := visible[m.cursor]
	preview, ok := m.cache.Preview(id)
	if !ok || m.cache.State(id) != gallery.StateLoaded {
		return m, nil
	}
	return m, m.navigate(route.SceneDetail(id, preview.Name))
}

// navigate is the single navigation primitive: it parses an app route and
// switches screens, returning any fetch the target screen needs.
func (m *Model) navigate(path string) tea.Cmd {
	id, name, err := route.ParseSceneDetail(path)
	if err != nil {
		m.log.Warnf("bad route %q: %v", path, err)
		return nil
	}
	m.log.WithFields(logger.Fields{"route": path}).Info("navigate")
	m.screen = screenDetail
	m.detailID = id
	m.detailName = name
	m.detailLoading = true
	m.detailErr = ""
	m.shareStatus = ""
	m.scene = api.Scene{}
	m.detailBody = ""
	return tea.Batch(m.spin.Tick, m.fetchSceneData(id))
}
