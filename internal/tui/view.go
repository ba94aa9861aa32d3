package tui

import (
	"fmt"
	"strings"

	"scenyx-cli/internal/api"
	"scenyx-cli/internal/gallery"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	bannerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true).Padding(0, 1)
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Padding(1, 1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Padding(0, 1)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Padding(0, 1)
	filterStyle = lipgloss.NewStyle().Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
	cardSelectedStyle    = cardStyle.BorderForeground(lipgloss.Color("12"))
	cardNameStyle        = lipgloss.NewStyle().Bold(true)
	cardPlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	cardFailedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	detailLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

const (
	cardLoadingText = "Loading…"
	cardFailedText  = "Failed to load preview"
)

func (m *Model) viewWidth() int {
	if m.width > 0 {
		return m.width
	}
	return 80
}

func (m *Model) viewHeight() int {
	if m.height > 0 {
		return m.height
	}
	return 24
}

func (m *Model) gridColumns() int {
	// Border and padding add 4 cells per card, plus a 1-cell gap.
	per := thumbCols + 5
	cols := m.viewWidth() / per
	if cols < 1 {
		cols = 1
	}
	return cols
}

func (m *Model) View() string {
	if m.loading {
		// Blocking overlay: nothing else renders while the history loads.
		return lipgloss.Place(m.viewWidth(), m.viewHeight(), lipgloss.Center, lipgloss.Center,
			m.spin.View()+" Loading scene history…")
	}
	switch m.screen {
	case screenDetail:
		return m.detailView()
	case screenCreate:
		return m.createView()
	default:
		return m.galleryView()
	}
}

func (m *Model) galleryView() string {
	var sections []string
	sections = append(sections, titleStyle.Render("Scene History"))

	if m.errMsg != "" {
		sections = append(sections, bannerStyle.Render("⚠ "+m.errMsg))
	}

	if len(m.history) == 0 {
		sections = append(sections, emptyStyle.Render("No scenes yet — press n to create one."))
		sections = append(sections, helpStyle.Render("n new · q quit"))
		return strings.Join(sections, "\n")
	}

	if m.filtering {
		sections = append(sections, filterStyle.Render("/ "+m.filterInput.View()))
	} else if m.filterQuery != "" {
		sections = append(sections, filterStyle.Render(fmt.Sprintf("filter: %q (%d matches, esc via / to clear)", m.filterQuery, len(m.filtered))))
	}

	sections = append(sections, m.gridView())

	n := len(m.visibleHistory())
	sections = append(sections, statusStyle.Render(fmt.Sprintf(
		"%s  Page %d/%d · %d per page · %d scenes",
		m.pageDots(n), m.pager.Page(), m.pager.TotalPages(n), m.pager.Size(), n,
	)))
	sections = append(sections, helpStyle.Render("←↑↓→ move · [ ] page · s page size · / filter · n new · enter open · q quit"))
	return strings.Join(sections, "\n")
}

// pageDots renders the dot-style page indicator. The bubble is rebuilt per
// render; the authoritative pagination state lives in gallery.Paginator.
func (m *Model) pageDots(n int) string {
	dots := paginator.New()
	dots.Type = paginator.Dots
	dots.PerPage = m.pager.Size()
	dots.SetTotalPages(n)
	dots.Page = m.pager.Page() - 1
	return dots.View()
}

func (m *Model) gridView() string {
	visible := m.visibleSlice()
	if len(visible) == 0 {
		return emptyStyle.Render("Nothing on this page.")
	}

	cols := m.gridColumns()
	var rows []string
	for start := 0; start < len(visible); start += cols {
		end := start + cols
		if end > len(visible) {
			end = len(visible)
		}
		cards := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cards = append(cards, m.cardView(visible[i], i == m.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// cardView renders one scene card in one of the three visual states.
func (m *Model) cardView(id string, selected bool) string {
	style := cardStyle
	if selected {
		style = cardSelectedStyle
	}

	var body string
	switch m.cache.State(id) {
	case gallery.StateFailed:
		body = placeholderBlock(cardFailedStyle.Render(cardFailedText)) + "\n" +
			cardPlaceholderStyle.Render(truncateName(""))
	case gallery.StateLoaded:
		preview, _ := m.cache.Preview(id)
		body = preview.Image + "\n" + cardNameStyle.Render(truncateName(preview.Name))
	case gallery.StatePartialName:
		preview, _ := m.cache.Preview(id)
		body = placeholderBlock(cardPlaceholderStyle.Render(cardLoadingText)) + "\n" +
			cardNameStyle.Render(truncateName(preview.Name))
	default: // unrequested or pending
		body = placeholderBlock(cardPlaceholderStyle.Render(cardLoadingText)) + "\n" +
			cardPlaceholderStyle.Render(truncateName(""))
	}
	return style.Render(body)
}

func placeholderBlock(text string) string {
	// Wrap first so text wider than the thumbnail stays inside the card.
	wrapped := lipgloss.NewStyle().Width(thumbCols).Align(lipgloss.Center).Render(text)
	return lipgloss.Place(thumbCols, thumbRows, lipgloss.Center, lipgloss.Center, wrapped)
}

func truncateName(name string) string {
	if name == "" {
		name = " "
	}
	return runewidth.Truncate(name, thumbCols, "…")
}

func (m *Model) detailView() string {
	var sections []string
	title := m.detailName
	if title == "" {
		title = m.detailID
	}
	sections = append(sections, titleStyle.Render(title))

	switch {
	case m.detailLoading:
		sections = append(sections, emptyStyle.Render(m.spin.View()+" Loading scene details…"))
	case m.detailErr != "":
		sections = append(sections, bannerStyle.Render("⚠ "+m.detailErr))
	default:
		sections = append(sections, m.detailBody)
	}

	if m.shareStatus != "" {
		sections = append(sections, statusStyle.Render(m.shareStatus))
	}
	sections = append(sections, helpStyle.Render("c copy share link · esc back · q quit"))
	return strings.Join(sections, "\n")
}

// renderDetailBody formats the scene facts as markdown and hands them to
// glamour, matching how the rest of the app's text surfaces render.
func renderDetailBody(scene api.Scene, width int) string {
	if width <= 0 {
		width = 80
	}
	wrap := width - 4
	if wrap > 76 {
		wrap = 76
	}
	if wrap < 20 {
		wrap = 20
	}
	md := fmt.Sprintf(
		"# %s\n\n*by %s*\n\n- **Listeners:** %d\n- **Active now:** %d\n- **Scene ID:** `%s`\n",
		scene.Name, scene.ArtistName, scene.Listeners, scene.ActiveUsers, scene.ID,
	)
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(wrap))
	if err != nil {
		return fallbackDetailBody(scene)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return fallbackDetailBody(scene)
	}
	return out
}

func fallbackDetailBody(scene api.Scene) string {
	return strings.Join([]string{
		detailLabelStyle.Render("Artist: ") + scene.ArtistName,
		detailLabelStyle.Render("Listeners: ") + fmt.Sprint(scene.Listeners),
		detailLabelStyle.Render("Active now: ") + fmt.Sprint(scene.ActiveUsers),
		detailLabelStyle.Render("Scene ID: ") + scene.ID,
	}, "\n")
}

func (m *Model) createView() string {
	var sections []string
	sections = append(sections, titleStyle.Render("Create Scene"))
	if m.creating {
		sections = append(sections, emptyStyle.Render(m.spin.View()+" Creating…"))
	} else {
		sections = append(sections, filterStyle.Render(m.createInput.View()))
		if m.createErr != "" {
			sections = append(sections, bannerStyle.Render("⚠ "+m.createErr))
		}
	}
	sections = append(sections, helpStyle.Render("enter create · esc cancel"))
	return strings.Join(sections, "\n")
}
