package controller

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	m "github.com/mouse-blink/codeeraser/internal/model"
)

type tickMsg time.Time

// Single-line delegate for annotated classes.
type listingDelegate struct {
	offset int
}

func (d listingDelegate) Height() int  { return 1 }
func (d listingDelegate) Spacing() int { return 0 }
func (d listingDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d listingDelegate) Render(w io.Writer, lm list.Model, index int, item list.Item) {
	class, ok := item.(classItem)
	if !ok {
		return
	}

	isSelected := index == lm.Index()

	var nameStyle, idsStyle lipgloss.Style

	var displayIDs string

	width := lm.Width() - nameColumnWidth - 2

	if isSelected {
		nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Bold(true).
			Width(nameColumnWidth)
		idsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6"))

		displayIDs = animateScroll(strings.Join(class.ids, ", "), width, d.offset)
	} else {
		nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14")).
			Width(nameColumnWidth)
		idsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

		displayIDs = truncateToWidth(strings.Join(class.ids, ", "), width)
	}

	line := fmt.Sprintf("%s  %s",
		nameStyle.Render(truncateToWidth(class.name, nameColumnWidth)),
		idsStyle.Render(displayIDs),
	)
	_, _ = fmt.Fprint(w, line)
}

const nameColumnWidth = 40

func animateScroll(text string, width int, offset int) string {
	if width <= 0 {
		return ""
	}

	textWidth := lipgloss.Width(text)
	if textWidth <= width {
		return text
	}

	gap := "   "

	// ticks before scrolling starts
	pause := 5

	if offset < pause {
		return truncateToWidth(text, width)
	}

	runes := []rune(text + gap)
	n := len(runes)

	start := (offset - pause) % n

	res := make([]rune, 0, width)
	for i := range width {
		res = append(res, runes[(start+i)%n])
	}

	return string(res)
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "…"

	maxWidth := width - lipgloss.Width(ellipsis)
	if maxWidth <= 0 {
		return ellipsis
	}

	currentWidth := 0

	result := make([]rune, 0, len(text))
	for _, r := range text {
		rWidth := lipgloss.Width(string(r))
		if currentWidth+rWidth > maxWidth {
			break
		}

		result = append(result, r)
		currentWidth += rWidth
	}

	return string(result) + ellipsis
}

// listingModel browses the annotated classes of a list run.
type listingModel struct {
	width        int
	height       int
	classList    list.Model
	delegate     listingDelegate
	ids          []string
	rendered     bool
	animOffset   int
	lastSelected int
}

func newListingModel() listingModel {
	delegate := listingDelegate{}
	classList := list.New([]list.Item{}, delegate, 80, 20)
	classList.SetShowPagination(false)
	classList.SetShowFilter(true)
	classList.SetShowHelp(false)
	classList.SetShowTitle(false)
	classList.SetShowStatusBar(false)
	classList.FilterInput.Placeholder = "Filter by class or id…"

	return listingModel{
		classList:    classList,
		delegate:     delegate,
		lastSelected: -1,
	}
}

func newListingMsg(listing m.Listing) listingMsg {
	classes := make([]classItem, 0, len(listing.Classes))
	for _, c := range listing.Classes {
		classes = append(classes, classItem{name: c.Name, ids: c.IDs})
	}

	return listingMsg{classes: classes, ids: listing.IDs}
}

func (lm listingModel) Init() tea.Cmd {
	return tea.Tick(time.Second/2, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (lm listingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		lm.width = msg.Width
		lm.height = msg.Height
		lm.classList.SetWidth(lm.width)

	case tickMsg:
		if lm.classList.FilterState() != list.Filtering && lm.rendered {
			lm.animOffset++
			lm.delegate.offset = lm.animOffset
			lm.classList.SetDelegate(lm.delegate)

			return lm, tea.Tick(time.Millisecond*150, func(t time.Time) tea.Msg {
				return tickMsg(t)
			})
		}

		return lm, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return lm, tea.Quit
		default:
			var newList list.Model

			newList, cmd = lm.classList.Update(msg)
			lm.classList = newList

			if lm.classList.Index() != lm.lastSelected {
				lm.lastSelected = lm.classList.Index()
				lm.animOffset = 0
				lm.delegate.offset = 0
				lm.classList.SetDelegate(lm.delegate)
			}

			return lm, cmd
		}

	case listingMsg:
		lm = lm.handleListingMsg(msg)
	}

	return lm, cmd
}

func (lm listingModel) handleListingMsg(msg listingMsg) listingModel {
	lm.ids = msg.ids

	items := make([]list.Item, 0, len(msg.classes))
	for _, c := range msg.classes {
		items = append(items, c)
	}

	lm.classList.SetItems(items)
	lm.rendered = true

	if len(items) > 0 && lm.lastSelected == -1 {
		lm.lastSelected = 0
	}

	return lm
}

func (lm listingModel) View() string {
	if !lm.rendered {
		return "Loading annotations…\n"
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2)

	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 1, 2)

	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	title := titleStyle.Render("Annotated classes")

	summary := summaryStyle.Render(fmt.Sprintf(
		"Classes: %s   Ids: %s",
		accentStyle.Render(fmt.Sprintf("%d", len(lm.classList.Items()))),
		accentStyle.Render(strings.Join(lm.ids, ", ")),
	))

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Align(lipgloss.Center).
		Width(lm.width)

	footer := footerStyle.Render("↑/k up • ↓/j down • g/G top/bottom • / filter • q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		summary,
		lm.renderTable(),
		footer,
	)
}

func (lm listingModel) renderTable() string {
	// title, summary, footer, border and header rows
	listHeight := lm.height - 9
	if listHeight < 5 {
		listHeight = 5
	}

	listWidth := lm.width - 6

	lm.classList.SetHeight(listHeight)
	lm.classList.SetWidth(listWidth)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("8")).
		Width(listWidth)

	headers := headerStyle.Render(fmt.Sprintf("%-*s  %s", nameColumnWidth, "Class", "Ids"))

	tableContainer := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Margin(0, 1).
		Padding(0, 1)

	return tableContainer.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			headers,
			lm.classList.View(),
		),
	)
}
