package review

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jwesterfield/jobdigest/internal/model"
)

// Lines per shortlist item in the list view (title + subtitle + blank
// separator).
const itemHeight = 3

type viewState int

const (
	viewList viewState = iota
	viewDetail
)

var (
	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("39"))

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	titleStyle = lipgloss.NewStyle().
			Bold(true)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	selectedTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("24"))

	selectedSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				Background(lipgloss.Color("24"))

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Width(14)

	strongScoreStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	decentScoreStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	weakScoreStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	concernStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	bodyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

type reviewModel struct {
	shortlist []model.ScoredListing
	listView  viewport.Model
	cursor    int
	width     int
	height    int
	ready     bool

	view           viewState
	detailViewport viewport.Model
}

func (m reviewModel) Init() tea.Cmd {
	return nil
}

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		if m.view == viewDetail {
			m.detailViewport.Width = m.width - 4
			m.detailViewport.Height = m.height - 4
			m.detailViewport.SetContent(m.renderDetail())
		}
		return m, nil

	case tea.KeyMsg:
		if m.view == viewDetail {
			return m.updateDetailView(msg)
		}
		return m.updateListView(msg)
	}

	return m, nil
}

func (m reviewModel) updateListView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		m.moveCursor(-1)
		return m, nil
	case "down", "j":
		m.moveCursor(1)
		return m, nil
	case "o":
		if len(m.shortlist) > 0 {
			openURL(m.shortlist[m.cursor].Listing.Link)
		}
		return m, nil
	case "enter":
		return m.openDetailView()
	}

	var cmd tea.Cmd
	m.listView, cmd = m.listView.Update(msg)
	return m, cmd
}

func (m reviewModel) updateDetailView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "backspace":
		m.view = viewList
		return m, nil
	case "o":
		openURL(m.shortlist[m.cursor].Listing.Link)
		return m, nil
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

func (m *reviewModel) moveCursor(delta int) {
	m.cursor = clamp(m.cursor+delta, 0, max(len(m.shortlist)-1, 0))
	m.recalcContent()
	m.ensureCursorVisible()
}

func (m *reviewModel) ensureCursorVisible() {
	cursorTop := m.cursor * itemHeight
	cursorBottom := cursorTop + itemHeight - 1

	if cursorTop < m.listView.YOffset {
		m.listView.SetYOffset(cursorTop)
	} else if cursorBottom >= m.listView.YOffset+m.listView.Height {
		m.listView.SetYOffset(cursorBottom - m.listView.Height + 1)
	}
}

func (m reviewModel) openDetailView() (tea.Model, tea.Cmd) {
	if len(m.shortlist) == 0 {
		return m, nil
	}
	m.view = viewDetail
	m.detailViewport = viewport.New(m.width-4, m.height-4)
	m.detailViewport.SetContent(m.renderDetail())
	return m, nil
}

func (m *reviewModel) recalcLayout() {
	width := max(m.width-2, 20)
	// Header (1) + border top/bottom (2) + status bar (1) = 4 lines overhead.
	height := max(m.height-4, 5)

	if !m.ready {
		m.listView = viewport.New(width, height)
		m.ready = true
	} else {
		m.listView.Width = width
		m.listView.Height = height
	}

	m.recalcContent()
}

func (m *reviewModel) recalcContent() {
	m.listView.SetContent(renderShortlist(m.shortlist, m.cursor))
}

func (m reviewModel) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.view == viewDetail {
		return m.viewDetail()
	}
	return m.viewList()
}

func (m reviewModel) viewList() string {
	header := headerStyle.Render(fmt.Sprintf(" Shortlist (%d)", len(m.shortlist)))
	pane := borderStyle.Width(m.listView.Width).Render(m.listView.View())
	statusBar := statusBarStyle.Width(m.width).Render(
		" ↑/↓ cursor  Enter detail  o open  q quit")
	return header + "\n" + pane + "\n" + statusBar
}

func (m reviewModel) viewDetail() string {
	header := headerStyle.Render(" Job Details")
	content := borderStyle.Width(m.width - 2).Render(m.detailViewport.View())
	statusBar := statusBarStyle.Width(m.width).Render(
		" o open link  esc/backspace back  ↑/↓ scroll  q quit")
	return header + "\n" + content + "\n" + statusBar
}

func (m reviewModel) renderDetail() string {
	s := m.shortlist[m.cursor]
	var b strings.Builder

	addField := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(labelStyle.Render(label))
		b.WriteString(value)
		b.WriteByte('\n')
	}

	addField("Title", s.Listing.Title)
	addField("Company", s.Listing.Company)
	addField("Source", s.Listing.Source)
	addField("Link", s.Listing.Link)
	addField("Salary", salaryLine(s))

	b.WriteByte('\n')
	b.WriteString(labelStyle.Render("Fit"))
	b.WriteString(scoreStyleFor(s.Assessment.FitScore).Render(fmt.Sprintf("%d/10", s.Assessment.FitScore)))
	b.WriteByte('\n')
	addField("Backend", yesNo(s.Assessment.IsBackend))
	addField("Remote", yesNo(s.Assessment.IsRemote))
	addField("In range", yesNo(s.Assessment.SalaryInRange))

	wrapWidth := max(m.width-8, 20)

	if s.Assessment.FitSummary != "" {
		b.WriteByte('\n')
		b.WriteString(bodyStyle.Render(wordWrap(s.Assessment.FitSummary, wrapWidth)) + "\n")
	}
	if s.Assessment.KeyMatch != "" {
		b.WriteByte('\n')
		b.WriteString(strongScoreStyle.Render("✓ "+s.Assessment.KeyMatch) + "\n")
	}
	if s.Assessment.HasConcern() {
		b.WriteString(concernStyle.Render("⚠ "+s.Assessment.Concern) + "\n")
	}

	if s.Listing.Description != "" {
		b.WriteByte('\n')
		b.WriteString(bodyStyle.Render(wordWrap(s.Listing.Description, wrapWidth)) + "\n")
	}

	return b.String()
}

func salaryLine(s model.ScoredListing) string {
	if s.Assessment.EstimatedSalary != "" {
		return s.Assessment.EstimatedSalary
	}
	return s.Listing.SalaryText
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func scoreStyleFor(score int) lipgloss.Style {
	switch {
	case score >= 8:
		return strongScoreStyle
	case score >= 6:
		return decentScoreStyle
	default:
		return weakScoreStyle
	}
}

func renderShortlist(shortlist []model.ScoredListing, cursor int) string {
	if len(shortlist) == 0 {
		return "  (empty shortlist)"
	}

	var b strings.Builder
	for i, s := range shortlist {
		titleSt := titleStyle
		subtitleSt := subtitleStyle
		prefix := "  "
		if i == cursor {
			titleSt = selectedTitleStyle
			subtitleSt = selectedSubtitleStyle
			prefix = "> "
		}

		score := scoreStyleFor(s.Assessment.FitScore).Render(fmt.Sprintf("[%d]", s.Assessment.FitScore))
		b.WriteString(prefix)
		b.WriteString(score + " " + titleSt.Render(s.Listing.Title))
		b.WriteByte('\n')

		sub := s.Listing.Source
		if salary := salaryLine(s); salary != "" {
			sub += " · " + salary
		}
		b.WriteString(prefix)
		b.WriteString("    " + subtitleSt.Render(sub))
		b.WriteByte('\n')

		if i < len(shortlist)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func wordWrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) <= width {
			line += " " + w
		} else {
			lines = append(lines, line)
			line = w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// openURL opens url in the default system browser, fire-and-forget.
func openURL(url string) {
	if url == "" {
		return
	}
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return
	}
	_ = cmd.Start()
}

// Run launches the interactive shortlist browser.
func Run(shortlist []model.ScoredListing) error {
	m := reviewModel{shortlist: shortlist}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
