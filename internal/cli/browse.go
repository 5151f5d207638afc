package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/automate-controls/basstudio/internal/cli/formatter"
	"github.com/automate-controls/basstudio/internal/domain"
	"github.com/automate-controls/basstudio/internal/session"
)

func newBrowseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "browse <file.m8>",
		Short: "Browse the project tree interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(args[0])
			if err != nil {
				return err
			}
			program := tea.NewProgram(newBrowseModel(s), tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("running browse ui: %w", err)
			}
			return nil
		},
	}
}

// browseRow is one visible line of the flattened tree.
type browseRow struct {
	node  *domain.ObjectNode
	depth int
}

type autosaveTickMsg time.Time

// browseModel is the read-mostly TUI: tree with cursor, free-text filter,
// and a live estimate panel. Edits stay on the CLI; browsing only selects.
type browseModel struct {
	sess   *session.Session
	rows   []browseRow
	cursor int

	search    textinput.Model
	searching bool

	width  int
	height int
	status string
}

func newBrowseModel(s *session.Session) browseModel {
	input := textinput.New()
	input.Placeholder = "name, type, or tag"
	input.Prompt = "/ "

	m := browseModel{sess: s, search: input}
	m.rebuildRows()
	return m
}

func autosaveTick() tea.Cmd {
	return tea.Tick(30*time.Second, func(t time.Time) tea.Msg {
		return autosaveTickMsg(t)
	})
}

func (m browseModel) Init() tea.Cmd {
	return autosaveTick()
}

// rebuildRows flattens the tree in depth-first order, keeping only rows
// matching the active filter (ancestors of matches stay visible).
func (m *browseModel) rebuildRows() {
	query := strings.TrimSpace(m.search.Value())
	g := m.sess.Graph()

	m.rows = m.rows[:0]
	var walk func(id uint64, depth int) bool
	walk = func(id uint64, depth int) bool {
		node := g.Get(id)
		if node == nil {
			return false
		}
		start := len(m.rows)
		m.rows = append(m.rows, browseRow{node: node, depth: depth})

		childMatched := false
		for _, kid := range g.Children(id) {
			if walk(kid, depth+1) {
				childMatched = true
			}
		}
		if query == "" || node.Matches(query) || childMatched {
			return true
		}
		// No match in this subtree: drop the rows it contributed.
		m.rows = m.rows[:start]
		return false
	}
	for _, rootID := range g.Roots() {
		walk(rootID, 0)
	}

	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case autosaveTickMsg:
		if saved, err := m.sess.Autosave(time.Time(msg)); err != nil {
			m.status = err.Error()
		} else if saved {
			m.status = m.sess.Status()
		}
		return m, autosaveTick()

	case tea.KeyMsg:
		if m.searching {
			switch msg.String() {
			case "enter", "esc":
				m.searching = false
				m.search.Blur()
				if msg.String() == "esc" {
					m.search.SetValue("")
				}
				m.rebuildRows()
				return m, nil
			default:
				var cmd tea.Cmd
				m.search, cmd = m.search.Update(msg)
				m.rebuildRows()
				return m, cmd
			}
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case "/":
			m.searching = true
			m.search.Focus()
			return m, textinput.Blink
		case "enter":
			if m.cursor < len(m.rows) {
				_ = m.sess.Select(m.rows[m.cursor].node.ID)
				m.status = fmt.Sprintf("Selected #%d", m.rows[m.cursor].node.ID)
			}
		}
	}
	return m, nil
}

func (m browseModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header(m.sess.Project().Name) + "\n")

	for i, row := range m.rows {
		indent := strings.Repeat("  ", row.depth)
		line := fmt.Sprintf("%s#%d %s", indent, row.node.ID, row.node.Name)
		style := formatter.KindStyle(row.node.Kind)
		if i == m.cursor {
			b.WriteString(formatter.StyleBold.Render("> ") + style.Bold(true).Render(line))
		} else {
			b.WriteString("  " + style.Render(line))
		}
		b.WriteString("\n")
	}

	est := m.sess.Estimate()
	b.WriteString("\n" + formatter.Dim(fmt.Sprintf(
		"eng %.1f  gfx %.1f  cx %.1f  total %.1f",
		est.Engineering, est.Graphics, est.Commissioning, est.GrandTotal)) + "\n")

	if m.searching {
		b.WriteString(m.search.View() + "\n")
	} else {
		b.WriteString(formatter.Dim("j/k move · / filter · enter select · q quit") + "\n")
	}
	if m.status != "" {
		b.WriteString(formatter.Dim(m.status) + "\n")
	}
	return b.String()
}
