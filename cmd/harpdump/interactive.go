package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bruno-rino/harp"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type browserState int

const (
	stateList browserState = iota
	stateDetail
	stateFilter
)

type browserModel struct {
	file    string
	actions string
	options string
	ingest  bool

	err      error
	prod     *harp.Product
	names    []string
	selected int
	state    browserState

	pal    palette
	filter textinput.Model
	detail viewport.Model
	width  int
	height int
	ready  bool
}

type productLoadedMsg struct {
	err  error
	prod *harp.Product
}

func newBrowserModel(file, actions, options string, ingest bool) *browserModel {
	filter := textinput.New()
	filter.Placeholder = "variable name"
	filter.Prompt = "/ "
	filter.Width = 40

	return &browserModel{
		file:    file,
		actions: actions,
		options: options,
		ingest:  ingest,
		pal:     newPalette(true),
		filter:  filter,
		state:   stateList,
	}
}

func (m *browserModel) Init() tea.Cmd {
	return m.loadProduct
}

func (m *browserModel) loadProduct() tea.Msg {
	p, err := readProduct(m.file, m.actions, m.options, m.ingest)
	if err != nil {
		return productLoadedMsg{err: err}
	}
	return productLoadedMsg{prod: p}
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Title and help lines frame the viewport.
		h := msg.Height - 4
		if h < 1 {
			h = 1
		}
		if !m.ready {
			m.detail = viewport.New(msg.Width, h)
			m.ready = true
		} else {
			m.detail.Width = msg.Width
			m.detail.Height = h
		}

	case productLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.prod = msg.prod
		m.names = msg.prod.Names()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateFilter {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateList && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateList && m.selected < len(m.names)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateList:
				m.openDetail()
			case stateFilter:
				m.filter.Blur()
				m.state = stateList
			}

		case "/":
			if m.state == stateList {
				m.state = stateFilter
				m.filter.Focus()
				return m, textinput.Blink
			}

		case "esc":
			switch m.state {
			case stateDetail:
				m.state = stateList
			case stateFilter:
				m.filter.SetValue("")
				m.filter.Blur()
				m.applyFilter()
				m.state = stateList
			}
		}
	}

	switch m.state {
	case stateFilter:
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.applyFilter()
		return m, cmd

	case stateDetail:
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}

	return m, nil
}

// applyFilter recomputes the visible names from the filter text and keeps
// the cursor on a valid entry.
func (m *browserModel) applyFilter() {
	if m.prod == nil {
		return
	}
	needle := strings.ToLower(m.filter.Value())
	if needle == "" {
		m.names = m.prod.Names()
	} else {
		var names []string
		for _, name := range m.prod.Names() {
			if strings.Contains(strings.ToLower(name), needle) {
				names = append(names, name)
			}
		}
		m.names = names
	}
	if m.selected >= len(m.names) {
		m.selected = len(m.names) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *browserModel) openDetail() {
	if len(m.names) == 0 || !m.ready {
		return
	}
	name := m.names[m.selected]
	v, ok := m.prod.Get(name)
	if !ok {
		return
	}
	m.detail.SetContent(renderVariable(name, v, m.pal))
	m.detail.GotoTop()
	m.state = stateDetail
}

func (m *browserModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.prod == nil {
		return "Loading " + m.file + "..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("harpdump"))
	b.WriteString(" ")
	b.WriteString(m.file)
	b.WriteString("\n\n")

	switch m.state {
	case stateDetail:
		b.WriteString(m.detail.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ scroll • esc back • q quit"))

	default:
		if m.state == stateFilter || m.filter.Value() != "" {
			b.WriteString(m.filter.View())
			b.WriteString("\n\n")
		}
		if len(m.names) == 0 {
			b.WriteString("no matching variables\n")
		}
		for i, name := range m.names {
			v, _ := m.prod.Get(name)
			if i == m.selected && m.state == stateList {
				b.WriteString(selectedStyle.Render("> " + plainVariableLine(name, v)))
			} else {
				b.WriteString("  ")
				b.WriteString(variableLine(name, v, m.pal))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(countStyle.Render(fmt.Sprintf("%d of %d variables", len(m.names), m.prod.Len())))
		b.WriteString("\n")
		if m.state == stateFilter {
			b.WriteString(helpStyle.Render("enter keep filter • esc clear"))
		} else {
			b.WriteString(helpStyle.Render("↑/↓ select • enter open • / filter • q quit"))
		}
	}

	return b.String()
}

func runBrowser(file, actions, options string, ingest bool) error {
	p := tea.NewProgram(newBrowserModel(file, actions, options, ingest), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
