package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/msgpack-codec/value"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	scalarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// row is one line of the flattened value tree.
type row struct {
	depth int
	path  string
	label string
	val   value.Value
}

type browserState int

const (
	stateBrowse browserState = iota
	stateFilter
)

type browserModel struct {
	err      error
	source   string
	rows     []row
	visible  []int // indexes into rows after filtering
	filter   textinput.Model
	selected int
	height   int
	state    browserState
}

func newBrowserModel(data []byte, source string) *browserModel {
	m := &browserModel{source: source, height: 24}

	ti := textinput.New()
	ti.Placeholder = "path substring"
	ti.Prompt = "/ "
	ti.Width = 40
	m.filter = ti

	values, err := decodeAll(data)
	if err != nil {
		m.err = err
		return m
	}
	for i, v := range values {
		label := ""
		if len(values) > 1 {
			label = fmt.Sprintf("value %d", i+1)
		}
		m.flatten(v, 0, label, label)
	}
	m.applyFilter("")
	return m
}

func (m *browserModel) flatten(v value.Value, depth int, path, label string) {
	m.rows = append(m.rows, row{depth: depth, path: path, label: label, val: v})

	join := func(p, seg string) string {
		if p == "" {
			return seg
		}
		return p + "." + seg
	}

	switch v.Kind() {
	case value.KindArray:
		for i, el := range v.Items() {
			seg := fmt.Sprintf("[%d]", i)
			m.flatten(el, depth+1, join(path, seg), seg)
		}
	case value.KindMap:
		for _, p := range v.Pairs() {
			seg := p.Key.String()
			m.flatten(p.Val, depth+1, join(path, seg), seg)
		}
	}
}

func (m *browserModel) applyFilter(q string) {
	m.visible = m.visible[:0]
	for i, r := range m.rows {
		if q == "" || strings.Contains(strings.ToLower(r.path), strings.ToLower(q)) {
			m.visible = append(m.visible, i)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = 0
	}
}

func (m *browserModel) Init() tea.Cmd {
	return nil
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height

	case tea.KeyMsg:
		if m.state == stateFilter {
			switch msg.String() {
			case "enter", "esc":
				if msg.String() == "esc" {
					m.filter.SetValue("")
					m.applyFilter("")
				}
				m.state = stateBrowse
				m.filter.Blur()
				return m, nil
			default:
				var cmd tea.Cmd
				m.filter, cmd = m.filter.Update(msg)
				m.applyFilter(m.filter.Value())
				return m, cmd
			}
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.selected < len(m.visible)-1 {
				m.selected++
			}

		case "g":
			m.selected = 0

		case "G":
			if len(m.visible) > 0 {
				m.selected = len(m.visible) - 1
			}

		case "/":
			m.state = stateFilter
			m.filter.Focus()
			return m, textinput.Blink
		}
	}

	return m, nil
}

func (m *browserModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("mpdump"))
	b.WriteString(" ")
	b.WriteString(m.source)
	b.WriteString("\n\n")

	// Keep the cursor inside the window.
	listHeight := m.height - 7
	if listHeight < 3 {
		listHeight = 3
	}
	start := 0
	if m.selected >= listHeight {
		start = m.selected - listHeight + 1
	}
	end := start + listHeight
	if end > len(m.visible) {
		end = len(m.visible)
	}

	for vi := start; vi < end; vi++ {
		r := m.rows[m.visible[vi]]
		line := m.formatRow(r)
		if vi == m.selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.state == stateFilter {
		b.WriteString(m.filter.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter apply • esc clear"))
	} else {
		if sel := m.selectedRow(); sel != nil {
			b.WriteString(helpStyle.Render(sel.path))
			b.WriteString("\n")
		}
		b.WriteString(helpStyle.Render("↑/↓ move • g/G first/last • / filter • q quit"))
	}

	return b.String()
}

func (m *browserModel) selectedRow() *row {
	if m.selected < 0 || m.selected >= len(m.visible) {
		return nil
	}
	return &m.rows[m.visible[m.selected]]
}

func (m *browserModel) formatRow(r row) string {
	indent := strings.Repeat("  ", r.depth)
	label := ""
	if r.label != "" {
		label = keyStyle.Render(r.label) + ": "
	}

	switch r.val.Kind() {
	case value.KindArray:
		return indent + label + kindStyle.Render(fmt.Sprintf("array (%d)", r.val.Len()))
	case value.KindMap:
		return indent + label + kindStyle.Render(fmt.Sprintf("map (%d)", r.val.Len()))
	default:
		return indent + label + scalarStyle.Render(r.val.String()) +
			" " + kindStyle.Render(r.val.Kind().String())
	}
}

func runInteractive(data []byte, source string) error {
	p := tea.NewProgram(newBrowserModel(data, source), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
