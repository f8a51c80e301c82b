package web

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/GregMSThompson/utools/internal/catalog"
)

// Page lists the catalog as cards and hosts the form of the selected tool.
type Page struct {
	tools  []catalog.Tool
	loader *Loader

	cursor   int
	selected string
	attempt  int
	form     tea.Model
	pending  bool
	missing  bool

	spinner spinner.Model
	width   int
}

func NewPage(c *catalog.Catalog, loader *Loader) *Page {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = focusedStyle

	return &Page{
		tools:   c.All(),
		loader:  loader,
		spinner: s,
	}
}

// Run blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, p *Page) error {
	_, err := tea.NewProgram(p, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

func (p *Page) Init() tea.Cmd {
	return nil
}

func (p *Page) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return p, tea.Quit
		}
		if p.selected == "" {
			return p.updateCards(msg)
		}
		if msg.String() == "esc" {
			p.close()
			return p, nil
		}

	case resolvedMsg:
		if msg.id != p.selected || msg.attempt != p.attempt {
			return p, nil
		}
		p.pending = false
		p.form = msg.form
		return p, p.form.Init()

	case spinner.TickMsg:
		if !p.pending {
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd
	}

	if p.form == nil {
		return p, nil
	}
	var cmd tea.Cmd
	p.form, cmd = p.form.Update(msg)
	return p, cmd
}

func (p *Page) updateCards(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.tools)-1 {
			p.cursor++
		}
	case "enter":
		if len(p.tools) == 0 {
			return p, nil
		}
		return p, p.open(p.tools[p.cursor])
	}
	return p, nil
}

func (p *Page) open(tool catalog.Tool) tea.Cmd {
	p.selected = tool.ID
	p.form = nil
	p.missing = false

	resolve := p.loader.Resolve(tool)
	if resolve == nil {
		p.missing = true
		return nil
	}
	p.attempt++
	attempt := p.attempt
	p.pending = true
	return tea.Batch(p.spinner.Tick, func() tea.Msg {
		msg, ok := resolve().(resolvedMsg)
		if !ok {
			return nil
		}
		msg.attempt = attempt
		return msg
	})
}

func (p *Page) close() {
	p.selected = ""
	p.form = nil
	p.pending = false
	p.missing = false
}

func (p *Page) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Available Tools"))
	b.WriteString("\n")

	cards := make([]string, 0, len(p.tools))
	for i, t := range p.tools {
		cards = append(cards, renderCard(t, i == p.cursor, t.ID == p.selected))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	b.WriteString("\n")

	if p.selected != "" {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(p.selectedName()))
		b.WriteString("\n")
		b.WriteString(panelStyle.Render(p.toolView()))
		b.WriteString(helpStyle.Render("esc close • ctrl+c quit"))
	} else {
		b.WriteString(helpStyle.Render("↑/↓ move • enter open • q quit"))
	}
	return b.String()
}

func (p *Page) toolView() string {
	switch {
	case p.missing:
		return errorStyle.Render(notFoundText(p.selected))
	case p.pending || p.form == nil:
		return p.spinner.View() + " Loading..."
	}
	return p.form.View()
}

func (p *Page) selectedName() string {
	for _, t := range p.tools {
		if t.ID == p.selected {
			return t.Name
		}
	}
	return p.selected
}

func renderCard(t catalog.Tool, cursor, selected bool) string {
	style := cardStyle
	if cursor || selected {
		style = selectedCardStyle
	}

	tags := make([]string, 0, len(t.Tags))
	for _, tag := range t.Tags {
		tags = append(tags, tagStyle.Render("#"+tag))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		t.Icon+" "+labelStyle.Render(t.Name),
		categoryStyle.Render(t.Category),
		t.Description,
		strings.Join(tags, " "),
	)
	return style.Render(body)
}
