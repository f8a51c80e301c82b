package web

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/GregMSThompson/utools/internal/dto"
	"github.com/GregMSThompson/utools/internal/toolapi"
)

const (
	pingFocusHost = iota
	pingFocusCount
	pingFocusSubmit
	pingFocusFields

	MinPingCount = 1
	MaxPingCount = 10
)

type pingDoneMsg struct {
	resp dto.PingResponse
	at   time.Time
	err  error
}

type pingForm struct {
	api *toolapi.Client
	now func() time.Time

	host  textinput.Model
	count textinput.Model
	focus int

	loading bool
	err     string
	result  *dto.PingResponse
	at      time.Time
}

func NewPingForm(api *toolapi.Client) tea.Model {
	host := textinput.New()
	host.Placeholder = "e.g., google.com, 8.8.8.8"
	host.SetValue("google.com")
	host.CharLimit = 253
	host.Focus()

	count := textinput.New()
	count.SetValue("4")
	count.CharLimit = 3

	return &pingForm{
		api:   api,
		now:   time.Now,
		host:  host,
		count: count,
	}
}

// ClampCount keeps the requested count within 1..10. Unparseable input
// counts as the minimum.
func ClampCount(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return MinPingCount
	}
	return max(MinPingCount, min(MaxPingCount, n))
}

func (f *pingForm) Init() tea.Cmd {
	return textinput.Blink
}

func (f *pingForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pingDoneMsg:
		f.loading = false
		if msg.err != nil {
			f.err = toolapi.Detail(msg.err)
			return f, nil
		}
		f.result = &msg.resp
		f.at = msg.at
		return f, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			f.setFocus((f.focus + 1) % pingFocusFields)
			return f, nil
		case "shift+tab", "up":
			f.setFocus((f.focus + pingFocusFields - 1) % pingFocusFields)
			return f, nil
		case "enter":
			return f, f.submit()
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case pingFocusHost:
		f.host, cmd = f.host.Update(msg)
	case pingFocusCount:
		f.count, cmd = f.count.Update(msg)
	}
	return f, cmd
}

func (f *pingForm) setFocus(i int) {
	f.focus = i
	f.host.Blur()
	f.count.Blur()
	switch i {
	case pingFocusHost:
		f.host.Focus()
	case pingFocusCount:
		f.count.Focus()
	}
}

func (f *pingForm) submit() tea.Cmd {
	if f.loading {
		return nil
	}
	host := strings.TrimSpace(f.host.Value())
	if host == "" {
		f.err = "Please enter a valid host"
		return nil
	}

	f.loading = true
	f.err = ""
	f.result = nil
	req := dto.PingRequest{Host: host, Count: ClampCount(f.count.Value())}
	api, now := f.api, f.now
	return func() tea.Msg {
		resp, err := toolapi.Post[dto.PingResponse](context.Background(), api, "/run", req)
		return pingDoneMsg{resp: resp, at: now(), err: err}
	}
}

func (f *pingForm) View() string {
	var b strings.Builder

	b.WriteString(f.label("Host", pingFocusHost))
	b.WriteString(f.host.View())
	b.WriteString("\n")
	b.WriteString(f.label("Count (1-10)", pingFocusCount))
	b.WriteString(f.count.View())
	b.WriteString("\n\n")

	label := "Ping"
	if f.loading {
		label = "Pinging..."
	}
	b.WriteString(button(label, f.focus == pingFocusSubmit, f.loading))
	b.WriteString("\n")

	switch {
	case f.err != "":
		b.WriteString("\n" + errorStyle.Render(f.err))
	case f.result != nil:
		b.WriteString("\n" + f.renderResult())
	}
	return b.String()
}

func (f *pingForm) renderResult() string {
	r := f.result
	head := fmt.Sprintf("%s  %s", r.Host, f.at.Format("15:04:05"))
	if r.Success {
		return successStyle.Render(head + "\n" + fmt.Sprintf("RTT: %dms", r.RTTMs))
	}
	return errorStyle.Render(head + "\n" + r.Error)
}

func (f *pingForm) label(text string, field int) string {
	if f.focus == field {
		return focusedStyle.Render(text+": ")
	}
	return labelStyle.Render(text + ": ")
}
