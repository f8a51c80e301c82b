package web

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/GregMSThompson/utools/internal/catalog"
	"github.com/GregMSThompson/utools/internal/toolapi"
)

// Factory builds the form for one tool around a client already scoped to
// the tool's REST group.
type Factory func(api *toolapi.Client) tea.Model

// resolvedMsg carries a constructed form back to the page. attempt is the
// page's selection counter at the time the resolution was started.
type resolvedMsg struct {
	id      string
	attempt int
	form    tea.Model
}

type Loader struct {
	baseURL   string
	opts      []toolapi.Option
	factories map[string]Factory
}

func NewLoader(baseURL string, opts ...toolapi.Option) *Loader {
	return &Loader{
		baseURL:   baseURL,
		opts:      opts,
		factories: make(map[string]Factory),
	}
}

// DefaultLoader knows every form shipped with the binary.
func DefaultLoader(baseURL string, opts ...toolapi.Option) *Loader {
	l := NewLoader(baseURL, opts...)
	l.Register(catalog.UnitConverterID, NewConverterForm)
	l.Register(catalog.NetworkPingID, NewPingForm)
	return l
}

func (l *Loader) Register(id string, f Factory) {
	l.factories[id] = f
}

func (l *Loader) Has(id string) bool {
	_, ok := l.factories[id]
	return ok
}

// Resolve returns a command that constructs the form for tool, or nil when
// no form is registered for it. Construction runs off the UI goroutine.
func (l *Loader) Resolve(tool catalog.Tool) tea.Cmd {
	f, ok := l.factories[tool.ID]
	if !ok {
		return nil
	}
	api := toolapi.New(l.baseURL, tool.BasePath, l.opts...)
	return func() tea.Msg {
		return resolvedMsg{id: tool.ID, form: f(api)}
	}
}

func notFoundText(id string) string {
	return `Tool "` + id + `" not found or not implemented yet.`
}
