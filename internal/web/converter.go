package web

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/GregMSThompson/utools/internal/dto"
	"github.com/GregMSThompson/utools/internal/toolapi"
	"github.com/GregMSThompson/utools/internal/units"
)

const (
	convFocusValue = iota
	convFocusFrom
	convFocusTo
	convFocusSubmit
	convFocusCount
)

type convertDoneMsg struct {
	to     string
	result float64
	err    error
}

type converterForm struct {
	api *toolapi.Client

	value textinput.Model
	from  int
	to    int
	focus int

	loading  bool
	err      string
	result   *float64
	resultTo string
}

var unitCodes = func() []string {
	codes := make([]string, 0, len(units.All))
	for _, u := range units.All {
		codes = append(codes, u.String())
	}
	return codes
}()

func unitIndex(code string) int {
	for i, c := range unitCodes {
		if c == code {
			return i
		}
	}
	return 0
}

func NewConverterForm(api *toolapi.Client) tea.Model {
	ti := textinput.New()
	ti.Placeholder = "Enter value"
	ti.SetValue("1")
	ti.CharLimit = 32
	ti.Focus()

	return &converterForm{
		api:   api,
		value: ti,
		from:  unitIndex("m"),
		to:    unitIndex("km"),
	}
}

func (f *converterForm) Init() tea.Cmd {
	return textinput.Blink
}

func (f *converterForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case convertDoneMsg:
		f.loading = false
		if msg.err != nil {
			f.err = toolapi.Detail(msg.err)
			return f, nil
		}
		f.err = ""
		f.result = &msg.result
		f.resultTo = msg.to
		return f, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			f.setFocus((f.focus + 1) % convFocusCount)
			return f, nil
		case "shift+tab", "up":
			f.setFocus((f.focus + convFocusCount - 1) % convFocusCount)
			return f, nil
		case "left", "right":
			if f.cycleUnit(msg.String() == "right") {
				return f, nil
			}
		case "enter":
			return f, f.submit()
		}
	}

	if f.focus != convFocusValue {
		return f, nil
	}
	var cmd tea.Cmd
	f.value, cmd = f.value.Update(msg)
	return f, cmd
}

func (f *converterForm) setFocus(i int) {
	f.focus = i
	if i == convFocusValue {
		f.value.Focus()
	} else {
		f.value.Blur()
	}
}

func (f *converterForm) cycleUnit(forward bool) bool {
	step := 1
	if !forward {
		step = len(unitCodes) - 1
	}
	switch f.focus {
	case convFocusFrom:
		f.from = (f.from + step) % len(unitCodes)
	case convFocusTo:
		f.to = (f.to + step) % len(unitCodes)
	default:
		return false
	}
	return true
}

func (f *converterForm) submit() tea.Cmd {
	if f.loading {
		return nil
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(f.value.Value()), 64)
	if err != nil || value <= 0 {
		f.err = "Please enter a valid positive number"
		return nil
	}

	f.loading = true
	f.err = ""
	req := dto.ConvertRequest{Value: value, From: unitCodes[f.from], To: unitCodes[f.to]}
	api := f.api
	return func() tea.Msg {
		resp, err := toolapi.Post[dto.ConvertResponse](context.Background(), api, "/convert", req)
		return convertDoneMsg{to: req.To, result: resp.Result, err: err}
	}
}

func (f *converterForm) View() string {
	var b strings.Builder

	b.WriteString(f.label("Value", convFocusValue))
	b.WriteString(f.value.View())
	b.WriteString("\n")
	b.WriteString(f.label("From", convFocusFrom))
	b.WriteString(unitChoice(f.from, f.focus == convFocusFrom))
	b.WriteString("   ")
	b.WriteString(f.label("To", convFocusTo))
	b.WriteString(unitChoice(f.to, f.focus == convFocusTo))
	b.WriteString("\n\n")

	label := "Convert"
	if f.loading {
		label = "Converting..."
	}
	b.WriteString(button(label, f.focus == convFocusSubmit, f.loading))
	b.WriteString("\n")

	if f.err != "" {
		b.WriteString("\n" + errorStyle.Render(f.err))
	} else if f.result != nil {
		b.WriteString("\n" + successStyle.Render("Result: "+formatResult(*f.result)+" "+f.resultTo))
	}
	return b.String()
}

func (f *converterForm) label(text string, field int) string {
	if f.focus == field {
		return focusedStyle.Render(text+": ")
	}
	return labelStyle.Render(text + ": ")
}

func unitChoice(i int, focused bool) string {
	s := "‹ " + unitCodes[i] + " ›"
	if focused {
		return focusedStyle.Render(s)
	}
	return s
}

func formatResult(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
