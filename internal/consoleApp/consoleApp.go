package consoleApp

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/KotFed0t/commodity_value_analyzer/internal/model"
	customMW "github.com/KotFed0t/commodity_value_analyzer/internal/transport/console/middleware"
)

const (
	title = "Crude Oil Price Analysis - Total Value Gain or Loss"
	help  = "enter: next / analyze • tab/shift+tab: move • ctrl+r: reset • pgup/pgdown: scroll • esc: quit"

	submitFailedMsg = "Something went wrong, please try again"
	pendingMsg      = "Analyzing..."

	// title, blank, three fields, blank, help, blank
	formHeight = 8
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("6")).Padding(0, 1)
	labelStyle   = lipgloss.NewStyle().Width(22)
	focusedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

var labels = [...]string{
	model.ExpectingStartDate: "Start Date (YYYY-MM-DD)",
	model.ExpectingEndDate:   "End Date (YYYY-MM-DD)",
	model.ExpectingQuantity:  "Quantity",
}

type Controller interface {
	Submit(ctx context.Context, form model.SubmissionForm, out io.Writer) error
}

type submittedMsg struct {
	output string
	err    error
}

// App is the bubbletea model of the single analysis session.
type App struct {
	ctx      context.Context
	submit   customMW.SubmitFunc
	session  model.Session
	inputs   []textinput.Model
	viewport viewport.Model
	ready    bool
	busy     bool
	output   string
}

func New(ctx context.Context, ctrl Controller) App {
	a := App{
		ctx:    ctx,
		submit: customMW.Chain(ctrl.Submit, customMW.Logger(), customMW.Recover()),
		inputs: make([]textinput.Model, len(labels)),
	}

	for i := range a.inputs {
		in := textinput.New()
		in.Prompt = "> "
		in.CharLimit = 10
		in.Width = 16
		a.inputs[i] = in
	}
	a.inputs[model.ExpectingStartDate].Placeholder = "2020-01-01"
	a.inputs[model.ExpectingEndDate].Placeholder = "2020-12-31"
	a.inputs[model.ExpectingQuantity].Placeholder = "100"
	a.inputs[model.ExpectingQuantity].CharLimit = 12
	a.inputs[model.ExpectingStartDate].Focus()

	return a
}

// Run blocks until the user quits or ctx is cancelled.
func (a App) Run(opts ...tea.ProgramOption) error {
	slog.Info("console app started")
	defer slog.Info("console app stopped")

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(a.ctx)}, opts...)
	_, err := tea.NewProgram(a, opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && a.ctx.Err() != nil {
		return nil
	}
	return err
}

func (a App) Init() tea.Cmd {
	return textinput.Blink
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return a, tea.Quit
		case "ctrl+r":
			for i := range a.inputs {
				a.inputs[i].Reset()
			}
			a.session = model.Session{}
			return a, a.syncFocus()
		case "tab", "down":
			a.session.Action = a.session.Action.Next()
			return a, a.syncFocus()
		case "shift+tab", "up":
			a.session.Action = a.session.Action.Prev()
			return a, a.syncFocus()
		case "pgup", "pgdown":
			var cmd tea.Cmd
			a.viewport, cmd = a.viewport.Update(msg)
			return a, cmd
		case "enter":
			if a.session.Action != model.ExpectingQuantity {
				a.session.Action = a.session.Action.Next()
				return a, a.syncFocus()
			}
			if a.busy {
				return a, nil
			}
			a.busy = true
			a.session.Form = a.form()
			a.setOutput(pendingMsg)
			return a, a.submitCmd(a.session.Form)
		}

	case tea.WindowSizeMsg:
		vpHeight := msg.Height - formHeight
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !a.ready {
			a.viewport = viewport.New(msg.Width, vpHeight)
			a.ready = true
			a.viewport.SetContent(a.output)
			return a, nil
		}
		a.viewport.Width = msg.Width
		a.viewport.Height = vpHeight
		return a, nil

	case submittedMsg:
		a.busy = false
		out := msg.output
		if msg.err != nil {
			slog.Error("submission failed", slog.String("err", msg.err.Error()))
			out += submitFailedMsg + "\n"
		}
		a.setOutput(out)
		a.session.Action = model.ExpectingStartDate
		return a, a.syncFocus()
	}

	var cmd tea.Cmd
	a.inputs[a.session.Action], cmd = a.inputs[a.session.Action].Update(msg)
	return a, cmd
}

func (a App) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	for i, in := range a.inputs {
		label := labelStyle.Render(labels[i])
		if i == int(a.session.Action) {
			label = focusedStyle.Inherit(labelStyle).Render(labels[i])
		}
		b.WriteString(label)
		b.WriteString(in.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(help))
	b.WriteString("\n\n")

	if a.ready {
		b.WriteString(a.viewport.View())
	} else {
		b.WriteString(a.output)
	}

	return b.String()
}

// syncFocus focuses the input the session expects and blurs the rest.
func (a App) syncFocus() tea.Cmd {
	var cmd tea.Cmd
	for i := range a.inputs {
		if i == int(a.session.Action) {
			cmd = a.inputs[i].Focus()
			continue
		}
		a.inputs[i].Blur()
	}
	return cmd
}

func (a App) form() model.SubmissionForm {
	return model.SubmissionForm{
		StartDate: a.inputs[model.ExpectingStartDate].Value(),
		EndDate:   a.inputs[model.ExpectingEndDate].Value(),
		Quantity:  a.inputs[model.ExpectingQuantity].Value(),
	}
}

func (a *App) setOutput(out string) {
	a.output = out
	if a.ready {
		a.viewport.SetContent(out)
		a.viewport.GotoTop()
	}
}

func (a App) submitCmd(form model.SubmissionForm) tea.Cmd {
	ctx, submit := a.ctx, a.submit
	return func() tea.Msg {
		buf := &bytes.Buffer{}
		err := submit(ctx, form, buf)
		return submittedMsg{output: buf.String(), err: err}
	}
}
