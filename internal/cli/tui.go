package cli

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ytget/ytfetch/internal/model"
)

// ProgressWidth is the width of the progress bar in cells
const ProgressWidth = 50

// eventMsg carries one progress event into the program
type eventMsg model.ProgressEvent

// doneMsg is sent once the request finished
type doneMsg struct {
	summary model.Summary
	err     error
}

// progressModel renders a single request
type progressModel struct {
	req      model.DownloadRequest
	bar      progress.Model
	label    string
	result   string
	done     bool
	quitting bool
	err      error

	cancel func()
}

func newProgressModel(req model.DownloadRequest) *progressModel {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = ProgressWidth
	return &progressModel{
		req:   req,
		bar:   bar,
		label: "Preparing download...",
	}
}

func (m *progressModel) Init() tea.Cmd {
	return nil
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			if m.done {
				return m, tea.Quit
			}
			// the run reports a cancelled event and a doneMsg follows
			m.quitting = true
			m.label = "Cancelling..."
			if m.cancel != nil {
				m.cancel()
			}
		}
		return m, nil

	case eventMsg:
		event := model.ProgressEvent(msg)
		m.label = event.Label()
		if event.IsTerminal() {
			m.result = event.Message
		}
		if f, ok := event.Fraction.Get(); ok {
			return m, m.bar.SetPercent(f)
		}
		return m, nil

	case doneMsg:
		m.done = true
		m.err = msg.err
		if m.result == "" {
			if msg.err != nil {
				m.result = msg.err.Error()
			} else {
				m.result = msg.summary.String()
			}
		}
		return m, tea.Quit

	case tea.WindowSizeMsg:
		if w := msg.Width - 8; w > 10 && w < ProgressWidth {
			m.bar.Width = w
		}
		return m, nil

	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		if b, ok := bar.(progress.Model); ok {
			m.bar = b
		}
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(strings.ToUpper(m.req.Kind.String()) + " → " + strings.ToUpper(m.req.Format.String())))
	b.WriteString("\n")
	b.WriteString(URLStyle.Render(m.req.URL))
	b.WriteString("\n\n")
	b.WriteString(m.bar.View())
	b.WriteString("\n")

	if m.done {
		if m.err != nil {
			b.WriteString(ErrorStyle.Render(FailMark + " " + m.result))
		} else {
			b.WriteString(SuccessStyle.Render(DoneMark + " " + m.result))
		}
		b.WriteString("\n")
		return AppStyle.Render(b.String())
	}

	b.WriteString(LabelStyle.Render(m.label))
	b.WriteString("\n\n")
	b.WriteString(HelpStyle.Render("q: cancel"))
	return AppStyle.Render(b.String())
}
