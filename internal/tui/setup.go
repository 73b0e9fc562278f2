// ABOUTME: Interactive TUI wizard for connecting a social media account.
// ABOUTME: 2-step bubbletea model collecting server URL and access token per platform.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Default servers per platform. Mastodon has no sensible default: every
// account lives on a specific instance.
var defaultServers = map[string]string{
	"bluesky": "https://bsky.social",
	"twitter": "https://api.twitter.com",
}

// Step represents the current wizard step.
type Step int

const (
	StepServer Step = iota
	StepToken
	StepValidating
	StepDone
	StepFailed
)

// validationResultMsg carries the result of an async validation attempt.
type validationResultMsg struct {
	err error
}

// ValidateFn is the function signature for connection validation.
type ValidateFn func(ctx context.Context, platform, server, token string) error

// cancelHolder shares a cancel function across bubbletea model copies.
// This MUST be stored as a pointer field on SetupModel so that value-receiver
// methods (required by tea.Model) can store the cancel func and have it
// visible to all copies of the model.
type cancelHolder struct {
	cancel context.CancelFunc
}

// SetupModel is the bubbletea model for the account setup wizard.
type SetupModel struct {
	platform      string
	step          Step
	inputs        [2]textinput.Model
	spinner       spinner.Model
	validateFn    ValidateFn
	cancelCtx     *cancelHolder
	validationErr error
	quitting      bool
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	brandStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// NewSetupModel creates a new setup wizard model for one platform,
// pre-filling with existing config values.
func NewSetupModel(platform, server, token string) SetupModel {
	serverInput := textinput.New()
	if def := defaultServers[platform]; def != "" {
		serverInput.Placeholder = def
	} else {
		serverInput.Placeholder = "https://your.instance"
	}
	serverInput.Focus()
	serverInput.Width = 50
	if server != "" {
		serverInput.SetValue(server)
	}

	tokenInput := textinput.New()
	tokenInput.Placeholder = "your-access-token"
	tokenInput.EchoMode = textinput.EchoPassword
	tokenInput.Width = 50
	if token != "" {
		tokenInput.SetValue(token)
	}

	s := spinner.New()
	s.Spinner = spinner.Dot

	return SetupModel{
		platform:   platform,
		step:       StepServer,
		inputs:     [2]textinput.Model{serverInput, tokenInput},
		spinner:    s,
		validateFn: ValidateConnection,
		cancelCtx:  &cancelHolder{},
	}
}

// Init implements tea.Model.
func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEscape:
			m.quitting = true
			if m.cancelCtx.cancel != nil {
				m.cancelCtx.cancel()
			}
			return m, tea.Quit
		}

		switch m.step {
		case StepServer, StepToken:
			return m.updateInput(msg)
		case StepFailed:
			return m.updateFailed(msg)
		}

	case validationResultMsg:
		m.cancelCtx.cancel = nil
		if msg.err == nil {
			m.step = StepDone
			return m, tea.Quit
		}
		m.validationErr = msg.err
		m.step = StepFailed
		return m, nil

	case spinner.TickMsg:
		if m.step == StepValidating {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m SetupModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		switch m.step {
		case StepServer:
			val := strings.TrimRight(m.inputs[0].Value(), "/")
			if val == "" {
				val = defaultServers[m.platform]
			}
			// Mastodon has no default instance, so the field is required.
			if val == "" {
				return m, nil
			}
			m.inputs[0].SetValue(val)
			m.inputs[0].Blur()
			m.step = StepToken
			m.inputs[1].Focus()
			return m, textinput.Blink

		case StepToken:
			if m.inputs[1].Value() == "" {
				return m, nil
			}
			m.inputs[1].Blur()
			m.step = StepValidating
			return m, tea.Batch(m.startValidation(), m.spinner.Tick)
		}
	}

	// Forward to the active input
	idx := int(m.step)
	var cmd tea.Cmd
	m.inputs[idx], cmd = m.inputs[idx].Update(msg)
	return m, cmd
}

func (m SetupModel) updateFailed(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyRunes {
		switch msg.Runes[0] {
		case 'r':
			m.step = StepValidating
			m.validationErr = nil
			return m, tea.Batch(m.startValidation(), m.spinner.Tick)
		case 's':
			m.step = StepDone
			return m, tea.Quit
		case 'q':
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m SetupModel) startValidation() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelCtx.cancel = cancel
	platform := m.platform
	server := m.inputs[0].Value()
	token := m.inputs[1].Value()
	fn := m.validateFn
	return func() tea.Msg {
		return validationResultMsg{err: fn(ctx, platform, server, token)}
	}
}

// View implements tea.Model.
func (m SetupModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(brandStyle.Render("   SNAPJOURNAL"))
	b.WriteString(titleStyle.Render(" - Connect " + m.platform))
	b.WriteString("\n\n")

	switch m.step {
	case StepServer:
		b.WriteString(stepStyle.Render("Step 1 of 2: Server URL"))
		b.WriteString("\n")
		if defaultServers[m.platform] != "" {
			b.WriteString(promptStyle.Render("(press Enter for default)"))
			b.WriteString("\n")
		}
		b.WriteString(m.inputs[0].View())
		b.WriteString("\n")

	case StepToken:
		b.WriteString(fmt.Sprintf("  Server: %s\n\n", m.inputs[0].Value()))
		b.WriteString(stepStyle.Render("Step 2 of 2: Access Token"))
		b.WriteString("\n")
		b.WriteString(m.inputs[1].View())
		b.WriteString("\n")

	case StepValidating:
		b.WriteString(fmt.Sprintf("  Server: %s\n", m.inputs[0].Value()))
		b.WriteString(fmt.Sprintf("  Token:  %s\n\n", strings.Repeat("*", len(m.inputs[1].Value()))))
		b.WriteString(m.spinner.View())
		b.WriteString(" Validating credentials...")
		b.WriteString("\n")

	case StepDone:
		b.WriteString(successStyle.Render("✓ Connected!"))
		b.WriteString("\n")

	case StepFailed:
		errMsg := "unknown error"
		if m.validationErr != nil {
			errMsg = m.validationErr.Error()
		}
		b.WriteString(errorStyle.Render(fmt.Sprintf("✗ Validation failed: %s", errMsg)))
		b.WriteString("\n\n")
		b.WriteString(promptStyle.Render("[r]etry  [s]ave anyway  [q]uit"))
		b.WriteString("\n")
	}

	return b.String()
}

// Result returns the entered values.
func (m SetupModel) Result() (server, token string) {
	return m.inputs[0].Value(), m.inputs[1].Value()
}

// ShouldSave returns true if the wizard completed (via validation success or
// "save anyway") and the user did not cancel with Ctrl+C, Escape, or 'q'.
func (m SetupModel) ShouldSave() bool {
	return m.step == StepDone && !m.quitting
}
