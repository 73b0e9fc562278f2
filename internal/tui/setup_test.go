// ABOUTME: Unit tests for the setup TUI wizard bubbletea model.
// ABOUTME: Uses synthetic tea.Msg values to test state machine transitions.
package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestNewSetupModel_DefaultValues(t *testing.T) {
	m := NewSetupModel("mastodon", "", "")
	if m.step != StepServer {
		t.Errorf("expected initial step StepServer, got %d", m.step)
	}
	if m.inputs[0].Value() != "" {
		t.Error("expected empty server input for new config")
	}
}

func TestNewSetupModel_ExistingConfig(t *testing.T) {
	m := NewSetupModel("mastodon", "https://example.social", "secret-token")
	if m.inputs[0].Value() != "https://example.social" {
		t.Errorf("expected pre-filled server, got %q", m.inputs[0].Value())
	}
	if m.inputs[1].Value() != "secret-token" {
		t.Errorf("expected pre-filled token, got %q", m.inputs[1].Value())
	}
}

func TestSetupModel_StepTransitions(t *testing.T) {
	m := NewSetupModel("mastodon", "", "")

	// Set a server and press Enter to advance from StepServer to StepToken
	m.inputs[0].SetValue("https://example.social/")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(SetupModel)
	if m.step != StepToken {
		t.Errorf("expected StepToken after Enter on server, got %d", m.step)
	}
	if m.inputs[0].Value() != "https://example.social" {
		t.Errorf("expected trailing slash trimmed, got %q", m.inputs[0].Value())
	}
	// cmd is textinput.Blink for the newly focused input
	_ = cmd

	// Set token and press Enter to start validation
	m.inputs[1].SetValue("my-token")
	updated, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(SetupModel)
	if m.step != StepValidating {
		t.Errorf("expected StepValidating after Enter on token, got %d", m.step)
	}
	if cmd == nil {
		t.Error("expected non-nil cmd (validation + spinner tick) when entering validation")
	}
}

func TestSetupModel_DefaultServer(t *testing.T) {
	m := NewSetupModel("bluesky", "", "")

	// Press Enter on empty server field — should use the platform default
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(SetupModel)
	if m.inputs[0].Value() != "https://bsky.social" {
		t.Errorf("expected default bluesky server, got %q", m.inputs[0].Value())
	}
	if m.step != StepToken {
		t.Errorf("expected StepToken after default server applied, got %d", m.step)
	}
}

func TestSetupModel_MastodonServerRequired(t *testing.T) {
	m := NewSetupModel("mastodon", "", "")

	// Mastodon has no default instance, Enter on empty must not advance
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(SetupModel)
	if m.step != StepServer {
		t.Errorf("expected to stay on StepServer with empty mastodon server, got %d", m.step)
	}
}

func TestSetupModel_EmptyTokenDoesNotAdvance(t *testing.T) {
	m := NewSetupModel("bluesky", "", "")
	m.step = StepToken

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(SetupModel)
	if m.step != StepToken {
		t.Errorf("expected to stay on StepToken with empty token, got %d", m.step)
	}
}

func TestSetupModel_ValidationSuccess(t *testing.T) {
	m := NewSetupModel("mastodon", "", "")
	m.validateFn = func(_ context.Context, platform, server, token string) error {
		return nil
	}
	m.step = StepValidating

	updated, _ := m.Update(validationResultMsg{err: nil})
	m = updated.(SetupModel)
	if m.step != StepDone {
		t.Errorf("expected StepDone after successful validation, got %d", m.step)
	}
	if !m.ShouldSave() {
		t.Error("expected ShouldSave after successful validation")
	}
}

func TestSetupModel_ValidationFailure(t *testing.T) {
	m := NewSetupModel("mastodon", "", "")
	m.step = StepValidating

	updated, _ := m.Update(validationResultMsg{err: fmt.Errorf("connection refused")})
	m = updated.(SetupModel)
	if m.step != StepFailed {
		t.Errorf("expected StepFailed after validation error, got %d", m.step)
	}
	if m.validationErr == nil {
		t.Error("expected validationErr to be set")
	}
}

func TestSetupModel_FailedRetry(t *testing.T) {
	m := NewSetupModel("mastodon", "", "")
	m.step = StepFailed
	m.validationErr = fmt.Errorf("some error")

	// Press 'r' to retry
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = updated.(SetupModel)
	if m.step != StepValidating {
		t.Errorf("expected StepValidating after retry, got %d", m.step)
	}
	if cmd == nil {
		t.Error("expected non-nil cmd on retry")
	}
}

func TestSetupModel_FailedSaveAnyway(t *testing.T) {
	m := NewSetupModel("mastodon", "", "")
	m.step = StepFailed

	// Press 's' to save anyway
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	m = updated.(SetupModel)
	if m.step != StepDone {
		t.Errorf("expected StepDone after save anyway, got %d", m.step)
	}
	if !m.ShouldSave() {
		t.Error("expected ShouldSave after save anyway")
	}
}

func TestSetupModel_QuitDoesNotSave(t *testing.T) {
	m := NewSetupModel("mastodon", "", "")
	m.step = StepFailed

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = updated.(SetupModel)
	if m.ShouldSave() {
		t.Error("quit must not report ShouldSave")
	}
}

func TestSetupModel_EscapeCancels(t *testing.T) {
	m := NewSetupModel("mastodon", "", "")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	m = updated.(SetupModel)
	if cmd == nil {
		t.Error("expected tea.Quit cmd on escape")
	}
	if m.ShouldSave() {
		t.Error("escape must not report ShouldSave")
	}
}

func TestSetupModel_ViewShowsMaskedToken(t *testing.T) {
	m := NewSetupModel("mastodon", "https://example.social", "hunter2secret")
	m.step = StepValidating

	view := m.View()
	if strings.Contains(view, "hunter2secret") {
		t.Error("validating view must not reveal the token")
	}
	if !strings.Contains(view, strings.Repeat("*", len("hunter2secret"))) {
		t.Error("expected masked token in validating view")
	}
}
