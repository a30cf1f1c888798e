package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"whoami/app/internal/apiclient"
)

type contactField int

const (
	fieldName contactField = iota
	fieldEmail
	fieldMessage
)

// contactForm is the three-field contact page state.
type contactForm struct {
	name    textinput.Model
	email   textinput.Model
	message textarea.Model
	focus   contactField
	sending bool
	sent    bool
	errText string
}

func newContactForm() contactForm {
	name := textinput.New()
	name.Placeholder = "Your name"
	name.CharLimit = 200
	name.Focus()

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 320

	message := textarea.New()
	message.Placeholder = "What's on your mind?"
	message.CharLimit = 5000
	message.SetHeight(6)

	return contactForm{name: name, email: email, message: message}
}

func (f contactForm) submission() apiclient.ContactSubmission {
	return apiclient.ContactSubmission{
		Name:    f.name.Value(),
		Email:   f.email.Value(),
		Message: f.message.Value(),
	}
}

func (f contactForm) update(msg tea.Msg) (contactForm, tea.Cmd) {
	var cmd tea.Cmd

	switch f.focus {
	case fieldName:
		f.name, cmd = f.name.Update(msg)
	case fieldEmail:
		f.email, cmd = f.email.Update(msg)
	case fieldMessage:
		f.message, cmd = f.message.Update(msg)
	}

	return f, cmd
}

func (f contactForm) nextField() contactForm {
	f.focus = (f.focus + 1) % 3
	return f.applyFocus()
}

func (f contactForm) applyFocus() contactForm {
	f.name.Blur()
	f.email.Blur()
	f.message.Blur()

	switch f.focus {
	case fieldName:
		f.name.Focus()
	case fieldEmail:
		f.email.Focus()
	case fieldMessage:
		f.message.Focus()
	}

	return f
}

func (f contactForm) reset() contactForm {
	fresh := newContactForm()
	fresh.sent = true
	return fresh
}
