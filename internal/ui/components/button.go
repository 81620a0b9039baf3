package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/listenup/internal/ui/theme"
)

// ButtonVariant selects the button color.
type ButtonVariant int

const (
	ButtonPrimary ButtonVariant = iota
	ButtonDanger
)

// Button is a styled button component.
type Button struct {
	Label   string
	Active  bool
	Variant ButtonVariant
	OnPress func() tea.Cmd
}

// NewButton creates a new button.
func NewButton(label string, active bool, onPress func() tea.Cmd) Button {
	return Button{
		Label:   label,
		Active:  active,
		OnPress: onPress,
	}
}

// Update handles key events.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if !b.Active {
		return b, nil
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok {
		if kmsg.String() == "enter" && b.OnPress != nil {
			return b, b.OnPress()
		}
	}

	return b, nil
}

// View renders the button.
func (b Button) View() string {
	if !b.Active {
		return theme.ButtonInactive.Render(b.Label)
	}
	if b.Variant == ButtonDanger {
		return theme.ButtonWarning.Render("▸ " + b.Label)
	}
	return theme.ButtonActive.Render("▸ " + b.Label)
}
