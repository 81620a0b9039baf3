package play

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/listenup/internal/session"
)

// persistedMsg reports a finished history write. Failures are already
// logged by the recorder.
type persistedMsg struct {
	Err error
}

// persist runs w off the update loop.
func persist(w session.Write) tea.Cmd {
	return func() tea.Msg {
		return persistedMsg{Err: w(context.Background())}
	}
}
