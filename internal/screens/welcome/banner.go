package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/listenup/internal/ui/theme"
)

const bannerArt = `
 ██╗     ██╗███████╗████████╗███████╗███╗   ██╗██╗   ██╗██████╗
 ██║     ██║██╔════╝╚══██╔══╝██╔════╝████╗  ██║██║   ██║██╔══██╗
 ██║     ██║███████╗   ██║   █████╗  ██╔██╗ ██║██║   ██║██████╔╝
 ██║     ██║╚════██║   ██║   ██╔══╝  ██║╚██╗██║██║   ██║██╔═══╝
 ███████╗██║███████║   ██║   ███████╗██║ ╚████║╚██████╔╝██║
 ╚══════╝╚═╝╚══════╝   ╚═╝   ╚══════╝╚═╝  ╚═══╝ ╚═════╝ ╚═╝`

const bannerCompact = "L I S T E N U P"

// bannerMinWidth is the narrowest terminal that fits bannerArt.
const bannerMinWidth = 66

// RenderBanner returns the app banner in the primary color, or a compact
// single-line fallback on narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
