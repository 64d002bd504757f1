package theme

import (
	"image/color"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/dreem/pkg/settings"
)

// Theme centralizes Lip Gloss styles for the editor UI.
type Theme struct {
	Header    lipgloss.Style
	Moon      lipgloss.Style
	Tab       lipgloss.Style
	TabActive lipgloss.Style
	DraftTag  lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Modal     ModalTheme
}

// ModalTheme styles the unsaved-changes decision overlay.
type ModalTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
	Key   lipgloss.Style
}

// ForPreference maps the stored theme preference to a palette. System must be
// resolved by the caller before asking.
func ForPreference(pref settings.Preference) Theme {
	if pref == settings.Light {
		return Light()
	}
	return Dark()
}

// Dark returns the palette for dark terminals.
func Dark() Theme {
	return build(
		lipgloss.Color("230"), // header text
		lipgloss.Color("245"), // muted
		lipgloss.Color("212"), // accent
		lipgloss.Color("179"), // draft
		lipgloss.Color("203"), // error
	)
}

// Light returns the palette for light terminals.
func Light() Theme {
	return build(
		lipgloss.Color("235"),
		lipgloss.Color("243"),
		lipgloss.Color("162"),
		lipgloss.Color("130"),
		lipgloss.Color("160"),
	)
}

func build(text, muted, accent, draft, errc color.Color) Theme {
	return Theme{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(text),
		Moon:      lipgloss.NewStyle().Foreground(muted),
		Tab:       lipgloss.NewStyle().Foreground(muted).Padding(0, 1),
		TabActive: lipgloss.NewStyle().Foreground(accent).Bold(true).Underline(true).Padding(0, 1),
		DraftTag:  lipgloss.NewStyle().Foreground(draft).Italic(true),
		Status:    lipgloss.NewStyle().Foreground(muted),
		Error:     lipgloss.NewStyle().Foreground(errc),
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(accent).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true).Foreground(text),
			Body:  lipgloss.NewStyle().Foreground(muted),
			Key:   lipgloss.NewStyle().Foreground(accent).Bold(true),
		},
	}
}
