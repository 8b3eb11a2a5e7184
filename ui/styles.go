package ui

import (
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

// Theme-aware styles; colours only where a state needs one.
const appCSS = `
/* Unknown session config */
.unknown-banner {
    color: #e01b24;
    font-weight: 600;
    padding: 8px 12px;
    border-radius: 8px;
    background-color: alpha(#e01b24, 0.1);
}

/* Option cards */
.options-card {
    border-radius: 12px;
    border: 1px solid alpha(currentColor, 0.15);
}

.settings-title {
    font-weight: 600;
}

/* Status Bar */
.status-bar {
    border-top: 1px solid alpha(currentColor, 0.15);
    padding-top: 6px;
    opacity: 0.8;
}
`

// LoadStyles loads the custom CSS styles for the application.
// Should be called during application startup.
func LoadStyles() {
	display := gdk.DisplayGetDefault()
	if display == nil {
		return
	}

	provider := gtk.NewCSSProvider()
	provider.LoadFromString(appCSS)

	gtk.StyleContextAddProviderForDisplay(
		display,
		provider,
		gtk.STYLE_PROVIDER_PRIORITY_APPLICATION,
	)
}

// createSection creates a section with icon and title.
func createSection(title string, iconName string) *gtk.Box {
	section := gtk.NewBox(gtk.OrientationVertical, 8)

	headerBox := gtk.NewBox(gtk.OrientationHorizontal, 8)

	icon := gtk.NewImage()
	icon.SetFromIconName(iconName)
	icon.SetPixelSize(18)
	icon.AddCSSClass("dim-label")
	headerBox.Append(icon)

	label := gtk.NewLabel(title)
	label.SetXAlign(0)
	label.AddCSSClass("heading")
	label.AddCSSClass("dim-label")
	headerBox.Append(label)

	section.Append(headerBox)

	return section
}

// createCard creates a styled card container for settings.
func createCard() *gtk.Box {
	card := gtk.NewBox(gtk.OrientationVertical, 0)
	card.AddCSSClass("card")
	card.AddCSSClass("options-card")
	return card
}

// createSettingRow creates a row with title, description, and widget.
func createSettingRow(title string, description string, widget gtk.Widgetter) *gtk.Box {
	row := gtk.NewBox(gtk.OrientationHorizontal, 12)
	row.SetMarginTop(12)
	row.SetMarginBottom(12)
	row.SetMarginStart(16)
	row.SetMarginEnd(16)

	textBox := gtk.NewBox(gtk.OrientationVertical, 4)
	textBox.SetHExpand(true)

	titleLabel := gtk.NewLabel(title)
	titleLabel.SetXAlign(0)
	titleLabel.AddCSSClass("settings-title")
	textBox.Append(titleLabel)

	if description != "" {
		descLabel := gtk.NewLabel(description)
		descLabel.SetXAlign(0)
		descLabel.AddCSSClass("dim-label")
		descLabel.AddCSSClass("caption")
		descLabel.SetWrap(true)
		descLabel.SetWrapMode(2) // PANGO_WRAP_WORD_CHAR
		textBox.Append(descLabel)
	}

	row.Append(textBox)
	row.Append(widget)

	return row
}

// createSeparator creates a styled separator for cards.
func createSeparator() *gtk.Separator {
	sep := gtk.NewSeparator(gtk.OrientationHorizontal)
	sep.SetMarginStart(16)
	sep.SetMarginEnd(16)
	return sep
}
