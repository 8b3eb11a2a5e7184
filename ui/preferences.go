package ui

import (
	"fmt"

	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/yllada/xfce-gala-settings/common"
	"github.com/yllada/xfce-gala-settings/config"
)

// PreferencesDialog edits the application's own config file. Changes
// apply on the next start.
type PreferencesDialog struct {
	window          *gtk.Window
	mainWindow      *MainWindow
	config          *config.Config
	backendDropDown *gtk.DropDown
	notifySwitch    *gtk.Switch
	reconcileSwitch *gtk.Switch
	historySwitch   *gtk.Switch
	backendIDs      []string
}

// NewPreferencesDialog creates a new preferences dialog.
func NewPreferencesDialog(mainWindow *MainWindow) *PreferencesDialog {
	pd := &PreferencesDialog{
		mainWindow: mainWindow,
		config:     mainWindow.app.config,
		backendIDs: []string{common.BackendDconf, common.BackendGSettings},
	}

	pd.build()
	return pd
}

func (pd *PreferencesDialog) build() {
	pd.window = gtk.NewWindow()
	pd.window.SetTitle("Preferences")
	pd.window.SetTransientFor(&pd.mainWindow.window.Window)
	pd.window.SetModal(true)
	pd.window.SetDefaultSize(460, 0)
	pd.window.SetResizable(false)

	rootBox := gtk.NewBox(gtk.OrientationVertical, 0)

	mainBox := gtk.NewBox(gtk.OrientationVertical, 20)
	mainBox.SetMarginTop(common.DialogMargin)
	mainBox.SetMarginBottom(16)
	mainBox.SetMarginStart(common.DialogMargin)
	mainBox.SetMarginEnd(common.DialogMargin)

	if pd.config.ReadOnly() {
		warning := gtk.NewLabel(fmt.Sprintf("%s could not be read. These are the defaults; fix the file by hand to change them.", config.Path()))
		warning.SetWrap(true)
		warning.SetMaxWidthChars(50)
		warning.SetXAlign(0)
		warning.AddCSSClass("unknown-banner")
		mainBox.Append(warning)
	}

	// Storage
	storageSection := createSection("Storage", "drive-harddisk-symbolic")
	storageCard := createCard()

	pd.backendDropDown = gtk.NewDropDown(gtk.NewStringList([]string{"dconf", "GSettings"}), nil)
	pd.backendDropDown.SetSelected(pd.findBackendIndex(pd.config.Backend))
	pd.backendDropDown.SetVAlign(gtk.AlignCenter)
	storageCard.Append(createSettingRow(
		"Preference backend",
		"How Gala options are read and written",
		pd.backendDropDown,
	))
	storageCard.Append(createSeparator())

	pd.historySwitch = newSwitch(pd.config.RecordHistory)
	storageCard.Append(createSettingRow(
		"Keep history",
		"Record every change in a local journal",
		pd.historySwitch,
	))

	storageSection.Append(storageCard)
	mainBox.Append(storageSection)

	// Session
	sessionSection := createSection("Session", "preferences-system-windows-symbolic")
	sessionCard := createCard()

	pd.reconcileSwitch = newSwitch(pd.config.ReconcileOnExit)
	sessionCard.Append(createSettingRow(
		"Apply on close",
		"Start the configured window manager again when the panel closes",
		pd.reconcileSwitch,
	))
	sessionCard.Append(createSeparator())

	pd.notifySwitch = newSwitch(pd.config.ShowNotifications)
	sessionCard.Append(createSettingRow(
		"Failure alerts",
		"Show a desktop notification when a change cannot be applied",
		pd.notifySwitch,
	))

	sessionSection.Append(sessionCard)
	mainBox.Append(sessionSection)

	rootBox.Append(mainBox)

	buttonBar := gtk.NewBox(gtk.OrientationHorizontal, 12)
	buttonBar.SetHAlign(gtk.AlignEnd)
	buttonBar.SetMarginTop(8)
	buttonBar.SetMarginBottom(20)
	buttonBar.SetMarginStart(common.DialogMargin)
	buttonBar.SetMarginEnd(common.DialogMargin)

	cancelBtn := gtk.NewButtonWithLabel("Cancel")
	cancelBtn.ConnectClicked(func() {
		pd.window.Close()
	})
	buttonBar.Append(cancelBtn)

	saveBtn := gtk.NewButtonWithLabel("Save")
	saveBtn.AddCSSClass("suggested-action")
	saveBtn.SetSensitive(!pd.config.ReadOnly())
	saveBtn.ConnectClicked(func() {
		pd.savePreferences()
		pd.window.Close()
	})
	buttonBar.Append(saveBtn)

	rootBox.Append(buttonBar)

	pd.window.SetChild(rootBox)
}

func (pd *PreferencesDialog) findBackendIndex(id string) uint {
	for i, b := range pd.backendIDs {
		if b == id {
			return uint(i)
		}
	}
	return 0
}

func (pd *PreferencesDialog) savePreferences() {
	if idx := pd.backendDropDown.Selected(); int(idx) < len(pd.backendIDs) {
		pd.config.Backend = pd.backendIDs[idx]
	}
	pd.config.RecordHistory = pd.historySwitch.Active()
	pd.config.ReconcileOnExit = pd.reconcileSwitch.Active()
	pd.config.ShowNotifications = pd.notifySwitch.Active()

	if err := pd.config.Save(); err != nil {
		pd.mainWindow.showError("Error", "Could not save preferences: "+err.Error())
		return
	}

	pd.mainWindow.SetStatus("Preferences saved, restart to apply")
}

// Show displays the preferences dialog.
func (pd *PreferencesDialog) Show() {
	pd.window.Show()
}

func newSwitch(active bool) *gtk.Switch {
	sw := gtk.NewSwitch()
	sw.SetActive(active)
	sw.SetVAlign(gtk.AlignCenter)
	return sw
}
