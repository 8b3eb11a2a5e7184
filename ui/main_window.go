package ui

import (
	"errors"
	"fmt"

	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/yllada/xfce-gala-settings/common"
	"github.com/yllada/xfce-gala-settings/settings"
	"github.com/yllada/xfce-gala-settings/wm"
)

// MainWindow is the panel window: the window manager check box on top,
// the Gala options below it.
type MainWindow struct {
	app         *Application
	window      *gtk.ApplicationWindow
	headerBar   *gtk.HeaderBar
	banner      *gtk.Label
	wmCheck     *gtk.CheckButton
	optionsBox  *gtk.Box
	switches    map[settings.Key]*gtk.Switch
	statusLabel *gtk.Label

	// updating is set while widgets are changed from code so the
	// signal handlers do not treat it as user input.
	updating bool
}

// NewMainWindow creates a new main window.
func NewMainWindow(app *Application) *MainWindow {
	mw := &MainWindow{
		app:      app,
		switches: make(map[settings.Key]*gtk.Switch, len(settings.Keys)),
	}

	mw.window = gtk.NewApplicationWindow(app.app)
	mw.window.SetTitle(common.AppName)
	mw.window.SetDefaultSize(common.DefaultWindowWidth, common.DefaultWindowHeight)
	mw.window.SetResizable(false)

	mw.createLayout()
	mw.refresh()

	return mw
}

// createLayout creates the window layout.
func (mw *MainWindow) createLayout() {
	mw.headerBar = gtk.NewHeaderBar()

	menuButton := gtk.NewMenuButton()
	menuButton.SetIconName("open-menu-symbolic")
	menuButton.SetTooltipText("Menu")
	menuButton.SetMenuModel(mw.createMenu())
	mw.headerBar.PackEnd(menuButton)

	mw.window.SetTitlebar(mw.headerBar)

	mainBox := gtk.NewBox(gtk.OrientationVertical, 12)
	mainBox.SetMarginTop(common.DialogMargin)
	mainBox.SetMarginBottom(12)
	mainBox.SetMarginStart(common.DialogMargin)
	mainBox.SetMarginEnd(common.DialogMargin)

	// Shown only when neither window manager is found in the session config
	mw.banner = gtk.NewLabel("")
	mw.banner.SetWrap(true)
	mw.banner.SetXAlign(0)
	mw.banner.AddCSSClass("unknown-banner")
	mw.banner.SetVisible(false)
	mainBox.Append(mw.banner)

	mw.wmCheck = gtk.NewCheckButtonWithLabel("Use Gala window manager")
	mw.wmCheck.ConnectToggled(mw.onWindowManagerToggled)
	mainBox.Append(mw.wmCheck)

	mw.optionsBox = gtk.NewBox(gtk.OrientationVertical, 8)
	mw.optionsBox.SetMarginTop(8)

	heading := gtk.NewLabel("")
	heading.SetMarkup("<b>Gala options</b>")
	heading.SetXAlign(0)
	mw.optionsBox.Append(heading)

	card := createCard()
	for i, k := range settings.Keys {
		if i > 0 {
			card.Append(createSeparator())
		}
		sw := gtk.NewSwitch()
		sw.SetVAlign(gtk.AlignCenter)
		sw.ConnectStateSet(mw.onSettingStateSet(k))
		mw.switches[k] = sw
		card.Append(createSettingRow(k.Label(), settingDescription(k), sw))
	}
	mw.optionsBox.Append(card)
	mainBox.Append(mw.optionsBox)

	mainBox.Append(mw.createStatusBar())

	mw.window.SetChild(mainBox)
}

// createMenu creates the application menu.
func (mw *MainWindow) createMenu() *gio.Menu {
	menu := gio.NewMenu()

	settingsSection := gio.NewMenu()
	settingsSection.Append("Reload", "app.refresh")
	settingsSection.Append("Preferences", "app.preferences")
	menu.AppendSection("", &settingsSection.MenuModel)

	appSection := gio.NewMenu()
	appSection.Append("About", "app.about")
	appSection.Append("Quit", "app.quit")
	menu.AppendSection("", &appSection.MenuModel)

	mw.setupActions()

	return menu
}

// setupActions configures menu actions.
func (mw *MainWindow) setupActions() {
	refreshAction := gio.NewSimpleAction("refresh", nil)
	refreshAction.ConnectActivate(func(_ *glib.Variant) {
		mw.refresh()
		mw.SetStatus("Reloaded")
	})
	mw.app.app.AddAction(refreshAction)
	mw.app.app.SetAccelsForAction("app.refresh", []string{"F5"})

	preferencesAction := gio.NewSimpleAction("preferences", nil)
	preferencesAction.ConnectActivate(func(_ *glib.Variant) {
		NewPreferencesDialog(mw).Show()
	})
	mw.app.app.AddAction(preferencesAction)
	mw.app.app.SetAccelsForAction("app.preferences", []string{"<Control>comma"})

	aboutAction := gio.NewSimpleAction("about", nil)
	aboutAction.ConnectActivate(func(_ *glib.Variant) {
		mw.onAbout()
	})
	mw.app.app.AddAction(aboutAction)

	quitAction := gio.NewSimpleAction("quit", nil)
	quitAction.ConnectActivate(func(_ *glib.Variant) {
		mw.window.Close()
	})
	mw.app.app.AddAction(quitAction)
	mw.app.app.SetAccelsForAction("app.quit", []string{"<Control>q"})
}

// createStatusBar creates the status bar.
func (mw *MainWindow) createStatusBar() *gtk.Box {
	bar := gtk.NewBox(gtk.OrientationHorizontal, 12)
	bar.AddCSSClass("status-bar")
	bar.SetMarginTop(6)

	mw.statusLabel = gtk.NewLabel("")
	mw.statusLabel.SetXAlign(0)
	mw.statusLabel.SetEllipsize(3) // PANGO_ELLIPSIZE_END
	bar.Append(mw.statusLabel)

	return bar
}

// refresh re-reads both halves of the panel and updates the widgets.
func (mw *MainWindow) refresh() {
	choice, err := mw.app.panel.CurrentWindowManager()
	if err != nil {
		common.LogError("Reading session config: %v", err)
		mw.showError("Cannot read session config", err.Error())
	}
	mw.setChoice(choice)
	mw.setSettings(mw.app.panel.LoadSettings())
}

// setChoice reflects the configured window manager. An unknown config
// shows the banner and locks every control.
func (mw *MainWindow) setChoice(choice wm.Choice) {
	mw.updating = true
	defer func() { mw.updating = false }()

	known := choice.Known()
	mw.wmCheck.SetActive(choice == wm.Gala)
	mw.wmCheck.SetSensitive(known)
	mw.optionsBox.SetSensitive(known)

	if known {
		mw.banner.SetVisible(false)
		mw.SetStatus(fmt.Sprintf("Window manager: %s", choice))
		return
	}
	mw.banner.SetText(fmt.Sprintf("Cannot determine the window manager.\nCheck %s", mw.app.panel.ConfigPath()))
	mw.banner.SetVisible(true)
	mw.SetStatus("")
}

func (mw *MainWindow) setSettings(current settings.Settings) {
	mw.updating = true
	defer func() { mw.updating = false }()

	for k, sw := range mw.switches {
		sw.SetActive(current.Get(k))
		sw.SetState(current.Get(k))
	}
}

// Event handlers

// Panel operations run on the GTK main loop so refresh and quit never
// interleave with a change.
func (mw *MainWindow) onWindowManagerToggled() {
	if mw.updating {
		return
	}

	choice, err := mw.app.panel.ToggleWindowManager()
	mw.setChoice(choice)
	switch {
	case errors.Is(err, common.ErrProcessSpawnFailed):
		mw.SetStatus(fmt.Sprintf("%s configured, not started", choice))
		mw.showError("Window manager not started", err.Error())
	case err != nil:
		mw.showError("Cannot switch window manager", err.Error())
	}
}

// onSettingStateSet returns the state-set handler for one switch. The
// handler takes over the state change so the switch always shows what
// was actually persisted.
func (mw *MainWindow) onSettingStateSet(k settings.Key) func(bool) bool {
	return func(bool) bool {
		if mw.updating {
			return false
		}

		current, err := mw.app.panel.ToggleSetting(k)
		mw.setSettings(current)
		if err != nil {
			mw.showError("Preference not saved", err.Error())
			return true
		}
		mw.SetStatus(fmt.Sprintf("%s %s", k.Label(), onOff(current.Get(k))))
		return true
	}
}

func (mw *MainWindow) onAbout() {
	about := gtk.NewAboutDialog()
	about.SetTransientFor(&mw.window.Window)
	about.SetModal(true)

	about.SetProgramName(common.AppName)
	about.SetLogoIconName("preferences-system-windows")
	about.SetVersion(mw.app.version)
	about.SetComments("Switch the XFCE session between xfwm4 and Gala\nand tune Gala's behaviour.")

	about.Show()
}

// Show displays the window.
func (mw *MainWindow) Show() {
	mw.window.Show()
}

// SetStatus updates the status text.
func (mw *MainWindow) SetStatus(text string) {
	if mw.statusLabel != nil {
		mw.statusLabel.SetText(text)
	}
}

// showError displays an error dialog.
func (mw *MainWindow) showError(title, message string) {
	window := newErrorWindow(title, message)
	window.SetTransientFor(&mw.window.Window)
	window.Show()
}

// newErrorWindow builds a modal window with an error icon, title, message
// and an OK button that closes it.
func newErrorWindow(title, message string) *gtk.Window {
	window := gtk.NewWindow()
	window.SetTitle(title)
	window.SetModal(true)
	window.SetDefaultSize(350, 150)
	window.SetResizable(false)

	mainBox := gtk.NewBox(gtk.OrientationVertical, 12)
	mainBox.SetMarginTop(common.DialogMargin)
	mainBox.SetMarginBottom(common.DialogMargin)
	mainBox.SetMarginStart(common.DialogMargin)
	mainBox.SetMarginEnd(common.DialogMargin)
	mainBox.SetHAlign(gtk.AlignCenter)

	icon := gtk.NewImage()
	icon.SetFromIconName("dialog-error-symbolic")
	icon.SetPixelSize(48)
	mainBox.Append(icon)

	titleLabel := gtk.NewLabel(title)
	titleLabel.AddCSSClass("heading")
	mainBox.Append(titleLabel)

	msgLabel := gtk.NewLabel(message)
	msgLabel.SetWrap(true)
	msgLabel.SetMaxWidthChars(40)
	msgLabel.SetSelectable(true)
	mainBox.Append(msgLabel)

	okBtn := gtk.NewButtonWithLabel("OK")
	okBtn.SetHAlign(gtk.AlignCenter)
	okBtn.SetMarginTop(12)
	okBtn.ConnectClicked(func() {
		window.Close()
	})
	mainBox.Append(okBtn)

	window.SetChild(mainBox)
	return window
}

func settingDescription(k settings.Key) string {
	switch k {
	case settings.DynamicWorkspaces:
		return "Add and remove workspaces as windows need them"
	case settings.EdgeTiling:
		return "Tile windows dragged to the screen edges"
	case settings.Animations:
		return "Animate windows and workspace switches"
	default:
		return ""
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
