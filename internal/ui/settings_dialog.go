package ui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/playlist-grab/internal/config"
)

// verbosityLabels are indexed by verbosity level
var verbosityLabels = []string{
	"0 - Quiet",
	"1 - Report failures",
	"2 - Report every stage",
}

// SettingsDialog edits the preferences that are not on the main window
type SettingsDialog struct {
	settings *config.Settings
	window   fyne.Window
	dialog   *dialog.ConfirmDialog
	onSaved  func()

	verbositySelect *widget.Select
	resolverSelect  *widget.Select
	attemptsEntry   *widget.Entry
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings: settings,
		window:   window,
		onSaved:  onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

func (sd *SettingsDialog) createUI() {
	sd.verbositySelect = widget.NewSelect(verbosityLabels, nil)
	sd.resolverSelect = widget.NewSelect(sd.settings.GetResolverOptions(), nil)

	sd.attemptsEntry = widget.NewEntry()
	sd.attemptsEntry.SetPlaceHolder("1-" + strconv.Itoa(config.MaxAttempts))
	sd.attemptsEntry.Validator = validateAttempts

	form := widget.NewForm(
		widget.NewFormItem("Verbosity", sd.verbositySelect),
		widget.NewFormItem("Resolver", sd.resolverSelect),
		widget.NewFormItem("Attempts per item", sd.attemptsEntry),
	)

	sd.dialog = dialog.NewCustomConfirm("Settings", "Save", "Cancel",
		container.NewPadded(form), sd.onSave, sd.window)
	sd.dialog.Resize(fyne.NewSize(DialogWidth, DialogHeight))
}

func (sd *SettingsDialog) loadCurrentSettings() {
	sd.verbositySelect.SetSelectedIndex(sd.settings.GetVerbosity())
	sd.resolverSelect.SetSelected(sd.settings.GetResolver())
	sd.attemptsEntry.SetText(strconv.Itoa(sd.settings.GetMaxAttempts()))
}

func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.apply()
	if sd.onSaved != nil {
		sd.onSaved()
	}
}

// apply writes the widget values back to the preferences; invalid values
// are ignored
func (sd *SettingsDialog) apply() {
	if idx := sd.verbositySelect.SelectedIndex(); idx >= 0 {
		sd.settings.SetVerbosity(idx)
	}
	if sd.resolverSelect.Selected != "" {
		sd.settings.SetResolver(sd.resolverSelect.Selected)
	}
	if validateAttempts(sd.attemptsEntry.Text) == nil {
		n, _ := strconv.Atoi(sd.attemptsEntry.Text)
		sd.settings.SetMaxAttempts(n)
	}
}

func validateAttempts(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	if n < 1 || n > config.MaxAttempts {
		return strconv.ErrRange
	}
	return nil
}
