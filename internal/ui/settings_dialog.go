package ui

import (
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/samber/lo"

	"github.com/ytget/ytfetch/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings *config.Settings
	loc      *Localization
	window   fyne.Window
	dialog   *dialog.ConfirmDialog

	// UI components
	downloadDirEntry *widget.Entry
	probeCacheCheck  *widget.Check
	tagAudioCheck    *widget.Check
	autoRevealCheck  *widget.Check
	languageSelect   *widget.Select

	onSaved func()
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, loc *Localization, window fyne.Window) *SettingsDialog {
	sd := &SettingsDialog{
		settings: settings,
		loc:      loc,
		window:   window,
	}

	sd.createUI()
	return sd
}

// SetOnSaved registers a callback invoked after settings were stored
func (sd *SettingsDialog) SetOnSaved(fn func()) {
	sd.onSaved = fn
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// languageLabels maps display names back to language codes
func (sd *SettingsDialog) languageLabels() map[string]string {
	return lo.Invert(sd.settings.GetLanguageOptions())
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	sd.downloadDirEntry = widget.NewEntry()
	sd.downloadDirEntry.SetPlaceHolder(sd.loc.GetText(KeyDownloadDirectory))

	browseDirBtn := widget.NewButton(sd.loc.GetText(KeyBrowse), sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	sd.probeCacheCheck = widget.NewCheck(sd.loc.GetText(KeyProbeCache), nil)
	sd.tagAudioCheck = widget.NewCheck(sd.loc.GetText(KeyTagAudio), nil)
	sd.autoRevealCheck = widget.NewCheck(sd.loc.GetText(KeyAutoReveal), nil)

	languageOptions := lo.Keys(sd.languageLabels())
	sort.Strings(languageOptions)
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	form := container.NewVBox(
		widget.NewLabel(sd.loc.GetText(KeyDownloadDirectory)+":"),
		downloadDirRow,
		widget.NewSeparator(),
		sd.probeCacheCheck,
		sd.tagAudioCheck,
		sd.autoRevealCheck,
		widget.NewSeparator(),
		widget.NewLabel(sd.loc.GetText(KeyLanguage)+":"),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		sd.loc.GetText(KeySettings),
		sd.loc.GetText(KeySave),
		sd.loc.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsWidth, SettingsHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.probeCacheCheck.SetChecked(sd.settings.GetProbeCache())
	sd.tagAudioCheck.SetChecked(sd.settings.GetTagAudio())
	sd.autoRevealCheck.SetChecked(sd.settings.GetAutoRevealOnComplete())
	sd.languageSelect.SetSelected(sd.settings.GetLanguageOptions()[sd.settings.GetLanguage()])
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.apply()
	dialog.ShowInformation(sd.loc.GetText(KeySettings), sd.loc.GetText(KeySettingsSaved), sd.window)
}

// apply stores the form values
func (sd *SettingsDialog) apply() {
	if dir := sd.downloadDirEntry.Text; dir != "" {
		sd.settings.SetDownloadDirectory(dir)
	}

	sd.settings.SetProbeCache(sd.probeCacheCheck.Checked)
	sd.settings.SetTagAudio(sd.tagAudioCheck.Checked)
	sd.settings.SetAutoRevealOnComplete(sd.autoRevealCheck.Checked)

	if code, ok := sd.languageLabels()[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}
}
