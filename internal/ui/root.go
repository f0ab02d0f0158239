package ui

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"github.com/ytget/ytfetch/internal/config"
	"github.com/ytget/ytfetch/internal/download"
	"github.com/ytget/ytfetch/internal/model"
	"github.com/ytget/ytfetch/internal/platform"
)

// ServiceFactory builds a downloader from the current settings
type ServiceFactory func(settings *config.Settings) download.Downloader

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	newService   ServiceFactory
	log          logrus.FieldLogger

	urlEntry      *widget.Entry
	kindRadio     *widget.RadioGroup
	formatRadio   *widget.RadioGroup
	folderLabel   *widget.Label
	folderBtn     *widget.Button
	progressLabel *widget.Label
	progressBar   *widget.ProgressBar
	downloadBtn   *widget.Button

	mu  sync.Mutex
	run *download.Run

	// showResult is replaced in tests to avoid modal dialogs
	showResult func(event model.ProgressEvent)
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, settings *config.Settings, newService ServiceFactory, log logrus.FieldLogger) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		settings:     settings,
		localization: localization,
		newService:   newService,
		log:          log,
	}
	ui.showResult = ui.showResultDialog

	window.SetContent(ui.buildContent())
	window.SetMainMenu(ui.buildMenu())
	return ui
}

func (ui *RootUI) text(key string) string {
	return ui.localization.GetText(key)
}

// kindLabels maps radio labels to request kinds
func (ui *RootUI) kindLabels() map[string]model.Kind {
	return map[string]model.Kind{
		ui.text(KeySingleVideo): model.KindSingleItem,
		ui.text(KeyPlaylist):    model.KindCollection,
	}
}

// formatLabels maps radio labels to output formats
func formatLabels() map[string]model.OutputFormat {
	return map[string]model.OutputFormat{
		"MP4": model.FormatMuxed,
		"MP3": model.FormatAudioOnly,
	}
}

func (ui *RootUI) buildContent() fyne.CanvasObject {
	header := canvas.NewText(ui.text(KeyAppTitle), ColorInk)
	header.TextStyle = fyne.TextStyle{Bold: true}
	header.TextSize = theme.Size(theme.SizeNameText) * HeaderTextScale
	header.Alignment = fyne.TextAlignCenter

	var headerRow fyne.CanvasObject = header
	if logo, err := LoadLogoResource(); err == nil {
		img := canvas.NewImageFromResource(logo)
		img.SetMinSize(fyne.NewSize(LogoSize, LogoSize))
		img.FillMode = canvas.ImageFillContain
		headerRow = container.NewBorder(nil, nil, img, nil, header)
	}

	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(ui.text(KeyURLPlaceholder))
	ui.urlEntry.Validator = validateURL

	ui.kindRadio = widget.NewRadioGroup([]string{ui.text(KeySingleVideo), ui.text(KeyPlaylist)}, func(selected string) {
		if kind, ok := ui.kindLabels()[selected]; ok {
			ui.settings.SetDownloadKind(kind)
		}
	})
	ui.kindRadio.Horizontal = true
	ui.kindRadio.Required = true

	ui.formatRadio = widget.NewRadioGroup([]string{"MP4", "MP3"}, func(selected string) {
		if f, ok := formatLabels()[selected]; ok {
			ui.settings.SetOutputFormat(f)
		}
	})
	ui.formatRadio.Horizontal = true
	ui.formatRadio.Required = true

	ui.folderLabel = widget.NewLabel("")
	ui.folderBtn = widget.NewButton(IconFolder+" "+ui.text(KeyChooseFolder), ui.onChooseFolder)
	ui.folderBtn.Importance = widget.HighImportance

	ui.progressLabel = widget.NewLabel(ui.text(KeyProgressNotStarted))
	ui.progressBar = widget.NewProgressBar()
	ui.progressBar.Max = ProgressBarMax

	ui.downloadBtn = widget.NewButton(ui.text(KeyStartDownload), ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance

	settingsBtn := widget.NewButton(IconSettings, ui.showSettings)

	ui.loadSettings()

	return container.NewVBox(
		container.NewBorder(nil, nil, nil, settingsBtn, headerRow),
		widget.NewLabel(ui.text(KeyEnterURL)),
		ui.urlEntry,
		widget.NewLabel(ui.text(KeyDownloadType)),
		ui.kindRadio,
		ui.folderBtn,
		ui.folderLabel,
		widget.NewLabel(ui.text(KeySelectFormat)),
		ui.formatRadio,
		ui.progressLabel,
		ui.progressBar,
		ui.downloadBtn,
	)
}

func (ui *RootUI) buildMenu() *fyne.MainMenu {
	settingsItem := fyne.NewMenuItem(ui.text(KeySettings), ui.showSettings)
	return fyne.NewMainMenu(fyne.NewMenu(ui.text(KeySettings), settingsItem))
}

// loadSettings restores the last used choices
func (ui *RootUI) loadSettings() {
	for label, kind := range ui.kindLabels() {
		if kind == ui.settings.GetDownloadKind() {
			ui.kindRadio.SetSelected(label)
		}
	}
	for label, f := range formatLabels() {
		if f == ui.settings.GetOutputFormat() {
			ui.formatRadio.SetSelected(label)
		}
	}
	ui.setFolder(ui.settings.GetDownloadDirectory())
}

func (ui *RootUI) setFolder(dir string) {
	ui.folderLabel.SetText(fmt.Sprintf(FolderLabelFormat, ui.text(KeyFolder), dir))
}

func (ui *RootUI) showSettings() {
	sd := NewSettingsDialog(ui.settings, ui.localization, ui.window)
	sd.SetOnSaved(func() {
		ui.setFolder(ui.settings.GetDownloadDirectory())
	})
	sd.Show()
}

func (ui *RootUI) onChooseFolder() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		ui.settings.SetDownloadDirectory(uri.Path())
		ui.setFolder(uri.Path())
	}, ui.window)
}

// validateURL accepts absolute http(s) URLs
func validateURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return errors.New("empty url")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != URLSchemeHTTP && u.Scheme != URLSchemeHTTPS {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}

// buildRequest turns the current form state into a request
func (ui *RootUI) buildRequest() (model.DownloadRequest, error) {
	raw := strings.TrimSpace(ui.urlEntry.Text)
	if raw == "" {
		return model.DownloadRequest{}, errors.New(ui.text(KeyPleaseEnterURL))
	}
	if err := validateURL(raw); err != nil {
		return model.DownloadRequest{}, fmt.Errorf("%s: %w", ui.text(KeyInvalidURL), err)
	}

	kind := ui.kindLabels()[ui.kindRadio.Selected]
	if kind == "" {
		kind = config.DefaultDownloadKind
	}
	format := formatLabels()[ui.formatRadio.Selected]
	if format == "" {
		format = config.DefaultOutputFormat
	}

	return model.NewDownloadRequest(raw, kind, format, ui.settings.GetDownloadDirectory()), nil
}

func (ui *RootUI) onDownloadClick() {
	ui.mu.Lock()
	active := ui.run
	ui.mu.Unlock()
	if active != nil {
		active.Cancel()
		return
	}

	req, err := ui.buildRequest()
	if err != nil {
		dialog.ShowError(err, ui.window)
		return
	}

	ui.progressLabel.SetText(ui.text(KeyPreparing))
	ui.progressBar.SetValue(0)
	ui.setRunning(true)

	svc := ui.newService(ui.settings)
	run := svc.Start(context.Background(), req, func(event model.ProgressEvent) {
		fyne.Do(func() { ui.applyEvent(event) })
	})

	ui.mu.Lock()
	ui.run = run
	ui.mu.Unlock()

	go func() {
		summary, err := run.Wait()
		if err != nil {
			ui.log.WithError(err).WithField("request", run.RequestID).Warn("download finished with error")
		} else {
			ui.log.WithField("request", run.RequestID).Infof("download finished: %s", summary)
		}
		fyne.Do(func() {
			ui.mu.Lock()
			ui.run = nil
			ui.mu.Unlock()
			ui.setRunning(false)
			if err == nil && ui.settings.GetAutoRevealOnComplete() {
				ui.reveal(summary)
			}
		})
	}()
}

// setRunning switches the start button between start and cancel
func (ui *RootUI) setRunning(running bool) {
	if running {
		ui.downloadBtn.SetText(ui.text(KeyCancel))
		ui.downloadBtn.Importance = widget.WarningImportance
		ui.urlEntry.Disable()
		ui.kindRadio.Disable()
		ui.formatRadio.Disable()
		ui.folderBtn.Disable()
	} else {
		ui.downloadBtn.SetText(ui.text(KeyStartDownload))
		ui.downloadBtn.Importance = widget.HighImportance
		ui.urlEntry.Enable()
		ui.kindRadio.Enable()
		ui.formatRadio.Enable()
		ui.folderBtn.Enable()
	}
	ui.downloadBtn.Refresh()
}

// applyEvent renders one progress event. Must run on the UI goroutine.
func (ui *RootUI) applyEvent(event model.ProgressEvent) {
	ui.progressLabel.SetText(event.Label())
	if f, ok := event.Fraction.Get(); ok {
		ui.progressBar.SetValue(f)
	}
	if event.IsTerminal() {
		ui.showResult(event)
	}
}

func (ui *RootUI) showResultDialog(event model.ProgressEvent) {
	switch {
	case event.Phase == model.PhaseCompleted:
		dialog.ShowInformation(ui.text(KeySuccess), event.Message, ui.window)
	case event.ErrorKind == model.KindCancelled:
		dialog.ShowInformation(ui.text(KeyCancel), ui.text(KeyCancelled), ui.window)
	default:
		dialog.ShowError(errors.New(event.Message), ui.window)
	}
}

func (ui *RootUI) reveal(summary model.Summary) {
	target := summary.Target.CollectionDir.OrElse(summary.Target.Root)
	if paths := summary.OutputPaths(); len(paths) == 1 {
		target = paths[0]
	}
	if target == "" {
		return
	}
	if err := platform.RevealInFileManager(target); err != nil {
		ui.log.WithError(err).Warn("failed to reveal download folder")
	}
}
