package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/playlist-grab/internal/app"
	"github.com/ytget/playlist-grab/internal/config"
	"github.com/ytget/playlist-grab/internal/download"
	"github.com/ytget/playlist-grab/internal/history"
	"github.com/ytget/playlist-grab/internal/model"
	"github.com/ytget/playlist-grab/internal/platform"
	"github.com/ytget/playlist-grab/pkg/logger"
)

var log = logger.Get("UI")

// PipelineFactory builds the collaborators for one validate/download cycle
type PipelineFactory func(opts app.Options) (*app.Pipeline, error)

// RootUI represents the main window
type RootUI struct {
	window      fyne.Window
	settings    *config.Settings
	history     *history.Store
	newPipeline PipelineFactory

	urlEntry      *widget.Entry
	genreEntry    *widget.Entry
	dirEntry      *widget.Entry
	validateBtn   *widget.Button
	downloadBtn   *widget.Button
	cancelBtn     *widget.Button
	openBtn       *widget.Button
	playlistLabel *widget.Label
	statusLabel   *widget.Label
	progressBar   *widget.ProgressBar
	logLines      binding.StringList

	mu       sync.Mutex
	pipeline *app.Pipeline
	playlist *model.Playlist
	cancel   context.CancelFunc
}

// NewRootUI builds the window content. store may be nil, in which case
// nothing is recorded.
func NewRootUI(window fyne.Window, settings *config.Settings, store *history.Store, newPipeline PipelineFactory) *RootUI {
	if newPipeline == nil {
		newPipeline = app.NewPipeline
	}
	ui := &RootUI{
		window:      window,
		settings:    settings,
		history:     store,
		newPipeline: newPipeline,
		logLines:    binding.NewStringList(),
	}
	ui.setupUI()
	return ui
}

func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder("Enter Playlist URL")
	ui.urlEntry.SetText(ui.settings.GetLastPlaylistURL())
	ui.urlEntry.Validator = validateURL
	ui.urlEntry.OnSubmitted = func(string) { ui.onValidateClick() }
	ui.validateBtn = widget.NewButton(ButtonValidate, ui.onValidateClick)

	ui.dirEntry = widget.NewEntry()
	ui.dirEntry.SetText(ui.settings.GetDownloadDirectory())
	browseBtn := widget.NewButton(ButtonBrowse, ui.onBrowseDirectory)
	ui.openBtn = widget.NewButton(ButtonOpen, ui.onOpenDirectory)

	ui.genreEntry = widget.NewEntry()
	ui.genreEntry.SetPlaceHolder(TextGenrePlaceholder)
	ui.genreEntry.SetText(ui.settings.GetGenre())

	ui.downloadBtn = widget.NewButton(ButtonDownload, ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance
	ui.downloadBtn.Disable()
	ui.cancelBtn = widget.NewButton(ButtonCancel, ui.onCancelClick)
	ui.cancelBtn.Disable()

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	ui.playlistLabel = widget.NewLabel(TextNoPlaylist)
	ui.playlistLabel.TextStyle = fyne.TextStyle{Bold: true}
	ui.playlistLabel.Truncation = fyne.TextTruncateEllipsis
	ui.statusLabel = widget.NewLabel(TextIdle)
	ui.progressBar = widget.NewProgressBar()

	logList := widget.NewListWithData(ui.logLines,
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(item binding.DataItem, obj fyne.CanvasObject) {
			obj.(*widget.Label).Bind(item.(binding.String))
		},
	)

	form := widget.NewForm(
		widget.NewFormItem("Playlist", container.NewBorder(nil, nil, nil, ui.validateBtn, ui.urlEntry)),
		widget.NewFormItem("Save to", container.NewBorder(nil, nil, nil, container.NewHBox(browseBtn, ui.openBtn), ui.dirEntry)),
		widget.NewFormItem("Genre", ui.genreEntry),
	)

	top := container.NewVBox(
		container.NewBorder(nil, nil, nil, settingsBtn, ui.playlistLabel),
		form,
		container.NewBorder(nil, nil, nil, container.NewHBox(ui.cancelBtn, ui.downloadBtn), ui.statusLabel),
		ui.progressBar,
	)

	scroll := container.NewVScroll(logList)
	scroll.SetMinSize(fyne.NewSize(0, LogMinHeight))
	ui.window.SetContent(container.NewBorder(top, nil, nil, nil, scroll))
}

func (ui *RootUI) createMenu() {
	whatItDoes := fyne.NewMenuItem("What it does", func() {
		showHelp("What it does", whatItDoesText, ui.window)
	})
	findingURL := fyne.NewMenuItem("Finding playlist URL", func() {
		showHelp("Finding playlist URL", findingURLText, ui.window)
	})

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu("File", fyne.NewMenuItem("Settings", ui.onShowSettings)),
		fyne.NewMenu("View", whatItDoes, findingURL),
	))
}

// validateURL accepts empty input and anything carrying a playlist ID
func validateURL(input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}
	if _, err := platform.ExtractPlaylistID(input); err != nil {
		return fmt.Errorf("not a playlist link: %w", err)
	}
	return nil
}

func (ui *RootUI) options() app.Options {
	return app.Options{
		Resolver:  ui.settings.GetResolver(),
		Attempts:  ui.settings.GetMaxAttempts(),
		Verbosity: ui.settings.GetVerbosity(),
	}
}

// acquirePipeline returns the pipeline of the current cycle, building it on
// first use
func (ui *RootUI) acquirePipeline() (*app.Pipeline, error) {
	ui.mu.Lock()
	defer ui.mu.Unlock()

	if ui.pipeline != nil {
		return ui.pipeline, nil
	}
	pipeline, err := ui.newPipeline(ui.options())
	if err != nil {
		return nil, err
	}
	ui.pipeline = pipeline
	return pipeline, nil
}

// releasePipeline drops the current pipeline and its scratch directory
func (ui *RootUI) releasePipeline() {
	ui.mu.Lock()
	pipeline := ui.pipeline
	ui.pipeline = nil
	ui.mu.Unlock()

	if err := pipeline.Close(); err != nil {
		log.Warnf("%v", err)
	}
}

func (ui *RootUI) onValidateClick() {
	url := strings.TrimSpace(ui.urlEntry.Text)
	if url == "" || validateURL(url) != nil {
		ui.setStatus("Enter a playlist link containing \"list=\"")
		return
	}
	ui.settings.SetLastPlaylistURL(url)

	ui.releasePipeline()
	ui.setBusy(true, false)
	ui.setStatus(TextResolving)

	go func() {
		playlist, err := ui.resolve(context.Background(), url)
		fyne.Do(func() {
			ui.setBusy(false, playlist != nil)
			if err != nil {
				ui.setStatus("Error: " + err.Error())
				dialog.ShowError(err, ui.window)
				return
			}
			ui.showPlaylist(playlist)
		})
	}()
}

// resolve turns the link into a playlist and keeps it for the download
func (ui *RootUI) resolve(ctx context.Context, url string) (*model.Playlist, error) {
	pipeline, err := ui.acquirePipeline()
	if err != nil {
		return nil, err
	}
	playlist, err := pipeline.Resolver.Resolve(ctx, url)
	if err != nil {
		return nil, err
	}

	ui.mu.Lock()
	ui.playlist = playlist
	ui.mu.Unlock()
	return playlist, nil
}

// showPlaylist displays a resolved playlist and proposes a genre from its title
func (ui *RootUI) showPlaylist(playlist *model.Playlist) {
	ui.playlistLabel.SetText(fmt.Sprintf("%s (%d tracks)", playlist.Title, playlist.Len()))
	ui.genreEntry.SetText(app.SuggestGenre(playlist))
	ui.progressBar.SetValue(0)
	ui.setStatus(fmt.Sprintf("Ready to download %d tracks", playlist.Len()))
}

func (ui *RootUI) onDownloadClick() {
	ui.mu.Lock()
	playlist := ui.playlist
	ui.mu.Unlock()
	if playlist == nil {
		ui.setStatus(TextNoPlaylist)
		return
	}

	dir, err := platform.ExpandPath(ui.dirEntry.Text)
	if err != nil || strings.TrimSpace(ui.dirEntry.Text) == "" {
		dialog.ShowInformation("Save Location Error",
			"You must first choose a save location. Generally this will be your 'Music' folder", ui.window)
		return
	}
	genre := strings.TrimSpace(ui.genreEntry.Text)
	ui.settings.SetDownloadDirectory(dir)
	ui.settings.SetGenre(genre)

	ctx, cancel := context.WithCancel(context.Background())
	ui.mu.Lock()
	ui.cancel = cancel
	ui.mu.Unlock()

	ui.setBusy(true, false)
	ui.cancelBtn.Enable()
	ui.setStatus(TextDownloading)

	go func() {
		defer cancel()
		err := ui.runBatch(ctx, playlist, dir, genre)
		fyne.Do(func() {
			ui.cancelBtn.Disable()
			ui.setBusy(false, false)
			if err != nil {
				ui.setStatus("Error: " + err.Error())
				dialog.ShowError(err, ui.window)
			}
		})
	}()
}

// runBatch downloads every item of playlist, reporting into the window. It
// blocks until the batch finishes or ctx is cancelled.
func (ui *RootUI) runBatch(ctx context.Context, playlist *model.Playlist, dir, genre string) error {
	pipeline, err := ui.acquirePipeline()
	if err != nil {
		return err
	}
	defer ui.releasePipeline()

	var batch *download.Batch
	observer := download.ObserverFunc(func(item download.Item, cp download.Checkpoint) {
		if cp == download.CheckpointFetchStarted && item.Attempt == 1 {
			ui.setStatus(app.StartLine(item.Index, batch.Progress()))
		}
	})

	batch, err = pipeline.Service.DownloadPlaylist(playlist, dir, genre, observer)
	if err != nil {
		return err
	}

	ui.clearLog()
	for res := range batch.All(ctx) {
		ui.appendLog(app.ResultLine(res))
		ui.setProgress(res.Progress)
		ui.record(ctx, batch.ID(), playlist.Title, res)
	}

	summary := app.SummaryLine(batch.Progress())
	if !batch.Done() {
		summary = "Cancelled. " + summary
	}
	ui.appendLog(summary)
	ui.setStatus(summary)
	return nil
}

func (ui *RootUI) record(ctx context.Context, batchID, title string, res download.Result) {
	if ui.history == nil {
		return
	}
	entry, err := history.FromResult(batchID, title, res)
	if err != nil {
		log.Warnf("Not recording %s: %v", res.Reference, err)
		return
	}
	if err := ui.history.Record(context.WithoutCancel(ctx), &entry); err != nil {
		log.Warnf("Failed to record %s: %v", res.Reference, err)
	}
}

func (ui *RootUI) onCancelClick() {
	ui.mu.Lock()
	cancel := ui.cancel
	ui.mu.Unlock()
	if cancel != nil {
		cancel()
		ui.cancelBtn.Disable()
		ui.setStatus(TextCancelling)
	}
}

func (ui *RootUI) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		ui.dirEntry.SetText(uri.Path())
	}, ui.window)
}

func (ui *RootUI) onOpenDirectory() {
	dir, err := platform.ExpandPath(ui.dirEntry.Text)
	if err == nil {
		err = platform.OpenInFileManager(dir)
	}
	if err != nil {
		dialog.ShowError(err, ui.window)
	}
}

func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.window, func() {
		// resolver and attempts apply to the next cycle
		ui.mu.Lock()
		busy := ui.cancel != nil
		ui.mu.Unlock()
		if !busy {
			ui.releasePipeline()
		}
	}).Show()
}

// setBusy toggles the inputs while a resolve or download runs
func (ui *RootUI) setBusy(busy, canDownload bool) {
	if busy {
		ui.validateBtn.Disable()
		ui.downloadBtn.Disable()
		ui.urlEntry.Disable()
		ui.genreEntry.Disable()
		ui.dirEntry.Disable()
		return
	}

	ui.mu.Lock()
	ui.cancel = nil
	ui.mu.Unlock()

	ui.validateBtn.Enable()
	ui.urlEntry.Enable()
	ui.genreEntry.Enable()
	ui.dirEntry.Enable()
	if canDownload {
		ui.downloadBtn.Enable()
	}
}

func (ui *RootUI) setStatus(text string) {
	fyne.Do(func() { ui.statusLabel.SetText(text) })
}

func (ui *RootUI) setProgress(progress model.BatchProgress) {
	fyne.Do(func() { ui.progressBar.SetValue(float64(progress.Percent()) / 100) })
}

func (ui *RootUI) appendLog(line string) {
	if err := ui.logLines.Append(line); err != nil {
		log.Warnf("%v", err)
	}
}

func (ui *RootUI) clearLog() {
	if err := ui.logLines.Set(nil); err != nil {
		log.Warnf("%v", err)
	}
}
