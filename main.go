package main

import (
	"fmt"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"github.com/ytget/playlist-grab/internal/app"
	"github.com/ytget/playlist-grab/internal/config"
	"github.com/ytget/playlist-grab/internal/history"
	"github.com/ytget/playlist-grab/internal/ui"
	"github.com/ytget/playlist-grab/pkg/logger"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.playlist-grab"
	AppName = "Playlist Grab"

	WindowWidth  = 720
	WindowHeight = 560
)

var log = logger.Get("Main")

func main() {
	log.Infof("%s v%s starting...", AppName, version)

	myApp := fyneapp.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	settings := config.NewSettings(myApp)
	if os.Getenv("LOG_LEVEL") == "" {
		logger.SetLevel(logger.LevelForVerbosity(settings.GetVerbosity()))
	}

	store := openHistory()
	defer func() {
		if err := store.Close(); err != nil {
			log.Warnf("Failed to close history: %v", err)
		}
	}()

	ui.NewRootUI(myWindow, settings, store, app.NewPipeline)

	myWindow.ShowAndRun()
}

// openHistory opens the shared history database; the window works without it
func openHistory() *history.Store {
	dir, err := config.ConfigDir()
	if err != nil {
		log.Warnf("History disabled: %v", err)
		return nil
	}
	store, err := history.Open(filepath.Join(dir, config.HistoryDBName))
	if err != nil {
		log.Warnf("History disabled: %v", err)
		return nil
	}
	return store
}
