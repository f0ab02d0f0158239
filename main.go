package main

import (
	"fmt"
	"io"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/sirupsen/logrus"

	"github.com/ytget/ytfetch/internal/config"
	"github.com/ytget/ytfetch/internal/download"
	"github.com/ytget/ytfetch/internal/history"
	"github.com/ytget/ytfetch/internal/logging"
	"github.com/ytget/ytfetch/internal/platform"
	"github.com/ytget/ytfetch/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.ytfetch"
	AppName = "YouTube Video Downloader"

	WindowWidth  = 600
	WindowHeight = 450
)

func main() {
	logger, closer := setupLogging(config.LogsDir(), os.Stderr)
	defer closer.Close()

	logger.Infof("%s v%s starting", AppName, version)

	// Create new Fyne app
	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	settings := config.NewSettings(myApp)
	if err := platform.CreateDirectoryIfNotExists(settings.GetDownloadDirectory()); err != nil {
		logger.WithError(err).Warn("failed to ensure downloads dir")
	}

	store, err := history.Open(config.HistoryDir())
	if err != nil {
		logger.WithError(err).Warn("history disabled")
	} else {
		defer store.Close()
	}

	ui.NewRootUI(myWindow, settings, newServiceFactory(logger, store), logger)

	myWindow.ShowAndRun()
}

// setupLogging logs into dir, or to fallback when the log file cannot be opened.
// The returned closer is never nil.
func setupLogging(dir string, fallback io.Writer) (*logrus.Logger, io.Closer) {
	logger, closer, err := logging.Setup(logging.Options{Dir: dir})
	if err == nil {
		return logger, closer
	}

	logger, closer, fallbackErr := logging.Setup(logging.Options{Out: fallback})
	if fallbackErr != nil {
		return logging.Discard(), io.NopCloser(nil)
	}
	logger.WithError(err).Warn("file logging disabled")
	return logger, closer
}

// newServiceFactory builds a service per request so settings changes apply immediately
func newServiceFactory(logger *logrus.Logger, recorder *history.Store) ui.ServiceFactory {
	return func(settings *config.Settings) download.Downloader {
		opts := download.Options{
			TagAudio: settings.GetTagAudio(),
			Logger:   logger,
		}
		if recorder != nil {
			opts.Recorder = recorder
		}
		if settings.GetProbeCache() {
			opts.ProbeCacheDir = config.CacheDir()
		}
		return download.NewYTDLPService(opts)
	}
}
