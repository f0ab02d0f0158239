package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ytget/ytfetch/internal/config"
	"github.com/ytget/ytfetch/internal/download"
	"github.com/ytget/ytfetch/internal/history"
	"github.com/ytget/ytfetch/internal/model"
)

// Flag names of the get command
const (
	FlagPlaylist  = "playlist"
	FlagAudio     = "audio"
	FlagDest      = "dest"
	FlagClipboard = "clipboard"
	FlagPlain     = "plain"
)

// getOptions are the parsed flags of the get command
type getOptions struct {
	Playlist  bool
	Audio     bool
	Dest      string
	Clipboard bool
	Plain     bool
}

func newGetCmd(a *app) *cobra.Command {
	var opts getOptions

	cmd := &cobra.Command{
		Use:   "get [url]",
		Short: "Download a video or a playlist",
		Long: `Download a single video or every video of a playlist.
Videos are saved as MP4, or as MP3 with --audio. Playlist members go into a
folder named after the playlist and are numbered in playlist order.`,
		Example: "  ytfetch get https://www.youtube.com/watch?v=dQw4w9WgXcQ --audio\n" +
			"  ytfetch get --playlist https://www.youtube.com/playlist?list=PL123",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := buildRequest(args, opts, a.v.GetString(config.KeyCLIDownloadDir),
				a.v.GetString(config.KeyCLIFormat), clipboard.ReadAll)
			if err != nil {
				return err
			}
			return a.runGet(cmd.Context(), req, opts.Plain)
		},
	}

	cmd.Flags().BoolVarP(&opts.Playlist, FlagPlaylist, "p", false, "Treat the URL as a playlist")
	cmd.Flags().BoolVarP(&opts.Audio, FlagAudio, "a", false, "Save audio only as MP3")
	cmd.Flags().StringVarP(&opts.Dest, FlagDest, "d", "", "Destination folder (defaults to download.dir)")
	cmd.Flags().BoolVarP(&opts.Clipboard, FlagClipboard, "c", false, "Read the URL from the clipboard")
	cmd.Flags().BoolVar(&opts.Plain, FlagPlain, false, "Print progress lines instead of the interactive view")
	lo.Must0(cmd.MarkFlagDirname(FlagDest))

	return cmd
}

// buildRequest maps arguments and flags onto a download request
func buildRequest(args []string, opts getOptions, defaultDir, defaultFormat string, readClipboard func() (string, error)) (model.DownloadRequest, error) {
	var url string
	switch {
	case len(args) == 1:
		url = args[0]
	case opts.Clipboard:
		text, err := readClipboard()
		if err != nil {
			return model.DownloadRequest{}, fmt.Errorf("read clipboard: %w", err)
		}
		url = strings.TrimSpace(text)
	}
	if strings.TrimSpace(url) == "" {
		return model.DownloadRequest{}, errors.New("a URL argument or --clipboard is required")
	}

	kind := model.KindSingleItem
	if opts.Playlist {
		kind = model.KindCollection
	}

	format, err := model.ParseOutputFormat(defaultFormat)
	if err != nil {
		format = config.DefaultOutputFormat
	}
	if opts.Audio {
		format = model.FormatAudioOnly
	}

	dest := lo.Ternary(opts.Dest != "", opts.Dest, defaultDir)
	return model.NewDownloadRequest(url, kind, format, dest), nil
}

// newService builds the download service from the configuration
func (a *app) newService() (download.Downloader, func()) {
	opts := download.Options{
		Fs:            a.fs,
		TagAudio:      a.v.GetBool(config.KeyCLITagAudio),
		CacheLifetime: config.CacheLifetime(a.v),
		Logger:        a.log,
	}
	if a.v.GetBool(config.KeyCLIProbeCache) {
		opts.ProbeCacheDir = config.CacheDir()
	}

	cleanup := func() {}
	if a.v.GetBool(config.KeyCLIHistory) {
		store, err := history.Open(config.HistoryDir())
		if err != nil {
			a.log.WithError(err).Warn("history disabled")
		} else {
			opts.Recorder = store
			cleanup = func() { _ = store.Close() }
		}
	}
	return download.NewYTDLPService(opts), cleanup
}

func (a *app) runGet(ctx context.Context, req model.DownloadRequest, plain bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	svc, cleanup := a.newService()
	defer cleanup()

	a.log.WithFields(logrus.Fields{
		"request": req.ID,
		"url":     req.URL,
		"kind":    req.Kind,
		"format":  req.Format,
	}).Info("download requested")

	if plain || !term.IsTerminal(int(os.Stdout.Fd())) {
		return a.runPlain(ctx, svc, req)
	}
	return a.runInteractive(ctx, svc, req)
}

// runPlain prints one line per phase change and per percent step
func (a *app) runPlain(ctx context.Context, svc download.Downloader, req model.DownloadRequest) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	printer := newLinePrinter(a.out)
	_, err := svc.Execute(ctx, req, printer.Print)
	return err
}

func (a *app) runInteractive(ctx context.Context, svc download.Downloader, req model.DownloadRequest) error {
	m := newProgressModel(req)
	p := tea.NewProgram(m, tea.WithContext(ctx))

	run := svc.Start(ctx, req, func(event model.ProgressEvent) {
		p.Send(eventMsg(event))
	})
	m.cancel = run.Cancel

	go func() {
		summary, err := run.Wait()
		p.Send(doneMsg{summary: summary, err: err})
	}()

	final, err := p.Run()
	if err != nil {
		run.Cancel()
		_, _ = run.Wait()
		return fmt.Errorf("progress view: %w", err)
	}
	if fm, ok := final.(*progressModel); ok {
		return fm.err
	}
	return nil
}
