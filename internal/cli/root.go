package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ytget/ytfetch/internal/config"
	"github.com/ytget/ytfetch/internal/logging"
	"github.com/ytget/ytfetch/internal/platform"
)

// Version is set during build via -ldflags
var Version = "dev"

// Flag names
const (
	FlagInstallEngine = "install-ytdlp"
	FlagLogLevel      = "log-level"
	FlagLogJSON       = "log-json"
	FlagWriteLogs     = "write-logs"
)

// app is the state shared by every command
type app struct {
	fs     afero.Fs
	v      *viper.Viper
	log    *logrus.Logger
	closer io.Closer
	out    io.Writer

	installEngine func(ctx context.Context) error
}

func newApp(v *viper.Viper) *app {
	return &app{
		fs:            afero.NewOsFs(),
		v:             v,
		log:           logging.Discard(),
		closer:        io.NopCloser(nil),
		out:           os.Stdout,
		installEngine: platform.InstallEngine,
	}
}

// setupLogging replaces the discarding logger with the configured one
func (a *app) setupLogging() error {
	opts := logging.Options{
		Level: a.v.GetString(config.KeyCLILogsLevel),
		JSON:  a.v.GetBool(config.KeyCLILogsJSON),
	}
	if a.v.GetBool(config.KeyCLILogsWrite) {
		opts.Dir = config.LogsDir()
	} else {
		opts.Out = io.Discard
	}

	logger, closer, err := logging.Setup(opts)
	if err != nil {
		return err
	}
	a.log, a.closer = logger, closer
	return nil
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           config.AppName,
		Short:         "Download YouTube videos and playlists as MP4 or MP3",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setupLogging(); err != nil {
				return err
			}
			if lo.Must(cmd.Flags().GetBool(FlagInstallEngine)) {
				fmt.Fprintln(a.out, "Installing yt-dlp...")
				if err := a.installEngine(cmd.Context()); err != nil {
					return err
				}
				a.log.Info("yt-dlp installed")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if lo.Must(cmd.Flags().GetBool(FlagInstallEngine)) {
				return nil
			}
			return cmd.Help()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.closer.Close()
		},
	}

	rootCmd.PersistentFlags().Bool(FlagInstallEngine, false, "Download or update the yt-dlp binary before running")

	rootCmd.PersistentFlags().String(FlagLogLevel, "", "Log level (debug, info, warn, error)")
	lo.Must0(a.v.BindPFlag(config.KeyCLILogsLevel, rootCmd.PersistentFlags().Lookup(FlagLogLevel)))

	rootCmd.PersistentFlags().Bool(FlagLogJSON, false, "Write logs as JSON")
	lo.Must0(a.v.BindPFlag(config.KeyCLILogsJSON, rootCmd.PersistentFlags().Lookup(FlagLogJSON)))

	rootCmd.PersistentFlags().Bool(FlagWriteLogs, false, "Write logs to the logs directory")
	lo.Must0(a.v.BindPFlag(config.KeyCLILogsWrite, rootCmd.PersistentFlags().Lookup(FlagWriteLogs)))

	rootCmd.AddCommand(newGetCmd(a), newHistoryCmd(a))
	return rootCmd
}

// Execute runs the command line and exits the process on failure
func Execute() {
	v, err := config.NewViper(afero.NewOsFs(), config.ConfigDir())
	if err != nil {
		handleErr(fmt.Errorf("config: %w", err))
	}

	rootCmd := newRootCmd(newApp(v))

	if v.GetBool(config.KeyCLIColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	handleErr(rootCmd.ExecuteContext(context.Background()))
}

func handleErr(err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", FailMark, strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
