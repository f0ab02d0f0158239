package platform

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/h2non/filetype"
	"github.com/spf13/afero"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
	OSAndroid = "android"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
)

// Command parameters
const (
	MacOSSelectFlag    = "-R"
	WindowsSelectParam = "/select,"
)

// Downloads directory names
const (
	DownloadsDirName        = "Downloads"
	AndroidDownloadsDirPath = "/sdcard/Download"
)

// MediaHeaderSize is the number of leading bytes read to sniff a media type
const MediaHeaderSize = 262

// File manager names
var (
	LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}
)

// EnsureDir creates the directory (and parents) when missing.
// An existing non-directory at path is an error.
func EnsureDir(fs afero.Fs, dirPath string) error {
	info, err := fs.Stat(dirPath)
	switch {
	case err == nil && !info.IsDir():
		return fmt.Errorf("%s exists and is not a directory", dirPath)
	case err == nil:
		return nil
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("failed to stat %s: %w", dirPath, err)
	}

	if err := fs.MkdirAll(dirPath, DefaultDirPermissions); err != nil {
		return fmt.Errorf("failed to create %s: %w", dirPath, err)
	}
	return nil
}

// CreateDirectoryIfNotExists creates directory on the OS filesystem if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	return EnsureDir(afero.NewOsFs(), dirPath)
}

// GetHomeDownloadsDir returns the standard Downloads directory for the user
func GetHomeDownloadsDir() (string, error) {
	if isAndroid() {
		return AndroidDownloadsDirPath, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, DownloadsDirName), nil
}

func isAndroid() bool {
	return runtime.GOOS == OSAndroid ||
		os.Getenv("ANDROID_DATA") != "" ||
		os.Getenv("ANDROID_ROOT") != ""
}

// DetectMediaType sniffs the MIME type of a produced file from its header.
// Unknown content yields an empty string and no error.
func DetectMediaType(fs afero.Fs, path string) (string, error) {
	f, err := fs.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	head := make([]byte, MediaHeaderSize)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	kind, err := filetype.Match(head[:n])
	if err != nil || kind == filetype.Unknown {
		return "", nil
	}
	return kind.MIME.Value, nil
}

// RevealInFileManager opens the system file manager at path.
// On macOS and Windows the file is highlighted; elsewhere its directory is opened.
func RevealInFileManager(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, MacOSSelectFlag, absPath).Run()
	case OSWindows:
		return exec.Command(ExplorerCommand, WindowsSelectParam, absPath).Run()
	case OSLinux:
		return openDirLinux(revealDir(absPath))
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// revealDir returns path itself for directories and its parent otherwise
func revealDir(path string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path
	}
	return filepath.Dir(path)
}

// openDirLinux tries xdg-open first, then common file managers
func openDirLinux(dir string) error {
	if err := exec.Command(XDGOpenCommand, dir).Run(); err == nil {
		return nil
	}

	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return exec.Command(fm, dir).Run()
		}
	}

	return fmt.Errorf("no suitable file manager found")
}
