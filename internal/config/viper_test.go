package config

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

func TestNewViper(t *testing.T) {
	Convey("Given an empty configuration directory", t, func() {
		fs := afero.NewMemMapFs()

		Convey("Defaults are populated", func() {
			v, err := NewViper(fs, "/config")
			So(err, ShouldBeNil)
			So(v.GetString(KeyCLIFormat), ShouldEqual, "mp4")
			So(v.GetBool(KeyCLITagAudio), ShouldBeTrue)
			So(v.GetBool(KeyCLIProbeCache), ShouldBeFalse)
			So(v.GetString(KeyCLIDownloadDir), ShouldNotBeEmpty)
			So(CacheLifetime(v), ShouldEqual, 10*time.Minute)
		})

		Convey("Environment variables override defaults", func() {
			t.Setenv("YTFETCH_DOWNLOAD_FORMAT", "mp3")
			t.Setenv("YTFETCH_PROBE_CACHE", "true")

			v, err := NewViper(fs, "/config")
			So(err, ShouldBeNil)
			So(v.GetString(KeyCLIFormat), ShouldEqual, "mp3")
			So(v.GetBool(KeyCLIProbeCache), ShouldBeTrue)
		})
	})

	Convey("Given a TOML configuration file", t, func() {
		fs := afero.NewMemMapFs()
		content := "[download]\ndir = \"/music\"\n\n[probe]\ncache_lifetime = \"1h\"\n"
		So(afero.WriteFile(fs, "/config/ytfetch.toml", []byte(content), 0644), ShouldBeNil)

		Convey("File values override defaults", func() {
			v, err := NewViper(fs, "/config")
			So(err, ShouldBeNil)
			So(v.GetString(KeyCLIDownloadDir), ShouldEqual, "/music")
			So(CacheLifetime(v), ShouldEqual, time.Hour)
		})
	})

	Convey("Given a malformed configuration file", t, func() {
		fs := afero.NewMemMapFs()
		So(afero.WriteFile(fs, "/config/ytfetch.toml", []byte("download = [\n"), 0644), ShouldBeNil)

		Convey("An error is returned", func() {
			_, err := NewViper(fs, "/config")
			So(err, ShouldNotBeNil)
		})
	})

	Convey("EnvKeyReplacer converts dots to underscores", t, func() {
		So(EnvKeyReplacer.Replace("probe.cache_lifetime"), ShouldEqual, "probe_cache_lifetime")
	})
}

func TestDirectories(t *testing.T) {
	t.Setenv(EnvConfigPath, "/custom/config")

	if got := ConfigDir(); got != "/custom/config" {
		t.Errorf("expected override, got %s", got)
	}
	if got := LogsDir(); got != "/custom/config/logs" {
		t.Errorf("expected logs below config, got %s", got)
	}
	if CacheDir() == "" {
		t.Error("cache dir should not be empty")
	}
}
