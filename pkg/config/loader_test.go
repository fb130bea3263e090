package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestConfigDefaults(t *testing.T) {
	conf, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	if conf.Storage.DownloadDir != "downloads" {
		t.Errorf("unexpected download dir %v", conf.Storage.DownloadDir)
	}
	if conf.Storage.BufferSize != 8192 {
		t.Errorf("unexpected buffer size %v", conf.Storage.BufferSize)
	}
	if conf.Api.Domain != "gamejolt.com" {
		t.Errorf("unexpected domain %v", conf.Api.Domain)
	}
	if conf.Http.Timeout != 0 {
		t.Errorf("timeout should be off by default, got %v", conf.Http.Timeout)
	}
}

func TestConfigEnv(t *testing.T) {
	t.Setenv("JOLTARCHIVE_STORAGE_DOWNLOADDIR", "/tmp/archive")
	t.Setenv("JOLTARCHIVE_HTTP_TIMEOUT", "15s")

	conf, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	if conf.Storage.DownloadDir != "/tmp/archive" {
		t.Errorf("%v is not /tmp/archive", conf.Storage.DownloadDir)
	}
	if conf.Http.Timeout != 15*time.Second {
		t.Errorf("%v is not 15s", conf.Http.Timeout)
	}
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "storage:\n  downloadDir: games\n  bufferSize: 1024\nhttp:\n  browser: firefox\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	conf, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if conf.Storage.DownloadDir != "games" || conf.Storage.BufferSize != 1024 {
		t.Errorf("file values were not loaded: %+v", conf.Storage)
	}
	if conf.Http.Browser != "firefox" {
		t.Errorf("%v is not firefox", conf.Http.Browser)
	}
	if conf.Api.Site != "https://gamejolt.com" {
		t.Errorf("defaults should stay, got %v", conf.Api.Site)
	}
}

func TestConfigMissingCustomFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Errorf("expected an error for a missing custom config")
	}
}

func TestFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		err  error
		dir  string
	}{
		{name: "id", args: []string{"-g", "12345"}, dir: "from-config"},
		{name: "url", args: []string{"--url", "https://gamejolt.com/games/x/1", "-d", "out"}, dir: "out"},
		{name: "none", args: []string{"-v"}, err: ErrNoGame},
		{name: "both", args: []string{"-g", "1", "-u", "https://gamejolt.com/games/x/1"}, err: ErrTooManyGame},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			f := (&Flags{}).WithFlags(fs)
			if err := fs.Parse(tt.args); err != nil {
				t.Fatal(err)
			}
			if err := f.Validate(fs); err != tt.err {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
			if tt.err != nil {
				return
			}
			conf := Config{Storage: Storage{DownloadDir: "from-config"}}
			f.Apply(fs, &conf)
			if conf.Storage.DownloadDir != tt.dir {
				t.Errorf("expected dir %v, got %v", tt.dir, conf.Storage.DownloadDir)
			}
		})
	}
}
