package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Scrin/pasta-frontend/internal/config"
	"github.com/Scrin/pasta-frontend/internal/draft"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvBackendURL, "")
	t.Setenv(config.EnvProfile, "")
	t.Setenv(config.EnvLogLevel, "")
}

func TestOpen_AppliesOverrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeConfig(t, dir, `
backend_url = "paste.example:9000"
data_dir = "`+filepath.ToSlash(dir)+`"
profile = "work"
`)

	var logs bytes.Buffer
	env, err := Open(Options{
		ConfigPath: path,
		Profile:    "home",
		BackendURL: "http://127.0.0.1:1234",
		LogLevel:   "debug",
		LogOutput:  &logs,
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer env.Close()

	if env.Config.Profile != "home" {
		t.Fatalf("profile = %q", env.Config.Profile)
	}
	if got := env.Client.BaseURL(); got != "http://127.0.0.1:1234" {
		t.Fatalf("backend = %q", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "home")); err != nil {
		t.Fatalf("draft store not created under the profile: %v", err)
	}
}

func TestOpen_ProfilesAreIsolated(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeConfig(t, dir, `data_dir = "`+filepath.ToSlash(dir)+`"`)

	open := func(profile string) *Env {
		t.Helper()
		env, err := Open(Options{ConfigPath: path, Profile: profile, LogOutput: &bytes.Buffer{}})
		if err != nil {
			t.Fatalf("Open(%s): %v", profile, err)
		}
		return env
	}

	a := open("a")
	if err := a.Drafts.SetText("draft for a"); err != nil {
		t.Fatalf("SetText: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	b := open("b")
	if got := b.Drafts.Text(); got != "" {
		t.Fatalf("profile b sees %q", got)
	}
	_ = b.Close()

	a = open("a")
	defer a.Close()
	if got := a.Drafts.Text(); got != "draft for a" {
		t.Fatalf("profile a draft = %q", got)
	}
}

func TestOpen_FileLogger(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	logPath := filepath.Join(dir, "logs", "pasta.log")
	path := writeConfig(t, dir, `
data_dir = "`+filepath.ToSlash(dir)+`"
log_file = "`+filepath.ToSlash(logPath)+`"
`)

	env, err := Open(Options{ConfigPath: path})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	env.Log.Info().Msg("hello")
	if err := env.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"message":"hello"`) || !strings.Contains(string(data), `"profile":"default"`) {
		t.Fatalf("log = %s", data)
	}
}

func TestOpen_RejectsBadProfile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeConfig(t, dir, `data_dir = "`+filepath.ToSlash(dir)+`"`)

	if _, err := Open(Options{ConfigPath: path, Profile: "../escape", LogOutput: &bytes.Buffer{}}); err == nil {
		t.Fatalf("expected profile validation error")
	}
}

func TestEnv_EditorStartsAtLocation(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeConfig(t, dir, `data_dir = "`+filepath.ToSlash(dir)+`"`)

	env, err := Open(Options{ConfigPath: path, LogOutput: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer env.Close()

	session, history := env.Editor("http://127.0.0.1:8080/abc12345")
	if history.CurrentID() != "abc12345" || session.CurrentID() != "abc12345" {
		t.Fatalf("location = %q", history.CurrentID())
	}
}

func TestOpen_LockedProfile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeConfig(t, dir, `data_dir = "`+filepath.ToSlash(dir)+`"`)

	holder, err := Open(Options{ConfigPath: path, LogOutput: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer holder.Close()
	if err := holder.Drafts.SetSecret("tok"); err != nil {
		t.Fatalf("SetSecret: %v", err)
	}

	_, err = Open(Options{ConfigPath: path, LogOutput: &bytes.Buffer{}})
	if !errors.Is(err, draft.ErrLocked) || !strings.Contains(err.Error(), `profile "default" is in use`) {
		t.Fatalf("second Open err = %v", err)
	}

	shared, err := Open(Options{ConfigPath: path, LogOutput: &bytes.Buffer{}, SharedDrafts: true})
	if err != nil {
		t.Fatalf("shared Open: %v", err)
	}
	defer shared.Close()
	if !shared.Detached || shared.Drafts.Secret() != "" || shared.Client == nil {
		t.Fatalf("shared env = detached %v secret %q", shared.Detached, shared.Drafts.Secret())
	}
}
