// Package config persists the Robot credentials between invocations. The
// file is a small TOML document with a single [login] section; it is read
// once at startup and written at most twice per run (bootstrap when flags
// introduce credentials the file did not have, and the final flush at
// shutdown).
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Login holds the webservice credentials.
type Login struct {
	Username string `toml:"username"`
	Password string `toml:"password"`
}

// Config is the on-disk document.
type Config struct {
	Login Login `toml:"login"`
}

// Store is one loaded config file. Not safe for concurrent use; the CLI is
// single-threaded and assumes one process per config file.
type Store struct {
	path     string
	cfg      Config
	hadLogin bool
}

// DefaultPath returns the config file location used when --config is not
// given: $HETZNERCTL_CONFIG, then $XDG_CONFIG_HOME/hetznerctl/config.toml,
// then ~/.config/hetznerctl/config.toml.
func DefaultPath() string {
	if env := os.Getenv("HETZNERCTL_CONFIG"); env != "" {
		return env
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "hetznerctl", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = os.TempDir()
	}
	return filepath.Join(home, ".config", "hetznerctl", "config.toml")
}

// Load reads the config file at path (DefaultPath when empty). A missing
// file is not an error; it yields an empty store that Save will create.
func Load(path string) (*Store, error) {
	if path == "" {
		path = DefaultPath()
	}
	st := &Store{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return st, nil
	}
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(data, &st.cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	st.hadLogin = st.cfg.Login.Username != "" || st.cfg.Login.Password != ""
	return st, nil
}

// Path returns the file this store reads and writes.
func (s *Store) Path() string { return s.path }

// Credentials returns the stored username and password, either of which
// may be empty.
func (s *Store) Credentials() (username, password string) {
	return s.cfg.Login.Username, s.cfg.Login.Password
}

// HasLogin reports whether the file contained a login section when it was
// loaded. Used to decide whether flag-supplied credentials should be
// bootstrapped into the file.
func (s *Store) HasLogin() bool { return s.hadLogin }

// SetCredentials replaces the in-memory credentials. The file is only
// touched by Save.
func (s *Store) SetCredentials(username, password string) {
	s.cfg.Login.Username = username
	s.cfg.Login.Password = password
}

// Save writes the config back to disk, creating parent directories as
// needed. The file holds a password, so it is written with mode 0600.
func (s *Store) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s.cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	s.hadLogin = s.cfg.Login.Username != "" || s.cfg.Login.Password != ""
	return nil
}
