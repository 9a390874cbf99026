// Package install implements first-run installation: the one-way
// installed/not-installed state consulted on every request, the persisted
// marker file, and the wizard steps (database config, schema push, admin
// account) exposed through the HTTP API.
package install

import (
	"context"
	"os"
	"sync/atomic"
	"time"

	"github.com/joho/godotenv"

	"github.com/rz2606/lab-website-sub002/internal/filex"
	"github.com/rz2606/lab-website-sub002/internal/logging"
)

// StatusCompleted is the only status ever written to the marker file; there
// is no uninstall, so no other value exists.
const StatusCompleted = "completed"

// Marker is the persisted record proving installation completed.
type Marker struct {
	InstalledAt time.Time `json:"installedAt"`
	Version     string    `json:"version"`
	Status      string    `json:"status"`
}

// State answers "has installation completed?" for the running deployment.
// The answer flips from false to true exactly once and never reverts, so
// concurrent reads need no locking. The flag is backed by two redundant
// sources: the marker file and the env-derived config flag; either being
// true means installed.
type State struct {
	installed  atomic.Bool
	markerPath string
	envPath    string
	logger     logging.Logger
}

// NewState derives the initial state from the marker file and the
// environment-backed flag. If the marker file exists but cannot be read or
// parsed, the state fails open (reports installed) so a corrupt marker never
// takes down a live site.
func NewState(markerPath, envPath string, envInstalled bool, logger logging.Logger) *State {
	s := &State{
		markerPath: markerPath,
		envPath:    envPath,
		logger:     logger.With("component", "install"),
	}

	if envInstalled {
		s.installed.Store(true)
		return s
	}

	installed, err := readMarker(markerPath)
	if err != nil {
		// Fail open: availability over safety when the flag is undecidable.
		s.logger.Warn(context.Background(), "cannot read install marker, assuming installed", "path", markerPath, "error", err)
		s.installed.Store(true)
		return s
	}

	s.installed.Store(installed)
	return s
}

// readMarker returns (false, nil) when the marker simply does not exist,
// (true, nil) when it records a completed install, and an error only when
// the file exists but is unreadable or malformed.
func readMarker(path string) (bool, error) {
	var m Marker
	if err := filex.ReadJSON(path, &m); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return m.Status == StatusCompleted, nil
}

// Installed reports the current state. Safe for unsynchronized concurrent use.
func (s *State) Installed() bool {
	return s.installed.Load()
}

// MarkInstalled fires the one-way transition: it writes the marker file,
// records the installed flag in the env file, and flips the in-memory state.
// Persistence failures are logged but do not undo the transition; the next
// process start falls back to whichever redundant source survived.
func (s *State) MarkInstalled(ctx context.Context, version string) {
	m := Marker{
		InstalledAt: time.Now().UTC(),
		Version:     version,
		Status:      StatusCompleted,
	}

	if err := filex.EnsureParentDir(s.markerPath); err != nil {
		s.logger.Error(ctx, "cannot create marker directory", "path", s.markerPath, "error", err)
	}
	if err := filex.WriteJSON(s.markerPath, m); err != nil {
		s.logger.Error(ctx, "cannot persist install marker", "path", s.markerPath, "error", err)
	}

	if err := upsertEnv(s.envPath, map[string]string{"LAB_INSTALLED": "true"}); err != nil {
		s.logger.Error(ctx, "cannot persist installed flag to env file", "path", s.envPath, "error", err)
	}

	s.installed.Store(true)
}

// upsertEnv merges vars into the env file at path, creating it (and its
// directory) if needed.
func upsertEnv(path string, vars map[string]string) error {
	if err := filex.EnsureParentDir(path); err != nil {
		return err
	}

	env, err := godotenv.Read(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		env = map[string]string{}
	}
	for k, v := range vars {
		env[k] = v
	}
	return godotenv.Write(env, path)
}
