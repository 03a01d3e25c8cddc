// Package paths resolves postar's config, state, and log locations.
//
// When running with sudo, paths resolve to the original user's
// directories (via SUDO_USER) instead of root's.
package paths

import (
	"os"
	"os/user"
	"path/filepath"
)

// UserHomeDir returns the home directory of the actual user,
// preferring SUDO_USER over root when running with sudo.
func UserHomeDir() (string, error) {
	if sudoUser := os.Getenv("SUDO_USER"); sudoUser != "" && sudoUser != "root" {
		if u, err := user.Lookup(sudoUser); err == nil {
			return u.HomeDir, nil
		}
	}
	return os.UserHomeDir()
}

// UserConfigDir returns the actual user's config directory,
// typically ~/.config.
func UserConfigDir() (string, error) {
	home, err := UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config"), nil
}

// PostarDir returns the postar config directory.
func PostarDir() (string, error) {
	cfg, err := UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "postar"), nil
}

// ConfigPath returns the settings file path.
func ConfigPath() (string, error) {
	dir, err := PostarDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// StatePath returns the novelty state file path.
func StatePath() (string, error) {
	dir, err := PostarDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "processed.json"), nil
}

// LogsDir returns the log directory.
func LogsDir() (string, error) {
	dir, err := PostarDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs"), nil
}
