package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	// AppName is the directory name used under the user config directory.
	AppName = "build-env"
	// UserFileName is the name of the user config file.
	UserFileName = "config.yaml"
	// ProjectFileName is the name of the project config file.
	ProjectFileName = ".build-env.yaml"
)

// UserConfigPath returns where the user config file lives
// (~/.config/build-env/config.yaml). Respects XDG_CONFIG_HOME.
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, UserFileName)
}

// findUserConfig returns the first existing user config file in the XDG
// config directories, or "" when there is none.
func findUserConfig() string {
	path, err := xdg.SearchConfigFile(filepath.Join(AppName, UserFileName))
	if err != nil {
		return ""
	}
	return path
}
