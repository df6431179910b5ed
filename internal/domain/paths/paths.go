// Package paths initializes Podtube's filepaths, directories, etc.
package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"podtube/internal/domain/consts"
)

const (
	pDir       = ".podtube"
	cacheDir   = "yt-cache"
	pDBFile    = "podtube.db"
	pLogFile   = "podtube.log"
	cookieFile = "cookies.txt"
)

// File and directory path strings.
var (
	HomePodtubeDir string
	CacheDir       string
	DBFilePath     string
	LogFilePath    string
	CookieFilePath string
)

// InitProgFilesDirs initializes necessary program directories and filepaths.
//
// Directory creation is idempotent, safe to call on every startup.
func InitProgFilesDirs() error {
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		return errors.New("failed to get home directory")
	}

	// Home Podtube dir ~/.podtube
	HomePodtubeDir = filepath.Join(userHomeDir, pDir)
	if err := os.MkdirAll(HomePodtubeDir, consts.PermsDir); err != nil {
		return fmt.Errorf("failed to make directories: %w", err)
	}

	// Backend cache dir ~/.podtube/yt-cache
	CacheDir = filepath.Join(HomePodtubeDir, cacheDir)
	if err := os.MkdirAll(CacheDir, consts.PermsDir); err != nil {
		return fmt.Errorf("failed to make cache directory: %w", err)
	}

	// Main files
	DBFilePath = filepath.Join(HomePodtubeDir, pDBFile)
	LogFilePath = filepath.Join(HomePodtubeDir, pLogFile)
	CookieFilePath = filepath.Join(HomePodtubeDir, cookieFile)

	return nil
}
