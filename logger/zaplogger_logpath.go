// zaplogger_logpath.go
package logger

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// logFilePrefix starts every generated log file name.
const logFilePrefix = "graphusersearch_"

// EnsureLogFilePath resolves the file log output is written to and creates its parent directory.
//
// A path naming a directory gets a timestamped file inside it. A path names a directory when it
// exists as one, ends in a separator, or does not exist and has no extension. Any other path is a
// file and is used as given, so "logs/search.log" works before the file or its directory exist.
// An empty path means the current directory.
func EnsureLogFilePath(logPath string) (string, error) {
	if logPath == "" {
		logPath = "."
	}

	isDir, err := namesDirectory(logPath)
	if err != nil {
		return "", err
	}
	if isDir {
		logPath = filepath.Join(logPath, generatedLogFileName(time.Now()))
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return "", err
	}
	return logPath, nil
}

func namesDirectory(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil:
		return info.IsDir(), nil
	case !os.IsNotExist(err):
		return false, err
	}

	if strings.HasSuffix(path, string(os.PathSeparator)) || strings.HasSuffix(path, "/") {
		return true, nil
	}
	return filepath.Ext(path) == "", nil
}

func generatedLogFileName(now time.Time) string {
	return logFilePrefix + now.Format("20060102_150405") + ".log"
}
