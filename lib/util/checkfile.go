package util

import (
	"os"
)

// Check if a file exists and is readable etc
// returns false if not
func CheckFileExists(fpath string) bool {
	_, e := os.Stat(fpath)
	return e == nil
}

// CheckDirExists reports whether fpath exists and is a directory.
func CheckDirExists(fpath string) bool {
	fi, e := os.Stat(fpath)
	return e == nil && fi.IsDir()
}
