package util

import (
	"os"
)

// CheckFileExists reports whether fpath names an existing regular file.
func CheckFileExists(fpath string) bool {
	st, err := os.Stat(fpath)
	return err == nil && st.Mode().IsRegular()
}
