package view

import (
	"fmt"
	"io/fs"
)

// formatPermissions renders the nine rwx permission characters for a
// mode. The leading file-type character is the caller's concern.
func formatPermissions(mode fs.FileMode) string {
	const chars = "rwxrwxrwx"
	perm := mode.Perm()

	out := make([]byte, 9)
	for i := 0; i < 9; i++ {
		if perm&(1<<uint(8-i)) != 0 {
			out[i] = chars[i]
		} else {
			out[i] = '-'
		}
	}
	return string(out)
}

// formatSize renders a byte count in human-readable binary units with
// one decimal place above 1024 bytes.
func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGT"[exp])
}
