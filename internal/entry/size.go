package entry

import (
	"fmt"
	"os"
)

var sizeUnits = []string{"B", "KB", "MB", "GB"}

// FormatSize renders n bytes in base-1024 units with one decimal, e.g. "1.5 MB".
func FormatSize(n int64) string {
	size := float64(n)
	for _, unit := range sizeUnits {
		if size < 1024.0 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024.0
	}
	return fmt.Sprintf("%.1f TB", size)
}

// FileSize stats path and formats its size.
func FileSize(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	return FormatSize(info.Size()), nil
}
