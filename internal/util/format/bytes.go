package format

import (
	"strconv"

	"github.com/dustin/go-humanize"
)

const mebibyte = 1024 * 1024

// MB renders a byte count as mebibytes with one decimal and no unit (e.g., "1.5").
func MB(b int64) string {
	return strconv.FormatFloat(float64(b)/mebibyte, 'f', 1, 64)
}

// Bytes converts a byte count into a human-readable string (e.g., "1.5 MiB").
func Bytes(b int64) string {
	if b < 0 {
		b = 0
	}
	return humanize.IBytes(uint64(b))
}
