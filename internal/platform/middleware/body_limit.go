package middleware

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

const defaultBodyLimit = 1 << 20

// BodyLimit rejects request bodies larger than limit with 413, whether the
// size is announced in Content-Length or only discovered while reading.
// limit is a size string such as "512K" or "2M"; a bare number is bytes.
func BodyLimit(limit string) echo.MiddlewareFunc {
	// echo panics on a malformed limit, so it only ever sees a byte count
	return echomw.BodyLimit(strconv.FormatInt(parseLimit(limit), 10))
}

// parseLimit falls back to 1 MB when s is empty or malformed.
func parseLimit(s string) int64 {
	s = strings.TrimSuffix(strings.ToUpper(strings.TrimSpace(s)), "B")

	units := map[byte]int64{'K': 1 << 10, 'M': 1 << 20, 'G': 1 << 30}
	var multiplier int64 = 1
	if n := len(s); n > 0 {
		if m, ok := units[s[n-1]]; ok {
			multiplier, s = m, s[:n-1]
		}
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return defaultBodyLimit
	}
	return n * multiplier
}
