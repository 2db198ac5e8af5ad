package configio

import (
	"strconv"
	"strings"
)

// parseCoord accepts either a percentage string like "25%" or an absolute
// cell count (string or number) and returns the typed Coord.
func parseCoord(v any) Coord {
	switch t := v.(type) {
	case string:
		if strings.HasSuffix(t, "%") {
			n, _ := strconv.Atoi(strings.TrimSuffix(t, "%"))
			return Coord{Percent: true, Value: n}
		}
		n, _ := strconv.Atoi(t)
		return Coord{Percent: false, Value: n}
	case int:
		return Coord{Percent: false, Value: t}
	case int64:
		return Coord{Percent: false, Value: int(t)}
	case float64:
		return Coord{Percent: false, Value: int(t)}
	default:
		return Coord{}
	}
}
