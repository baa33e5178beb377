package enums

// Canonical reading directions.
const (
	DirectionLTR = "ltr"
	DirectionRTL = "rtl"
	DirectionTTB = "ttb"
	DirectionBTT = "btt"
)

// ReadingDirections maps CoMet and CBL spellings onto the canonical codes.
var ReadingDirections = buildReadingDirections()

func buildReadingDirections() *Table {
	t := newTable("reading_direction", []string{
		DirectionLTR, DirectionRTL, DirectionTTB, DirectionBTT,
	})
	t.alias([]string{DirectionLTR}, "LeftToRight", "left to right")
	t.alias([]string{DirectionRTL}, "RightToLeft", "right to left")
	t.alias([]string{DirectionTTB}, "TopToBottom", "top to bottom")
	t.alias([]string{DirectionBTT}, "BottomToTop", "bottom to top")
	return t
}

var directionNames = map[string]string{
	DirectionLTR: "LeftToRight",
	DirectionRTL: "RightToLeft",
	DirectionTTB: "TopToBottom",
	DirectionBTT: "BottomToTop",
}

// DirectionName returns the CamelCase spelling of a canonical direction.
func DirectionName(code string) string {
	return directionNames[ReadingDirections.MapOne(code)]
}
