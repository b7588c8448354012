package utils

// TruncateMiddle shortens s to at most limit runes by replacing its middle with "..".
func TruncateMiddle(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit || limit < 2 {
		return s
	}

	keep := limit - 2
	head := keep - keep/2
	tail := keep / 2
	return string(runes[:head]) + ".." + string(runes[len(runes)-tail:])
}
