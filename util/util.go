package util

func IsNumber(b byte) bool {
	return b >= '0' && b <= '9'
}

func IsLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func IsLetterOrNumber(b byte) bool {
	return IsLetter(b) || IsNumber(b)
}

func IsSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// IsTypeSuffix reports whether b is one of the identifier suffixes that tag
// an identifier with its declared type: @ (method), & (entero), % (real),
// $ (cadena), # (logico).
func IsTypeSuffix(b byte) bool {
	switch b {
	case '@', '&', '%', '$', '#':
		return true
	}
	return false
}
