package slippi

import (
	"strings"

	"golang.org/x/text/encoding/japanese"
)

// halfToFullWidth maps half-width delimiter characters that appear in
// Melee's Shift-JIS strings (e.g. connect codes) to their full-width
// equivalents. At minimum "#" maps to "＃", the separator used between a
// connect code's tag and its discriminator digits.
var halfToFullWidth = map[rune]rune{
	'#': '＃',
}

// decodeMeleeString decodes a null-terminated Shift-JIS byte string,
// applying the half-width-to-full-width delimiter substitution.
func decodeMeleeString(b []byte) (string, error) {
	b = nullTerminate(b)
	if len(b) == 0 {
		return "", nil
	}

	decoded, err := japanese.ShiftJIS.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.Grow(len(decoded))
	for _, r := range string(decoded) {
		if full, ok := halfToFullWidth[r]; ok {
			r = full
		}
		sb.WriteRune(r)
	}
	return sb.String(), nil
}

// nullTerminate returns the prefix of b up to (excluding) the first 0x00
// byte, or all of b if no such byte exists.
func nullTerminate(b []byte) []byte {
	for i, c := range b {
		if c == 0 {
			return b[:i]
		}
	}
	return b
}

// decodeSUID decodes the SUID C-string field: UTF-8 up to its first NUL
// byte, with a fallback length of 28 bytes if no NUL is found within the
// 29-byte field.
func decodeSUID(b []byte) string {
	limit := 28
	if limit > len(b) {
		limit = len(b)
	}
	for i, c := range b {
		if c == 0 {
			limit = i
			break
		}
	}
	return string(b[:limit])
}
