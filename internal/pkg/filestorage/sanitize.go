package filestorage

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SanitizeFilename reduces an uploaded file name to a flat ASCII name that is
// safe to join onto the upload directory: no separators, no leading dots, and
// only [A-Za-z0-9_.-]. It returns "" when nothing usable is left.
func SanitizeFilename(name string) string {
	name = norm.NFKD.String(name)

	ascii := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		if name[i] < 0x80 {
			ascii = append(ascii, name[i])
		}
	}
	name = string(ascii)

	name = strings.NewReplacer("/", " ", `\`, " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")

	return strings.Trim(name, "._")
}
