package wikitext

import (
	"regexp"
	"strings"

	"github.com/signadot/wikidiff/lang"
)

var mediaExt = `\.(?i:` + strings.Join(lang.MediaExtensions, "|") + `)`

var (
	mediaNameRE = regexp.MustCompile(`^(?:[^:|\[\]{}<>\n]+:)?[^|\[\]{}<>\n]+` + mediaExt + `$`)
	mediaRefRE  = regexp.MustCompile(`[^\s|=\[\]{}<>:][^|=\n\[\]{}<>]*` + mediaExt + `\b`)
)

// IsMediaName reports whether s, optionally namespace prefixed, names a
// media file.
func IsMediaName(s string) bool {
	return mediaNameRE.MatchString(strings.TrimSpace(s))
}

// FindMediaRefs returns the byte spans of bare media file names in s, as
// they appear in template parameters like "image = Foo.jpg".
func FindMediaRefs(s string) [][2]int {
	var res [][2]int
	for _, m := range mediaRefRE.FindAllStringIndex(s, -1) {
		res = append(res, [2]int{m[0], m[1]})
	}
	return res
}
