package wikitext

import "strings"

// GalleryItem is one line of a gallery tag.
type GalleryItem struct {
	File    string
	Caption string
	// byte offsets within the gallery content
	Offset        int
	CaptionOffset int
}

// ParseGallery splits the content of a gallery tag into items. Blank and
// comment lines are skipped; any other line must start with a media file
// name or ErrMalformedGallery is returned.
func ParseGallery(content string) ([]GalleryItem, error) {
	var res []GalleryItem
	off := 0
	for _, line := range strings.SplitAfter(content, "\n") {
		lineOff := off
		off += len(line)
		body := strings.TrimRight(line, "\r\n")
		trimmed := strings.TrimSpace(body)
		if trimmed == "" || strings.HasPrefix(trimmed, "<!--") {
			continue
		}
		file, caption, hasCaption := strings.Cut(body, "|")
		name := strings.TrimSpace(file)
		if !IsMediaName(name) {
			return nil, &ParseErr{Err: ErrMalformedGallery, Offset: lineOff}
		}
		lead := len(body) - len(strings.TrimLeft(body, " \t"))
		item := GalleryItem{File: name, Offset: lineOff + lead}
		if hasCaption {
			item.Caption = caption
			item.CaptionOffset = lineOff + len(file) + 1
		}
		res = append(res, item)
	}
	return res, nil
}
