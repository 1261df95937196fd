package processor

import (
	"bytes"
	"strings"
)

// Magic prefixes for the binary formats the factory can route. HTML has no
// magic number and is handled by a tag scan instead.
var magicKinds = []struct {
	prefix []byte
	kind   string
}{
	{[]byte("%PDF-"), "pdf"},
	{[]byte("\x89PNG\r\n\x1a\n"), "image/png"},
	{[]byte("\xff\xd8\xff"), "image/jpeg"},
	{[]byte("II*\x00"), "image/tiff"},
	{[]byte("MM\x00*"), "image/tiff"},
}

// sniffWindow bounds how far into the document the HTML tag scan looks.
const sniffWindow = 1024

// DetectKind infers a content kind from the document bytes when the caller
// supplied none and the file name gave no hint. Binary formats are matched
// by magic prefix; anything with an HTML tag near the start is markup. The
// empty string means the content is unrecognized and the caller decides
// the fallback.
func DetectKind(data []byte) string {
	for _, m := range magicKinds {
		if bytes.HasPrefix(data, m.prefix) {
			return m.kind
		}
	}

	window := data
	if len(window) > sniffWindow {
		window = window[:sniffWindow]
	}
	head := strings.ToLower(string(window))
	for _, tag := range []string{"<!doctype html", "<html", "<form", "<body", "<input"} {
		if strings.Contains(head, tag) {
			return "html"
		}
	}
	return ""
}
