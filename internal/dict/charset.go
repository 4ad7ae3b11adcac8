package dict

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Decoder returns r decoded to UTF-8. Encoding names a charset known to
// the WHATWG encoding index ("utf-8", "iso-8859-3", "utf-16le", ...); empty
// means UTF-8. A byte order mark always wins over the name.
func Decoder(r io.Reader, encoding string) (io.Reader, error) {
	encoding = NormalizeEncoding(encoding)
	enc, err := htmlindex.Get(encoding)
	if err != nil {
		return nil, fmt.Errorf("encoding %q: %w", encoding, err)
	}
	return transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder())), nil
}

func NormalizeEncoding(encoding string) string {
	encoding = strings.ToLower(strings.TrimSpace(encoding))
	if encoding == "" {
		return "utf-8"
	}
	return encoding
}
