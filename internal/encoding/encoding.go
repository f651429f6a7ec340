package encoding

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Charset names an output text encoding.
type Charset string

const (
	UTF8 Charset = "utf-8"
	// UTF8BOM is UTF-8 prefixed with a byte order mark, which spreadsheet
	// tools need to stop guessing a legacy code page.
	UTF8BOM     Charset = "utf-8-bom"
	Windows1252 Charset = "windows-1252"
)

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// ParseCharset resolves a charset name, case-insensitively. Empty means UTF-8.
func ParseCharset(name string) (Charset, error) {
	switch cs := Charset(strings.ToLower(strings.TrimSpace(name))); cs {
	case "":
		return UTF8, nil
	case UTF8, UTF8BOM, Windows1252:
		return cs, nil
	case "cp1252", "latin1":
		return Windows1252, nil
	}

	return "", fmt.Errorf("unsupported charset: %q", name)
}

// NewWriter returns a writer that encodes UTF-8 input into cs before writing
// it to w. Runes windows-1252 cannot represent are replaced.
func NewWriter(w io.Writer, cs Charset) (io.Writer, error) {
	switch cs {
	case UTF8, "":
		return w, nil
	case UTF8BOM:
		if _, err := w.Write(bomUTF8); err != nil {
			return nil, fmt.Errorf("writing bom: %w", err)
		}

		return w, nil
	case Windows1252:
		enc := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder())
		return transform.NewWriter(w, enc), nil
	}

	return nil, fmt.Errorf("unsupported charset: %q", cs)
}
