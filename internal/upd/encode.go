// =============================================================================
// UPD XML Generator - Serialization and Encoding
// =============================================================================
//
// The format mandates a single-byte Cyrillic codepage: the file is encoded in
// windows-1251 and the XML declaration names that encoding. The tree is first
// marshaled to indented UTF-8 and then transcoded as a whole, so encoding
// errors surface before anything touches the filesystem.
//
// =============================================================================

package upd

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// outputEncoding is the codepage name written into the XML declaration.
const outputEncoding = "windows-1251"

// marshalWindows1251 serializes the tree with the given indentation unit and
// returns the complete windows-1251 encoded document, declaration included.
func marshalWindows1251(doc *xmlFile, indent string) ([]byte, error) {
	var utf8Buf bytes.Buffer
	utf8Buf.WriteString(fmt.Sprintf("<?xml version=\"1.0\" encoding=\"%s\"?>\n", outputEncoding))

	enc := xml.NewEncoder(&utf8Buf)
	enc.Indent("", indent)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("xml encoding failed: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("xml encoding failed: %w", err)
	}
	utf8Buf.WriteByte('\n')

	// Transcode the whole document at once. A rune outside windows-1251
	// fails the transform, which is the correct outcome for a document the
	// receiving system could not decode anyway.
	encoded, _, err := transform.Bytes(charmap.Windows1251.NewEncoder(), utf8Buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("windows-1251 transcoding failed: %w", err)
	}

	return encoded, nil
}
