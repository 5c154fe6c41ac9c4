// Package encoding turns uploaded text files of unknown charset into UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	xenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// sniffSize is how much of the input is inspected before decoding starts.
const sniffSize = 4096

const (
	CharsetUTF8        = "UTF-8"
	CharsetUTF16LE     = "UTF-16LE"
	CharsetUTF16BE     = "UTF-16BE"
	CharsetWindows1252 = "windows-1252"
)

var boms = []struct {
	prefix  []byte
	charset string
	decoder xenc.Encoding
}{
	{prefix: []byte{0xEF, 0xBB, 0xBF}, charset: CharsetUTF8},
	{prefix: []byte{0xFF, 0xFE}, charset: CharsetUTF16LE, decoder: unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)},
	{prefix: []byte{0xFE, 0xFF}, charset: CharsetUTF16BE, decoder: unicode.UTF16(unicode.BigEndian, unicode.UseBOM)},
}

// chardet names mapped to decoders. Anything else falls back to Windows-1252.
var detected = map[string]xenc.Encoding{
	"ISO-8859-1":   charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"ISO-8859-15":  charmap.ISO8859_15,
	"ISO-8859-9":   charmap.ISO8859_9,
}

// Decoded is a UTF-8 view of the input along with the charset it was read as.
type Decoded struct {
	io.Reader
	Charset string
}

// Decode picks the input charset and returns a UTF-8 reader.
// Order: byte order mark, valid UTF-8, chardet heuristics, Windows-1252.
func Decode(r io.Reader) (*Decoded, error) {
	br := bufio.NewReaderSize(r, sniffSize)

	head, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	for _, b := range boms {
		if !bytes.HasPrefix(head, b.prefix) {
			continue
		}

		if b.decoder == nil {
			_, _ = br.Discard(len(b.prefix))
			return &Decoded{Reader: br, Charset: b.charset}, nil
		}

		return &Decoded{Reader: transform.NewReader(br, b.decoder.NewDecoder()), Charset: b.charset}, nil
	}

	if utf8.Valid(trimPartialRune(head)) {
		return &Decoded{Reader: br, Charset: CharsetUTF8}, nil
	}

	if res, err := chardet.NewTextDetector().DetectBest(head); err == nil {
		if res.Charset == CharsetUTF8 {
			return &Decoded{Reader: br, Charset: CharsetUTF8}, nil
		}

		if e, ok := detected[res.Charset]; ok {
			return &Decoded{Reader: transform.NewReader(br, e.NewDecoder()), Charset: res.Charset}, nil
		}
	}

	return &Decoded{Reader: transform.NewReader(br, charmap.Windows1252.NewDecoder()), Charset: CharsetWindows1252}, nil
}

// trimPartialRune drops a multi-byte sequence cut off at the end of the sniff window.
func trimPartialRune(b []byte) []byte {
	for i := 1; i <= utf8.UTFMax && i <= len(b); i++ {
		if utf8.RuneStart(b[len(b)-i]) {
			if !utf8.FullRune(b[len(b)-i:]) {
				return b[:len(b)-i]
			}

			break
		}
	}

	return b
}
