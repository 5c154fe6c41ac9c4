package encoding_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/copycorner/internal/encoding"
)

func decodeAll(t *testing.T, in []byte) (string, string) {
	t.Helper()

	d, err := encoding.Decode(bytes.NewReader(in))
	require.NoError(t, err)

	got, err := io.ReadAll(d)
	require.NoError(t, err)

	return string(got), d.Charset
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name        string
		input       []byte
		want        string
		wantCharset string
	}{
		{
			name:        "UTF8Passthrough",
			input:       []byte("name,category\nPapel Niño,Paper\n"),
			want:        "name,category\nPapel Niño,Paper\n",
			wantCharset: encoding.CharsetUTF8,
		},
		{
			name:        "UTF8BOMStripped",
			input:       append([]byte{0xEF, 0xBB, 0xBF}, "name;stock\n"...),
			want:        "name;stock\n",
			wantCharset: encoding.CharsetUTF8,
		},
		{
			name:        "UTF16LE",
			input:       []byte{0xFF, 0xFE, 'n', 0, 'a', 0, 'm', 0, 'e', 0},
			want:        "name",
			wantCharset: encoding.CharsetUTF16LE,
		},
		{
			name:  "Windows1252",
			input: []byte{'N', 'i', 0xF1, 'o', ';', '1', '0', '\n'},
			want:  "Niño;10\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, charset := decodeAll(t, tt.input)
			assert.Equal(t, tt.want, got)

			if tt.wantCharset != "" {
				assert.Equal(t, tt.wantCharset, charset)
			}
		})
	}
}

func TestDecode_MultibyteAtSniffBoundary(t *testing.T) {
	input := strings.Repeat("a", 4095) + "ñ tail"

	got, charset := decodeAll(t, []byte(input))
	assert.Equal(t, input, got)
	assert.Equal(t, encoding.CharsetUTF8, charset)
}
