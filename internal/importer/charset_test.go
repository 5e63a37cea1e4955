package importer

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

func TestToUTF8(t *testing.T) {
	const text = "date;notes\n2025-01-02;Café Niño\n"

	latin1, err := charmap.Windows1252.NewEncoder().Bytes([]byte(text))
	require.NoError(t, err)

	utf16le, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(text))
	require.NoError(t, err)

	type testCase struct {
		name        string
		input       []byte
		wantCharset string
	}

	tests := []testCase{
		{name: "plain utf8", input: []byte(text), wantCharset: "UTF-8"},
		{name: "utf8 bom stripped", input: append([]byte{0xEF, 0xBB, 0xBF}, text...), wantCharset: "UTF-8"},
		{name: "utf16 with bom", input: utf16le, wantCharset: "UTF-16LE"},
		{name: "windows-1252", input: latin1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, charset, err := toUTF8(bytes.NewReader(tt.input))
			require.NoError(t, err)

			if tt.wantCharset != "" {
				assert.Equal(t, tt.wantCharset, charset)
			}

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, text, string(got))
		})
	}
}

func TestToUTF8_Empty(t *testing.T) {
	r, charset, err := toUTF8(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Equal(t, "UTF-8", charset)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Empty(t, got)
}
