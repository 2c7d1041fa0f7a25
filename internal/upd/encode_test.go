package upd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalWindows1251Declaration(t *testing.T) {
	b := newSampleBuilder(t)

	data, err := marshalWindows1251(b.buildTree(b.FileName()), "  ")
	require.NoError(t, err)

	// The declaration is pure ASCII and survives transcoding byte for byte.
	assert.True(t, bytes.HasPrefix(data, []byte(`<?xml version="1.0" encoding="windows-1251"?>`)))
	assert.True(t, bytes.HasSuffix(data, []byte("\n")))
}

func TestMarshalWindows1251CyrillicBytes(t *testing.T) {
	b := newSampleBuilder(t)

	data, err := marshalWindows1251(b.buildTree(b.FileName()), "  ")
	require.NoError(t, err)

	// "РОССИЯ" in windows-1251 is a fixed six-byte sequence; its presence
	// proves the payload is single-byte encoded, not UTF-8.
	cp1251Russia := []byte{0xd0, 0xce, 0xd1, 0xd1, 0xc8, 0xdf}
	assert.True(t, bytes.Contains(data, cp1251Russia))

	utf8Russia := []byte("РОССИЯ")
	assert.False(t, bytes.Contains(data, utf8Russia))
}

func TestMarshalWindows1251RejectsUnencodableRunes(t *testing.T) {
	b := newSampleBuilder(t)
	b.seller.Name = "漢字" // outside the windows-1251 repertoire

	_, err := marshalWindows1251(b.buildTree(b.FileName()), "  ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "windows-1251")
}
