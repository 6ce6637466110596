// Package decode copies downloaded Workshop content and reverses the byte
// shift applied to marker-suffixed files.
package decode

import (
	"path/filepath"
	"strings"
)

// Key is the per-byte shift, applied modulo 256.
const Key byte = 88

// Marker is appended to the extension of shifted files, e.g. model.cfg
// becomes model.cfgb.
const Marker = "b"

// ItemInfoFile is written by the Workshop into every item root.
const ItemInfoFile = "WorkshopItemInfo.xml"

func Encode(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b + Key
	}
	return out
}

func Decode(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b - Key
	}
	return out
}

// DecodedName returns name without its final character when the file has an
// extension ending in Marker. Names without an extension, including dotfiles
// such as ".cfgb", are never decoded.
func DecodedName(name string) (string, bool) {
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	if ext == "" || ext == base || !strings.HasSuffix(ext, Marker) {
		return "", false
	}
	return name[:len(name)-len(Marker)], true
}
