// Package b64 encodes and decodes the base64 string fields of the
// on-disk vault format.
package b64

import (
	"encoding/base64"

	"github.com/redeauxlabs/passvault/internal/vaulterr"
)

// Encode returns the standard (no line wrapping) base64 encoding of
// data.
func Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// Decode inverts Encode. Non-base64 input is reported as BadSchema,
// since the only caller of Decode is the store's JSON importer.
func Decode(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, vaulterr.Wrap(vaulterr.BadSchema, err)
	}
	return b, nil
}
