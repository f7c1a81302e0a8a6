// Package genpass generates random passwords drawn from a fixed
// accepted-character alphabet, rejecting any raw random byte that
// falls outside it rather than mapping it into range (keeping the
// distribution over accepted characters exactly uniform).
package genpass

import (
	"github.com/redeauxlabs/passvault/internal/secrand"
	"github.com/redeauxlabs/passvault/internal/vaulterr"
)

// DefaultLength is used when a caller does not specify a length.
const DefaultLength = 30

const chunkSize = 255

func isAccepted(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '_':
		return true
	default:
		return false
	}
}

// Generate returns a random password of length bytes, each drawn
// uniformly from [a-zA-Z0-9_]. A length of 0 uses DefaultLength.
// Rejected random bytes are simply discarded and redrawn.
func Generate(length int) (string, error) {
	if length == 0 {
		length = DefaultLength
	}
	if length < 0 {
		return "", vaulterr.New(vaulterr.BadSchema)
	}

	out := make([]byte, 0, length)
	buf := make([]byte, chunkSize)

	for len(out) < length {
		remaining := length - len(out)
		chunk := chunkSize
		if remaining < chunk {
			chunk = remaining
		}
		if err := secrand.Bytes(buf[:chunk]); err != nil {
			return "", err
		}
		for _, c := range buf[:chunk] {
			if isAccepted(c) {
				out = append(out, c)
			}
		}
	}

	return string(out), nil
}
