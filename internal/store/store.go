// Package store reads and writes the vault's on-disk JSON file: an
// array of objects, each holding the base64 encoding of one entry's
// seven binary fields.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/redeauxlabs/passvault/internal/b64"
	"github.com/redeauxlabs/passvault/internal/entry"
	"github.com/redeauxlabs/passvault/internal/vaulterr"
)

// record is the on-disk shape of one entry: every field base64-encoded.
// Unknown fields in the source JSON are permitted and silently ignored:
// strictObject looks up only the seven named keys.
type record struct {
	Space    string `json:"space"`
	Key      string `json:"key"`
	Value    string `json:"value"`
	HMAC     string `json:"hmac"`
	HMACSalt string `json:"hmac_salt"`
	Salt     string `json:"salt"`
	IV       string `json:"iv"`
}

// Import reads path, parses it as a top-level JSON array of entry
// records, and returns the decoded entries in file order. Any schema
// violation — a non-array top level, a non-object element, a missing
// or non-string field, or malformed base64 — is reported as BadSchema.
//
// The file format carries no work-factor field (the original vault
// format never persisted one either: every entry was re-stamped with
// whatever work factor the current run was invoked with). workFactor
// is applied uniformly to every imported entry for this reason.
func Import(path string, workFactor int) ([]*entry.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, vaulterr.Wrap(vaulterr.IO, err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, vaulterr.Wrap(vaulterr.BadSchema, err)
	}

	entries := make([]*entry.Entry, 0, len(raw))
	for _, elem := range raw {
		var r record
		if err := strictObject(elem, &r); err != nil {
			return nil, err
		}

		e, err := decodeRecord(&r)
		if err != nil {
			return nil, err
		}
		e.WorkFactor = workFactor
		entries = append(entries, e)
	}

	return entries, nil
}

// strictObject unmarshals elem into r, rejecting anything that is not a
// JSON object and any field present but not a JSON string.
func strictObject(elem json.RawMessage, r *record) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(elem, &fields); err != nil {
		return vaulterr.Wrap(vaulterr.BadSchema, err)
	}

	get := func(name string) (string, error) {
		v, ok := fields[name]
		if !ok {
			return "", vaulterr.New(vaulterr.BadSchema)
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return "", vaulterr.Wrap(vaulterr.BadSchema, err)
		}
		return s, nil
	}

	var err error
	if r.Space, err = get("space"); err != nil {
		return err
	}
	if r.Key, err = get("key"); err != nil {
		return err
	}
	if r.Value, err = get("value"); err != nil {
		return err
	}
	if r.HMAC, err = get("hmac"); err != nil {
		return err
	}
	if r.HMACSalt, err = get("hmac_salt"); err != nil {
		return err
	}
	if r.Salt, err = get("salt"); err != nil {
		return err
	}
	if r.IV, err = get("iv"); err != nil {
		return err
	}
	return nil
}

func decodeRecord(r *record) (*entry.Entry, error) {
	space, err := b64.Decode(r.Space)
	if err != nil {
		return nil, err
	}
	key, err := b64.Decode(r.Key)
	if err != nil {
		return nil, err
	}
	value, err := b64.Decode(r.Value)
	if err != nil {
		return nil, err
	}
	hmac, err := b64.Decode(r.HMAC)
	if err != nil {
		return nil, err
	}
	hmacSalt, err := b64.Decode(r.HMACSalt)
	if err != nil {
		return nil, err
	}
	salt, err := b64.Decode(r.Salt)
	if err != nil {
		return nil, err
	}
	iv, err := b64.Decode(r.IV)
	if err != nil {
		return nil, err
	}

	return &entry.Entry{
		Space:    space,
		Key:      key,
		Value:    value,
		HMAC:     hmac,
		HMACSalt: hmacSalt,
		Salt:     salt,
		IV:       iv,
	}, nil
}

// Export serialises entries as compact JSON and writes them to path
// atomically: the data lands in a temporary file first, which is
// renamed over path only once the write fully succeeds. The temporary
// file is a sibling of path ("{path}~", mode 0600) so the rename stays
// on one filesystem, same as the original vault's export step.
//
// A directory that won't even allow a temp file to be created in it
// (no write permission on the directory itself, only on the existing
// vault file) falls back, when $TMPDIR is set, to staging the data there
// and then overwriting path's content in place; with $TMPDIR unset the
// permission error is returned as IO. That fallback gives up the
// atomic-rename guarantee — a crash mid-write can leave path
// truncated — since renaming into a directory that disallows creating
// entries is impossible regardless of where the temp file lives.
func Export(path string, entries []*entry.Entry) error {
	recs := make([]record, len(entries))
	for i, e := range entries {
		recs[i] = record{
			Space:    b64.Encode(e.Space),
			Key:      b64.Encode(e.Key),
			Value:    b64.Encode(e.Value),
			HMAC:     b64.Encode(e.HMAC),
			HMACSalt: b64.Encode(e.HMACSalt),
			Salt:     b64.Encode(e.Salt),
			IV:       b64.Encode(e.IV),
		}
	}

	data, err := json.Marshal(recs)
	if err != nil {
		return vaulterr.Wrap(vaulterr.IO, err)
	}

	resolved := path
	if target, err := filepath.EvalSymlinks(path); err == nil {
		resolved = target
	}

	if err := writeAtomically(resolved, data); err != nil {
		if !os.IsPermission(err) {
			return vaulterr.Wrap(vaulterr.IO, err)
		}
		tmpDir := os.Getenv("TMPDIR")
		if tmpDir == "" {
			return vaulterr.Wrap(vaulterr.IO, err)
		}
		if fbErr := writeViaTmpDirFallback(resolved, tmpDir, data); fbErr != nil {
			return vaulterr.Wrap(vaulterr.IO, fbErr)
		}
	}

	return nil
}

// writeAtomically stages data in a sibling temp file next to dst and
// renames it into place.
func writeAtomically(dst string, data []byte) error {
	tmp := dst + "~"

	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return err
	}

	return nil
}

// writeViaTmpDirFallback stages data under tmpDir (so a mid-write
// failure never touches dst at all) and then overwrites dst's
// existing content directly, since dst's directory disallows creating
// the sibling temp file writeAtomically needs.
func writeViaTmpDirFallback(dst, tmpDir string, data []byte) error {
	staged := filepath.Join(tmpDir, filepath.Base(dst)+"~")

	if err := os.WriteFile(staged, data, 0o600); err != nil {
		os.Remove(staged)
		return err
	}
	defer os.Remove(staged)

	return os.WriteFile(dst, data, 0o600)
}
