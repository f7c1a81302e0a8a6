// Package audit implements the local heuristics behind the vault's
// "check" command: flagging passwords that are plain dictionary words.
//
// The original tool also queried the Have I Been Pwned breached-password
// API over TLS for every checked password. That network collaborator is
// represented here only as an interface (BreachChecker) with a no-op
// implementation — wiring a real HTTP client to it is explicitly out of
// scope, but the seam is kept so the policy (what counts as "weak") is
// not hard-coded to dictionary membership alone.
package audit

import (
	"bufio"
	"os"
	"strings"
)

// Dictionary reports whether a candidate password is a known weak word.
type Dictionary interface {
	Contains(password string) bool
}

// BreachChecker reports whether a password is known to have appeared in
// a public breach corpus. NoopBreachChecker is the only implementation
// shipped: the real HIBP range-query protocol is a named, out-of-scope
// network collaborator.
type BreachChecker interface {
	Breached(password string) (found bool, occurrences int, err error)
}

// NoopBreachChecker always reports "not found", standing in for the
// network lookup this vault does not perform.
type NoopBreachChecker struct{}

func (NoopBreachChecker) Breached(password string) (bool, int, error) {
	return false, 0, nil
}

// wordlist is a Dictionary backed by an in-memory set, loaded either
// from a file (one word per line) or from a small built-in fallback.
type wordlist struct {
	words map[string]struct{}
}

func (w *wordlist) Contains(password string) bool {
	_, ok := w.words[password]
	return ok
}

// fallbackWords is used when no dictionary path is configured and no
// system wordlist is found, so "check" still catches the most glaring
// weak passwords rather than silently skipping the dictionary test.
var fallbackWords = []string{
	"password", "letmein", "qwerty", "admin", "welcome",
	"monkey", "dragon", "football", "iloveyou", "sunshine",
	"princess", "master", "shadow", "superman", "trustno1",
}

// LoadDictionary reads one word per line from path. If path is empty,
// it falls back to fallbackWords.
func LoadDictionary(path string) (Dictionary, error) {
	if path == "" {
		return newWordlist(fallbackWords), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line != "" {
			words = append(words, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return newWordlist(words), nil
}

func newWordlist(words []string) *wordlist {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return &wordlist{words: set}
}

// Verdict is the per-entry result of checking a password.
type Verdict struct {
	Weak        bool
	Reason      string
	Occurrences int
}

// Check classifies password using dict first (cheap, local) and falls
// back to breach only when the dictionary test passes, mirroring the
// original tool's short-circuit order.
func Check(password string, dict Dictionary, breach BreachChecker) Verdict {
	if dict.Contains(password) {
		return Verdict{Weak: true, Reason: "dictionary word"}
	}

	found, count, err := breach.Breached(password)
	if err != nil {
		return Verdict{Weak: false, Reason: "breach check skipped: " + err.Error()}
	}
	if found {
		return Verdict{Weak: true, Reason: "found in password breaches", Occurrences: count}
	}
	return Verdict{Weak: false, Reason: "OK"}
}
