package audit

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDictionaryFallback(t *testing.T) {
	d, err := LoadDictionary("")
	if err != nil {
		t.Fatalf("LoadDictionary: %v", err)
	}
	if !d.Contains("password") {
		t.Fatal("fallback dictionary does not contain a well-known weak password")
	}
	if d.Contains("xk7!qQ2vPz9_random") {
		t.Fatal("fallback dictionary falsely flagged a random string")
	}
}

func TestLoadDictionaryFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.txt")
	if err := os.WriteFile(path, []byte("correcthorse\nbatterystaple\n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	d, err := LoadDictionary(path)
	if err != nil {
		t.Fatalf("LoadDictionary: %v", err)
	}
	if !d.Contains("correcthorse") {
		t.Fatal("custom dictionary missing its own entry")
	}
	if d.Contains("password") {
		t.Fatal("custom dictionary should not fall back to built-in words")
	}
}

func TestCheckFlagsDictionaryWord(t *testing.T) {
	d, _ := LoadDictionary("")
	v := Check("password", d, NoopBreachChecker{})
	if !v.Weak {
		t.Fatal("expected dictionary word to be flagged weak")
	}
}

func TestCheckAcceptsStrongPassword(t *testing.T) {
	d, _ := LoadDictionary("")
	v := Check("xk7!qQ2vPz9_random", d, NoopBreachChecker{})
	if v.Weak {
		t.Fatalf("expected strong password to pass, got weak: %s", v.Reason)
	}
}

func TestNoopBreachCheckerNeverFlags(t *testing.T) {
	found, _, err := NoopBreachChecker{}.Breached("anything")
	if err != nil {
		t.Fatalf("Breached: %v", err)
	}
	if found {
		t.Fatal("NoopBreachChecker reported a breach")
	}
}
