package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/elbow-jason/stratifiedjs/consts"
)

const testHash = "0123456789abcdef0123456789abcdef"

func TestStampMatchesRegex(t *testing.T) {
	m := consts.StampRe.FindStringSubmatch(stamp(testHash))
	if m == nil {
		t.Fatalf("stamp does not match its own regex: %q", stamp(testHash))
	}
	if m[1] != consts.VERSION {
		t.Fatalf("stamp version = %q, want %q", m[1], consts.VERSION)
	}
	if m[2] != testHash {
		t.Fatalf("stamp hash = %q, want %q", m[2], testHash)
	}
}

func TestOutputFresh(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "out.js")

	if outputFresh(dst, testHash) {
		t.Fatalf("missing file reported fresh")
	}

	if err := os.WriteFile(dst, []byte(stamp(testHash)+"var a;\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if !outputFresh(dst, testHash) {
		t.Fatalf("stamped file not fresh")
	}
	if !outputOurs(dst) {
		t.Fatalf("stamped file not ours")
	}
	if outputFresh(dst, "ffffffffffffffffffffffffffffffff") {
		t.Fatalf("changed source reported fresh")
	}

	if err := os.WriteFile(dst, []byte("var a;\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if outputOurs(dst) {
		t.Fatalf("unstamped file reported ours")
	}
	if outputFresh(dst, testHash) {
		t.Fatalf("unstamped file reported fresh")
	}
}
