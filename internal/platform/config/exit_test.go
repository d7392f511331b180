package config

import (
	"bytes"
	"testing"
)

func TestExitfWritesMessageAndExitsWithCodeOne(t *testing.T) {
	var code int
	previous := exit
	exit = func(c int) { code = c }
	t.Cleanup(func() { exit = previous })

	var buf bytes.Buffer
	exitf(&buf, "fatal: %s", "catalog missing")

	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if got := buf.String(); got != "fatal: catalog missing\n" {
		t.Fatalf("output = %q, want %q", got, "fatal: catalog missing\n")
	}
}
