package main

import (
	"strings"
	"testing"
)

func TestVersion(t *testing.T) {
	v := Version()
	if v == "" {
		t.Fatal("empty version")
	}
	if !strings.Contains(v, strings.TrimSpace(embeddedVersion)) && !strings.HasPrefix(v, "v") {
		t.Errorf("Version() = %q, want it to carry %q or a module version", v, embeddedVersion)
	}
}
