package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-caves/internal/caveset"
	"github.com/vovakirdan/tui-caves/internal/config"
	"github.com/vovakirdan/tui-caves/internal/importer"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func legacyFile(t *testing.T) []byte {
	t.Helper()
	data, err := importer.Encode("bd1", append(bytes.Repeat([]byte{0}, 32), 0xFF))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return data
}

func TestResolveCave(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "classic.bd")
	writeFile(t, file, legacyFile(t))
	loader := caveset.NewLoader(nil, dir)

	id, def, err := resolveCave(loader, file, 1)
	if err != nil {
		t.Fatalf("resolveCave(file): %v", err)
	}
	if id != "classic/1" || def == nil {
		t.Errorf("got %q, %v", id, def)
	}

	if _, _, err := resolveCave(loader, file, 9); err == nil {
		t.Error("cave 9 of a one-cave file resolved")
	}

	id, _, err = resolveCave(loader, "classic/1", 1)
	if err != nil || id != "classic/1" {
		t.Errorf("resolveCave(id) = %q, %v", id, err)
	}

	_, _, err = resolveCave(loader, "nosuch/1", 1)
	if err == nil || !strings.Contains(err.Error(), "caves list") {
		t.Errorf("unknown cave error = %v", err)
	}
}

func TestSelectCaves(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "classic.bd"), legacyFile(t))
	loader := caveset.NewLoader(nil, dir)

	for _, arg := range []string{"classic", "classic/1", filepath.Join(dir, "classic.bd")} {
		refs, err := selectCaves(loader, arg)
		if err != nil {
			t.Errorf("selectCaves(%q): %v", arg, err)
			continue
		}
		if len(refs) != 1 || refs[0].id != "classic/1" {
			t.Errorf("selectCaves(%q) = %+v", arg, refs)
		}
	}

	if _, err := selectCaves(loader, "nosuch"); !errors.Is(err, caveset.ErrNotFound) {
		t.Errorf("unknown set error = %v", err)
	}
}

func TestDetectFile(t *testing.T) {
	dir := t.TempDir()
	bd := filepath.Join(dir, "classic.bd")
	writeFile(t, bd, legacyFile(t))
	junk := filepath.Join(dir, "notes.txt")
	writeFile(t, junk, []byte("hello, world"))

	desc, err := detectFile(bd)
	if err != nil {
		t.Fatalf("detectFile: %v", err)
	}
	if !strings.Contains(desc, "(bd1)") || !strings.Contains(desc, "33 byte payload") {
		t.Errorf("desc = %q", desc)
	}

	if _, err := detectFile(junk); !errors.Is(err, importer.ErrUnrecognized) {
		t.Errorf("junk error = %v", err)
	}
	if desc, _ := detectFile(filepath.Join(dir, "set.yaml")); desc != "YAML cave set" {
		t.Errorf("yaml desc = %q", desc)
	}
}

func TestRuntimeConfig(t *testing.T) {
	cfg := config.DefaultEngineConfig()
	cfg.Player.Name = "ann"
	rc := runtimeConfig(cfg, 100, 40)
	if rc.ScreenW != 100 || rc.ScreenH != 40 || rc.Player != "ann" || rc.TickRate != cfg.Engine.TickRate {
		t.Errorf("runtime config = %+v", rc)
	}
	if rc.Level != cfg.LevelIndex() {
		t.Errorf("level = %d, want %d", rc.Level, cfg.LevelIndex())
	}
}
