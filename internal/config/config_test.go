package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	opts, err := Load(filepath.Join(t.TempDir(), "no-such-file.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if opts.RoguelikeKeys {
		t.Error("RoguelikeKeys should default to false")
	}
	if !opts.Bell {
		t.Error("Bell should default to true")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opts.yaml")
	want := Options{RoguelikeKeys: true, Bell: false, SavePath: "/tmp/x.save"}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Errorf("round trip = %+v; want %+v", got, want)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opts.yaml")
	if err := os.WriteFile(path, []byte("roguelike_keys: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !got.RoguelikeKeys {
		t.Error("RoguelikeKeys not read from file")
	}
	if !got.Bell {
		t.Error("unset Bell should keep its default")
	}
}
