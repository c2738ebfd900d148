package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"mlbb-extractor/internal/extract"
)

func TestIsImage(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"shot.png", true},
		{"shot.PNG", true},
		{"shot.jpg", true},
		{"shot.jpeg", true},
		{"shot.bmp", true},
		{"shot.gif", false},
		{"shot.png.part", false},
		{"noext", false},
	}
	for _, c := range cases {
		if got := IsImage(c.path); got != c.want {
			t.Errorf("IsImage(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}

func TestListImages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.jpg", "notes.txt", "c.PNG"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	paths, err := ListImages(dir)
	if err != nil {
		t.Fatalf("ListImages: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a.jpg"),
		filepath.Join(dir, "b.png"),
		filepath.Join(dir, "c.PNG"),
	}
	if len(paths) != len(want) {
		t.Fatalf("got %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestListImagesMissingDir(t *testing.T) {
	if _, err := ListImages(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestFlatten(t *testing.T) {
	results := []Result{
		{Image: "a.png", Records: []extract.GameRecord{
			{PlayerStats: extract.PlayerStats{Nickname: "one"}},
			{PlayerStats: extract.PlayerStats{Nickname: "two"}},
		}},
		{Image: "broken.png", Err: errors.New("unreadable")},
		{Image: "b.png", Records: []extract.GameRecord{
			{PlayerStats: extract.PlayerStats{Nickname: "three"}},
		}},
	}

	records := Flatten(results)
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	for i, want := range []string{"one", "two", "three"} {
		if records[i].Nickname != want {
			t.Errorf("records[%d].Nickname = %q, want %q", i, records[i].Nickname, want)
		}
	}
}

func TestFlattenEmpty(t *testing.T) {
	if records := Flatten(nil); records != nil {
		t.Errorf("Flatten(nil) = %v, want nil", records)
	}
}
