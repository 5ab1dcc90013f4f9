package filestore

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestFileStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	baseDir := t.TempDir()
	return New(baseDir, DefaultURLPrefix), baseDir
}

func TestWriteRecipeImage(t *testing.T) {
	store, baseDir := newTestFileStore(t)
	data := []byte("test image data")

	urlPath, n, err := store.WriteRecipeImage(7, ".jpg", data)
	if err != nil {
		t.Fatalf("WriteRecipeImage() error = %v", err)
	}
	if n != len(data) {
		t.Errorf("WriteRecipeImage() n = %d, want %d", n, len(data))
	}
	if urlPath != "/media/recipes/7.jpg" {
		t.Errorf("WriteRecipeImage() urlPath = %q, want %q", urlPath, "/media/recipes/7.jpg")
	}

	written, err := os.ReadFile(filepath.Join(baseDir, "recipes", "7.jpg"))
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if string(written) != string(data) {
		t.Errorf("file content = %q, want %q", written, data)
	}
}

func TestWriteRecipeImageOverwrites(t *testing.T) {
	store, baseDir := newTestFileStore(t)

	if _, _, err := store.WriteRecipeImage(1, ".png", []byte("first")); err != nil {
		t.Fatalf("WriteRecipeImage() error = %v", err)
	}
	if _, _, err := store.WriteRecipeImage(1, ".png", []byte("second")); err != nil {
		t.Fatalf("WriteRecipeImage() error = %v", err)
	}

	written, err := os.ReadFile(filepath.Join(baseDir, "recipes", "1.png"))
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if string(written) != "second" {
		t.Errorf("file content = %q, want %q", written, "second")
	}
}

func TestDeleteRecipeImage(t *testing.T) {
	store, baseDir := newTestFileStore(t)

	urlPath, _, err := store.WriteRecipeImage(3, ".webp", []byte("data"))
	if err != nil {
		t.Fatalf("WriteRecipeImage() error = %v", err)
	}

	if err := store.DeleteRecipeImage(urlPath); err != nil {
		t.Fatalf("DeleteRecipeImage() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(baseDir, "recipes", "3.webp")); !os.IsNotExist(err) {
		t.Error("image still exists after delete")
	}

	// Deleting twice is not an error.
	if err := store.DeleteRecipeImage(urlPath); err != nil {
		t.Errorf("DeleteRecipeImage() second call error = %v", err)
	}
}

func TestDeleteRecipeImageRejectsTraversal(t *testing.T) {
	store, _ := newTestFileStore(t)

	if err := store.DeleteRecipeImage("/media/../etc/passwd"); err == nil {
		t.Error("DeleteRecipeImage() accepted a traversal path")
	}
	if err := store.DeleteRecipeImage("/media/"); err == nil {
		t.Error("DeleteRecipeImage() accepted an empty path")
	}
}

func TestSuffixFromName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "jpeg", in: "photo.jpg", want: ".jpg"},
		{name: "double extension", in: "archive.tar.gz", want: ".gz"},
		{name: "no extension", in: "README", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SuffixFromName(tt.in); got != tt.want {
				t.Errorf("SuffixFromName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestURLPathFor(t *testing.T) {
	store, _ := newTestFileStore(t)
	if got := store.URLPathFor(12, ".gif"); got != "/media/recipes/12.gif" {
		t.Errorf("URLPathFor() = %q, want %q", got, "/media/recipes/12.gif")
	}
}
