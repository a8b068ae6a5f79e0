package tui

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/blerimk/schoolroster/models"
	"github.com/google/uuid"
)

// loadPhoto reads an image file from disk for attachment to a student
// record. The bytes are kept opaque; only the MIME type is sniffed so the
// detail screen can label the attachment.
func loadPhoto(path string) (data []byte, mime, filename string, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, "", "", fmt.Errorf("file not found")
	}
	if info.IsDir() {
		return nil, "", "", fmt.Errorf("path is a directory, not a file")
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, "", "", fmt.Errorf("cannot read file: %w", err)
	}

	return data, http.DetectContentType(data), filepath.Base(path), nil
}

// exportPhoto writes a stored photo blob into dir and returns the written
// path. When the original filename was not recorded a random name with a
// MIME-derived extension is used.
func exportPhoto(dir string, student models.Student) (string, error) {
	if !student.HasPhoto() {
		return "", fmt.Errorf("student has no photo")
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create export directory: %w", err)
	}

	filename := student.PhotoFilename
	if filename == "" {
		filename = "photo-" + uuid.NewString() + extensionForMIME(student.PhotoMIME)
	}

	path := filepath.Join(dir, filepath.Base(filename))
	if err := os.WriteFile(path, student.Photo, 0o600); err != nil {
		return "", fmt.Errorf("cannot write photo: %w", err)
	}

	return path, nil
}

func extensionForMIME(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}

func photoPreview(path string) string {
	if path == "" {
		return "(none)"
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "not found"
	}

	return fmt.Sprintf("%s (%s)", filepath.Base(path), formatSize(info.Size()))
}
