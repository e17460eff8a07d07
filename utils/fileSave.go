package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

var SupportedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// SaveFile writes an uploaded file under folder with a random name and
// returns the stored filename.
func SaveFile(file multipart.File, header *multipart.FileHeader, folder string) (string, error) {
	if err := EnsureDir(folder); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%s%s", GenerateRandomString(12), filepath.Ext(header.Filename))
	out, err := os.Create(filepath.Join(folder, filename))
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		return "", err
	}
	return filename, nil
}

// SaveImageWithThumb stores an uploaded image and a 200px-wide thumbnail next
// to it (thumb_<name>). Returns the stored filename.
func SaveImageWithThumb(file multipart.File, header *multipart.FileHeader, folder string) (string, error) {
	filename, err := SaveFile(file, header, folder)
	if err != nil {
		return "", err
	}

	src, err := imaging.Open(filepath.Join(folder, filename))
	if err != nil {
		return "", err
	}
	thumb := imaging.Resize(src, 200, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(folder, "thumb_"+filename)); err != nil {
		return "", err
	}

	return filename, nil
}
