package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// StorageService maps opaque image refs to served URLs and stores
// uploads under a local media directory. The ref, not the URL, is
// what gets persisted with a message.
type StorageService struct {
	UploadDir string
	BaseURL   string
}

func NewStorageService(uploadDir, baseURL string) *StorageService {
	return &StorageService{UploadDir: uploadDir, BaseURL: baseURL}
}

// ResolveURL returns the public URL for a stored ref, or "" when the
// ref is empty. Computed per read; never stored.
func (s *StorageService) ResolveURL(imageRef string) string {
	if imageRef == "" {
		return ""
	}
	return s.BaseURL + "/media/" + imageRef
}

// SaveUpload writes an uploaded file and returns its ref.
func (s *StorageService) SaveUpload(file *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(s.UploadDir, os.ModePerm); err != nil {
		return "", err
	}

	ext := filepath.Ext(filepath.Base(file.Filename))
	ref := fmt.Sprintf("%s_%s%s", uuid.NewString(), time.Now().Format("20060102150405"), ext)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	out, err := os.Create(filepath.Join(s.UploadDir, ref))
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(filepath.Join(s.UploadDir, ref))
		return "", err
	}

	return ref, nil
}
