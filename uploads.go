package main

import (
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// allowedImageExtensions is the upload allow-list.
var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// saveUploadedImage stores the "image" form file under a generated
// collision-resistant name and returns the stored filename. An absent file
// or a disallowed extension returns "": callers proceed without an image.
func saveUploadedImage(r *http.Request, prefix string) string {
	file, header, err := r.FormFile("image")
	if err != nil {
		return ""
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExtensions[ext] {
		log.WithField("filename", header.Filename).Warn("rejected upload with disallowed extension")
		return ""
	}

	name := prefix + "_" + uuid.NewString() + ext
	if err := writeUpload(file, name); err != nil {
		log.WithError(err).WithField("filename", name).Error("storing upload")
		return ""
	}
	return name
}

func writeUpload(src multipart.File, name string) error {
	dir := viper.GetString("uploads.dir")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}
