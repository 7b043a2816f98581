package controllers

import (
	"fmt"
	"io"
	"net/http"
)

// maxUploadBytes caps image uploads at 10 MiB.
const maxUploadBytes = 10 << 20

// readUpload parses a multipart form and returns the uploaded file named
// "file" along with its original filename.
func readUpload(r *http.Request) (filename string, content []byte, err error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return "", nil, fmt.Errorf("parse multipart form: %w", err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, fmt.Errorf("missing file part: %w", err)
	}
	defer file.Close()

	content, err = io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return "", nil, fmt.Errorf("read upload: %w", err)
	}
	return header.Filename, content, nil
}
