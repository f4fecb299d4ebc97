package handler

import (
	"io"
	"mime/multipart"

	"github.com/gin-gonic/gin"
)

// maxInMemoryFileSize bounds how much of an uploaded file is read into
// memory before handing it to object storage
const maxInMemoryFileSize = 10 << 20

// formFile reads an uploaded multipart file into memory. Returns ok=false
// when the field is absent, which callers treat as an optional upload.
func formFile(c *gin.Context, field string) (name, contentType string, data []byte, ok bool, err error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return "", "", nil, false, nil
	}
	if fileHeader.Size > maxInMemoryFileSize {
		return "", "", nil, false, &fileTooLargeError{field: field}
	}

	data, err = readMultipartFile(fileHeader)
	if err != nil {
		return "", "", nil, false, err
	}
	return fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data, true, nil
}

func readMultipartFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxInMemoryFileSize))
}

type fileTooLargeError struct {
	field string
}

func (e *fileTooLargeError) Error() string {
	return "uploaded file too large: " + e.field
}
