// Package imagedata turns uploaded images into data URLs. There is no file
// storage: the encoded image is kept on the entity itself.
package imagedata

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/yigit/campusbuzz/internal/pkg/apperrors"
)

// MaxSize is the largest accepted upload in bytes
const MaxSize = 5 << 20

// Encoder reads image uploads
type Encoder interface {
	// EncodeFile encodes an uploaded file. A nil header yields "".
	EncodeFile(fileHeader *multipart.FileHeader) (string, error)
	EncodeFiles(headers []*multipart.FileHeader) ([]string, error)
	// Encode encodes raw image bytes read from r
	Encode(r io.Reader) (string, error)
}

// DataURLEncoder sniffs the content type and rejects anything that is not
// an image or exceeds maxSize
type DataURLEncoder struct {
	maxSize int64
}

// NewEncoder creates a DataURLEncoder. A non-positive maxSize means MaxSize.
func NewEncoder(maxSize int64) *DataURLEncoder {
	if maxSize <= 0 {
		maxSize = MaxSize
	}
	return &DataURLEncoder{maxSize: maxSize}
}

// EncodeFile implements Encoder
func (e *DataURLEncoder) EncodeFile(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", nil
	}
	if fileHeader.Size > e.maxSize {
		return "", tooLarge(e.maxSize)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()
	return e.Encode(file)
}

// EncodeFiles encodes every header in order
func (e *DataURLEncoder) EncodeFiles(headers []*multipart.FileHeader) ([]string, error) {
	out := make([]string, 0, len(headers))
	for _, h := range headers {
		url, err := e.EncodeFile(h)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", h.Filename, err)
		}
		out = append(out, url)
	}
	return out, nil
}

// Encode implements Encoder
func (e *DataURLEncoder) Encode(r io.Reader) (string, error) {
	// one extra byte tells us the limit was exceeded
	data, err := io.ReadAll(io.LimitReader(r, e.maxSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if int64(len(data)) > e.maxSize {
		return "", tooLarge(e.maxSize)
	}
	if len(data) == 0 {
		return "", apperrors.NewCustomError(apperrors.ErrBadRequest, "image is empty")
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", apperrors.NewCustomError(
			errors.Join(apperrors.ErrBadRequest, apperrors.ErrInvalidImage),
			fmt.Sprintf("unsupported file type %s, only images are accepted", mtype.String()),
		)
	}

	var buf bytes.Buffer
	buf.Grow(len("data:;base64,") + len(mtype.String()) + base64.StdEncoding.EncodedLen(len(data)))
	buf.WriteString("data:")
	buf.WriteString(mediaType(mtype))
	buf.WriteString(";base64,")
	buf.WriteString(base64.StdEncoding.EncodeToString(data))
	return buf.String(), nil
}

// IsDataURL reports whether s already holds an encoded image
func IsDataURL(s string) bool {
	return strings.HasPrefix(s, "data:image/")
}

// mediaType drops parameters such as charset that mimetype may attach (SVG)
func mediaType(m *mimetype.MIME) string {
	s, _, _ := strings.Cut(m.String(), ";")
	return s
}

func tooLarge(limit int64) error {
	return apperrors.NewCustomError(
		errors.Join(apperrors.ErrBadRequest, apperrors.ErrInvalidImage),
		fmt.Sprintf("image exceeds the size limit of %d bytes", limit),
	)
}
