package imagedata

import (
	"bytes"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/campusbuzz/internal/pkg/apperrors"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["image"][0]
}

func TestEncodePNG(t *testing.T) {
	url, err := NewEncoder(0).Encode(bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
	assert.True(t, IsDataURL(url))
}

func TestEncodeRejectsNonImages(t *testing.T) {
	_, err := NewEncoder(0).Encode(strings.NewReader("just some text, not a picture"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidImage)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = NewEncoder(0).Encode(strings.NewReader(""))
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestEncodeEnforcesSizeLimit(t *testing.T) {
	enc := NewEncoder(int64(len(pngHeader)))
	_, err := enc.Encode(bytes.NewReader(pngHeader))
	require.NoError(t, err)

	big := append(append([]byte{}, pngHeader...), 0)
	_, err = enc.Encode(bytes.NewReader(big))
	assert.ErrorIs(t, err, apperrors.ErrInvalidImage)
}

func TestEncodeFiles(t *testing.T) {
	enc := NewEncoder(0)

	url, err := enc.EncodeFile(nil)
	require.NoError(t, err)
	assert.Empty(t, url)

	urls, err := enc.EncodeFiles([]*multipart.FileHeader{
		fileHeader(t, "a.png", pngHeader),
		fileHeader(t, "b.png", pngHeader),
	})
	require.NoError(t, err)
	assert.Len(t, urls, 2)

	_, err = enc.EncodeFiles([]*multipart.FileHeader{fileHeader(t, "notes.txt", []byte("hello"))})
	assert.ErrorContains(t, err, "notes.txt")
}
