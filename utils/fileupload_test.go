package utils

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestFileHeader creates a mock multipart.FileHeader for testing
func createTestFileHeader(t *testing.T, filename string, size int64, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", "application/octet-stream")
	part, _ := writer.CreatePart(h)
	part.Write(content)
	writer.Close()

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(int64(len(content)) + 1024)
	require.NoError(t, err)

	require.NotEmpty(t, form.File["file"])
	fileHeader := form.File["file"][0]
	// Override size so large-file cases don't need real payloads.
	fileHeader.Size = size
	return fileHeader
}

func TestValidateImageFile(t *testing.T) {
	content := []byte("fake image content")

	tests := []struct {
		name         string
		filename     string
		size         int64
		expectedCode string
	}{
		{"PNG is accepted", "main.png", int64(len(content)), ""},
		{"JPG is accepted", "main.jpg", int64(len(content)), ""},
		{"JPEG is accepted", "main.jpeg", int64(len(content)), ""},
		{"WebP is accepted", "hover.webp", int64(len(content)), ""},
		{"Uppercase extension is accepted", "MAIN.PNG", int64(len(content)), ""},
		{"GIF is rejected", "animation.gif", int64(len(content)), "INVALID_FILE_FORMAT"},
		{"Missing extension is rejected", "noextension", int64(len(content)), "INVALID_FILE_FORMAT"},
		{"Oversized file is rejected", "huge.png", 11 * 1024 * 1024, "FILE_TOO_LARGE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fileHeader := createTestFileHeader(t, tt.filename, tt.size, content)

			err := ValidateImageFile(fileHeader)
			if tt.expectedCode == "" {
				assert.NoError(t, err)
				return
			}

			var fileErr *FileUploadError
			require.ErrorAs(t, err, &fileErr)
			assert.Equal(t, tt.expectedCode, fileErr.Code)
		})
	}
}

func TestImageContentType(t *testing.T) {
	assert.Equal(t, "image/png", ImageContentType("photo.png"))
	assert.Equal(t, "image/jpeg", ImageContentType("photo.JPG"))
	assert.Equal(t, "image/webp", ImageContentType("photo.webp"))
	assert.Equal(t, "application/octet-stream", ImageContentType("data.bin"))
}
