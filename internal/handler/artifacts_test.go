package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/recruitr-api/internal/model"
)

func TestKindForFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"resume.pdf", model.ArtifactKindResume},
		{"Resume.PDF", model.ArtifactKindResume},
		{"cv.docx", model.ArtifactKindResume},
		{"solution.py", model.ArtifactKindCodeSample},
		{"widget.tsx", model.ArtifactKindCodeSample},
		{"main.go", model.ArtifactKindCodeSample},
		{"notes.csv", model.ArtifactKindFileUpload},
		{"photo.png", model.ArtifactKindFileUpload},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, kindForFilename(tt.filename))
		})
	}
}

func TestKindForURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://github.com/someone/project", model.ArtifactKindGithubURL},
		{"https://GITHUB.com/someone", model.ArtifactKindGithubURL},
		{"https://www.behance.net/someone", model.ArtifactKindPortfolioURL},
		{"https://dribbble.com/someone", model.ArtifactKindPortfolioURL},
		{"https://example.com/my-portfolio", model.ArtifactKindPortfolioURL},
		{"https://example.com/blog", model.ArtifactKindExternalURL},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, kindForURL(tt.url))
		})
	}
}

func TestExtractFileTextPlainText(t *testing.T) {
	text, err := extractFileText("notes.txt", []byte("  Shipped a Python service.  "))
	require.NoError(t, err)
	assert.Equal(t, "Shipped a Python service.", text)
}

func TestExtractFileTextLatin1Fallback(t *testing.T) {
	// 0xE9 is not valid UTF-8 on its own; as Latin-1 it is é.
	text, err := extractFileText("notes.txt", []byte{'r', 0xE9, 's', 'u', 'm', 0xE9})
	require.NoError(t, err)
	assert.Equal(t, "résumé", text)
}

func TestExtractFileTextRejectsFakePDF(t *testing.T) {
	_, err := extractFileText("resume.pdf", []byte("plain text pretending"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid PDF")
}

func TestExtractFileTextRejectsUnknownFormat(t *testing.T) {
	_, err := extractFileText("archive.zip", []byte{0x50, 0x4b})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file format")
}

func TestExtractFileTextReadsCodeSamples(t *testing.T) {
	text, err := extractFileText("main.go", []byte("package main\n"))
	require.NoError(t, err)
	assert.Equal(t, "package main", text)
}
