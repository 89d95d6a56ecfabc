package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSourceKind_IsValid tests valid and invalid source kinds
func TestSourceKind_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		kind     SourceKind
		expected bool
	}{
		{name: "filesystem is valid", kind: SourceFilesystem, expected: true},
		{name: "github is valid", kind: SourceGitHub, expected: true},
		{name: "empty string is invalid", kind: SourceKind(""), expected: false},
		{name: "unknown kind is invalid", kind: SourceKind("s3"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.IsValid())
		})
	}
}

func TestSourceKind_Description(t *testing.T) {
	assert.Equal(t, "Local directory", SourceFilesystem.Description())
	assert.Equal(t, "GitHub repository", SourceGitHub.Description())
	assert.Equal(t, "Unknown", SourceKind("ftp").Description())
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, SourceFilesystem, s.Data.Source)
	assert.Equal(t, "manifest.json", s.Data.Manifest)
	assert.Equal(t, 4, s.Load.Concurrency)
	assert.Equal(t, DefaultLimit, s.Query.Limit)
	assert.False(t, s.Query.MatchCategory)
	assert.Equal(t, 500, s.Watch.IntervalMs)
	assert.Equal(t, ":8080", s.Serve.Addr)
	assert.Empty(t, s.Categories)
}

func TestAllSourceKinds(t *testing.T) {
	kinds := AllSourceKinds()

	assert.Len(t, kinds, 2)
	for _, k := range kinds {
		assert.True(t, k.IsValid())
	}
}
