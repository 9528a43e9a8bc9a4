package ingest

import (
	"errors"
	"strings"
	"testing"
)

func TestNewTokenChunker(t *testing.T) {
	chunker, err := NewTokenChunker()
	if err != nil {
		t.Fatalf("Failed to create token chunker: %v", err)
	}
	if chunker == nil {
		t.Fatal("Expected non-nil chunker")
	}
}

func TestTokenChunkerChunk(t *testing.T) {
	chunker, err := NewTokenChunker()
	if err != nil {
		t.Fatalf("Failed to create token chunker: %v", err)
	}

	tests := []struct {
		name      string
		content   string
		maxTokens int
		wantErr   error
		minChunks int
		maxChunks int
	}{
		{
			name:      "empty content",
			content:   "",
			maxTokens: 100,
			wantErr:   ErrContentEmpty,
		},
		{
			name:      "zero max tokens",
			content:   "Hello world",
			maxTokens: 0,
			wantErr:   ErrInvalidMaxTokens,
		},
		{
			name:      "negative max tokens",
			content:   "Hello world",
			maxTokens: -1,
			wantErr:   ErrInvalidMaxTokens,
		},
		{
			name:      "short content fits one chunk",
			content:   "Hello world",
			maxTokens: 100,
			minChunks: 1,
			maxChunks: 1,
		},
		{
			name:      "long content splits",
			content:   strings.Repeat("the quick brown fox jumps over the lazy dog ", 50),
			maxTokens: 50,
			minChunks: 2,
			maxChunks: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks, err := chunker.Chunk(tt.content, tt.maxTokens)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(chunks) < tt.minChunks || len(chunks) > tt.maxChunks {
				t.Errorf("expected between %d and %d chunks, got %d", tt.minChunks, tt.maxChunks, len(chunks))
			}
			for i, chunk := range chunks {
				if chunk == "" {
					t.Errorf("chunk %d is empty", i)
				}
			}
		})
	}
}

func TestTokenChunkerPreservesContent(t *testing.T) {
	chunker, err := NewTokenChunker()
	if err != nil {
		t.Fatalf("Failed to create token chunker: %v", err)
	}

	content := strings.Repeat("we the people of the united states ", 30)
	chunks, err := chunker.Chunk(content, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if joined := strings.Join(chunks, ""); joined != content {
		t.Error("concatenated chunks should reproduce the original content")
	}
}
