package embedding

import (
	"context"
	"testing"
)

func TestDeterministicEmbedderStableOutput(t *testing.T) {
	embedder := NewDeterministicEmbedder(16)

	first, err := embedder.Embed(context.Background(), []string{"chicken soup"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := embedder.Embed(context.Background(), []string{"chicken soup"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != 1 || len(first[0]) != 16 {
		t.Fatalf("unexpected vector shape: %d x %d", len(first), len(first[0]))
	}
	for i := range first[0] {
		if first[0][i] != second[0][i] {
			t.Fatalf("expected deterministic vectors, differ at %d", i)
		}
	}
}

func TestDeterministicEmbedderDistinguishesTexts(t *testing.T) {
	embedder := NewDeterministicEmbedder(16)

	vectors, err := embedder.Embed(context.Background(), []string{"chicken soup", "beef stew"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vectors) != 2 {
		t.Fatalf("expected 2 vectors got %d", len(vectors))
	}
	same := true
	for i := range vectors[0] {
		if vectors[0][i] != vectors[1][i] {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("expected different texts to produce different vectors")
	}
}
