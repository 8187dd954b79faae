package domain

import (
	"context"
	"errors"
	"testing"
)

type stubEmbedder struct {
	result EmbeddingResult
	err    error
	got    string
}

func (s *stubEmbedder) Embed(_ context.Context, text string) (EmbeddingResult, error) {
	s.got = text
	return s.result, s.err
}

func TestInstructionEmbedder_PrependsInstruction(t *testing.T) {
	inner := &stubEmbedder{result: EmbeddingResult{Embedding: []float32{0.1, 0.2, 0.3}}}
	emb := NewInstructionEmbedder(inner, "Represent this customer feedback: ")

	result, err := emb.Embed(context.Background(), "hello world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.got != "Represent this customer feedback: hello world" {
		t.Errorf("expected prepended text, got %q", inner.got)
	}
	if len(result.Embedding) != 3 {
		t.Errorf("expected 3-element vector, got %d", len(result.Embedding))
	}
}

func TestInstructionEmbedder_ErrorPropagation(t *testing.T) {
	innerErr := errors.New("provider down")
	inner := &stubEmbedder{err: innerErr}
	emb := NewInstructionEmbedder(inner, "Represent this customer feedback: ")

	_, err := emb.Embed(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, innerErr) {
		t.Errorf("expected wrapped inner error, got %v", err)
	}
}

func TestInstructionEmbedder_EmptyInstruction(t *testing.T) {
	inner := &stubEmbedder{result: EmbeddingResult{Embedding: []float32{0.5}}}
	emb := NewInstructionEmbedder(inner, "")

	_, err := emb.Embed(context.Background(), "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.got != "test" {
		t.Errorf("expected 'test', got %q", inner.got)
	}
}

func TestEmbeddingUsage(t *testing.T) {
	ctx, usage := NewContextWithUsage(context.Background())
	if usage.Embedded() {
		t.Fatal("fresh usage reports embedded")
	}

	UsageFromContext(ctx).AddTokens(0)
	UsageFromContext(ctx).AddTokens(7)
	if !usage.Embedded() || usage.Tokens() != 7 {
		t.Errorf("embedded=%v tokens=%d, want true/7", usage.Embedded(), usage.Tokens())
	}
}

func TestEmbeddingUsage_NilSafe(t *testing.T) {
	u := UsageFromContext(context.Background())
	u.AddTokens(5)
	if u.Embedded() || u.Tokens() != 0 {
		t.Error("nil usage must stay empty")
	}
}
