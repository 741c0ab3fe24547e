package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/lox/splitrand/chaskey"
)

func TestStreamWritesExactCount(t *testing.T) {
	var out bytes.Buffer
	if err := stream(context.Background(), &out, chaskey.New(chaskey.Seed{1, 2, 3, 4}), 100, 32); err != nil {
		t.Fatalf("stream: %v", err)
	}
	if out.Len() != 100 {
		t.Fatalf("expected 100 bytes, got %d", out.Len())
	}

	// Chaskey packs 32-bit words, so 32-byte chunks fill on word boundaries
	// and the stream matches one large fill for the full words.
	want := make([]byte, 100)
	chaskey.New(chaskey.Seed{1, 2, 3, 4}).Fill(want)
	if !bytes.Equal(want, out.Bytes()) {
		t.Fatalf("stream output differs from a single fill")
	}
}

func TestStreamStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w := &cancelAfter{limit: 3, cancel: cancel}

	err := stream(ctx, w, chaskey.New(chaskey.Seed{}), 0, 16)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if w.writes != 3 {
		t.Fatalf("expected 3 writes before stopping, got %d", w.writes)
	}
}

func TestStreamWriteError(t *testing.T) {
	boom := errors.New("closed pipe")
	err := stream(context.Background(), failingWriter{boom}, chaskey.New(chaskey.Seed{}), 10, 4)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped write error, got %v", err)
	}
}

type cancelAfter struct {
	limit  int
	writes int
	cancel context.CancelFunc
}

func (w *cancelAfter) Write(p []byte) (int, error) {
	w.writes++
	if w.writes == w.limit {
		w.cancel()
	}
	return len(p), nil
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }
