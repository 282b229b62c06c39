package store

import (
	"context"
	"testing"
)

func TestMemoryStoreReadWriteRemove(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, ok, err := s.Read(ctx, "missing"); err != nil || ok {
		t.Fatalf("Read(missing) = ok=%v err=%v, want absent", ok, err)
	}

	if err := s.Write(ctx, "k", "v1"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	val, ok, err := s.Read(ctx, "k")
	if err != nil || !ok || val != "v1" {
		t.Fatalf("Read(k) = %q ok=%v err=%v, want v1", val, ok, err)
	}

	// Overwrite replaces the whole value
	if err := s.Write(ctx, "k", "v2"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	val, _, _ = s.Read(ctx, "k")
	if val != "v2" {
		t.Fatalf("Read(k) after overwrite = %q, want v2", val)
	}

	if err := s.Remove(ctx, "k"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, ok, _ := s.Read(ctx, "k"); ok {
		t.Fatal("Read(k) after Remove should be absent")
	}

	// Removing an absent key is a no-op
	if err := s.Remove(ctx, "k"); err != nil {
		t.Fatalf("Remove of absent key failed: %v", err)
	}
}
