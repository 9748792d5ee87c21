package ledger

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kilianp07/coverage/core/factory"
)

func sampleLedger() *Ledger {
	l := New()
	l.Ensure("Zed, Zoe")
	l.Record("Baker, Ben", LogEntry{Date: "2026-02-20", CoveredFor: "Adams, Amy", Period: "5/6"})
	l.Record("Baker, Ben", LogEntry{Date: "2026-02-21", CoveredFor: "Adams, Amy", Period: "1"})
	l.Ensure("Adams, Amy")
	return l
}

func assertSame(t *testing.T, want, got *Ledger) {
	t.Helper()
	if len(want.Names()) != len(got.Names()) {
		t.Fatalf("names: want %v got %v", want.Names(), got.Names())
	}
	for i, n := range want.Names() {
		if got.Names()[i] != n {
			t.Fatalf("order: want %v got %v", want.Names(), got.Names())
		}
		we, _ := want.Entry(n)
		ge, _ := got.Entry(n)
		if we.TimesCovered != ge.TimesCovered || len(we.CoverageLog) != len(ge.CoverageLog) {
			t.Fatalf("entry %s: want %+v got %+v", n, we, ge)
		}
		for j := range we.CoverageLog {
			if we.CoverageLog[j] != ge.CoverageLog[j] {
				t.Fatalf("log %s[%d]: want %+v got %+v", n, j, we.CoverageLog[j], ge.CoverageLog[j])
			}
		}
	}
}

func TestJSONStore_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tracker.json")
	s := NewJSONStore(path)
	ctx := context.Background()

	l, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if l.Len() != 0 {
		t.Fatalf("expected empty ledger")
	}
	want := sampleLedger()
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	assertSame(t, want, got)

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temporary files left behind: %v", entries)
	}
}

func TestJSONStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.json")
	if err := os.WriteFile(path, []byte("invalid json data"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewJSONStore(path)
	if _, err := s.Load(context.Background()); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
	l := LoadOrEmpty(context.Background(), s, nil)
	if l == nil || l.Len() != 0 {
		t.Fatalf("expected empty ledger")
	}
}

func TestJSONStore_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	l, err := NewJSONStore(path).Load(context.Background())
	if err != nil || l.Len() != 0 {
		t.Fatalf("unexpected %v %v", l, err)
	}
}

func TestSQLiteStore_SaveLoad(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "tracker.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = s.Close() }()
	ctx := context.Background()

	want := sampleLedger()
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	want.Record("Zed, Zoe", LogEntry{Date: "2026-02-22", CoveredFor: "Baker, Ben", Period: "3"})
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("second save: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	assertSame(t, want, got)
}

func TestSQLiteStore_InMemory(t *testing.T) {
	s, err := NewSQLiteStore("file:ledger.db?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = s.Close() }()
	l, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if l.Len() != 0 {
		t.Fatalf("expected empty ledger, got %v", l.Names())
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	want := sampleLedger()
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	want.Record("Zed, Zoe", LogEntry{})
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Count("Zed, Zoe") != 0 {
		t.Fatalf("store must hold a snapshot")
	}
}

func TestNewStore(t *testing.T) {
	dir := t.TempDir()
	for _, cfg := range []factory.ModuleConfig{
		{Type: "json", Conf: map[string]any{"path": filepath.Join(dir, "t.json")}},
		{Type: "sqlite", Conf: map[string]any{"path": filepath.Join(dir, "t.db")}},
		{Type: "memory"},
	} {
		s, err := NewStore(cfg)
		if err != nil {
			t.Fatalf("%s: %v", cfg.Type, err)
		}
		if err := s.Save(context.Background(), sampleLedger()); err != nil {
			t.Fatalf("%s save: %v", cfg.Type, err)
		}
		_ = s.Close()
	}
	if _, err := NewStore(factory.ModuleConfig{Type: "redis"}); err == nil {
		t.Fatal("expected unknown backend error")
	}
}
