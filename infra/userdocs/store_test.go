package userdocs

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerateAndLookup(t *testing.T) {
	s := NewStore()
	s.Generate([]string{"K1", "K2"})

	pid, dl := s.Document("K1")
	if pid == Unknown || dl == Unknown {
		t.Fatalf("expected generated documents, got %s/%s", pid, dl)
	}
	if !strings.HasPrefix(pid, "ID-") || !strings.HasPrefix(dl, "DL-") {
		t.Fatalf("unexpected document format %s/%s", pid, dl)
	}

	// Repeated generation keeps existing documents.
	s.Generate([]string{"K1"})
	pid2, dl2 := s.Document("K1")
	if pid2 != pid || dl2 != dl {
		t.Fatalf("documents regenerated: %s/%s vs %s/%s", pid, dl, pid2, dl2)
	}

	if pid, dl := s.Document("K9"); pid != Unknown || dl != Unknown {
		t.Fatalf("unknown user should yield %s, got %s/%s", Unknown, pid, dl)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs.json")

	s := NewStore()
	s.Generate([]string{"K1"})
	pid, dl := s.Document("K1")
	if err := s.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded := NewStore()
	if err := loaded.Load(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if gotPid, gotDl := loaded.Document("K1"); gotPid != pid || gotDl != dl {
		t.Fatalf("loaded %s/%s want %s/%s", gotPid, gotDl, pid, dl)
	}
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	s := NewStore()
	if err := s.Load(filepath.Join(t.TempDir(), "absent.json")); err != nil {
		t.Fatalf("missing file: %v", err)
	}
	if pid, _ := s.Document("K1"); pid != Unknown {
		t.Fatalf("store should stay empty")
	}
}
