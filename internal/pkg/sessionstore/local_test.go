package sessionstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pintando7/escolinha/internal/app/models"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store, path
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)

	saved := &models.LocalSession{
		UserID:    "local-admin",
		Username:  "admin",
		Name:      "Administrador",
		Role:      models.RoleAdmin,
		CreatedAt: time.Now().Truncate(time.Second),
	}
	if err := store.Save(saved); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded == nil {
		t.Fatal("Load returned nil after Save")
	}
	if loaded.UserID != saved.UserID || loaded.Username != saved.Username || loaded.Role != saved.Role {
		t.Fatalf("loaded = %+v, want %+v", loaded, saved)
	}
}

func TestLoadMissingFile(t *testing.T) {
	store, _ := newTestStore(t)

	session, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if session != nil {
		t.Fatalf("Load of missing file = %+v, want nil", session)
	}
}

func TestLoadCorruptFileIsDiscarded(t *testing.T) {
	store, path := newTestStore(t)

	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	session, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if session != nil {
		t.Fatalf("corrupt file produced a session: %+v", session)
	}
}

func TestClearRemovesFile(t *testing.T) {
	store, path := newTestStore(t)

	if err := store.Save(&models.LocalSession{UserID: "local-admin"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("session file still present after Clear")
	}
}

func TestClearMissingFileIsNotAnError(t *testing.T) {
	store, _ := newTestStore(t)

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear of missing file: %v", err)
	}
}

func TestSaveRestrictsFileMode(t *testing.T) {
	store, path := newTestStore(t)

	if err := store.Save(&models.LocalSession{UserID: "local-admin"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if mode := info.Mode().Perm(); mode != 0o600 {
		t.Fatalf("file mode = %o, want 600", mode)
	}
}
