package sqlstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/01moynul/binner-golang/internal/config"
	"github.com/01moynul/binner-golang/internal/models"
	"github.com/01moynul/binner-golang/internal/requestctx"
	"go.uber.org/zap"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "binner.db")
	store, err := Open(config.DatabaseConfig{Provider: "sqlite", Path: path}, zap.NewNop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func userCtx(id int64) context.Context {
	return requestctx.WithUser(context.Background(), models.UserContext{UserID: id, Email: "user@example.com"})
}

func mustAddPart(t *testing.T, ctx context.Context, s *Store, part *models.Part) *models.Part {
	t.Helper()
	added, err := s.AddPart(ctx, part)
	if err != nil {
		t.Fatalf("add part %s: %v", part.PartNumber, err)
	}
	return added
}
