package sqlstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/01moynul/binner-golang/internal/models"
	"github.com/01moynul/binner-golang/internal/requestctx"
	"github.com/01moynul/binner-golang/internal/storage"
)

// Built-in part types are stored with a NULL user_id and are visible to everyone.
const partTypeScope = "(@user_id IS NULL OR user_id = @user_id OR user_id IS NULL)"

func (s *Store) GetOrCreatePartType(ctx context.Context, partType *models.PartType) (*models.PartType, error) {
	partType.Name = strings.TrimSpace(partType.Name)
	if partType.Name == "" {
		return nil, fmt.Errorf("%w: part type name is required", storage.ErrInvalidArgument)
	}
	lookup := `SELECT * FROM part_types WHERE name = @name AND ` + partTypeScope + ` ORDER BY part_type_id`
	existing, err := queryRows[models.PartType](ctx, s, lookup, Params{"name": partType.Name}, scope(ctx))
	if err != nil {
		return nil, fmt.Errorf("find part type: %w", err)
	}
	if len(existing) > 0 {
		return existing[0], nil
	}

	partType.UserID = requestctx.UserID(ctx)
	if partType.DateCreatedUtc.IsZero() {
		partType.DateCreatedUtc = s.now()
	}
	query := `INSERT INTO part_types (parent_part_type_id, name, date_created_utc, user_id)
VALUES (@parent_part_type_id, @name, @date_created_utc, @user_id)`
	id, err := s.insert(ctx, query, partType)
	if err != nil {
		return nil, fmt.Errorf("insert part type: %w", err)
	}
	partType.PartTypeID = id
	return partType, nil
}

func (s *Store) GetPartTypes(ctx context.Context) ([]*models.PartType, error) {
	query := `SELECT * FROM part_types WHERE ` + partTypeScope + ` ORDER BY name, part_type_id`
	types, err := queryRows[models.PartType](ctx, s, query, scope(ctx))
	if err != nil {
		return nil, fmt.Errorf("list part types: %w", err)
	}
	return types, nil
}
