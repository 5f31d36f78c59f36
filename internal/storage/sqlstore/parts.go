package sqlstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/01moynul/binner-golang/internal/models"
	"github.com/01moynul/binner-golang/internal/requestctx"
	"github.com/01moynul/binner-golang/internal/storage"
	"go.uber.org/zap"
)

const userScope = "(@user_id IS NULL OR user_id = @user_id)"

func (s *Store) AddPart(ctx context.Context, part *models.Part) (*models.Part, error) {
	part.UserID = requestctx.UserID(ctx)
	if part.DateCreatedUtc.IsZero() {
		part.DateCreatedUtc = s.now()
	}
	query := `INSERT INTO parts (quantity, low_stock_threshold, part_number, manufacturer_part_number, manufacturer,
    digikey_part_number, mouser_part_number, description, part_type_id, mounting_type_id, project_id, keywords,
    datasheet_url, location, bin_number, bin_number2, cost, date_created_utc, user_id)
VALUES (@quantity, @low_stock_threshold, @part_number, @manufacturer_part_number, @manufacturer,
    @digikey_part_number, @mouser_part_number, @description, @part_type_id, @mounting_type_id, @project_id, @keywords,
    @datasheet_url, @location, @bin_number, @bin_number2, @cost, @date_created_utc, @user_id)`
	id, err := s.insert(ctx, query, part)
	if err != nil {
		return nil, fmt.Errorf("insert part: %w", err)
	}
	part.PartID = id
	return part, nil
}

func (s *Store) UpdatePart(ctx context.Context, part *models.Part) (*models.Part, error) {
	part.UserID = requestctx.UserID(ctx)
	lookup := `SELECT part_id FROM parts WHERE part_id = @part_id AND ` + userScope
	found, err := queryRows[models.Part](ctx, s, lookup, part, scope(ctx))
	if err != nil {
		return nil, fmt.Errorf("find part: %w", err)
	}
	if len(found) == 0 {
		s.logger.Debug("update of missing part", zap.Int64("part_id", part.PartID))
		return nil, storage.NotFound("Part", part.PartID)
	}

	query := `UPDATE parts SET quantity = @quantity, low_stock_threshold = @low_stock_threshold,
    part_number = @part_number, manufacturer_part_number = @manufacturer_part_number, manufacturer = @manufacturer,
    digikey_part_number = @digikey_part_number, mouser_part_number = @mouser_part_number,
    description = @description, part_type_id = @part_type_id, mounting_type_id = @mounting_type_id,
    project_id = @project_id, keywords = @keywords, datasheet_url = @datasheet_url, location = @location,
    bin_number = @bin_number, bin_number2 = @bin_number2, cost = @cost
WHERE part_id = @part_id AND ` + userScope
	if _, err := s.execute(ctx, query, part, scope(ctx)); err != nil {
		return nil, fmt.Errorf("update part: %w", err)
	}
	return s.GetPart(ctx, part.PartID)
}

func (s *Store) DeletePart(ctx context.Context, partID int64) (bool, error) {
	query := `DELETE FROM parts WHERE part_id = @part_id AND ` + userScope
	n, err := s.execute(ctx, query, Params{"part_id": partID}, scope(ctx))
	if err != nil {
		return false, fmt.Errorf("delete part: %w", err)
	}
	return n > 0, nil
}

func (s *Store) GetPart(ctx context.Context, partID int64) (*models.Part, error) {
	query := `SELECT * FROM parts WHERE part_id = @part_id AND ` + userScope
	return queryOne[models.Part](ctx, s, "Part", partID, query, Params{"part_id": partID}, scope(ctx))
}

func (s *Store) GetPartByNumber(ctx context.Context, partNumber string) (*models.Part, error) {
	query := `SELECT * FROM parts WHERE part_number = @part_number AND ` + userScope + ` ORDER BY part_id`
	return queryOne[models.Part](ctx, s, "Part", partNumber, query, Params{"part_number": partNumber}, scope(ctx))
}

func (s *Store) GetParts(ctx context.Context, req models.PaginatedRequest) ([]*models.Part, error) {
	req = req.Normalize()
	query := `SELECT * FROM parts WHERE ` + userScope + ` ` +
		orderBy(req.OrderColumn(models.PartSortColumns, "part_id"), "part_id", req.Direction.SQL()) +
		` LIMIT @limit OFFSET @offset`
	parts, err := queryRows[models.Part](ctx, s, query, scope(ctx), page(req))
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	return parts, nil
}

func (s *Store) GetPartsByValue(ctx context.Context, by, value string, req models.PaginatedRequest) ([]*models.Part, error) {
	column, ok := models.PartFilterColumns[by]
	if !ok {
		return nil, fmt.Errorf("%w: cannot filter parts by %q", storage.ErrInvalidArgument, by)
	}
	req = req.Normalize()
	query := `SELECT * FROM parts WHERE ` + column + ` = @value AND ` + userScope + ` ` +
		orderBy(req.OrderColumn(models.PartSortColumns, "part_id"), "part_id", req.Direction.SQL()) +
		` LIMIT @limit OFFSET @offset`
	parts, err := queryRows[models.Part](ctx, s, query, Params{"value": value}, scope(ctx), page(req))
	if err != nil {
		return nil, fmt.Errorf("list parts by %s: %w", by, err)
	}
	return parts, nil
}

func (s *Store) FindParts(ctx context.Context, keywords string) ([]models.SearchResult[*models.Part], error) {
	if strings.TrimSpace(keywords) == "" {
		return []models.SearchResult[*models.Part]{}, nil
	}
	query := `SELECT * FROM parts WHERE ` + userScope + ` AND (
    part_number LIKE @keywords
    OR digikey_part_number LIKE @keywords
    OR mouser_part_number LIKE @keywords
    OR manufacturer_part_number LIKE @keywords
    OR description LIKE @keywords
    OR keywords LIKE @keywords
    OR location LIKE @keywords
    OR bin_number LIKE @keywords
    OR bin_number2 LIKE @keywords)`
	parts, err := queryRows[models.Part](ctx, s, query, Params{"keywords": storage.LikePattern(keywords)}, scope(ctx))
	if err != nil {
		return nil, fmt.Errorf("search parts: %w", err)
	}
	return storage.RankParts(parts, keywords), nil
}

func (s *Store) GetLowStockParts(ctx context.Context, req models.PaginatedRequest) ([]*models.Part, error) {
	req = req.Normalize()
	query := `SELECT * FROM parts WHERE low_stock_threshold > 0 AND quantity <= low_stock_threshold AND ` + userScope + ` ` +
		orderBy(req.OrderColumn(models.PartSortColumns, "part_id"), "part_id", req.Direction.SQL()) +
		` LIMIT @limit OFFSET @offset`
	parts, err := queryRows[models.Part](ctx, s, query, scope(ctx), page(req))
	if err != nil {
		return nil, fmt.Errorf("list low stock parts: %w", err)
	}
	return parts, nil
}

func (s *Store) GetPartsCount(ctx context.Context) (int64, error) {
	n, err := s.scalar(ctx, `SELECT COUNT(*) FROM parts WHERE `+userScope, scope(ctx))
	if err != nil {
		return 0, fmt.Errorf("count parts: %w", err)
	}
	return n, nil
}

func page(req models.PaginatedRequest) Params {
	return Params{"limit": req.Results, "offset": req.Offset()}
}
