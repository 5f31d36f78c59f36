package gormstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/01moynul/binner-golang/internal/models"
	"github.com/01moynul/binner-golang/internal/requestctx"
	"github.com/01moynul/binner-golang/internal/storage"
)

// searchColumns are matched case-insensitively by FindParts.
var searchColumns = []string{
	"part_number", "digikey_part_number", "mouser_part_number", "manufacturer_part_number",
	"description", "keywords", "location", "bin_number", "bin_number2",
}

func (s *Store) AddPart(ctx context.Context, part *models.Part) (*models.Part, error) {
	part.UserID = requestctx.UserID(ctx)
	if part.DateCreatedUtc.IsZero() {
		part.DateCreatedUtc = s.now()
	}
	row := newPartRow(part)
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("insert part: %w", translate(err))
	}
	part.PartID = row.PartID
	return part, nil
}

func (s *Store) UpdatePart(ctx context.Context, part *models.Part) (*models.Part, error) {
	part.UserID = requestctx.UserID(ctx)
	var lookup partRow
	if err := s.scoped(ctx).Select("part_id").Where("part_id = ?", part.PartID).First(&lookup).Error; err != nil {
		return nil, notFound(err, "Part", part.PartID)
	}

	err := s.scoped(ctx).Model(&partRow{}).
		Where("part_id = ?", part.PartID).
		Select(partUpdateColumns).
		Updates(newPartRow(part)).Error
	if err != nil {
		return nil, fmt.Errorf("update part: %w", translate(err))
	}
	return s.GetPart(ctx, part.PartID)
}

func (s *Store) DeletePart(ctx context.Context, partID int64) (bool, error) {
	res := s.scoped(ctx).Where("part_id = ?", partID).Delete(&partRow{})
	if res.Error != nil {
		return false, fmt.Errorf("delete part: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *Store) GetPart(ctx context.Context, partID int64) (*models.Part, error) {
	var row partRow
	if err := s.scoped(ctx).Where("part_id = ?", partID).First(&row).Error; err != nil {
		return nil, notFound(err, "Part", partID)
	}
	return row.model(), nil
}

func (s *Store) GetPartByNumber(ctx context.Context, partNumber string) (*models.Part, error) {
	var row partRow
	if err := s.scoped(ctx).Where("part_number = ?", partNumber).Order("part_id").First(&row).Error; err != nil {
		return nil, notFound(err, "Part", partNumber)
	}
	return row.model(), nil
}

func (s *Store) GetParts(ctx context.Context, req models.PaginatedRequest) ([]*models.Part, error) {
	var rows []partRow
	if err := paginate(s.scoped(ctx), req, models.PartSortColumns, "part_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	return partModels(rows), nil
}

func (s *Store) GetPartsByValue(ctx context.Context, by, value string, req models.PaginatedRequest) ([]*models.Part, error) {
	column, ok := models.PartFilterColumns[by]
	if !ok {
		return nil, fmt.Errorf("%w: cannot filter parts by %q", storage.ErrInvalidArgument, by)
	}
	var rows []partRow
	query := s.scoped(ctx).Where(column+" = ?", value)
	if err := paginate(query, req, models.PartSortColumns, "part_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list parts by %s: %w", by, err)
	}
	return partModels(rows), nil
}

func (s *Store) FindParts(ctx context.Context, keywords string) ([]models.SearchResult[*models.Part], error) {
	if strings.TrimSpace(keywords) == "" {
		return []models.SearchResult[*models.Part]{}, nil
	}
	pattern := strings.ToLower(storage.LikePattern(keywords))
	clauses := make([]string, len(searchColumns))
	args := make([]any, len(searchColumns))
	for i, col := range searchColumns {
		clauses[i] = "LOWER(" + col + ") LIKE ?"
		args[i] = pattern
	}

	var rows []partRow
	if err := s.scoped(ctx).Where("("+strings.Join(clauses, " OR ")+")", args...).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("search parts: %w", err)
	}
	return storage.RankParts(partModels(rows), keywords), nil
}

func (s *Store) GetLowStockParts(ctx context.Context, req models.PaginatedRequest) ([]*models.Part, error) {
	var rows []partRow
	query := s.scoped(ctx).Where("low_stock_threshold > 0 AND quantity <= low_stock_threshold")
	if err := paginate(query, req, models.PartSortColumns, "part_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list low stock parts: %w", err)
	}
	return partModels(rows), nil
}

func (s *Store) GetPartsCount(ctx context.Context) (int64, error) {
	var n int64
	if err := s.scoped(ctx).Model(&partRow{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count parts: %w", err)
	}
	return n, nil
}

func partModels(rows []partRow) []*models.Part {
	parts := make([]*models.Part, 0, len(rows))
	for i := range rows {
		parts = append(parts, rows[i].model())
	}
	return parts
}
