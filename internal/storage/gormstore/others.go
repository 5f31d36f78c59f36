package gormstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/01moynul/binner-golang/internal/models"
	"github.com/01moynul/binner-golang/internal/requestctx"
	"github.com/01moynul/binner-golang/internal/storage"
	"gorm.io/gorm"
)

// partTypes matches the caller's types plus the shared built-ins.
func (s *Store) partTypes(ctx context.Context) *gorm.DB {
	db := s.db.WithContext(ctx)
	if uid := requestctx.UserID(ctx); uid != nil {
		db = db.Where("(user_id = ? OR user_id IS NULL)", *uid)
	}
	return db
}

func (s *Store) GetOrCreatePartType(ctx context.Context, partType *models.PartType) (*models.PartType, error) {
	name := strings.TrimSpace(partType.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: part type name is required", storage.ErrInvalidArgument)
	}
	var existing partTypeRow
	err := s.partTypes(ctx).Where("name = ?", name).Order("part_type_id").First(&existing).Error
	if err == nil {
		return existing.model(), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find part type: %w", err)
	}

	row := &partTypeRow{
		ParentPartTypeID: partType.ParentPartTypeID,
		Name:             name,
		DateCreatedUtc:   partType.DateCreatedUtc,
		UserID:           requestctx.UserID(ctx),
	}
	if row.DateCreatedUtc.IsZero() {
		row.DateCreatedUtc = s.now()
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("insert part type: %w", translate(err))
	}
	return row.model(), nil
}

func (s *Store) GetPartTypes(ctx context.Context) ([]*models.PartType, error) {
	var rows []partTypeRow
	if err := s.partTypes(ctx).Order("name, part_type_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list part types: %w", err)
	}
	types := make([]*models.PartType, 0, len(rows))
	for i := range rows {
		types = append(types, rows[i].model())
	}
	return types, nil
}

func (s *Store) GetOAuthCredential(ctx context.Context, provider string) (*models.OAuthCredential, error) {
	var row credentialRow
	if err := s.scoped(ctx).Where("provider = ?", provider).First(&row).Error; err != nil {
		return nil, notFound(err, "OAuthCredential", provider)
	}
	return row.model(), nil
}

func (s *Store) SaveOAuthCredential(ctx context.Context, credential *models.OAuthCredential) (*models.OAuthCredential, error) {
	credential.UserID = requestctx.UserID(ctx)
	if credential.DateCreatedUtc.IsZero() {
		credential.DateCreatedUtc = s.now()
	}
	row := newCredentialRow(credential)

	var existing []credentialRow
	if err := s.scoped(ctx).Where("provider = ?", credential.Provider).Limit(1).Find(&existing).Error; err != nil {
		return nil, fmt.Errorf("find credential: %w", err)
	}
	if len(existing) > 0 {
		err := s.scoped(ctx).Model(&credentialRow{}).
			Where("provider = ?", credential.Provider).
			Select("access_token", "refresh_token", "date_expires_utc").
			Updates(row).Error
		if err != nil {
			return nil, fmt.Errorf("update credential: %w", err)
		}
		credential.DateCreatedUtc = existing[0].DateCreatedUtc.UTC()
		return credential, nil
	}

	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("insert credential: %w", translate(err))
	}
	return credential, nil
}

func (s *Store) RemoveOAuthCredential(ctx context.Context, provider string) error {
	if err := s.scoped(ctx).Where("provider = ?", provider).Delete(&credentialRow{}).Error; err != nil {
		return fmt.Errorf("remove credential: %w", err)
	}
	return nil
}

func (s *Store) AddUser(ctx context.Context, user *models.User) (*models.User, error) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.DateCreatedUtc.IsZero() {
		user.DateCreatedUtc = s.now()
	}
	row := &userRow{
		Email:          user.Email,
		Name:           user.Name,
		PasswordHash:   user.PasswordHash,
		DateCreatedUtc: user.DateCreatedUtc.UTC(),
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("insert user: %w", translate(err))
	}
	user.UserID = row.UserID
	return user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var row userRow
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&row).Error; err != nil {
		return nil, notFound(err, "User", email)
	}
	return row.model(), nil
}
