package sqlstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/01moynul/binner-golang/internal/models"
)

func (s *Store) AddUser(ctx context.Context, user *models.User) (*models.User, error) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.DateCreatedUtc.IsZero() {
		user.DateCreatedUtc = s.now()
	}
	query := `INSERT INTO users (email, name, password_hash, date_created_utc)
VALUES (@email, @name, @password_hash, @date_created_utc)`
	id, err := s.insert(ctx, query, user)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	user.UserID = id
	return user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	query := `SELECT * FROM users WHERE email = @email`
	return queryOne[models.User](ctx, s, "User", email, query, Params{"email": email})
}
