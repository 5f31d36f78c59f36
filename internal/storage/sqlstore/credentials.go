package sqlstore

import (
	"context"
	"fmt"

	"github.com/01moynul/binner-golang/internal/models"
	"github.com/01moynul/binner-golang/internal/requestctx"
)

func (s *Store) GetOAuthCredential(ctx context.Context, provider string) (*models.OAuthCredential, error) {
	query := `SELECT * FROM oauth_credentials WHERE provider = @provider AND ` + userScope
	return queryOne[models.OAuthCredential](ctx, s, "OAuthCredential", provider, query, Params{"provider": provider}, scope(ctx))
}

// SaveOAuthCredential updates the provider's row in scope, inserting it when absent.
func (s *Store) SaveOAuthCredential(ctx context.Context, credential *models.OAuthCredential) (*models.OAuthCredential, error) {
	credential.UserID = requestctx.UserID(ctx)
	if credential.DateCreatedUtc.IsZero() {
		credential.DateCreatedUtc = s.now()
	}

	existing := `SELECT provider, date_created_utc FROM oauth_credentials WHERE provider = @provider AND ` + userScope
	found, err := queryRows[models.OAuthCredential](ctx, s, existing, credential, scope(ctx))
	if err != nil {
		return nil, fmt.Errorf("find credential: %w", err)
	}

	if len(found) > 0 {
		query := `UPDATE oauth_credentials SET access_token = @access_token, refresh_token = @refresh_token,
    date_expires_utc = @date_expires_utc
WHERE provider = @provider AND ` + userScope
		if _, err := s.execute(ctx, query, credential, scope(ctx)); err != nil {
			return nil, fmt.Errorf("update credential: %w", err)
		}
		credential.DateCreatedUtc = found[0].DateCreatedUtc
		return credential, nil
	}

	query := `INSERT INTO oauth_credentials (provider, access_token, refresh_token, date_created_utc, date_expires_utc, user_id)
VALUES (@provider, @access_token, @refresh_token, @date_created_utc, @date_expires_utc, @user_id)`
	if _, err := s.execute(ctx, query, credential); err != nil {
		return nil, fmt.Errorf("insert credential: %w", err)
	}
	return credential, nil
}

func (s *Store) RemoveOAuthCredential(ctx context.Context, provider string) error {
	query := `DELETE FROM oauth_credentials WHERE provider = @provider AND ` + userScope
	if _, err := s.execute(ctx, query, Params{"provider": provider}, scope(ctx)); err != nil {
		return fmt.Errorf("remove credential: %w", err)
	}
	return nil
}
