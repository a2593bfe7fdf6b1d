package auth_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/domain/auth"
	"ledgerhouse/internal/infrastructure/storage/postgres"
)

const tokensTable = "refresh_tokens"

var tokenCols = []string{
	"id", "user_id", "token_hash", "expires_at",
	"created_at", "revoked_at", "revoked_reason",
}

// TokenRepo implements auth.TokenRepository.
type TokenRepo struct {
	txManager *postgres.TxManager
}

func NewTokenRepo(txManager *postgres.TxManager) *TokenRepo {
	return &TokenRepo{txManager: txManager}
}

var _ auth.TokenRepository = (*TokenRepo)(nil)

func (r *TokenRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *TokenRepo) querier(ctx context.Context) postgres.Querier {
	return r.txManager.GetQuerier(ctx)
}

func (r *TokenRepo) SaveRefreshToken(ctx context.Context, token *auth.RefreshToken) error {
	q := r.builder().
		Insert(tokensTable).
		Columns(tokenCols...).
		Values(token.ID, token.UserID, token.TokenHash, token.ExpiresAt,
			token.CreatedAt, token.RevokedAt, token.RevokedReason)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert refresh token: %w", err)
	}

	return nil
}

func (r *TokenRepo) GetRefreshToken(ctx context.Context, tokenHash string) (*auth.RefreshToken, error) {
	q := r.builder().
		Select(tokenCols...).
		From(tokensTable).
		Where(squirrel.Eq{"token_hash": tokenHash})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var token auth.RefreshToken
	if err := pgxscan.Get(ctx, r.querier(ctx), &token, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("refresh token", "")
		}
		return nil, fmt.Errorf("get refresh token: %w", err)
	}

	return &token, nil
}

func (r *TokenRepo) RevokeRefreshToken(ctx context.Context, tokenID id.ID, reason string) error {
	q := r.builder().
		Update(tokensTable).
		Set("revoked_at", squirrel.Expr("NOW()")).
		Set("revoked_reason", reason).
		Where(squirrel.Eq{"id": tokenID}).
		Where("revoked_at IS NULL")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}
	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}

	return nil
}

func (r *TokenRepo) RevokeAllUserTokens(ctx context.Context, userID id.ID, reason string) error {
	q := r.builder().
		Update(tokensTable).
		Set("revoked_at", squirrel.Expr("NOW()")).
		Set("revoked_reason", reason).
		Where(squirrel.Eq{"user_id": userID}).
		Where("revoked_at IS NULL")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}
	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("revoke user tokens: %w", err)
	}

	return nil
}

func (r *TokenRepo) CleanupExpiredTokens(ctx context.Context) (int, error) {
	q := r.builder().
		Delete(tokensTable).
		Where("expires_at < NOW()")

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("cleanup tokens: %w", err)
	}

	return int(result.RowsAffected()), nil
}
