package repository

import (
	"context"
	"database/sql"
	"errors"

	"invoicely/internal/domain/entities"
	"invoicely/internal/usecase/interfaces"
)

// ProfilePostgresRepository persists CompanyProfile entities.

type ProfilePostgresRepository struct {
	db *sql.DB
}

var _ interfaces.IProfileRepository = (*ProfilePostgresRepository)(nil)

func NewProfilePostgresRepository(db *sql.DB) *ProfilePostgresRepository {
	return &ProfilePostgresRepository{db: db}
}

const profileColumns = `user_id, email, company_id, role, stripe_account_id, stripe_connected, created_at, updated_at`

func (r *ProfilePostgresRepository) Create(ctx context.Context, p entities.CompanyProfile) (entities.CompanyProfile, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO company_profiles (user_id, email, company_id, role, stripe_account_id, stripe_connected, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.UserID, p.Email, p.CompanyID, p.Role, nullableString(p.StripeAccountID), p.StripeConnected, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return entities.CompanyProfile{}, err
	}
	return p, nil
}

func (r *ProfilePostgresRepository) GetByUserID(ctx context.Context, userID string) (entities.CompanyProfile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+profileColumns+` FROM company_profiles WHERE user_id = $1`, userID)
	return scanProfile(row)
}

// GetOwnerByCompanyID resolves the profile that carries the company's
// connected-account fields. Teammates never hold processor credentials.
func (r *ProfilePostgresRepository) GetOwnerByCompanyID(ctx context.Context, companyID string) (entities.CompanyProfile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+profileColumns+` FROM company_profiles
		WHERE company_id = $1 AND role = 'owner'
		ORDER BY created_at LIMIT 1`, companyID)
	return scanProfile(row)
}

func (r *ProfilePostgresRepository) UpdateStripeAccount(ctx context.Context, userID, accountID string, connected bool) (entities.CompanyProfile, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE company_profiles
		SET stripe_account_id = $2, stripe_connected = $3, updated_at = now()
		WHERE user_id = $1
		RETURNING `+profileColumns, userID, nullableString(accountID), connected)
	return scanProfile(row)
}

func scanProfile(row rowScanner) (entities.CompanyProfile, error) {
	var p entities.CompanyProfile
	var accountID sql.NullString
	err := row.Scan(&p.UserID, &p.Email, &p.CompanyID, &p.Role, &accountID, &p.StripeConnected, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.CompanyProfile{}, nil
	}
	if err != nil {
		return entities.CompanyProfile{}, err
	}
	if accountID.Valid {
		p.StripeAccountID = accountID.String
	}
	return p, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
