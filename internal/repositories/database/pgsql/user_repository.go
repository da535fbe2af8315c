package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/site_safety_app/internal/apperrors"
	"github.com/SscSPs/site_safety_app/internal/core/domain"
	portsrepo "github.com/SscSPs/site_safety_app/internal/core/ports/repositories"
	"github.com/SscSPs/site_safety_app/internal/models"
	"github.com/SscSPs/site_safety_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `user_id, tenant_id, email, name, password_hash, role, company_name, is_active,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at`

type PgxUserRepository struct {
	db *pgxpool.Pool
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{db: db}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

// insertUser is shared with tenant registration, which inserts the owner inside its own transaction.
func insertUser(ctx context.Context, q querier, m models.User) error {
	_, err := q.Exec(ctx, `
		INSERT INTO users (user_id, tenant_id, email, name, password_hash, role, company_name, is_active,
		                   created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		m.UserID, m.TenantID, m.Email, m.Name, m.PasswordHash, m.Role, m.CompanyName, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("a user with email " + m.Email + " already exists")
		}
		return insertError(err, "user", m.UserID)
	}
	return nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	return insertUser(ctx, r.db, mapping.ToModelUser(user))
}

func (r *PgxUserRepository) findOne(ctx context.Context, where string, arg string) (*domain.User, error) {
	rows, _ := r.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg)
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		return nil, findError(err, "user", arg)
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}

// FindUserByID also returns soft-deleted users; callers check DeletedAt.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, `user_id = $1`, userID)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, `lower(email) = lower($1) AND deleted_at IS NULL`, email)
}

func (r *PgxUserRepository) ListUsers(ctx context.Context, tenantID string, page portsrepo.Page) ([]domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE tenant_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC, user_id
		LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, tenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		return nil, fmt.Errorf("failed to scan user rows: %w", err)
	}
	return mapping.ToDomainUserSlice(ms), nil
}

func (r *PgxUserRepository) ListAllUsers(ctx context.Context, tenantID string) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE tenant_id = $1 ORDER BY user_id`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query users of tenant %s: %w", tenantID, err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		return nil, fmt.Errorf("failed to scan user rows: %w", err)
	}
	return mapping.ToDomainUserSlice(ms), nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	modelUser := mapping.ToModelUser(user)
	query := `
        UPDATE users
        SET name = $1, company_name = $2, last_updated_at = $3, last_updated_by = $4
        WHERE user_id = $5 AND deleted_at IS NULL`
	cmdTag, err := r.db.Exec(ctx, query,
		modelUser.Name,
		modelUser.CompanyName,
		modelUser.LastUpdatedAt,
		modelUser.LastUpdatedBy,
		modelUser.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update user query: %w", err)
	}
	return expectOneRow(cmdTag, "user", user.UserID)
}

func (r *PgxUserRepository) UpdateUserRole(ctx context.Context, userID string, role domain.GlobalRole, updatedBy string, now time.Time) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE users
		SET role = $1, last_updated_at = $2, last_updated_by = $3
		WHERE user_id = $4 AND deleted_at IS NULL`,
		string(role), now, updatedBy, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update role of user %s: %w", userID, err)
	}
	return expectOneRow(cmdTag, "user", userID)
}

func (r *PgxUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	query := `
        UPDATE users
        SET deleted_at = $1, is_active = FALSE, last_updated_at = $1, last_updated_by = $2
        WHERE user_id = $3 AND deleted_at IS NULL`
	cmdTag, err := r.db.Exec(ctx, query, deletedAt, deletedBy, userID)
	if err != nil {
		return fmt.Errorf("failed to mark user as deleted: %w", err)
	}
	// User might not exist or was already deleted
	return expectOneRow(cmdTag, "user", userID)
}
