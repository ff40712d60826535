package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tendant/simple-admin/pkg/domain"
	"github.com/tendant/simple-admin/pkg/query"
)

const uniqueViolationCode = "23505"

// UsersRepository handles user persistence.
type UsersRepository struct {
	pool Queryer
}

// NewUsersRepository creates a new users repository.
func NewUsersRepository(pool Queryer) *UsersRepository {
	return &UsersRepository{pool: pool}
}

const userColumns = `id, company_id, first_name, last_name, username, email, ssn, date_of_birth, addresses, phones, functions, status, created_by, updated_by, created_at, updated_at`

// Create inserts a new user. Unique violations on username, email or ssn are
// translated to their domain errors.
func (r *UsersRepository) Create(ctx context.Context, u *domain.User) error {
	addresses, phones, err := marshalContacts(u.Addresses, u.Phones)
	if err != nil {
		return err
	}

	q := `
		INSERT INTO users (id, company_id, first_name, last_name, username, email, ssn, date_of_birth, addresses, phones, functions, status, created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err = queryerFrom(ctx, r.pool).Exec(ctx, q,
		u.ID, u.CompanyID, u.FirstName, u.LastName, u.Username, u.Email, u.SSN,
		u.DateOfBirth, addresses, phones, functionStrings(u.Functions), u.Status,
		u.CreatedBy, u.UpdatedBy, u.CreatedAt, u.UpdatedAt,
	)
	return translateUserError(err)
}

// GetByID retrieves a user by ID.
func (r *UsersRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	row := queryerFrom(ctx, r.pool).QueryRow(ctx, q, id)
	return scanUser(row)
}

// Update writes the full user row. Returns ErrUserNotFound when the user
// does not exist.
func (r *UsersRepository) Update(ctx context.Context, u *domain.User) error {
	addresses, phones, err := marshalContacts(u.Addresses, u.Phones)
	if err != nil {
		return err
	}

	q := `
		UPDATE users
		SET company_id = $2, first_name = $3, last_name = $4, username = $5, email = $6,
		    ssn = $7, date_of_birth = $8, addresses = $9, phones = $10, functions = $11,
		    status = $12, updated_by = $13, updated_at = $14
		WHERE id = $1
	`
	tag, err := queryerFrom(ctx, r.pool).Exec(ctx, q,
		u.ID, u.CompanyID, u.FirstName, u.LastName, u.Username, u.Email, u.SSN,
		u.DateOfBirth, addresses, phones, functionStrings(u.Functions), u.Status,
		u.UpdatedBy, u.UpdatedAt,
	)
	if err != nil {
		return translateUserError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// GetByCompanyID retrieves all users belonging to a company.
func (r *UsersRepository) GetByCompanyID(ctx context.Context, companyID uuid.UUID) ([]*domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE company_id = $1 ORDER BY created_at ASC`
	rows, err := queryerFrom(ctx, r.pool).Query(ctx, q, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// BulkUpdateStatusByCompany sets the status of every user of the company in
// a single set-based update.
func (r *UsersRepository) BulkUpdateStatusByCompany(ctx context.Context, companyID uuid.UUID, status domain.UserStatus, actor string, at time.Time) error {
	q := `
		UPDATE users
		SET status = $2, updated_by = $3, updated_at = $4
		WHERE company_id = $1
	`
	_, err := queryerFrom(ctx, r.pool).Exec(ctx, q, companyID, status, actor, at)
	return err
}

// BulkUpdateStatusByIDs sets the status of the given users of the company in
// a single set-based update. Ids not belonging to the company are ignored.
func (r *UsersRepository) BulkUpdateStatusByIDs(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID, status domain.UserStatus, actor string, at time.Time) error {
	q := `
		UPDATE users
		SET status = $3, updated_by = $4, updated_at = $5
		WHERE company_id = $1 AND id = ANY($2)
	`
	_, err := queryerFrom(ctx, r.pool).Exec(ctx, q, companyID, ids, status, actor, at)
	return err
}

// Search returns one page of users matching the predicate, plus the total
// match count.
func (r *UsersRepository) Search(ctx context.Context, pred query.Predicate, page query.PageRequest) ([]*domain.User, int64, error) {
	exec := queryerFrom(ctx, r.pool)
	where, args := query.Where(pred, 1)

	var total int64
	countQuery := `SELECT count(*) FROM users` + where
	if err := exec.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	limitPlaceholder := "$" + strconv.Itoa(len(args)+1)
	offsetPlaceholder := "$" + strconv.Itoa(len(args)+2)
	args = append(args, page.Size, page.Offset())

	listQuery := `SELECT ` + userColumns + ` FROM users` + where +
		` ORDER BY created_at DESC, id DESC LIMIT ` + limitPlaceholder + ` OFFSET ` + offsetPlaceholder

	rows, err := exec.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u         domain.User
		addresses []byte
		phones    []byte
		functions []string
	)
	err := row.Scan(
		&u.ID, &u.CompanyID, &u.FirstName, &u.LastName, &u.Username, &u.Email, &u.SSN,
		&u.DateOfBirth, &addresses, &phones, &functions, &u.Status,
		&u.CreatedBy, &u.UpdatedBy, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := unmarshalContacts(addresses, phones, &u.Addresses, &u.Phones); err != nil {
		return nil, err
	}
	for _, fn := range functions {
		u.Functions = append(u.Functions, domain.UserFunction(fn))
	}
	return &u, nil
}

func functionStrings(functions []domain.UserFunction) []string {
	out := make([]string, len(functions))
	for i, fn := range functions {
		out[i] = string(fn)
	}
	return out
}

// translateUserError maps unique-constraint violations to domain errors.
func translateUserError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		switch {
		case strings.Contains(pgErr.ConstraintName, "username"):
			return domain.ErrUsernameAlreadyExists
		case strings.Contains(pgErr.ConstraintName, "email"):
			return domain.ErrEmailAlreadyExists
		case strings.Contains(pgErr.ConstraintName, "ssn"):
			return domain.ErrSSNAlreadyExists
		}
	}
	return err
}
