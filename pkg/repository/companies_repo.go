package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tendant/simple-admin/pkg/domain"
	"github.com/tendant/simple-admin/pkg/query"
)

// CompaniesRepository handles company persistence.
type CompaniesRepository struct {
	pool Queryer
}

// NewCompaniesRepository creates a new companies repository.
func NewCompaniesRepository(pool Queryer) *CompaniesRepository {
	return &CompaniesRepository{pool: pool}
}

const companyColumns = `id, name, country_code, addresses, phones, email, website, status, created_by, updated_by, created_at, updated_at`

// Create inserts a new company.
func (r *CompaniesRepository) Create(ctx context.Context, c *domain.Company) error {
	addresses, phones, err := marshalContacts(c.Addresses, c.Phones)
	if err != nil {
		return err
	}

	q := `
		INSERT INTO companies (id, name, country_code, addresses, phones, email, website, status, created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = queryerFrom(ctx, r.pool).Exec(ctx, q,
		c.ID, c.Name, c.CountryCode, addresses, phones, c.Email, c.Website,
		c.Status, c.CreatedBy, c.UpdatedBy, c.CreatedAt, c.UpdatedAt,
	)
	return err
}

// GetByID retrieves a company by ID.
func (r *CompaniesRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	q := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	row := queryerFrom(ctx, r.pool).QueryRow(ctx, q, id)
	return scanCompany(row)
}

// Update writes the full company row. Returns ErrCompanyNotFound when the
// company does not exist.
func (r *CompaniesRepository) Update(ctx context.Context, c *domain.Company) error {
	addresses, phones, err := marshalContacts(c.Addresses, c.Phones)
	if err != nil {
		return err
	}

	q := `
		UPDATE companies
		SET name = $2, country_code = $3, addresses = $4, phones = $5, email = $6,
		    website = $7, status = $8, updated_by = $9, updated_at = $10
		WHERE id = $1
	`
	tag, err := queryerFrom(ctx, r.pool).Exec(ctx, q,
		c.ID, c.Name, c.CountryCode, addresses, phones, c.Email, c.Website,
		c.Status, c.UpdatedBy, c.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCompanyNotFound
	}
	return nil
}

// Search returns one page of companies matching the predicate, plus the
// total match count.
func (r *CompaniesRepository) Search(ctx context.Context, pred query.Predicate, page query.PageRequest) ([]*domain.Company, int64, error) {
	exec := queryerFrom(ctx, r.pool)
	where, args := query.Where(pred, 1)

	var total int64
	countQuery := `SELECT count(*) FROM companies` + where
	if err := exec.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count companies: %w", err)
	}

	limitPlaceholder := "$" + strconv.Itoa(len(args)+1)
	offsetPlaceholder := "$" + strconv.Itoa(len(args)+2)
	args = append(args, page.Size, page.Offset())

	listQuery := `SELECT ` + companyColumns + ` FROM companies` + where +
		` ORDER BY created_at DESC, id DESC LIMIT ` + limitPlaceholder + ` OFFSET ` + offsetPlaceholder

	rows, err := exec.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search companies: %w", err)
	}
	defer rows.Close()

	var companies []*domain.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, 0, err
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return companies, total, nil
}

func scanCompany(row pgx.Row) (*domain.Company, error) {
	var (
		c         domain.Company
		addresses []byte
		phones    []byte
	)
	err := row.Scan(
		&c.ID, &c.Name, &c.CountryCode, &addresses, &phones, &c.Email, &c.Website,
		&c.Status, &c.CreatedBy, &c.UpdatedBy, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCompanyNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := unmarshalContacts(addresses, phones, &c.Addresses, &c.Phones); err != nil {
		return nil, err
	}
	return &c, nil
}

// marshalContacts serializes address and phone lists for jsonb columns.
// Nil lists are stored as empty arrays.
func marshalContacts(addresses []domain.Address, phones []domain.Phone) ([]byte, []byte, error) {
	if addresses == nil {
		addresses = []domain.Address{}
	}
	if phones == nil {
		phones = []domain.Phone{}
	}
	a, err := json.Marshal(addresses)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal addresses: %w", err)
	}
	p, err := json.Marshal(phones)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal phones: %w", err)
	}
	return a, p, nil
}

func unmarshalContacts(addresses, phones []byte, a *[]domain.Address, p *[]domain.Phone) error {
	if len(addresses) > 0 {
		if err := json.Unmarshal(addresses, a); err != nil {
			return fmt.Errorf("unmarshal addresses: %w", err)
		}
	}
	if len(phones) > 0 {
		if err := json.Unmarshal(phones, p); err != nil {
			return fmt.Errorf("unmarshal phones: %w", err)
		}
	}
	return nil
}
