package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/company-intake/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses, narrowed so tests
// can substitute a pgxmock pool.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

const upsertCompanySQL = `
INSERT INTO companies (id, company_name, domain, city, country, employee_size, raw_json, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (company_name, domain) DO UPDATE SET
	city = EXCLUDED.city,
	country = EXCLUDED.country,
	employee_size = EXCLUDED.employee_size,
	raw_json = EXCLUDED.raw_json,
	updated_at = EXCLUDED.updated_at
RETURNING id, created_at, updated_at`

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS companies (
	id            TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	company_name  TEXT NOT NULL,
	domain        TEXT NOT NULL,
	city          TEXT NOT NULL DEFAULT '',
	country       TEXT NOT NULL DEFAULT '',
	employee_size TEXT NOT NULL DEFAULT '',
	raw_json      JSONB,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (company_name, domain)
);

CREATE INDEX IF NOT EXISTS idx_companies_country ON companies(country);
CREATE INDEX IF NOT EXISTS idx_companies_domain ON companies(domain);
CREATE INDEX IF NOT EXISTS idx_companies_employee_size ON companies(employee_size);
CREATE INDEX IF NOT EXISTS idx_companies_created_at ON companies(created_at DESC);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

func (s *PostgresStore) UpsertCompanies(ctx context.Context, records []model.Company) ([]model.Company, error) {
	if len(records) == 0 {
		return nil, nil
	}

	out := make([]model.Company, len(records))
	for i, rec := range records {
		now := time.Now().UTC()
		stored := rec
		err := s.pool.QueryRow(ctx, upsertCompanySQL,
			uuid.New().String(), rec.CompanyName, rec.Domain, rec.City, rec.Country,
			rec.EmployeeSize, rec.RawJSONBytes(), now, now,
		).Scan(&stored.ID, &stored.CreatedAt, &stored.UpdatedAt)
		if err != nil {
			return nil, eris.Wrapf(err, "postgres: upsert company %q", rec.CompanyName)
		}
		out[i] = stored
	}
	return out, nil
}

func (s *PostgresStore) ListCompanies(ctx context.Context, filter CompanyFilter) ([]model.Company, error) {
	query := `SELECT id, company_name, domain, city, country, employee_size, raw_json, created_at, updated_at FROM companies WHERE true`
	args := []any{}
	argIdx := 1

	if filter.Country != "" {
		query += fmt.Sprintf(` AND country ILIKE '%%' || $%d || '%%'`, argIdx)
		args = append(args, filter.Country)
		argIdx++
	}
	if filter.Domain != "" {
		query += fmt.Sprintf(` AND domain ILIKE '%%' || $%d || '%%'`, argIdx)
		args = append(args, filter.Domain)
		argIdx++
	}
	if filter.EmployeeSize != "" {
		query += fmt.Sprintf(` AND employee_size = $%d`, argIdx)
		args = append(args, filter.EmployeeSize)
		argIdx++
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, limit)
	argIdx++

	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argIdx)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list companies")
	}
	defer rows.Close()

	var companies []model.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, eris.Wrap(rows.Err(), "postgres: list companies rows")
}

func (s *PostgresStore) ListCountries(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT DISTINCT country FROM companies WHERE country <> '' ORDER BY country`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list countries")
	}
	defer rows.Close()

	var countries []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, eris.Wrap(err, "postgres: scan country")
		}
		countries = append(countries, c)
	}
	return countries, eris.Wrap(rows.Err(), "postgres: list countries rows")
}

func (s *PostgresStore) ListEmployeeSizes(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT DISTINCT employee_size FROM companies WHERE employee_size <> ''`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list employee sizes")
	}
	defer rows.Close()

	var sizes []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, eris.Wrap(err, "postgres: scan employee size")
		}
		sizes = append(sizes, s)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: list employee sizes rows")
	}
	return sortBuckets(sizes), nil
}

func scanCompany(rows pgx.Rows) (model.Company, error) {
	var c model.Company
	var rawJSON []byte
	if err := rows.Scan(&c.ID, &c.CompanyName, &c.Domain, &c.City, &c.Country,
		&c.EmployeeSize, &rawJSON, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return model.Company{}, eris.Wrap(err, "postgres: scan company")
	}
	if len(rawJSON) > 0 {
		if err := json.Unmarshal(rawJSON, &c.RawJSON); err != nil {
			return model.Company{}, eris.Wrap(err, "postgres: unmarshal raw_json")
		}
	}
	return c, nil
}
