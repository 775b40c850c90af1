package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/company-intake/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS companies (
	id            TEXT PRIMARY KEY,
	company_name  TEXT NOT NULL,
	domain        TEXT NOT NULL,
	city          TEXT NOT NULL DEFAULT '',
	country       TEXT NOT NULL DEFAULT '',
	employee_size TEXT NOT NULL DEFAULT '',
	raw_json      TEXT,
	created_at    DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at    DATETIME NOT NULL DEFAULT (datetime('now')),
	UNIQUE (company_name, domain)
);

CREATE INDEX IF NOT EXISTS idx_companies_country ON companies(country);
CREATE INDEX IF NOT EXISTS idx_companies_domain ON companies(domain);
CREATE INDEX IF NOT EXISTS idx_companies_employee_size ON companies(employee_size);
CREATE INDEX IF NOT EXISTS idx_companies_created_at ON companies(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.db.PingContext(ctx), "sqlite: ping")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) UpsertCompanies(ctx context.Context, records []model.Company) ([]model.Company, error) {
	if len(records) == 0 {
		return nil, nil
	}

	out := make([]model.Company, len(records))
	for i, rec := range records {
		now := time.Now().UTC()
		stored := rec
		err := s.db.QueryRowContext(ctx,
			`INSERT INTO companies (id, company_name, domain, city, country, employee_size, raw_json, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (company_name, domain) DO UPDATE SET
				city = excluded.city,
				country = excluded.country,
				employee_size = excluded.employee_size,
				raw_json = excluded.raw_json,
				updated_at = excluded.updated_at
			RETURNING id, created_at, updated_at`,
			uuid.New().String(), rec.CompanyName, rec.Domain, rec.City, rec.Country,
			rec.EmployeeSize, string(rec.RawJSONBytes()), now, now,
		).Scan(&stored.ID, &stored.CreatedAt, &stored.UpdatedAt)
		if err != nil {
			return nil, eris.Wrapf(err, "sqlite: upsert company %q", rec.CompanyName)
		}
		out[i] = stored
	}
	return out, nil
}

func (s *SQLiteStore) ListCompanies(ctx context.Context, filter CompanyFilter) ([]model.Company, error) {
	var conds []string
	var args []any

	if filter.Country != "" {
		conds = append(conds, `LOWER(country) LIKE '%' || LOWER(?) || '%'`)
		args = append(args, filter.Country)
	}
	if filter.Domain != "" {
		conds = append(conds, `LOWER(domain) LIKE '%' || LOWER(?) || '%'`)
		args = append(args, filter.Domain)
	}
	if filter.EmployeeSize != "" {
		conds = append(conds, `employee_size = ?`)
		args = append(args, filter.EmployeeSize)
	}

	query := `SELECT id, company_name, domain, city, country, employee_size, raw_json, created_at, updated_at FROM companies`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	query += ` ORDER BY created_at DESC LIMIT ?`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list companies")
	}
	defer rows.Close()

	var companies []model.Company
	for rows.Next() {
		var c model.Company
		var rawJSON string
		if err := rows.Scan(&c.ID, &c.CompanyName, &c.Domain, &c.City, &c.Country,
			&c.EmployeeSize, &rawJSON, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan company")
		}
		if rawJSON != "" {
			if err := json.Unmarshal([]byte(rawJSON), &c.RawJSON); err != nil {
				return nil, eris.Wrap(err, "sqlite: unmarshal raw_json")
			}
		}
		companies = append(companies, c)
	}
	return companies, eris.Wrap(rows.Err(), "sqlite: list companies rows")
}

func (s *SQLiteStore) ListCountries(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT country FROM companies WHERE country <> '' ORDER BY country`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list countries")
	}
	defer rows.Close()

	var countries []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan country")
		}
		countries = append(countries, c)
	}
	return countries, eris.Wrap(rows.Err(), "sqlite: list countries rows")
}

func (s *SQLiteStore) ListEmployeeSizes(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT employee_size FROM companies WHERE employee_size <> ''`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list employee sizes")
	}
	defer rows.Close()

	var sizes []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan employee size")
		}
		sizes = append(sizes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: list employee sizes rows")
	}
	return sortBuckets(sizes), nil
}
