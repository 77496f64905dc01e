package school

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Upsert(ctx context.Context, domain, name string) (*School, error) {
	const q = `
INSERT INTO schools (domain, name, status)
VALUES ($1, NULLIF($2,''), 'active')
ON CONFLICT (domain) DO UPDATE SET
  name = COALESCE(NULLIF(EXCLUDED.name,''), schools.name),
  status = 'active'
RETURNING id, domain, COALESCE(name,''), COALESCE(status,'active'), created_at
`
	s := &School{}
	if err := r.db.QueryRow(ctx, q, domain, name).Scan(
		&s.ID, &s.Domain, &s.Name, &s.Status, &s.CreatedAt,
	); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *Repository) FindByDomain(ctx context.Context, domain string) (*School, error) {
	const q = `
SELECT id, domain, COALESCE(name,''), COALESCE(status,'active'), created_at
FROM schools
WHERE domain = $1
`
	s := &School{}
	if err := r.db.QueryRow(ctx, q, domain).Scan(
		&s.ID, &s.Domain, &s.Name, &s.Status, &s.CreatedAt,
	); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *Repository) DeleteByID(ctx context.Context, id string) error {
	const q = `DELETE FROM schools WHERE id = $1`
	_, err := r.db.Exec(ctx, q, id)
	return err
}
