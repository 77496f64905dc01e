package plan

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"planservice/pkg/db"
)

var ErrNotFound = errors.New("plan not found")

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

type ListFilter struct {
	CourseID string
	Page     int
	PerPage  int
}

// normalized clamps the paging inputs to their serviceable bounds.
func (f ListFilter) normalized() ListFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 || f.PerPage > 100 {
		f.PerPage = 20
	}
	return f
}

func (r *Repository) Create(ctx context.Context, schoolID string, p Plan) (Plan, error) {
	options, scope, terms, err := marshalParts(p)
	if err != nil {
		return Plan{}, err
	}

	const q = `
INSERT INTO plans (school_id, course_id, name, total, active, course_type, note, class_scope, options, terms)
VALUES ($1, $2, $3, NULLIF($4,'')::numeric, $5, $6, $7, $8, $9, $10)
RETURNING id, to_char(updated_at, 'YYYY-MM-DD HH24:MI:SS')
`
	out := p
	if err := r.db.QueryRow(ctx, q,
		schoolID, p.CourseID, p.Name, p.Total, p.Active, p.CourseType, p.Note, scope, options, terms,
	).Scan(&out.ID, &out.UpdatedAt); err != nil {
		return Plan{}, mapUniqueViolation(err)
	}
	return out, nil
}

func (r *Repository) Update(ctx context.Context, schoolID, id string, p Plan) (Plan, error) {
	options, scope, terms, err := marshalParts(p)
	if err != nil {
		return Plan{}, err
	}

	const q = `
UPDATE plans SET
  course_id = $3,
  name = $4,
  total = NULLIF($5,'')::numeric,
  active = $6,
  course_type = $7,
  note = $8,
  class_scope = $9,
  options = $10,
  terms = $11,
  updated_at = now()
WHERE school_id = $1 AND id = $2
RETURNING id, to_char(updated_at, 'YYYY-MM-DD HH24:MI:SS')
`
	out := p
	if err := r.db.QueryRow(ctx, q,
		schoolID, id, p.CourseID, p.Name, p.Total, p.Active, p.CourseType, p.Note, scope, options, terms,
	).Scan(&out.ID, &out.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Plan{}, ErrNotFound
		}
		return Plan{}, mapUniqueViolation(err)
	}
	return out, nil
}

func (r *Repository) GetByID(ctx context.Context, schoolID, id string) (Plan, error) {
	const q = `
SELECT id, course_id, name, COALESCE(total::text,''), active, COALESCE(course_type,''), COALESCE(note,''),
       class_scope, options, terms, to_char(updated_at, 'YYYY-MM-DD HH24:MI:SS')
FROM plans
WHERE school_id = $1 AND id = $2
`
	return scanPlan(r.db.QueryRow(ctx, q, schoolID, id))
}

func (r *Repository) Delete(ctx context.Context, schoolID, id string) error {
	const q = `DELETE FROM plans WHERE school_id = $1 AND id = $2`
	ct, err := r.db.Exec(ctx, q, schoolID, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns one page of plans plus the total match count and the effective
// (clamped) filter, so callers echo exactly what was queried. Count and page
// are read in one transaction to keep them consistent.
func (r *Repository) List(ctx context.Context, schoolID string, f ListFilter) ([]Plan, int, ListFilter, error) {
	f = f.normalized()

	const countQ = `
SELECT count(*) FROM plans
WHERE school_id = $1 AND ($2 = '' OR course_id = $2)
`
	const q = `
SELECT id, course_id, name, COALESCE(total::text,''), active, COALESCE(course_type,''), COALESCE(note,''),
       class_scope, options, terms, to_char(updated_at, 'YYYY-MM-DD HH24:MI:SS')
FROM plans
WHERE school_id = $1 AND ($2 = '' OR course_id = $2)
ORDER BY name ASC, created_at ASC
LIMIT $3 OFFSET $4
`
	var out []Plan
	var total int
	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, countQ, schoolID, f.CourseID).Scan(&total); err != nil {
			return err
		}

		rows, err := tx.Query(ctx, q, schoolID, f.CourseID, f.PerPage, (f.Page-1)*f.PerPage)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			p, err := scanPlan(rows)
			if err != nil {
				return err
			}
			out = append(out, p)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, 0, f, err
	}
	return out, total, f, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row rowScanner) (Plan, error) {
	var p Plan
	var scope, options, terms []byte
	var active bool
	if err := row.Scan(
		&p.ID, &p.CourseID, &p.Name, &p.Total, &active, &p.CourseType, &p.Note,
		&scope, &options, &terms, &p.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Plan{}, ErrNotFound
		}
		return Plan{}, err
	}
	p.Active = active

	if len(scope) > 0 {
		if err := json.Unmarshal(scope, &p.ClassScope); err != nil {
			return Plan{}, err
		}
	}
	if len(options) > 0 {
		if err := json.Unmarshal(options, &p.Options); err != nil {
			return Plan{}, err
		}
	}
	if len(terms) > 0 {
		if err := json.Unmarshal(terms, &p.Terms); err != nil {
			return Plan{}, err
		}
	}
	if p.Options == nil {
		p.Options = map[int]Option{}
	}
	return p, nil
}

func marshalParts(p Plan) (options, scope, terms []byte, err error) {
	scope, err = json.Marshal(nonNilScope(p.ClassScope))
	if err != nil {
		return nil, nil, nil, err
	}
	options, err = json.Marshal(p.Options)
	if err != nil {
		return nil, nil, nil, err
	}
	if p.Terms == nil {
		terms = []byte("[]")
	} else if terms, err = json.Marshal(p.Terms); err != nil {
		return nil, nil, nil, err
	}
	return options, scope, terms, nil
}

func nonNilScope(scope []string) []string {
	if scope == nil {
		return []string{}
	}
	return scope
}

// mapUniqueViolation turns the per-course unique name constraint into the
// field-level validation error the form surfaces next to `nome`.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return &ValidationError{
			Code: "VALIDATION_FAILED",
			Fields: map[string][]string{
				"nome": {"já existe uma tabela com este nome para o curso"},
			},
		}
	}
	return err
}
