package patient

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/clinicdesk/clinicdesk/internal/db"
)

const patientColumns = `id, name, email, phone, date_of_birth, created_at, updated_at`

type PgRepository struct {
	pool db.Querier
}

func NewPgRepository(pool db.Querier) *PgRepository {
	return &PgRepository{pool: pool}
}

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Email,
		&p.Phone,
		&p.DateOfBirth,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &p, nil
}

func (r *PgRepository) Create(ctx context.Context, p Patient) (*Patient, error) {
	id := uuid.New()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO patients (id, name, email, phone, date_of_birth, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		RETURNING `+patientColumns+`
	`, id, p.Name, p.Email, p.Phone, p.DateOfBirth)

	return scanPatient(row)
}

func (r *PgRepository) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+patientColumns+`
		FROM patients
		WHERE id = $1
	`, id)
	return scanPatient(row)
}

func (r *PgRepository) Update(ctx context.Context, p Patient) (*Patient, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE patients
		SET name = $2,
		    email = $3,
		    phone = $4,
		    date_of_birth = $5,
		    updated_at = now()
		WHERE id = $1
		RETURNING `+patientColumns+`
	`, p.ID, p.Name, p.Email, p.Phone, p.DateOfBirth)

	return scanPatient(row)
}

func (r *PgRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgRepository) List(ctx context.Context) ([]Patient, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+patientColumns+`
		FROM patients
		ORDER BY name, created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPatients(rows)
}

func (r *PgRepository) Search(ctx context.Context, query string) ([]Patient, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+patientColumns+`
		FROM patients
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name, created_at
	`, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPatients(rows)
}

func collectPatients(rows pgx.Rows) ([]Patient, error) {
	var result []Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
