package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/clinicdesk/clinicdesk/internal/db"
)

const apptColumns = `a.id, a.patient_id, p.name, a.date, a.time, a.reason, a.notes, a.status, a.created_at, a.updated_at`

type PgRepository struct {
	pool db.Querier
}

func NewPgRepository(pool db.Querier) *PgRepository {
	return &PgRepository{pool: pool}
}

// Helpers

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	var date time.Time
	var notes *string

	err := row.Scan(
		&a.ID,
		&a.PatientID,
		&a.PatientName,
		&date,
		&a.Time,
		&a.Reason,
		&notes,
		&a.Status,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	a.Date = date.Format("2006-01-02")
	a.Notes = notes
	return &a, nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// Interface methods

func (r *PgRepository) Create(ctx context.Context, a Appointment) (*Appointment, error) {
	id := uuid.New()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO appointments (id, patient_id, date, time, reason, notes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		RETURNING id, patient_id,
		          (SELECT name FROM patients WHERE id = patient_id),
		          date, time, reason, notes, status, created_at, updated_at
	`, id, a.PatientID, a.Date, a.Time, a.Reason, a.Notes, a.Status)

	created, err := scanAppointment(row)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	return created, nil
}

func (r *PgRepository) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+apptColumns+`
		FROM appointments a
		JOIN patients p ON p.id = a.patient_id
		WHERE a.id = $1
	`, id)
	return scanAppointment(row)
}

func (r *PgRepository) Update(ctx context.Context, a Appointment) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE appointments
		SET date = $2,
		    time = $3,
		    reason = $4,
		    notes = $5,
		    status = $6,
		    updated_at = now()
		WHERE id = $1
		RETURNING id, patient_id,
		          (SELECT name FROM patients WHERE id = patient_id),
		          date, time, reason, notes, status, created_at, updated_at
	`, a.ID, a.Date, a.Time, a.Reason, a.Notes, a.Status)

	return scanAppointment(row)
}

func (r *PgRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE appointments
		SET status = $2,
		    updated_at = now()
		WHERE id = $1
		  AND status = $3
		RETURNING id, patient_id,
		          (SELECT name FROM patients WHERE id = patient_id),
		          date, time, reason, notes, status, created_at, updated_at
	`, id, to, from)

	return scanAppointment(row)
}

func (r *PgRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgRepository) List(ctx context.Context) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+apptColumns+`
		FROM appointments a
		JOIN patients p ON p.id = a.patient_id
		ORDER BY a.date, a.time
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func (r *PgRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+apptColumns+`
		FROM appointments a
		JOIN patients p ON p.id = a.patient_id
		WHERE a.patient_id = $1
		ORDER BY a.date, a.time
	`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func (r *PgRepository) CountByPatient(ctx context.Context, patientID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM appointments WHERE patient_id = $1
	`, patientID).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}

func collectAppointments(rows pgx.Rows) ([]Appointment, error) {
	var result []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
