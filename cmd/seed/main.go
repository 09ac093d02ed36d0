package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicdesk/clinicdesk/internal/db"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	gofakeit.Seed(time.Now().UnixNano())

	if err := seedPractitioner(context.Background(), pool); err != nil {
		log.Fatalf("seed practitioner: %v", err)
	}
	patientIDs, err := seedPatients(context.Background(), pool, 60)
	if err != nil {
		log.Fatalf("seed patients: %v", err)
	}
	if err := seedAppointments(context.Background(), pool, patientIDs, 250); err != nil {
		log.Fatalf("seed appointments: %v", err)
	}

	log.Println("seed complete")
}

func seedPractitioner(ctx context.Context, pool *pgxpool.Pool) error {
	email := getenv("SEED_EMAIL", "doctor@clinicdesk.local")
	password := getenv("SEED_PASSWORD", "changeme")

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO users (id, email, name, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		ON CONFLICT (email) DO NOTHING
	`, uuid.New(), email, "Dr. "+gofakeit.LastName(), string(hash))
	if err != nil {
		return err
	}

	log.Printf("practitioner seeded: %s", email)
	return nil
}

func seedPatients(ctx context.Context, pool *pgxpool.Pool, count int) ([]uuid.UUID, error) {
	log.Printf("seeding %d patients", count)

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ids := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		id := uuid.New()
		name := gofakeit.Name()
		email := gofakeit.Email()
		phone := gofakeit.Phone()
		dob := gofakeit.DateRange(
			time.Date(1940, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2010, 12, 31, 0, 0, 0, 0, time.UTC),
		).Format("2006-01-02")

		_, err := tx.Exec(ctx, `
			INSERT INTO patients (id, name, email, phone, date_of_birth, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, now(), now())
		`, id, name, email, phone, dob)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	log.Println("patients seeded")
	return ids, nil
}

func seedAppointments(ctx context.Context, pool *pgxpool.Pool, patientIDs []uuid.UUID, count int) error {
	log.Printf("seeding %d appointments", count)

	reasons := []string{
		"Annual physical",
		"Follow-up visit",
		"Blood pressure check",
		"Lab results review",
		"Vaccination",
		"Back pain",
		"Migraine consultation",
		"Medication refill",
		"Skin rash",
		"Preventive screening",
	}
	statuses := []string{"pending", "confirmed", "completed", "cancelled"}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	today := time.Now()
	for i := 0; i < count; i++ {
		patientID := patientIDs[gofakeit.Number(0, len(patientIDs)-1)]
		// Spread visits across six weeks back and six weeks ahead so every
		// calendar window has something in it.
		date := today.AddDate(0, 0, gofakeit.Number(-42, 42)).Format("2006-01-02")
		hhmm := fmt.Sprintf("%02d:%02d", gofakeit.Number(8, 17), 15*gofakeit.Number(0, 3))
		reason := reasons[gofakeit.Number(0, len(reasons)-1)]
		status := statuses[gofakeit.Number(0, len(statuses)-1)]

		var notes *string
		if gofakeit.Bool() {
			n := gofakeit.Sentence(8)
			notes = &n
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO appointments (id, patient_id, date, time, reason, notes, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		`, uuid.New(), patientID, date, hhmm, reason, notes, status)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Println("appointments seeded")
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
