// Command export writes a calendar window's CSV or PDF export to disk
// without going through the HTTP API. Useful for backups and end-of-month
// reporting from a cron job.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/clinicdesk/clinicdesk/internal/appointment"
	"github.com/clinicdesk/clinicdesk/internal/calendar"
	"github.com/clinicdesk/clinicdesk/internal/db"
	"github.com/clinicdesk/clinicdesk/internal/export"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var (
		dateFlag   = flag.String("date", time.Now().Format("2006-01-02"), "reference date (YYYY-MM-DD)")
		granFlag   = flag.String("granularity", "month", "window granularity: day, week or month")
		formatFlag = flag.String("format", "csv", "output format: csv or pdf")
		outFlag    = flag.String("out", ".", "output directory")
	)
	flag.Parse()

	if err := run(*dateFlag, *granFlag, *formatFlag, *outFlag); err != nil {
		log.Fatalf("export failed: %v", err)
	}
}

func run(date, gran, format, outDir string) error {
	if _, err := calendar.ParseDate(date); err != nil {
		return err
	}
	g, err := calendar.ParseGranularity(gran)
	if err != nil {
		return err
	}

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		return fmt.Errorf("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	repo := appointment.NewPgRepository(pool)
	appts, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list appointments: %w", err)
	}

	visible, err := calendar.SelectWindow(appts, date, g)
	if err != nil {
		return err
	}
	visible = calendar.SortSchedule(visible)

	var (
		name string
		body []byte
	)
	switch format {
	case "csv":
		name = export.CSVFilename(g, date)
		body = []byte(export.CSV(visible))
	case "pdf":
		name = export.PDFFilename(g, date)
		body, err = export.PDF(visible, date, g, time.Now())
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (want csv or pdf)", format)
	}

	path := filepath.Join(outDir, name)
	if err := writeAtomic(path, body); err != nil {
		return err
	}

	log.Printf("wrote %d appointments to %s", len(visible), path)
	return nil
}

// writeAtomic stages the file next to its destination and renames it into
// place, so a failed run never leaves a truncated export behind.
func writeAtomic(path string, body []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".export-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
