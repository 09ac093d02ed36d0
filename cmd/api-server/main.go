package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/clinicdesk/clinicdesk/internal/api"
	"github.com/clinicdesk/clinicdesk/internal/appointment"
	"github.com/clinicdesk/clinicdesk/internal/auth"
	"github.com/clinicdesk/clinicdesk/internal/config"
	"github.com/clinicdesk/clinicdesk/internal/db"
	"github.com/clinicdesk/clinicdesk/internal/patient"
	redisclient "github.com/clinicdesk/clinicdesk/internal/redis"
	"github.com/clinicdesk/clinicdesk/internal/session"
)

const version = "1.2.0"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("api-server starting up")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	log.Printf("running in env=%s http_port=%s demo_mode=%t", cfg.Env, cfg.HTTPPort, cfg.DemoMode)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		pgPool       *pgxpool.Pool
		rdb          *redis.Client
		patientRepo  patient.Repository
		apptRepo     appointment.Repository
		userRepo     auth.UserRepository
		sessionStore session.Store
	)

	if cfg.DemoMode {
		patients := patient.NewMemoryRepository()
		patientRepo = patients
		apptRepo = appointment.NewMemoryRepository(patients.NameOf)
		sessionStore = session.NewMemoryStore()

		userRepo, err = auth.NewDemoUserRepository()
		if err != nil {
			log.Fatalf("demo user setup error: %v", err)
		}
		log.Printf("demo mode active, login with %s / %s", auth.DemoEmail, auth.DemoPassword)
	} else {
		// Connect Postgres
		pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
		pgPool, err = db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
		cancelPg()
		if err != nil {
			log.Fatalf("postgres connection error: %v", err)
		}
		defer pgPool.Close()
		log.Println("connected to Postgres")

		// Connect Redis
		rdb, err = redisclient.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
		if err != nil {
			log.Fatalf("redis connection error: %v", err)
		}
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Printf("error closing redis: %v", err)
			}
		}()
		log.Println("connected to Redis")

		patientRepo = patient.NewPgRepository(pgPool)
		apptRepo = appointment.NewPgRepository(pgPool)
		userRepo = auth.NewPgUserRepository(pgPool)
		sessionStore = session.NewRedisStore(rdb)
	}

	apptSvc := appointment.NewService(apptRepo)
	patientSvc := patient.NewService(patientRepo, apptRepo)
	authSvc := auth.NewService(userRepo, sessionStore, cfg.JWTSecret, cfg.SessionTTL)

	handler := api.NewRouter(api.RouterConfig{
		Auth:         authSvc,
		Patients:     patientSvc,
		Appointments: apptSvc,
		PgPool:       pgPool,
		Redis:        rdb,
		DemoMode:     cfg.DemoMode,
		Env:          cfg.Env,
		Version:      version,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-rootCtx.Done()

	log.Println("shutting down api-server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}
