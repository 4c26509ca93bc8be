package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/phenrril/importador/internal/adapters/report"
	"github.com/phenrril/importador/internal/adapters/spreadsheet"
	"github.com/phenrril/importador/internal/app"
)

func main() {
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = time.RFC3339
	zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	if len(os.Args) < 2 {
		zlog.Fatal().Msg("uso: importador <planilha.xlsx>")
	}
	path := os.Args[1]

	dsn := os.Getenv("DB_DSN")
	if strings.TrimSpace(dsn) == "" {
		host := os.Getenv("DB_HOST")
		if host == "" {
			host = "localhost"
		}
		port := os.Getenv("DB_PORT")
		if port == "" {
			port = "5432"
		}
		user := os.Getenv("DB_USER")
		if user == "" {
			user = os.Getenv("POSTGRES_USER")
		}
		if user == "" {
			user = "postgres"
		}
		pass := os.Getenv("DB_PASSWORD")
		if pass == "" {
			pass = os.Getenv("POSTGRES_PASSWORD")
		}
		if pass == "" {
			pass = "postgres"
		}
		name := os.Getenv("DB_NAME")
		if name == "" {
			name = os.Getenv("POSTGRES_DB")
		}
		if name == "" {
			name = "importador"
		}
		ssl := os.Getenv("DB_SSLMODE")
		if ssl == "" {
			ssl = "disable"
		}
		dsn = "host=" + host + " user=" + user + " password=" + pass + " dbname=" + name + " port=" + port + " sslmode=" + ssl
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to connect to database")
	}

	src, err := spreadsheet.Open(path)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to open spreadsheet")
	}

	logsDir := os.Getenv("LOGS_DIR")
	if logsDir == "" {
		logsDir = "Logs"
	}
	fileSink, err := report.NewFileSink(logsDir, path)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to create import log")
	}
	defer fileSink.Close()

	application := app.NewApp(db, report.Multi{fileSink, report.LoggerSink{Log: zlog.Logger}})
	if err := application.Migrate(); err != nil {
		zlog.Fatal().Err(err).Msg("failed to migrate database")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sum, err := application.ImportUC.Import(ctx, src)
	if err != nil {
		zlog.Error().Err(err).Msg("import aborted")
		fileSink.Close()
		os.Exit(1)
	}
	zlog.Info().
		Int("processed", sum.Processed).
		Int("inserted", sum.Inserted).
		Int("skipped", sum.Skipped).
		Int("errored", sum.Errored).
		Str("log", fileSink.Path()).
		Msg("import finished")
}
