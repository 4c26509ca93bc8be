// Package report implements the sinks that receive import progress events:
// the append-only per-run log file and a zerolog mirror.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/phenrril/importador/internal/domain"
)

const timestampLayout = "02/01/2006 15:04:05"

// FileSink appends import events to Logs/Log_<planilha>_<data>.txt, one file
// per run, named after the spreadsheet.
type FileSink struct {
	f *os.File
}

func NewFileSink(dir, sourceName string) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	base := strings.TrimSuffix(filepath.Base(sourceName), filepath.Ext(sourceName))
	name := fmt.Sprintf("Log_%s_%s.txt", base, time.Now().Format("20060102_150405"))
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	header := fmt.Sprintf("=== LOG DE IMPORTAÇÃO DA PLANILHA ===\nArquivo: %s\nData/Hora: %s\n========================================\n\n",
		filepath.Base(sourceName), time.Now().Format(timestampLayout))
	if _, err := f.WriteString(header); err != nil {
		f.Close()
		return nil, err
	}
	return &FileSink{f: f}, nil
}

func (s *FileSink) Report(msg string) {
	fmt.Fprintf(s.f, "[%s] %s\n", time.Now().Format(timestampLayout), msg)
}

// Path returns the log file location so the caller can tell the operator
// where to look.
func (s *FileSink) Path() string { return s.f.Name() }

func (s *FileSink) Close() error { return s.f.Close() }

// LoggerSink forwards report events to zerolog.
type LoggerSink struct{ Log zerolog.Logger }

func (s LoggerSink) Report(msg string) { s.Log.Info().Msg(msg) }

// Multi fans each report event out to every sink.
type Multi []domain.ReportSink

func (m Multi) Report(msg string) {
	for _, s := range m {
		s.Report(msg)
	}
}
