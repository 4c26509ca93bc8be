package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/phenrril/importador/internal/domain"
)

// Summary carries the run counters reported at the end of an import.
type Summary struct {
	Processed int
	Inserted  int
	Skipped   int
	Errored   int
}

// ImportUC drives a spreadsheet import: rows in sheet order, one transaction
// per row, failures isolated to the row that caused them. Only errors raised
// before the first row (store unreachable, sheet unreadable) abort the run.
type ImportUC struct {
	Store  domain.Store
	Report domain.ReportSink
}

const progressEvery = 10

func (uc *ImportUC) Import(ctx context.Context, src domain.RowSource) (Summary, error) {
	var sum Summary

	if err := uc.Store.Ping(ctx); err != nil {
		return sum, fmt.Errorf("banco de dados indisponível: %w", err)
	}

	runID := uuid.New()
	uc.Report.Report(fmt.Sprintf("Iniciando importação da planilha (execução %s)", runID))

	rowCount := src.RowCount()
	uc.Report.Report(fmt.Sprintf("Total de linhas encontradas: %d (ignorando cabeçalho)", rowCount-1))

	for rowNum := 2; rowNum <= rowCount; rowNum++ {
		// Cancellation only between rows, never mid-transaction.
		if err := ctx.Err(); err != nil {
			uc.Report.Report(fmt.Sprintf("Importação interrompida antes da linha %d: %v", rowNum, err))
			return sum, err
		}
		sum.Processed++
		uc.processRow(ctx, src, rowNum, &sum)
		if sum.Processed%progressEvery == 0 {
			uc.Report.Report(fmt.Sprintf("Processadas %d de %d linhas...", sum.Processed, rowCount-1))
		}
	}

	uc.Report.Report("Resumo da importação:")
	uc.Report.Report(fmt.Sprintf("- Total de linhas processadas: %d", sum.Processed))
	uc.Report.Report(fmt.Sprintf("- Linhas inseridas com sucesso: %d", sum.Inserted))
	uc.Report.Report(fmt.Sprintf("- Linhas puladas (duplicadas): %d", sum.Skipped))
	uc.Report.Report(fmt.Sprintf("- Linhas com erro: %d", sum.Errored))
	uc.Report.Report("Importação finalizada")
	return sum, nil
}

// processRow runs the per-row state machine: validate, resolve, persist.
// Rejected rows never touch the store; everything past validation happens
// inside the row's own transaction.
func (uc *ImportUC) processRow(ctx context.Context, src domain.RowSource, rowNum int, sum *Summary) {
	cells, err := src.Row(rowNum)
	if err != nil {
		sum.Errored++
		uc.Report.Report(fmt.Sprintf("Linha %d - Erro ao ler a linha: %v", rowNum, err))
		return
	}

	row, fieldErrs := ValidateRow(cells)
	if len(fieldErrs) > 0 {
		sum.Errored++
		for _, fe := range fieldErrs {
			uc.Report.Report(fmt.Sprintf("Linha %d - Campo: %s - Valor: '%s' - Erro: %s",
				rowNum, fe.Column, fe.Value, fe.Reason))
		}
		return
	}

	tx, err := uc.Store.Begin(ctx)
	if err != nil {
		sum.Errored++
		uc.Report.Report(fmt.Sprintf("Linha %d - Erro ao abrir transação: %v", rowNum, err))
		return
	}

	cust, addr, dup, err := resolveRow(tx, row)
	if err != nil {
		uc.rollbackRow(tx, rowNum, err, sum)
		return
	}
	if dup {
		_ = tx.Rollback()
		tx.ClearTracking()
		sum.Skipped++
		uc.Report.Report(fmt.Sprintf("Linha %d: Venda ID %d já existe - pulando", rowNum, row.SaleID))
		return
	}

	tx.StageSale(&domain.Sale{
		ID:            row.SaleID,
		Date:          row.SaleDate,
		Total:         row.Total,
		PaymentMethod: row.Payment,
		CustomerID:    cust.ID,
		AddressID:     addr.ID,
		CreatedAt:     time.Now(),
	})

	if err := tx.Flush(); err != nil {
		uc.rollbackRow(tx, rowNum, err, sum)
		return
	}
	if err := tx.Commit(); err != nil {
		uc.rollbackRow(tx, rowNum, err, sum)
		return
	}
	sum.Inserted++
}

// rollbackRow handles any failure after validation: the transaction is
// rolled back and tracked state cleared so stale references cannot leak into
// the next row. The run keeps going.
func (uc *ImportUC) rollbackRow(tx domain.Tx, rowNum int, cause error, sum *Summary) {
	_ = tx.Rollback()
	tx.ClearTracking()
	sum.Errored++
	uc.Report.Report(fmt.Sprintf("Linha %d - Erro de banco/lógica: %v", rowNum, cause))
}
