package domain

import "context"

// RowSource is one open spreadsheet. Rows are 1-based like the sheet itself:
// row 1 is the header, data starts at row 2.
type RowSource interface {
	RowCount() int
	Row(n int) ([]string, error)
}

type Store interface {
	Ping(ctx context.Context) error
	Begin(ctx context.Context) (Tx, error)
}

// Tx is the unit of work for a single spreadsheet row. Staged entities live
// in memory until Flush, so rolling back a row leaves no trace in the
// database. FindSale sees committed data only.
type Tx interface {
	FindCustomer(id int) (*Customer, error)
	FindSale(id int) (*Sale, error)
	StageCustomer(c *Customer)
	StageAddress(a *Address)
	StageSale(s *Sale)
	Flush() error
	Commit() error
	Rollback() error
	ClearTracking()
}

// ReportSink receives operator-facing progress and error events.
type ReportSink interface {
	Report(msg string)
}
