package loan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"libraryapi/internal/apperr"
	"libraryapi/internal/platform/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	loanColumns = `id, book_id, reader_id,
		to_char(loan_date, 'YYYY-MM-DD'), to_char(due_date, 'YYYY-MM-DD'), to_char(return_date, 'YYYY-MM-DD')`

	takeCopySQL = `
		UPDATE books
		SET available_copies = available_copies - 1, updated_at = now()
		WHERE id = $1 AND available_copies >= 1`

	lockReaderSQL = `SELECT id FROM readers WHERE id = $1 FOR UPDATE`

	countActiveSQL = `SELECT COUNT(*) FROM loans WHERE reader_id = $1 AND return_date IS NULL`

	insertLoanSQL = `
		INSERT INTO loans (book_id, reader_id, loan_date, due_date)
		VALUES ($1, $2, CURRENT_DATE, CURRENT_DATE + $3::int)
		RETURNING ` + loanColumns

	closeLoanSQL = `
		UPDATE loans
		SET return_date = CURRENT_DATE
		WHERE id = $1 AND return_date IS NULL
		RETURNING ` + loanColumns

	giveCopyBackSQL = `
		UPDATE books
		SET available_copies = available_copies + 1, updated_at = now()
		WHERE id = $1`
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
	tracer  trace.Tracer
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout, tracer: otel.Tracer("libraryapi/loan")}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// spanError marks the span failed for unexpected errors only. Refusals such
// as an unavailable book or a full loan quota are recorded as an event.
func spanError(span trace.Span, err error) error {
	if apperr.Known(err) {
		span.AddEvent("refused", trace.WithAttributes(attribute.String("reason", err.Error())))
		return err
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func scanLoan(row pgx.Row) (Loan, error) {
	var l Loan
	err := row.Scan(&l.ID, &l.BookID, &l.ReaderID, &l.LoanDate, &l.DueDate, &l.ReturnDate)
	return l, err
}

func (r *PostgresRepo) Issue(ctx context.Context, bookID, readerID int64, p Policy) (Loan, error) {
	ctx, span := r.tracer.Start(ctx, "loan.issue", trace.WithAttributes(
		attribute.Int64("book.id", bookID),
		attribute.Int64("reader.id", readerID),
	))
	defer span.End()
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var l Loan
	err := postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		// The conditional decrement is the availability check; its row lock
		// serialises concurrent issues of the same book.
		tag, err := tx.Exec(ctx, takeCopySQL, bookID)
		if err != nil {
			return fmt.Errorf("take copy: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrBookUnavailable
		}

		// Locking the reader row serialises issues for the same reader so the
		// count below cannot go stale before the insert commits.
		var id int64
		if err := tx.QueryRow(ctx, lockReaderSQL, readerID).Scan(&id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrReaderNotFound
			}
			return fmt.Errorf("lock reader: %w", err)
		}

		var active int
		if err := tx.QueryRow(ctx, countActiveSQL, readerID).Scan(&active); err != nil {
			return fmt.Errorf("count active loans: %w", err)
		}
		span.SetAttributes(attribute.Int("reader.active_loans", active))
		if active >= p.MaxActive {
			return ErrLimitExceeded
		}

		l, err = scanLoan(tx.QueryRow(ctx, insertLoanSQL, bookID, readerID, p.PeriodDays))
		if err != nil {
			return fmt.Errorf("insert loan: %w", err)
		}
		return nil
	})
	if err != nil {
		return Loan{}, spanError(span, err)
	}
	span.SetAttributes(attribute.Int64("loan.id", l.ID))
	return l, nil
}

func (r *PostgresRepo) Return(ctx context.Context, loanID int64) (Loan, error) {
	ctx, span := r.tracer.Start(ctx, "loan.return", trace.WithAttributes(attribute.Int64("loan.id", loanID)))
	defer span.End()
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var l Loan
	err := postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		l, err = scanLoan(tx.QueryRow(ctx, closeLoanSQL, loanID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotReturnable
			}
			return fmt.Errorf("close loan: %w", err)
		}
		// A missing book row means nothing to give back.
		if _, err := tx.Exec(ctx, giveCopyBackSQL, l.BookID); err != nil {
			return fmt.Errorf("give copy back: %w", err)
		}
		return nil
	})
	if err != nil {
		return Loan{}, spanError(span, err)
	}
	span.SetAttributes(attribute.Int64("book.id", l.BookID))
	return l, nil
}

func (r *PostgresRepo) List(ctx context.Context, offset, limit int) ([]Loan, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT `+loanColumns+` FROM loans ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	defer rows.Close()

	out := []Loan{}
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
