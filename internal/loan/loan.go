package loan

import "libraryapi/internal/apperr"

const (
	// MaxActiveLoans caps how many unreturned loans a reader may hold.
	MaxActiveLoans = 5
	// LoanPeriodDays is the time between issue and due date.
	LoanPeriodDays = 14
)

var (
	// ErrBookUnavailable is returned when the book is missing or has no free copy.
	ErrBookUnavailable = apperr.New(apperr.ErrUnavailable, "book is not available")
	// ErrReaderNotFound is returned when the borrowing reader does not exist.
	ErrReaderNotFound = apperr.New(apperr.ErrNotFound, "reader not found")
	// ErrLimitExceeded is returned when the reader already holds MaxActiveLoans.
	ErrLimitExceeded = apperr.New(apperr.ErrLimitExceeded, "reader has reached the maximum number of active loans")
	// ErrNotReturnable is returned for unknown or already returned loans.
	ErrNotReturnable = apperr.New(apperr.ErrValidation, "invalid loan id or loan already returned")
)

// Loan is one borrowing of one book by one reader. It is active while
// ReturnDate is nil and becomes returned exactly once. Dates are YYYY-MM-DD.
type Loan struct {
	ID         int64   `json:"id"`
	BookID     int64   `json:"book_id"`
	ReaderID   int64   `json:"reader_id"`
	LoanDate   string  `json:"loan_date"`
	DueDate    string  `json:"due_date"`
	ReturnDate *string `json:"return_date"`
}

// Active reports whether the loan has not been returned yet.
func (l Loan) Active() bool {
	return l.ReturnDate == nil
}

// Policy holds the issuing limits.
type Policy struct {
	MaxActive  int
	PeriodDays int
}

// DefaultPolicy is five active loans of fourteen days each.
var DefaultPolicy = Policy{MaxActive: MaxActiveLoans, PeriodDays: LoanPeriodDays}
