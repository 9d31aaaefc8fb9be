package loan

import (
	"context"

	"libraryapi/internal/logging"
)

// Service runs the loan lifecycle: Active on issue, Returned on return.
type Service struct {
	repo   Repository
	log    logging.Logger
	policy Policy
}

func NewService(repo Repository, log logging.Logger) *Service {
	return &Service{repo: repo, log: log, policy: DefaultPolicy}
}

// Issue lends one copy of the book to the reader with a due date
// LoanPeriodDays from today.
func (s *Service) Issue(ctx context.Context, bookID, readerID int64) (Loan, error) {
	l, err := s.repo.Issue(ctx, bookID, readerID, s.policy)
	if err != nil {
		s.log.Debug(ctx, "loan refused", "book_id", bookID, "reader_id", readerID, "error", err)
		return Loan{}, err
	}
	s.log.Info(ctx, "loan issued", "loan_id", l.ID, "book_id", bookID, "reader_id", readerID, "due_date", l.DueDate)
	return l, nil
}

// Return marks the loan returned today and restores the copy.
func (s *Service) Return(ctx context.Context, loanID int64) (Loan, error) {
	l, err := s.repo.Return(ctx, loanID)
	if err != nil {
		return Loan{}, err
	}
	s.log.Info(ctx, "loan returned", "loan_id", l.ID, "book_id", l.BookID)
	return l, nil
}

func (s *Service) List(ctx context.Context, offset, limit int) ([]Loan, error) {
	return s.repo.List(ctx, offset, limit)
}
