package loan

import "context"

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=loan

// Repository defines the contract for loan storage. Issue and Return each
// run as a single transaction that also adjusts the book's available copies.
type Repository interface {
	// Issue takes one copy of the book and records an active loan. Checks
	// run in order: copy available, reader exists, reader under the cap.
	Issue(ctx context.Context, bookID, readerID int64, p Policy) (Loan, error)
	// Return closes an active loan and gives the copy back.
	Return(ctx context.Context, loanID int64) (Loan, error)
	List(ctx context.Context, offset, limit int) ([]Loan, error)
}
