package errors

// TransactionHandler runs a function against an open transaction and rolls
// it back whenever the function fails. Commit stays the caller's job.
type TransactionHandler struct {
	rollback func() error
}

// NewTransactionHandler creates a handler around a rollback function
func NewTransactionHandler(rollback func() error) *TransactionHandler {
	return &TransactionHandler{rollback: rollback}
}

// Execute runs fn, rolling back on failure
func (th *TransactionHandler) Execute(fn func() error) error {
	if err := fn(); err != nil {
		if rbErr := th.rollback(); rbErr != nil {
			return Wrap(err, ErrCodeSQLTransaction, "Transaction failed and rollback also failed").
				WithContext("rollback_error", rbErr.Error())
		}
		return err
	}
	return nil
}
