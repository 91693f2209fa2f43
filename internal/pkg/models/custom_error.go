package models

type CustomError struct {
	Code    string
	Message string
}

func (e CustomError) Error() string {
	return e.Message
}
func (e CustomError) ErrorCode() string {
	return e.Code
}

// LimitError carries the computed limit back to the caller so the
// rejection message can show how much the member may still borrow.
type LimitError struct {
	CustomError
	Limit float64
}

func NewLimitError(base *CustomError, limit float64) *LimitError {
	return &LimitError{CustomError: *base, Limit: limit}
}
