package statement

import "errors"

var errEmptyStatement = errors.New("statement is empty")

// Row skip reasons, used as log fields and metric labels.
const (
	SkipBlankAmount = "blank_amount"
	SkipBadAmount   = "bad_amount"
	SkipBadDate     = "bad_date"
	SkipWideRecord  = "wide_record"
)
