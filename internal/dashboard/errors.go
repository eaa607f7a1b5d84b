package dashboard

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument marks request-shaped failures (malformed dates, unknown
// order type). Everything else bubbling out of the dataset is treated as a
// dependency failure and aborts the whole aggregation.
var ErrInvalidArgument = errors.New("invalid argument")

func invalidArgumentf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidArgument)...)
}
