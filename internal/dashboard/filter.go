package dashboard

import "time"

const (
	OrderTypeAll        = "all"
	OrderTypeBankOrders = "bank_orders"
	OrderTypeBipOrders  = "bip_orders"
)

const dateLayout = "2006-01-02"

// StatsQuery is the raw request: optional calendar dates and an order-type
// selector. Empty strings mean "not supplied".
type StatsQuery struct {
	StartDate string
	EndDate   string
	OrderType string
}

// StreamSelector tells calculators which order streams participate. An
// excluded stream is never queried; its contribution is a static zero.
type StreamSelector struct {
	Bank bool
	Bip  bool
}

// DateRange bounds createdAt. From is inclusive, Until exclusive; a zero
// value on either side means unbounded. An endDate with no time component is
// widened to cover its whole calendar day (Until = next midnight).
type DateRange struct {
	From  time.Time
	Until time.Time
}

// Filters is the normalized filter context every panel calculator receives.
// Soft-deleted records are excluded by the dataset unconditionally, so the
// filter does not carry that predicate.
type Filters struct {
	Range   *DateRange
	Streams StreamSelector
}

// BuildFilters normalizes a StatsQuery. Dates are interpreted in loc.
func BuildFilters(q StatsQuery, loc *time.Location) (Filters, error) {
	f := Filters{}

	switch q.OrderType {
	case "", OrderTypeAll:
		f.Streams = StreamSelector{Bank: true, Bip: true}
	case OrderTypeBankOrders:
		f.Streams = StreamSelector{Bank: true}
	case OrderTypeBipOrders:
		f.Streams = StreamSelector{Bip: true}
	default:
		return Filters{}, invalidArgumentf("unknown order type %q", q.OrderType)
	}

	if q.StartDate == "" && q.EndDate == "" {
		return f, nil
	}

	r := &DateRange{}
	if q.StartDate != "" {
		day, err := time.ParseInLocation(dateLayout, q.StartDate, loc)
		if err != nil {
			return Filters{}, invalidArgumentf("bad start date %q", q.StartDate)
		}
		r.From = day
	}
	if q.EndDate != "" {
		day, err := time.ParseInLocation(dateLayout, q.EndDate, loc)
		if err != nil {
			return Filters{}, invalidArgumentf("bad end date %q", q.EndDate)
		}
		r.Until = day.AddDate(0, 0, 1)
	}
	f.Range = r
	return f, nil
}

// bounded reports whether both ends of the requested range were supplied.
// The weekly panel falls back to a trailing window otherwise.
func (f Filters) bounded() bool {
	return f.Range != nil && !f.Range.From.IsZero() && !f.Range.Until.IsZero()
}

// baseScope is the common soft-delete + date-range predicate on createdAt.
func (f Filters) baseScope() Scope {
	s := Scope{DateField: ByCreatedAt}
	if f.Range != nil {
		s.From = f.Range.From
		s.Until = f.Range.Until
	}
	return s
}
