package orders

// Status is the canonical order status shared by both order streams.
//
// Historically the bank-order collection stored the dispatched state as
// "dispatch" while BIP orders stored "dispatched". The canonical spelling is
// "dispatched"; NormalizeStatus folds the legacy spelling in, and
// NativeStatus maps back out when a query has to hit the bank-order table.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusCancelled  Status = "cancelled"
	StatusProcessing Status = "processing"
	StatusDispatched Status = "dispatched"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
)

// legacyDispatch is the bank-order spelling of StatusDispatched.
const legacyDispatch = "dispatch"

// Stream identifies which of the two parallel order collections a record
// belongs to.
type Stream string

const (
	StreamBank Stream = "bank"
	StreamBip  Stream = "bip"
)

var allStatuses = map[Status]bool{
	StatusPending:    true,
	StatusConfirmed:  true,
	StatusCancelled:  true,
	StatusProcessing: true,
	StatusDispatched: true,
	StatusShipped:    true,
	StatusDelivered:  true,
}

// NormalizeStatus maps a raw stored status into the canonical vocabulary.
// Unknown values pass through unchanged so callers can decide whether to
// reject or ignore them.
func NormalizeStatus(raw string) Status {
	if raw == legacyDispatch {
		return StatusDispatched
	}
	return Status(raw)
}

// Valid reports whether s is part of the canonical vocabulary.
func (s Status) Valid() bool {
	return allStatuses[s]
}

// NativeStatus maps a canonical status to the spelling the given stream's
// table actually stores.
func NativeStatus(stream Stream, s Status) string {
	if stream == StreamBank && s == StatusDispatched {
		return legacyDispatch
	}
	return string(s)
}

// NativeStatuses maps a canonical status set for use in a query against the
// given stream's table.
func NativeStatuses(stream Stream, statuses []Status) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, NativeStatus(stream, s))
	}
	return out
}
