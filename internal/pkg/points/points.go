package points

// Kind is a point transaction kind.
type Kind string

const (
	KindAward    Kind = "award"
	KindRedeem   Kind = "redeem"
	KindTransfer Kind = "transfer"
)

// ToCurrency converts a point count to its cash value.
func ToCurrency(pts, valuePerPoint float64) float64 {
	return pts * valuePerPoint
}

// FromCurrency converts a cash amount to points at the fixed rate.
func FromCurrency(amount, valuePerPoint float64) float64 {
	return amount / valuePerPoint
}

// BalanceEffect returns the signed adjustment a transaction of the
// given kind applies to the sender and recipient point balances. For a
// redeem the sender is the redeeming member; awards have no sender and
// redeems no recipient.
func BalanceEffect(kind Kind, pts float64) (senderDelta, recipientDelta float64) {
	switch kind {
	case KindAward:
		return 0, pts
	case KindRedeem:
		return -pts, 0
	case KindTransfer:
		return -pts, pts
	}
	return 0, 0
}

// ReversalEffect computes the balance adjustments needed when a
// recorded transaction's point value is edited to newPoints: the delta
// is applied in the original transaction's direction. Deleting a row
// is an edit to zero followed by removal.
func ReversalEffect(kind Kind, oldPoints, newPoints float64) (senderDelta, recipientDelta float64) {
	return BalanceEffect(kind, newPoints-oldPoints)
}
