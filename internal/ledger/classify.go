package ledger

// ClassifyOrder maps an order's payment state to a classification.
//
// An unpaid order counts as an expense rather than pending income.
// That mirrors how the shop has always read its dashboard; changing it
// needs a product decision, not a code one.
func ClassifyOrder(paid bool) Classification {
	if paid {
		return Income
	}
	return Expense
}

// ClassifyTransaction maps an explicit type tag to a classification.
// The tag is authoritative. The second return is false when the tag is
// neither income nor expense, in which case no classification rule
// applies and the record must be skipped.
func ClassifyTransaction(typeTag string) (Classification, bool) {
	switch Classification(typeTag) {
	case Income:
		return Income, true
	case Expense:
		return Expense, true
	default:
		return "", false
	}
}
