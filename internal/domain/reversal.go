package domain

import "time"

// reversalWindow is how long after a deposit its system reversal may post.
const reversalWindow = 24 * time.Hour

// HasReversal reports whether a deposit appears to have been undone by a
// matching withdrawal: same account and currency, identical amount, posted
// within 24 hours after the deposit, and either carrying a reversal hint
// token in its reference or description or sharing a reference substring with
// the deposit. The upstream ledger records no explicit link between a
// deposit and its reversal, so this is a best-effort heuristic with a known
// false-negative risk; it must never be promoted to an authoritative link.
func (c *Classifier) HasReversal(deposit TransactionRecord, all []TransactionRecord) bool {
	if c.ClassifyType(deposit.RawType) != TypeDeposit {
		return false
	}

	baseRef := fold(deposit.Reference)

	for _, other := range all {
		if other.AccountNumber != deposit.AccountNumber || other.Currency != deposit.Currency {
			continue
		}
		if c.ClassifyType(other.RawType) != TypeWithdrawal {
			continue
		}
		if !other.Amount.Equal(deposit.Amount) {
			continue
		}

		delta := other.TransactionDate.Sub(deposit.TransactionDate)
		if delta < 0 || delta > reversalWindow {
			continue
		}

		ref := fold(other.Reference)
		desc := fold(other.Description)
		if containsAny(ref, c.cfg.ReversalHints) || containsAny(desc, c.cfg.ReversalHints) {
			return true
		}
		if baseRef != "" && ref != "" && (containsAny(baseRef, []string{ref}) || containsAny(ref, []string{baseRef})) {
			return true
		}
	}
	return false
}
