package domain

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ClassifierConfig holds the vocabularies the classifier matches against.
// The upstream branch systems mix French and English and are inconsistent
// about accents and casing, so all matching happens on folded text.
type ClassifierConfig struct {
	DepositTokens    []string
	WithdrawalTokens []string

	CancelTokens   []string
	FailTokens     []string
	ProcessTokens  []string
	PendingTokens  []string
	CompleteTokens []string

	// StatusOrdinals maps numeric upstream status codes to canonical statuses.
	StatusOrdinals map[int]CanonicalStatus

	// ReversalHints mark a withdrawal as a system reversal of a deposit.
	ReversalHints []string
}

// DefaultClassifierConfig returns the vocabulary observed across the branch
// systems' feeds.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		DepositTokens:    []string{"DEPOSIT", "DEPOT", "VERSEMENT", "CREDIT", "INITIAL", "OPENING", "OUVERTURE"},
		WithdrawalTokens: []string{"WITHDRAW", "RETRAIT", "DEBIT"},

		CancelTokens:   []string{"ANNUL", "CANCEL"},
		FailTokens:     []string{"FAIL", "ECHEC", "ECHOU", "ERREUR", "ERROR"},
		ProcessTokens:  []string{"PROCESS", "EN COURS", "IN_PROGRESS"},
		PendingTokens:  []string{"PEND", "ATTENT"},
		CompleteTokens: []string{"COMPLET", "SUCCESS", "REUSSI"},

		StatusOrdinals: map[int]CanonicalStatus{
			0: StatusPending,
			1: StatusProcessing,
			2: StatusCompleted,
			3: StatusCancelled,
			4: StatusFailed,
		},

		ReversalHints: []string{"REV", "REVERSE", "REVERSAL", "CANCEL", "ANNUL"},
	}
}

// Classifier maps free-form upstream type/status encodings to the canonical
// enums. It is pure and safe for concurrent use.
type Classifier struct {
	cfg ClassifierConfig
}

// NewClassifier creates a Classifier with the given vocabularies. Zero-value
// config fields fall back to the defaults.
func NewClassifier(cfg ClassifierConfig) *Classifier {
	def := DefaultClassifierConfig()
	if cfg.DepositTokens == nil {
		cfg.DepositTokens = def.DepositTokens
	}
	if cfg.WithdrawalTokens == nil {
		cfg.WithdrawalTokens = def.WithdrawalTokens
	}
	if cfg.CancelTokens == nil {
		cfg.CancelTokens = def.CancelTokens
	}
	if cfg.FailTokens == nil {
		cfg.FailTokens = def.FailTokens
	}
	if cfg.ProcessTokens == nil {
		cfg.ProcessTokens = def.ProcessTokens
	}
	if cfg.PendingTokens == nil {
		cfg.PendingTokens = def.PendingTokens
	}
	if cfg.CompleteTokens == nil {
		cfg.CompleteTokens = def.CompleteTokens
	}
	if cfg.StatusOrdinals == nil {
		cfg.StatusOrdinals = def.StatusOrdinals
	}
	if cfg.ReversalHints == nil {
		cfg.ReversalHints = def.ReversalHints
	}
	return &Classifier{cfg: cfg}
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// fold uppercases and strips diacritics so "Dépôt" matches "DEPOT".
func fold(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.ToUpper(folded)
}

// ClassifyType maps a raw transaction type to DEPOSIT, WITHDRAWAL or OTHER
// by case- and diacritic-insensitive substring match. The deposit vocabulary
// is checked first; an input matching both classifies as DEPOSIT. Total:
// every input maps to exactly one canonical type.
func (c *Classifier) ClassifyType(rawType string) CanonicalType {
	s := fold(rawType)
	if containsAny(s, c.cfg.DepositTokens) {
		return TypeDeposit
	}
	if containsAny(s, c.cfg.WithdrawalTokens) {
		return TypeWithdrawal
	}
	return TypeOther
}

// NormalizeStatus maps a raw transaction status to a canonical status.
// Numeric input resolves through the ordinal map; unmapped numbers pass
// through as unknown statuses. Absent input defaults to COMPLETED, matching
// the upstream feeds that omit the field for settled movements.
func (c *Classifier) NormalizeStatus(rawStatus string) CanonicalStatus {
	s := strings.TrimSpace(rawStatus)
	if s == "" {
		return StatusCompleted
	}

	if n, err := strconv.Atoi(s); err == nil {
		if status, ok := c.cfg.StatusOrdinals[n]; ok {
			return status
		}
		return CanonicalStatus(s)
	}

	folded := fold(s)
	switch {
	case containsAny(folded, c.cfg.CancelTokens):
		return StatusCancelled
	case containsAny(folded, c.cfg.FailTokens):
		return StatusFailed
	case containsAny(folded, c.cfg.ProcessTokens):
		return StatusProcessing
	case containsAny(folded, c.cfg.PendingTokens):
		return StatusPending
	case containsAny(folded, c.cfg.CompleteTokens):
		return StatusCompleted
	default:
		return CanonicalStatus(folded)
	}
}

// DisplayStatus applies the presentation override: a cancelled deposit is
// shown as completed, because its reversal appears in the history as a
// separate withdrawal and showing both as cancelled would double-represent
// it. Identity for every other combination; never used in aggregates.
func (c *Classifier) DisplayStatus(tx TransactionRecord, status CanonicalStatus) CanonicalStatus {
	if status == StatusCancelled && c.ClassifyType(tx.RawType) == TypeDeposit {
		return StatusCompleted
	}
	return status
}

func containsAny(s string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(s, token) {
			return true
		}
	}
	return false
}
