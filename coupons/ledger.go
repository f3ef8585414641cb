package coupons

import (
	"sort"
	"strings"
)

// Coupon is a static code-to-percentage discount rule. Codes are matched
// case-insensitively and never change at runtime.
type Coupon struct {
	Code            string `json:"code"`
	DiscountPercent int    `json:"discount_percent"`
}

type Ledger struct {
	codes map[string]int
}

func NewLedger() *Ledger {
	return &Ledger{
		codes: map[string]int{
			"STYLE10":   10,
			"STYLE20":   20,
			"NEWUSER":   15,
			"FASHION25": 25,
		},
	}
}

// Validate looks a code up case-insensitively.
func (l *Ledger) Validate(code string) (Coupon, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	percent, ok := l.codes[normalized]
	if !ok {
		return Coupon{}, false
	}
	return Coupon{Code: normalized, DiscountPercent: percent}, true
}

// PercentFor returns the discount percentage for a code, or 0 for blank or
// unknown codes. A coupon miss is a normal outcome, not an error.
func (l *Ledger) PercentFor(code string) int {
	coupon, ok := l.Validate(code)
	if !ok {
		return 0
	}
	return coupon.DiscountPercent
}

// List returns all coupons in code order.
func (l *Ledger) List() []Coupon {
	out := make([]Coupon, 0, len(l.codes))
	for code, percent := range l.codes {
		out = append(out, Coupon{Code: code, DiscountPercent: percent})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
