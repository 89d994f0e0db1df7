package enumprops

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Fold normalizes s for case-insensitive comparison: full Unicode case
// folding followed by NFKD decomposition, so that "ß" and "SS" both fold
// to "ss".
func Fold(s string) string {
	return norm.NFKD.String(cases.Fold().String(s))
}
