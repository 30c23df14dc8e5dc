package config

import (
	"os"
	"strings"
)

// StrictFinancials switches the generator from draft mode to validated mode:
// active solutions must carry parseable volume/pricing figures instead of
// falling back to fillable placeholders.
//
// Set via env:
// - BDC_STRICT_FINANCIALS=true
func StrictFinancials() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("BDC_STRICT_FINANCIALS")))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}
