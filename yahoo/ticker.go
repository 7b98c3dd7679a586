// Package yahoo converts Trading 212 holdings into the Yahoo Finance
// portfolio-import format.
package yahoo

import (
	"strings"

	"go.uber.org/zap"

	"github.com/architg25/t212-to-yahoo/t212"
)

// ExchangeSuffixes maps the single lowercase exchange letter that Trading 212
// appends to some tickers onto the Yahoo Finance symbol suffix. The table is
// fixed; it is not user-configurable.
var ExchangeSuffixes = map[byte]string{
	'a': ".AS", // Euronext Amsterdam
	'b': ".BR", // Euronext Brussels
	'f': ".F",  // Frankfurt (Xetra)
	'g': ".PA", // Euronext Paris
	'h': ".HK", // Hong Kong
	'l': ".L",  // London Stock Exchange
	'm': ".MC", // Madrid Stock Exchange
	'n': ".N",  // New York Stock Exchange
	'o': ".O",  // NASDAQ
	's': ".ST", // Stockholm (Nasdaq OMX)
	't': ".T",  // Tokyo Stock Exchange
	'v': ".VI", // Vienna Stock Exchange
	'z': ".SW", // SIX Swiss Exchange (Zurich)
}

// Rule identifies which transformation path produced a symbol.
type Rule int

const (
	// RulePrefix: no exchange letter and no usable shortName; the prefix
	// before the first underscore is returned as-is.
	RulePrefix Rule = iota
	// RuleExchangeSuffix: trailing lowercase letter found in ExchangeSuffixes.
	RuleExchangeSuffix
	// RuleSuffixFallback: trailing lowercase letter not in the table; the
	// letter is uppercased into a ".X" suffix and a warning is logged.
	RuleSuffixFallback
	// RuleShortName: the instrument's shortName was used verbatim.
	RuleShortName
)

var logger = zap.NewNop()

// SetLogger routes transformation warnings. The default logger discards them.
func SetLogger(l *zap.Logger) {
	logger = l
}

// Transform maps a Trading 212 ticker such as "VUSAl_EQ" or "NVDA_US_EQ" to
// a Yahoo Finance symbol. It is pure and deterministic and never fails; an
// unrecognized exchange letter degrades to an uppercased suffix with a
// logged warning.
func Transform(ticker string, instrument *t212.Instrument) string {
	symbol, _ := TransformDetail(ticker, instrument)
	return symbol
}

// TransformDetail is Transform plus the rule that fired, which the exporter
// aggregates into its diagnostic counts.
func TransformDetail(ticker string, instrument *t212.Instrument) (string, Rule) {
	prefix, _, _ := strings.Cut(ticker, "_")

	if prefix != "" {
		last := prefix[len(prefix)-1]
		if last >= 'a' && last <= 'z' {
			if suffix, ok := ExchangeSuffixes[last]; ok {
				return prefix[:len(prefix)-1] + suffix, RuleExchangeSuffix
			}
			logger.Warn("unrecognized exchange code, using uppercase fallback",
				zap.String("ticker", ticker),
				zap.String("code", string(last)))
			return prefix[:len(prefix)-1] + "." + strings.ToUpper(string(last)), RuleSuffixFallback
		}
	}

	if instrument != nil && instrument.ShortName != "" {
		return instrument.ShortName, RuleShortName
	}
	return prefix, RulePrefix
}
