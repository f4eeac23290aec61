package match

import "strings"

// Matching heuristics, tuned against real scraped data. Exported so the
// config layer can extend them per user; treat the defaults as the
// baseline, not a contract.
var (
	// Legal/branding suffixes that vary between sources for the same
	// company ("Stripe" vs "Stripe, Inc.").
	CompanySuffixes = []string{
		"inc", "llc", "ltd", "corp", "co", "company", "labs", "ai", "io",
	}

	// Title abbreviations expanded before comparison. Values may be
	// multi-word ("pm" -> "product manager").
	TitleAbbreviations = map[string]string{
		"sr":  "senior",
		"jr":  "junior",
		"mgr": "manager",
		"dir": "director",
		"eng": "engineer",
		"pm":  "product manager",
	}
)

func stripPunct(s string, replacement string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ':
			b.WriteRune(r)
		default:
			b.WriteString(replacement)
		}
	}
	return b.String()
}

// NormalizeCompany lower-cases, strips punctuation, and drops legal
// suffix tokens so "Stripe, Inc." and "STRIPE" compare equal.
func NormalizeCompany(s string) string {
	s = stripPunct(strings.ToLower(s), " ")
	suffix := map[string]bool{}
	for _, t := range CompanySuffixes {
		suffix[t] = true
	}
	var out []string
	for _, tok := range strings.Fields(s) {
		if suffix[tok] {
			continue
		}
		out = append(out, tok)
	}
	return strings.Join(out, " ")
}

// NormalizeTitle lower-cases, replaces punctuation with spaces, and
// expands common abbreviations ("Sr PM" -> "senior product manager").
func NormalizeTitle(s string) string {
	s = stripPunct(strings.ToLower(s), " ")
	var out []string
	for _, tok := range strings.Fields(s) {
		if exp, ok := TitleAbbreviations[tok]; ok {
			out = append(out, strings.Fields(exp)...)
			continue
		}
		out = append(out, tok)
	}
	return strings.Join(out, " ")
}

// DedupKey is the exact-match duplicate key for a listing.
func DedupKey(company, title string) string {
	return NormalizeCompany(company) + "::" + NormalizeTitle(title)
}

func titleTokens(normalizedTitle string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(normalizedTitle) {
		set[tok] = struct{}{}
	}
	return set
}

// TitleSimilarity is token-set Jaccard over normalized titles.
func TitleSimilarity(a, b string) float64 {
	as := titleTokens(NormalizeTitle(a))
	bs := titleTokens(NormalizeTitle(b))
	if len(as) == 0 && len(bs) == 0 {
		return 1
	}
	inter := 0
	for tok := range as {
		if _, ok := bs[tok]; ok {
			inter++
		}
	}
	union := len(as) + len(bs) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
