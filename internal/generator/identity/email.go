package identity

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// legal-form words dropped from email domains
var legalForms = map[string]bool{
	"pvt": true, "private": true, "ltd": true, "limited": true, "llp": true,
}

// Slug folds s to lowercase ASCII words joined by sep. Accents are stripped
// and any other non-alphanumeric rune splits words.
func Slug(s, sep string) string {
	return strings.Join(slugWords(s), sep)
}

func slugWords(s string) []string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = cases.Lower(language.Und).String(folded)

	return strings.FieldsFunc(folded, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
}

// Email derives an address from the contact's name and company:
// "Rajesh Kumar", "Sharma Textiles Pvt Ltd" -> rajesh.kumar@sharmatextiles.com.
func Email(name, company string) string {
	local := Slug(name, ".")
	if local == "" {
		local = "contact"
	}
	return local + "@" + Domain(company)
}

// Domain derives a .com domain from a company name, ignoring legal-form words.
func Domain(company string) string {
	var words []string
	for _, w := range slugWords(company) {
		if !legalForms[w] {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return "example.com"
	}
	return strings.Join(words, "") + ".com"
}

// Website returns the www host for company.
func Website(company string) string {
	return "www." + Domain(company)
}
