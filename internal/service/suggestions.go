package service

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// maxSuggestions caps the list returned to the client.
const maxSuggestions = 4

const budgetPersona = "You are a wedding budget optimization expert. Provide specific, actionable, and realistic budget advice. " +
	"Take the couple's location and cost of living into account and respect their stated priorities."

var budgetPrinter = message.NewPrinter(language.English)

// formatBudget renders v as US dollars with thousands separators, e.g. "$50,000".
func formatBudget(v float64) string {
	return "$" + budgetPrinter.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}

// BuildBudgetPrompt returns the user prompt for a budget suggestion request.
// The output depends only on its arguments.
func BuildBudgetPrompt(budget float64, guestCount int, city string, priorities []string) string {
	joined := strings.Join(priorities, ", ")
	if joined == "" {
		joined = "Not specified"
	}

	var b strings.Builder
	b.WriteString("Generate specific, actionable budget suggestions for a wedding with these details:\n\n")
	fmt.Fprintf(&b, "Budget: %s\n", formatBudget(budget))
	fmt.Fprintf(&b, "Guest Count: %d\n", guestCount)
	fmt.Fprintf(&b, "Location: %s\n", city)
	fmt.Fprintf(&b, "Priorities: %s\n\n", joined)
	b.WriteString("For each suggestion:\n")
	b.WriteString("- Start with a relevant emoji\n")
	b.WriteString("- Be specific with dollar amounts or percentages\n")
	b.WriteString("- Focus on realistic cost-saving strategies\n")
	b.WriteString("- Consider the city's cost of living\n")
	b.WriteString("- Prioritize their stated preferences\n\n")
	b.WriteString("Put each suggestion on its own line formatted as: \"emoji Suggestion text\"\n")
	b.WriteString("Example: \"💐 Consider in-season flowers to save $1,500-$2,000 on florals\"\n\n")
	b.WriteString("Generate exactly 4 actionable suggestions:")
	return b.String()
}

// ExtractSuggestions keeps the lines of text that open with a symbol (an
// emoji in practice) rather than a letter, digit, or underscore. Lines are
// trimmed, order is preserved, and at most four are returned.
func ExtractSuggestions(text string) []string {
	suggestions := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		r, _ := utf8.DecodeRuneInString(line)
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			continue
		}
		suggestions = append(suggestions, line)
		if len(suggestions) == maxSuggestions {
			break
		}
	}
	return suggestions
}
