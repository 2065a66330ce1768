package currency

import (
	"fmt"
	"strings"
)

// Format renders an amount with its currency code and a thousands
// separator, e.g. "USD 1,234.56".
func Format(amount float64, code string) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	s := fmt.Sprintf("%.2f", amount)
	intPart, fracPart, _ := strings.Cut(s, ".")
	formatted := addThousandsSeparator(intPart, ",") + "." + fracPart

	if code != "" {
		formatted = code + " " + formatted
	}
	if negative {
		formatted = "-" + formatted
	}

	return formatted
}

func addThousandsSeparator(s string, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	numSeps := (n - 1) / 3
	result := make([]byte, n+numSeps)

	j := len(result) - 1
	for i := n - 1; i >= 0; i-- {
		result[j] = s[i]
		j--

		pos := n - i
		if pos%3 == 0 && i > 0 {
			result[j] = sep[0]
			j--
		}
	}

	return string(result)
}
