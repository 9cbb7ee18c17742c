package lexer

import "strconv"

func parseDecInt(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func parseBasedInt(digits string, base int) (int64, error) {
	return strconv.ParseInt(digits, base, 64)
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
