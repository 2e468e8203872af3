package speech

import (
	"strconv"
	"strings"
)

var onesWords = []string{
	"zero", "one", "two", "three", "four", "five", "six", "seven",
	"eight", "nine", "ten", "eleven", "twelve", "thirteen", "fourteen",
	"fifteen", "sixteen", "seventeen", "eighteen", "nineteen",
}

var tensWords = []string{
	"", "", "twenty", "thirty", "forty", "fifty",
	"sixty", "seventy", "eighty", "ninety",
}

// spokenYearToken rewrites a 4-digit year token (1000-2099, guaranteed
// by the caller's pattern) into spoken English: "1984" reads "nineteen
// eighty four", "1907" reads "nineteen oh seven", "1900" reads
// "nineteen hundred", "2005" reads "two thousand five".
func spokenYearToken(token string) string {
	year, err := strconv.Atoi(token)
	if err != nil {
		return token
	}

	hi := year / 100
	lo := year % 100

	if lo == 0 {
		switch hi {
		case 10:
			return "one thousand"
		case 20:
			return "two thousand"
		default:
			return spokenTwoDigit(hi) + " hundred"
		}
	}

	if hi == 20 {
		return "two thousand " + spokenTwoDigit(lo)
	}

	if lo < 10 {
		return spokenTwoDigit(hi) + " oh " + onesWords[lo]
	}
	return spokenTwoDigit(hi) + " " + spokenTwoDigit(lo)
}

// spokenTwoDigit speaks 0-99 without hyphens.
func spokenTwoDigit(n int) string {
	if n < 0 || n > 99 {
		return strconv.Itoa(n)
	}
	if n < 20 {
		return onesWords[n]
	}
	if n%10 == 0 {
		return tensWords[n/10]
	}
	return tensWords[n/10] + " " + onesWords[n%10]
}

// spokenDigits speaks a digit run one digit at a time.
func spokenDigits(digits string) string {
	words := make([]string, 0, len(digits))
	for _, d := range digits {
		if d < '0' || d > '9' {
			continue
		}
		words = append(words, onesWords[d-'0'])
	}
	return strings.Join(words, " ")
}

// spreadLetters spaces out the runes of an acronym for letter-by-letter
// reading.
func spreadLetters(acro string) string {
	runes := []rune(acro)
	parts := make([]string, len(runes))
	for i, r := range runes {
		parts[i] = string(r)
	}
	return strings.Join(parts, " ")
}

// expand rewrites a matched acronym token, speaking any trailing digit
// run digit by digit.
func (a acronymRule) expand(match string) string {
	i := len(match)
	for i > 0 && match[i-1] >= '0' && match[i-1] <= '9' {
		i--
	}
	if i == len(match) {
		return a.letters
	}
	return a.letters + " " + spokenDigits(match[i:])
}
