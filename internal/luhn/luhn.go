// Package luhn computes and verifies mod-10 check digits.
package luhn

import "errors"

// ErrNotDigits is returned when the input is empty or holds a non-digit.
var ErrNotDigits = errors.New("luhn: input must be a non-empty string of digits")

// CheckDigit returns the digit that, appended to body, makes the whole
// number pass Valid.
func CheckDigit(body string) (int, error) {
	if !isDigits(body) {
		return 0, ErrNotDigits
	}
	// the rightmost body digit sits next to the check digit, so it doubles
	sum := weightedSum(body, true)
	return (10 - sum%10) % 10, nil
}

// Append returns body followed by its check digit.
func Append(body string) (string, error) {
	cd, err := CheckDigit(body)
	if err != nil {
		return "", err
	}
	return body + string(rune('0'+cd)), nil
}

// Valid reports whether number, check digit included, passes the Luhn test.
func Valid(number string) bool {
	if len(number) < 2 || !isDigits(number) {
		return false
	}
	return weightedSum(number, false)%10 == 0
}

// weightedSum walks s right to left, doubling every second digit. dbl says
// whether the rightmost digit is doubled.
func weightedSum(s string, dbl bool) int {
	sum := 0
	for i := len(s) - 1; i >= 0; i-- {
		d := int(s[i] - '0')
		if dbl {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		dbl = !dbl
	}
	return sum
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
