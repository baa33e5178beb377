package identifiers

import "strings"

// NormalizeISBN strips separators and converts a valid ISBN-10 to its
// ISBN-13 form. Other input is returned cleaned with ok false.
func NormalizeISBN(raw string) (string, bool) {
	cleaned := strings.ToUpper(strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' {
			return -1
		}
		return r
	}, strings.TrimSpace(raw)))
	switch len(cleaned) {
	case 13:
		if allDigits(cleaned) && ean13Check(cleaned[:12]) == cleaned[12] {
			return cleaned, true
		}
	case 10:
		if allDigits(cleaned[:9]) && isbn10Valid(cleaned) {
			body := "978" + cleaned[:9]
			return body + string(ean13Check(body)), true
		}
	}
	return cleaned, false
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func isbn10Valid(s string) bool {
	sum := 0
	for i := 0; i < 10; i++ {
		var d int
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			d = int(c - '0')
		case c == 'X' && i == 9:
			d = 10
		default:
			return false
		}
		sum += d * (10 - i)
	}
	return sum%11 == 0
}

// ean13Check returns the check digit for a 12 digit body.
func ean13Check(body string) byte {
	sum := 0
	for i := 0; i < 12; i++ {
		d := int(body[i] - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	return byte('0' + (10-sum%10)%10)
}
