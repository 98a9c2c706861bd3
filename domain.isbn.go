package main

// ISBN normalization and checksum validation for both the 10-digit
// (mod-11, weights 10..2, trailing X worth 10) and the 13-digit
// (alternating 1/3 weights) formats.

// NormalizeISBN strips every character which is not a decimal digit or
// the letter X and uppercases a trailing x. Normalizing an already
// normalized value is a no-op.
func NormalizeISBN(raw string) string {
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c >= '0' && c <= '9':
			out = append(out, c)
		case c == 'X' || c == 'x':
			out = append(out, 'X')
		}
	}
	return string(out)
}

// IsValidISBN normalizes the input and verifies the checksum of the
// matching format. Any other normalized length is invalid.
func IsValidISBN(raw string) bool {
	isbn := NormalizeISBN(raw)
	switch len(isbn) {
	case 10:
		return isValidISBN10(isbn)
	case 13:
		return isValidISBN13(isbn)
	}
	return false
}

// isValidISBN10 expects a 10-char normalized value. Positions 1..9 must
// be digits weighted 10 down to 2; the check digit may be X (worth 10).
// Valid iff the weighted sum is divisible by 11.
func isValidISBN10(isbn string) bool {
	if len(isbn) != 10 {
		return false
	}
	total := 0
	for i := 0; i < 9; i++ {
		c := isbn[i]
		if c < '0' || c > '9' {
			return false
		}
		total += int(c-'0') * (10 - i)
	}
	switch check := isbn[9]; {
	case check == 'X':
		total += 10
	case check >= '0' && check <= '9':
		total += int(check - '0')
	default:
		return false
	}
	return total%11 == 0
}

// isValidISBN13 expects a 13-char normalized value made of digits only.
// The first 12 digits are weighted 1,3,1,3,... and the 13th must equal
// (10 - sum mod 10) mod 10.
func isValidISBN13(isbn string) bool {
	if len(isbn) != 13 {
		return false
	}
	total := 0
	for i := 0; i < 12; i++ {
		c := isbn[i]
		if c < '0' || c > '9' {
			return false
		}
		if i%2 == 0 {
			total += int(c - '0')
		} else {
			total += int(c-'0') * 3
		}
	}
	last := isbn[12]
	if last < '0' || last > '9' {
		return false
	}
	check := (10 - total%10) % 10
	return check == int(last-'0')
}
