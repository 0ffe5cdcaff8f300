// Package order computes sortable order keys for sibling entities.
//
// Keys are lowercase strings compared lexicographically. Inserting between
// two siblings never renumbers the rest of the sequence: Between returns a
// fresh key strictly inside the gap, growing the key by at most a few
// characters. Keys produced here never end in 'a', which guarantees a gap
// always exists below any key.
package order

const digits = "abcdefghijklmnopqrstuvwxyz"

const base = len(digits)

// Initial returns the key for the first element of an empty sequence.
func Initial() string {
	return Between("", "")
}

// Before returns a key sorting strictly before a.
func Before(a string) string {
	return Between("", a)
}

// After returns a key sorting strictly after a.
func After(a string) string {
	return Between(a, "")
}

// Between returns a key k with a < k < b in lexicographic order.
// An empty a means "below everything"; an empty b means "above everything".
// Inputs must be keys previously produced by this package (or empty);
// in particular they never end in 'a'.
func Between(a, b string) string {
	key := make([]byte, 0, maxLen(a, b)+1)
	i := 0
	for {
		da := digitAt(a, i)
		// Past the end of b the bound is open. This also keeps the loop
		// finite when b violates the contract with a trail of lowest digits.
		db := base
		if i < len(b) {
			db = digitAt(b, i)
		}

		if da == db {
			key = append(key, digits[da])
			i++
			continue
		}

		if db-da > 1 {
			return string(append(key, digits[(da+db)/2]))
		}

		// Adjacent digits: settle on the lower branch, then find any key
		// above the remainder of a. The upper bound is already satisfied
		// because every extension of key+digits[da] sorts below b.
		key = append(key, digits[da])
		i++
		for {
			da = digitAt(a, i)
			if da == base-1 {
				key = append(key, digits[base-1])
				i++
				continue
			}
			return string(append(key, digits[(da+base)/2]))
		}
	}
}

// IsValid reports whether key can safely seed future Between calls:
// non-empty, lowercase a-z only, not ending in the lowest digit. Keys
// produced by this package always satisfy this; caller-supplied keys must
// be checked before they enter a sequence.
func IsValid(key string) bool {
	if key == "" || key[len(key)-1] == 'a' {
		return false
	}
	for i := 0; i < len(key); i++ {
		if key[i] < 'a' || key[i] > 'z' {
			return false
		}
	}
	return true
}

// digitAt returns the digit value at position i, treating positions past
// the end of the key as the lowest digit.
func digitAt(key string, i int) int {
	if i >= len(key) {
		return 0
	}
	return int(key[i] - 'a')
}

func maxLen(a, b string) int {
	if len(a) > len(b) {
		return len(a)
	}
	return len(b)
}
