package catalog

import (
	"fmt"
	"strings"
)

// OrderMode selects how version ids are compared inside the active partition.
type OrderMode string

const (
	Numeric OrderMode = "numeric" // dot-separated components, numbers compared as numbers
	Lexical OrderMode = "lexical" // plain string comparison
)

// ParseOrderMode maps a config value to an OrderMode. Empty means Numeric.
func ParseOrderMode(s string) (OrderMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(Numeric):
		return Numeric, nil
	case string(Lexical):
		return Lexical, nil
	default:
		return "", fmt.Errorf("unknown version order %q (want numeric or lexical)", s)
	}
}

func (m OrderMode) compare(a, b string) int {
	if m == Lexical {
		return strings.Compare(a, b)
	}
	return CompareVersions(a, b)
}

// CompareVersions returns -1, 0 or 1 comparing two version ids.
//
// A leading "v" and any "+build" metadata are ignored. The release part is
// compared component by component: numbers numerically, a number above a
// word, words as strings, missing components as zero. A "-suffix" marks a
// pre-release, which sorts below the same release without one. Ids that are
// still equal fall back to string order so that the result is total.
func CompareVersions(a, b string) int {
	ar, ap := splitVersion(a)
	br, bp := splitVersion(b)

	n := len(ar)
	if len(br) > n {
		n = len(br)
	}
	for i := 0; i < n; i++ {
		ac, bc := "0", "0"
		if i < len(ar) {
			ac = ar[i]
		}
		if i < len(br) {
			bc = br[i]
		}
		if c := compareComponent(ac, bc); c != 0 {
			return c
		}
	}
	if c := comparePrerelease(ap, bp); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func splitVersion(v string) (release, prerelease []string) {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(strings.TrimPrefix(v, "v"), "V")
	if idx := strings.IndexByte(v, '+'); idx >= 0 {
		v = v[:idx]
	}
	if idx := strings.IndexByte(v, '-'); idx >= 0 {
		if pre := v[idx+1:]; pre != "" {
			prerelease = strings.Split(pre, ".")
		}
		v = v[:idx]
	}
	if v != "" {
		release = strings.Split(v, ".")
	}
	return release, prerelease
}

func compareComponent(a, b string) int {
	aNum, bNum := isNumber(a), isNumber(b)
	switch {
	case aNum && bNum:
		return compareNumbers(a, b)
	case aNum:
		return 1
	case bNum:
		return -1
	default:
		return strings.Compare(a, b)
	}
}

// comparePrerelease follows SemVer precedence: no suffix beats any suffix,
// numeric identifiers sort below alphanumeric ones.
func comparePrerelease(a, b []string) int {
	switch {
	case len(a) == 0 && len(b) == 0:
		return 0
	case len(a) == 0:
		return 1
	case len(b) == 0:
		return -1
	}
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		ai, bi := a[i], b[i]
		aNum, bNum := isNumber(ai), isNumber(bi)
		switch {
		case aNum && bNum:
			if c := compareNumbers(ai, bi); c != 0 {
				return c
			}
		case aNum:
			return -1
		case bNum:
			return 1
		default:
			if c := strings.Compare(ai, bi); c != 0 {
				return c
			}
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

func isNumber(s string) bool {
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

// compareNumbers compares digit strings of any length without parsing them.
func compareNumbers(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return strings.Compare(a, b)
}
