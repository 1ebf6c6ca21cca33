package numberutils

import (
	"strconv"
)

// ToIntWithDefault converts the given string to an integer, returning the
// provided default value on failure.
func ToIntWithDefault(s string, defaultVal int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return defaultVal
}

// ToUintWithError converts the given string to an unsigned integer, returning
// an error when the string is not a non-negative number.
func ToUintWithError(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}
