package env

import (
	"os"
	"strconv"
	"strings"
)

// Val will get the environment variable with the given key, trimmed of surrounding whitespace.
// If the variable isn't set, or is blank, then the defaultVal will be returned.
func Val(key string, defaultVal string) string {
	val, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	trimmed := strings.TrimSpace(val)
	if len(trimmed) == 0 {
		return defaultVal
	}
	return trimmed
}

// Int will attempt to interpret an environment variable as an integer, returning the defaultVal if the environment variable isn't found or can't be a valid integer.
func Int(key string, defaultVal int) int {
	ival, err := strconv.Atoi(Val(key, ""))
	if err != nil {
		return defaultVal
	}
	return ival
}
