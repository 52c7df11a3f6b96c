package util

import (
	"os"
	"strconv"
	"strings"
)

func GetEnvironmentVariables() map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		pair := strings.SplitN(variable, "=", 2)

		environmentVariables[pair[0]] = pair[1]
	}

	return environmentVariables
}

// GetEnvironmentInt returns fallback when the variable is unset or not an integer
func GetEnvironmentInt(env map[string]string, name string, fallback int) int {
	if env[name] == "" {
		return fallback
	}

	value, err := strconv.Atoi(env[name])
	if err != nil {
		return fallback
	}

	return value
}
