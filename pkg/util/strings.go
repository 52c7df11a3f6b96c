package util

func RemoveDuplicateStrings(strings []string, ignoreList []string) []string {
	presentStrings := make(map[string]bool)
	var list []string

	for _, ignoreString := range ignoreList {
		presentStrings[ignoreString] = true
	}

	for _, item := range strings {
		if _, value := presentStrings[item]; !value && item != "" {
			presentStrings[item] = true
			list = append(list, item)
		}
	}
	return list
}

// FieldAt returns the element at index or "" when the slice is too short
func FieldAt(fields []string, index int) string {
	if index < 0 || index >= len(fields) {
		return ""
	}

	return fields[index]
}

func TrimString(s string, length int) string {
	if len(s) <= length {
		return s
	}

	return s[:length]
}

// NonEmpty drops empty strings, keeping order
func NonEmpty(fields []string) []string {
	kept := make([]string, 0, len(fields))

	for _, field := range fields {
		if field != "" {
			kept = append(kept, field)
		}
	}

	return kept
}
