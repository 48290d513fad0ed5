// File: lixenwraith/objconfig/helper.go
package objconfig

import "strings"

// flattenMap converts a nested map[string]any to a flat map keyed by dashed
// flag names, so a [model.encoder] table becomes "model-encoder-<field>".
func flattenMap(nested map[string]any, prefix string) map[string]any {
	flat := make(map[string]any)

	for key, value := range nested {
		newPath := key
		if prefix != "" {
			newPath = prefix + "-" + key
		}

		if nestedMap, isMap := value.(map[string]any); isMap {
			for subPath, subValue := range flattenMap(nestedMap, newPath) {
				flat[subPath] = subValue
			}
		} else {
			flat[newPath] = value
		}
	}

	return flat
}

// isValidFlagName checks that a dashed key can be used as a flag name.
func isValidFlagName(s string) bool {
	if len(s) == 0 || strings.HasPrefix(s, "-") {
		return false
	}

	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		isUnderscore := r == '_'
		isDash := r == '-'

		if !(isLetter || isDigit || isUnderscore || isDash) {
			return false
		}
	}
	return true
}
