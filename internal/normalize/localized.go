package normalize

import (
	"encoding/json"
	"fmt"
)

// Localized resolves a localized-text column into one string. The store
// sometimes returns plain text and sometimes a locale→text map (jsonb),
// so every call site goes through this one function instead of branching
// on shape ad hoc.
//
// Resolution order: plain string as-is, then preferred locale, then
// fallback locale, then a rendering of the whole map. Never fails.
func Localized(v any, preferred, fallback string) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		var decoded any
		if err := json.Unmarshal(t, &decoded); err != nil {
			return string(t)
		}
		return Localized(decoded, preferred, fallback)
	case map[string]any:
		if s, ok := t[preferred].(string); ok && s != "" {
			return s
		}
		if s, ok := t[fallback].(string); ok && s != "" {
			return s
		}
		return fmt.Sprint(t)
	case map[string]string:
		if s := t[preferred]; s != "" {
			return s
		}
		if s := t[fallback]; s != "" {
			return s
		}
		return fmt.Sprint(t)
	default:
		return fmt.Sprint(t)
	}
}
