package locale

import "strings"

// InferCountryFromPhone matches phone against the known calling codes. It returns
// nil when no country claims the prefix.
func InferCountryFromPhone(phone string) *Country {
	normalized := strings.TrimSpace(phone)

	for _, country := range Countries {
		for _, prefix := range country.PhonePrefixes {
			if strings.HasPrefix(normalized, prefix) {
				return &country
			}
		}
	}

	return nil
}
