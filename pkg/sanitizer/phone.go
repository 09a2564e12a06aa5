package sanitizer

import (
	"regexp"
	"strings"

	"retreat/pkg/locale"

	"github.com/nyaruka/phonenumbers"
)

var (
	rePhoneChars    = regexp.MustCompile(`^\+?[0-9 ().\-]+$`)
	rePhoneNonDigit = regexp.MustCompile(`[^0-9+]`)
)

// NormalizePhone formats phone as E.164. Numbers without a country code are read
// as national numbers of defaultRegion. When that reading is not a valid number but
// the digits start with a known calling code, the region owning that code is tried
// instead. Input that does not look like a phone number is returned trimmed but
// otherwise untouched.
func NormalizePhone(phone, defaultRegion string) string {
	phone = strings.TrimSpace(phone)

	if phone == "" || !rePhoneChars.MatchString(phone) {
		return phone
	}

	region := strings.ToUpper(defaultRegion)
	parsed, err := phonenumbers.Parse(phone, region)
	if err == nil && phonenumbers.IsValidNumber(parsed) {
		return phonenumbers.Format(parsed, phonenumbers.E164)
	}

	if country := locale.InferCountryFromPhone(rePhoneNonDigit.ReplaceAllString(phone, "")); country != nil && country.Code != region {
		if inferred, inferErr := phonenumbers.Parse(phone, country.Code); inferErr == nil && phonenumbers.IsValidNumber(inferred) {
			return phonenumbers.Format(inferred, phonenumbers.E164)
		}
	}

	if err != nil {
		return phone
	}
	return phonenumbers.Format(parsed, phonenumbers.E164)
}
