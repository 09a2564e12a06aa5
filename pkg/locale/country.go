package locale

type Country struct {
	Code          string   // ISO 3166-1 alpha-2 region code, as phonenumbers expects it
	Name          string
	PhonePrefixes []string // country calling codes, with and without the leading plus
}

var Countries = map[string]Country{
	"IL": {
		Code:          "IL",
		Name:          "Israel",
		PhonePrefixes: []string{"+972", "972"},
	},
	"US": {
		Code:          "US",
		Name:          "United States",
		PhonePrefixes: []string{"+1", "1"},
	},
	"GB": {
		Code:          "GB",
		Name:          "United Kingdom",
		PhonePrefixes: []string{"+44", "44"},
	},
	"DE": {
		Code:          "DE",
		Name:          "Germany",
		PhonePrefixes: []string{"+49", "49"},
	},
}
