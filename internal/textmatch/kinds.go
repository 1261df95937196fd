package textmatch

import "strings"

// kindByRule maps canonical rule names to the output field type tag. A
// closed table keeps the mapping auditable; anything not listed degrades to
// "text".
var kindByRule = map[string]string{
	"email":       "email",
	"phone":       "tel",
	"date":        "date",
	"password":    "password",
	"address":     "text",
	"ssn":         "text",
	"name":        "text",
	"id":          "text",
	"gender":      "select",
	"nationality": "text",
	"occupation":  "text",
	"income":      "number",
	"education":   "text",
	"signature":   "text",
}

// KindForRule returns the field type tag for a rule name. Total: unknown
// names return "text" rather than erroring.
func KindForRule(name string) string {
	if kind, ok := kindByRule[strings.ToLower(name)]; ok {
		return kind
	}
	return "text"
}
