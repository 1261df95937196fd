package textmatch

import "regexp"

// Rule is one labeled pattern in the catalog. The pattern captures a label
// group and an optional trailing value group running to the next line break.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
}

// Catalog returns the fixed, ordered rule set. Evaluation order matters for
// the ordering of candidates handed downstream, so this is a slice, not a
// map.
func Catalog() []Rule {
	return catalog
}

var catalog = []Rule{
	{"name", regexp.MustCompile(`(?i)(full\s*name|first\s*name|last\s*name|middle\s*name|name)[\s:]*([^\n]*)`)},
	{"email", regexp.MustCompile(`(?i)(e[-.]?mail\s*address|e[-.]?mail)[\s:]*([^\n]*)`)},
	{"phone", regexp.MustCompile(`(?i)(phone|telephone|mobile|cell|contact)[\s:]*([^\n]*)`)},
	{"address", regexp.MustCompile(`(?i)(street\s*address|mailing\s*address|address|city|state|zip|postal\s*code)[\s:]*([^\n]*)`)},
	{"date", regexp.MustCompile(`(?i)(date|birth\s*date|dob|expiration|start\s*date|end\s*date)[\s:]*([^\n]*)`)},
	{"ssn", regexp.MustCompile(`(?i)(ssn|social\s*security|tax\s*id|itin)[\s:]*([^\n]*)`)},
	{"id", regexp.MustCompile(`(?i)(id\s*number|identification|passport|driver'?s\s*license)[\s:]*([^\n]*)`)},
	{"gender", regexp.MustCompile(`(?i)(gender|sex)[\s:]*([^\n]*)`)},
	{"nationality", regexp.MustCompile(`(?i)(nationality|citizenship|country)[\s:]*([^\n]*)`)},
	{"occupation", regexp.MustCompile(`(?i)(occupation|job\s*title|profession)[\s:]*([^\n]*)`)},
	{"income", regexp.MustCompile(`(?i)(income|salary|earnings|wages)[\s:]*([^\n]*)`)},
	{"education", regexp.MustCompile(`(?i)(education|degree|qualification)[\s:]*([^\n]*)`)},
	{"signature", regexp.MustCompile(`(?i)(signature|sign\s*here)[\s:]*([^\n]*)`)},
}
