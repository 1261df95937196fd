package textmatch

import "strings"

// Candidate is one text-matched field occurrence on a page. Offset and End
// are the byte span of the match in the page text; Line is the zero-based
// line the match starts on, used downstream as a 1-D proxy for vertical
// position since OCR plain text carries no 2-D coordinates.
type Candidate struct {
	Rule     string
	Label    string
	Value    string
	Page     int
	Offset   int
	End      int
	Line     int
	Required bool
}

// Overlaps reports whether two candidates matched overlapping text, which
// happens when one rule's match sits inside another's captured value
// ("Email Address" triggers both the email and the address rule).
func (c Candidate) Overlaps(other Candidate) bool {
	return c.Offset < other.End && other.Offset < c.End
}

// Match runs the full rule catalog over one page's text. Candidates are
// returned in catalog order, then in match order within each rule. The same
// rule may fire several times on one page, and several rules may match
// overlapping text; deduplication is the merger's job, not this one's.
func Match(text string, page int) []Candidate {
	if text == "" {
		return nil
	}

	candidates := make([]Candidate, 0)
	for _, rule := range catalog {
		for _, loc := range rule.Pattern.FindAllStringSubmatchIndex(text, -1) {
			label := strings.TrimSpace(text[loc[2]:loc[3]])
			value := ""
			if loc[4] >= 0 {
				value = strings.TrimSpace(text[loc[4]:loc[5]])
			}

			candidates = append(candidates, Candidate{
				Rule:     rule.Name,
				Label:    label,
				Value:    value,
				Page:     page,
				Offset:   loc[0],
				End:      loc[1],
				Line:     strings.Count(text[:loc[0]], "\n"),
				Required: markedRequired(text[loc[0]:loc[1]]),
			})
		}
	}
	return candidates
}

// markedRequired reports whether the matched text flags the field as
// mandatory, either with an asterisk marker or the word "required".
func markedRequired(match string) bool {
	if strings.Contains(match, "*") {
		return true
	}
	return strings.Contains(strings.ToLower(match), "required")
}
