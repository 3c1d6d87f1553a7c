// Package contact defines the common types for contact-fact extraction.
package contact

// DirectLevel is the pseudo exploration level for facts taken straight from a
// platform profile, before any page is fetched. Direct facts always win merge ties.
const DirectLevel = -1

// Relevance is a predicted-usefulness label attached to a candidate link by the
// strategy that proposed it.
type Relevance string

// Relevance labels, ordered from most to least promising.
const (
	RelevanceHigh   Relevance = "high"
	RelevanceMedium Relevance = "medium"
	RelevanceLow    Relevance = "low"
)

// Rank returns a sortable position for the label. Unknown labels sort last.
func (r Relevance) Rank() int {
	switch r {
	case RelevanceHigh:
		return 0
	case RelevanceMedium:
		return 1
	case RelevanceLow:
		return 2
	default:
		return 3
	}
}

// CandidateLink is a link proposed for the next exploration level.
//
//nolint:govet // fieldalignment: intentional layout for readability
type CandidateLink struct {
	URL       string    // Absolute URL of the candidate page
	Relevance Relevance // Predicted usefulness
	Level     int       // Level the link was discovered at
	Rank      int       // Position in the proposing strategy's output
}

// Provenance records which URL, level, and strategy produced a set of facts.
// Entries with a non-empty Gap describe a page that was selected but yielded
// nothing (fetch timeout, transport error, all strategies failed).
//
//nolint:govet // fieldalignment: intentional layout for readability
type Provenance struct {
	URL      string   `json:"url"`
	Level    int      `json:"level"`
	Strategy string   `json:"strategy,omitempty"`
	Fields   []string `json:"fields,omitempty"`
	Gap      string   `json:"gap,omitempty"`
}

// Fragment holds the partial facts produced by one extraction call.
// Every field may be empty.
//
//nolint:govet // fieldalignment: intentional layout for readability
type Fragment struct {
	Emails       []string          // Raw email addresses as extracted
	Social       map[string]string // platform name -> profile URL
	PersonalSite string            // Likely personal website
	Phone        string            // Phone number in original formatting
	Source       Provenance        // Where the facts came from
}

// Empty reports whether the fragment carries no facts at all.
func (f Fragment) Empty() bool {
	return len(f.Emails) == 0 && len(f.Social) == 0 && f.PersonalSite == "" && f.Phone == ""
}

// Info is the final merged contact record returned to the caller.
// It is never mutated after creation.
//
//nolint:govet // fieldalignment: intentional layout for readability
type Info struct {
	Emails       []string          `json:"emails,omitempty"`        // Sorted, lowercased, deduplicated
	Social       map[string]string `json:"social,omitempty"`        // platform name -> profile URL
	PersonalSite string            `json:"personal_site,omitempty"` // Personal website, if any
	Phone        string            `json:"phone,omitempty"`         // Phone number, if any
	Provenance   []Provenance      `json:"provenance,omitempty"`    // One entry per contributing or failed page
	ContactScore float64           `json:"contact_score"`           // 0.0-1.0, recomputed from the fields above
}
