package contact

import (
	"sort"
	"strings"
)

// Merge combines per-page fragments into a single Info.
//
// Emails and social links are unioned after normalization. Single-valued fields
// (personal site, phone) are first-seen-wins, except that direct facts (level
// DirectLevel) take precedence over drilled facts regardless of slice order.
// Fragments from the same level may therefore be supplied in any order without
// changing the result. The returned Info carries one provenance entry per
// fragment that contributed a fact, plus every gap entry unchanged.
func Merge(fragments []Fragment) Info {
	info := Info{Social: make(map[string]string)}
	seenEmails := make(map[string]bool)

	// Direct facts first so they win every tie, then drilled fragments in the
	// order the controller produced them.
	for _, direct := range []bool{true, false} {
		for _, frag := range fragments {
			if (frag.Source.Level == DirectLevel) != direct {
				continue
			}
			mergeFragment(&info, frag, seenEmails)
		}
	}

	sort.Strings(info.Emails)
	if len(info.Social) == 0 {
		info.Social = nil
	}
	return info
}

func mergeFragment(info *Info, frag Fragment, seenEmails map[string]bool) {
	var contributed []string

	for _, email := range frag.Emails {
		email = NormalizeEmail(email)
		if email == "" || seenEmails[email] {
			continue
		}
		seenEmails[email] = true
		info.Emails = append(info.Emails, email)
		contributed = append(contributed, "email")
	}

	// Deterministic key order; first-seen-wins per platform.
	for _, platform := range sortedKeys(frag.Social) {
		link := CleanURL(frag.Social[platform])
		if link == "" {
			continue
		}
		platform = strings.ToLower(platform)
		if _, ok := info.Social[platform]; ok {
			continue
		}
		info.Social[platform] = link
		contributed = append(contributed, "social:"+platform)
	}

	if frag.PersonalSite != "" && info.PersonalSite == "" {
		info.PersonalSite = CleanURL(frag.PersonalSite)
		contributed = append(contributed, "personal_site")
	}
	if frag.Phone != "" && info.Phone == "" {
		info.Phone = frag.Phone
		contributed = append(contributed, "phone")
	}

	if len(contributed) > 0 || frag.Source.Gap != "" {
		prov := frag.Source
		prov.Fields = contributed
		info.Provenance = append(info.Provenance, prov)
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
