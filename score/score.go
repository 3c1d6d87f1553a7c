// Package score computes a deterministic contact-richness score.
package score

import "github.com/codeGROOVE-dev/gumshoe/contact"

// Weights configures the scoring model. The zero value scores everything as 0;
// use DefaultWeights for the standard model.
//
//nolint:govet // fieldalignment: intentional layout for readability
type Weights struct {
	Email          float64 // Any email present
	ExtraEmail     float64 // Bonus for two or more distinct emails
	SocialPlatform float64 // Per distinct recognized platform
	SocialCap      float64 // Upper bound on the social contribution
	PersonalSite   float64 // Personal website present
	Phone          float64 // Phone number present
}

// DefaultWeights is the standard scoring model.
func DefaultWeights() Weights {
	return Weights{
		Email:          0.4,
		ExtraEmail:     0.1,
		SocialPlatform: 0.1,
		SocialCap:      0.3,
		PersonalSite:   0.2,
		Phone:          0.1,
	}
}

// Valid reports whether every weight is non-negative.
func (w Weights) Valid() bool {
	return w.Email >= 0 && w.ExtraEmail >= 0 && w.SocialPlatform >= 0 &&
		w.SocialCap >= 0 && w.PersonalSite >= 0 && w.Phone >= 0
}

// Compute returns the contact score for a merged record. It is a pure function
// of the record's fields: the same Info always yields the same score, capped at 1.0.
func Compute(info contact.Info, w Weights) float64 {
	var s float64

	if len(info.Emails) > 0 {
		s += w.Email
		if len(info.Emails) >= 2 {
			s += w.ExtraEmail
		}
	}

	social := float64(len(info.Social)) * w.SocialPlatform
	if social > w.SocialCap {
		social = w.SocialCap
	}
	s += social

	if info.PersonalSite != "" {
		s += w.PersonalSite
	}
	if info.Phone != "" {
		s += w.Phone
	}

	if s > 1.0 {
		s = 1.0
	}
	return s
}
