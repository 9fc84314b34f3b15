package core

import (
	"fmt"
	"strings"
)

// Preference selects which contact channel PreferredContact favours.
type Preference string

const (
	PreferAuto  Preference = "Auto"
	PreferEmail Preference = "Email"
	PreferPhone Preference = "Phone"
)

// ParsePreference returns the matching preference, defaulting to Auto.
func ParsePreference(s string) Preference {
	switch {
	case strings.EqualFold(s, string(PreferEmail)):
		return PreferEmail
	case strings.EqualFold(s, string(PreferPhone)):
		return PreferPhone
	default:
		return PreferAuto
	}
}

// ContactKind names the channel a ContactRef points at.
type ContactKind string

const (
	KindNone    ContactKind = ""
	KindEmail   ContactKind = "email"
	KindPhone   ContactKind = "phone"
	KindWebForm ContactKind = "webform"
)

// ContactRef is a single renderable contact link.
type ContactRef struct {
	Kind  ContactKind `json:"kind,omitempty"`
	Value string      `json:"value,omitempty"`
	Href  string      `json:"href,omitempty"`
}

// IsZero reports whether the reference points nowhere.
func (c ContactRef) IsZero() bool {
	return c.Kind == KindNone
}

// Markdown renders the reference as a markdown link, or "" when empty.
func (c ContactRef) Markdown() string {
	if c.IsZero() {
		return ""
	}
	return fmt.Sprintf("[%s](%s)", c.Value, c.Href)
}

func emailRef(email string) ContactRef {
	return ContactRef{Kind: KindEmail, Value: email, Href: "mailto:" + email}
}

func phoneRef(phone string) ContactRef {
	return ContactRef{Kind: KindPhone, Value: phone, Href: "tel:" + phone}
}

// PreferredContact picks one contact for a row. emailClean is usable when it
// contains '@'; phone is the raw phone and is usable when non-blank. Email
// preference falls back to phone and vice versa; Auto tries email first.
func PreferredContact(emailClean, phone string, pref Preference) ContactRef {
	emailOK := strings.Contains(emailClean, "@")
	phoneOK := strings.TrimSpace(phone) != ""

	switch pref {
	case PreferPhone:
		if phoneOK {
			return phoneRef(phone)
		}
		if emailOK {
			return emailRef(emailClean)
		}
	default:
		if emailOK {
			return emailRef(emailClean)
		}
		if phoneOK {
			return phoneRef(phone)
		}
	}
	return ContactRef{}
}
