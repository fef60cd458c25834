// Package card models the business card, the only record type the search engine ranks.
package card

import (
	"fmt"
	"time"
)

// MaxIDLength bounds card identifiers so they stay usable as store keys.
const MaxIDLength = 128

// Visibility controls whether a card shows up in searches by default.
type Visibility string

// Visibility values.
const (
	Public  Visibility = "public"
	Private Visibility = "private"
)

// IsValid reports whether v is a known visibility.
func (v Visibility) IsValid() bool {
	return v == Public || v == Private
}

// Engagement holds the counters maintained by the platform. The engine only reads them.
type Engagement struct {
	Views     int64 `json:"views"`
	Loves     int64 `json:"loves"`
	Shares    int64 `json:"shares"`
	Downloads int64 `json:"downloads"`
}

// Attributes is the plain form of a card, used to build and to serialize one.
type Attributes struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	FullName   string     `json:"fullName"`
	JobTitle   string     `json:"jobTitle"`
	Company    string     `json:"company"`
	Bio        string     `json:"bio"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	Website    string     `json:"website"`
	Category   string     `json:"category,omitempty"`
	OwnerID    string     `json:"ownerId,omitempty"`
	Visibility Visibility `json:"visibility"`
	Engagement Engagement `json:"engagement"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// Card is an immutable business card.
type Card struct {
	attrs Attributes
}

// New validates attributes and creates a Card. Empty visibility means public.
func New(a Attributes) (Card, error) {
	if a.ID == "" {
		return Card{}, fmt.Errorf("card id is required")
	}
	if len(a.ID) > MaxIDLength {
		return Card{}, fmt.Errorf("card id too long (max %d chars)", MaxIDLength)
	}
	if a.Visibility == "" {
		a.Visibility = Public
	}
	if !a.Visibility.IsValid() {
		return Card{}, fmt.Errorf("invalid visibility %q", a.Visibility)
	}
	e := a.Engagement
	if e.Views < 0 || e.Loves < 0 || e.Shares < 0 || e.Downloads < 0 {
		return Card{}, fmt.Errorf("engagement counters must be non-negative")
	}
	return Card{attrs: a}, nil
}

// Reconstruct restores a Card from storage without validation.
func Reconstruct(a Attributes) Card {
	return Card{attrs: a}
}

// ID returns the card identifier.
func (c Card) ID() string { return c.attrs.ID }

// Title returns the card headline.
func (c Card) Title() string { return c.attrs.Title }

// FullName returns the holder's name.
func (c Card) FullName() string { return c.attrs.FullName }

// JobTitle returns the holder's role.
func (c Card) JobTitle() string { return c.attrs.JobTitle }

// Company returns the holder's organization.
func (c Card) Company() string { return c.attrs.Company }

// Bio returns the free-text biography.
func (c Card) Bio() string { return c.attrs.Bio }

// Email returns the contact email.
func (c Card) Email() string { return c.attrs.Email }

// Phone returns the contact phone.
func (c Card) Phone() string { return c.attrs.Phone }

// Website returns the contact website.
func (c Card) Website() string { return c.attrs.Website }

// Category returns the template/category identifier.
func (c Card) Category() string { return c.attrs.Category }

// OwnerID returns the owning account identifier.
func (c Card) OwnerID() string { return c.attrs.OwnerID }

// Visibility returns the card visibility.
func (c Card) Visibility() Visibility { return c.attrs.Visibility }

// IsPublic reports whether the card is visible to everyone.
func (c Card) IsPublic() bool { return c.attrs.Visibility != Private }

// Engagement returns the engagement counters.
func (c Card) Engagement() Engagement { return c.attrs.Engagement }

// CreatedAt returns the creation time.
func (c Card) CreatedAt() time.Time { return c.attrs.CreatedAt }

// Attributes returns a copy of the card's plain form.
func (c Card) Attributes() Attributes { return c.attrs }

// Text returns the value of a text field, empty for unknown fields.
func (c Card) Text(f Field) string {
	switch f {
	case FieldTitle:
		return c.attrs.Title
	case FieldFullName:
		return c.attrs.FullName
	case FieldJobTitle:
		return c.attrs.JobTitle
	case FieldCompany:
		return c.attrs.Company
	case FieldBio:
		return c.attrs.Bio
	case FieldEmail:
		return c.attrs.Email
	case FieldPhone:
		return c.attrs.Phone
	case FieldWebsite:
		return c.attrs.Website
	default:
		return ""
	}
}
