package card

import (
	"strconv"
	"time"

	domcard "github.com/kailas-cloud/cardex/internal/domain/card"
)

// Hash field names that are not card text fields.
const (
	fieldCategory   = "category"
	fieldOwnerID    = "owner_id"
	fieldVisibility = "visibility"
	fieldCreatedAt  = "created_at"
	fieldViews      = "views"
	fieldLoves      = "loves"
	fieldShares     = "shares"
	fieldDownloads  = "downloads"
)

var textFields = []domcard.Field{
	domcard.FieldTitle, domcard.FieldFullName, domcard.FieldJobTitle, domcard.FieldCompany,
	domcard.FieldBio, domcard.FieldEmail, domcard.FieldPhone, domcard.FieldWebsite,
}

// returnFields lists everything FT.SEARCH has to send back to rebuild a card.
var returnFields = func() []string {
	out := make([]string, 0, len(textFields)+8)
	for _, f := range textFields {
		out = append(out, string(f))
	}
	return append(out,
		fieldCategory, fieldOwnerID, fieldVisibility, fieldCreatedAt,
		fieldViews, fieldLoves, fieldShares, fieldDownloads,
	)
}()

// buildHashFields flattens a card into HSET fields. Empty strings are skipped.
func buildHashFields(c domcard.Card) map[string]string {
	m := make(map[string]string, len(returnFields))
	for _, f := range textFields {
		if v := c.Text(f); v != "" {
			m[string(f)] = v
		}
	}
	if c.Category() != "" {
		m[fieldCategory] = c.Category()
	}
	if c.OwnerID() != "" {
		m[fieldOwnerID] = c.OwnerID()
	}
	m[fieldVisibility] = string(c.Visibility())
	m[fieldCreatedAt] = strconv.FormatInt(c.CreatedAt().UnixMilli(), 10)

	e := c.Engagement()
	m[fieldViews] = strconv.FormatInt(e.Views, 10)
	m[fieldLoves] = strconv.FormatInt(e.Loves, 10)
	m[fieldShares] = strconv.FormatInt(e.Shares, 10)
	m[fieldDownloads] = strconv.FormatInt(e.Downloads, 10)
	return m
}

// parseHashFields rebuilds a card from a hash. Malformed counters read as zero and a
// missing visibility as public.
func parseHashFields(id string, m map[string]string) domcard.Card {
	a := domcard.Attributes{
		ID:       id,
		Title:    m[string(domcard.FieldTitle)],
		FullName: m[string(domcard.FieldFullName)],
		JobTitle: m[string(domcard.FieldJobTitle)],
		Company:  m[string(domcard.FieldCompany)],
		Bio:      m[string(domcard.FieldBio)],
		Email:    m[string(domcard.FieldEmail)],
		Phone:    m[string(domcard.FieldPhone)],
		Website:  m[string(domcard.FieldWebsite)],
		Category: m[fieldCategory],
		OwnerID:  m[fieldOwnerID],
		Engagement: domcard.Engagement{
			Views:     parseCounter(m[fieldViews]),
			Loves:     parseCounter(m[fieldLoves]),
			Shares:    parseCounter(m[fieldShares]),
			Downloads: parseCounter(m[fieldDownloads]),
		},
	}

	a.Visibility = domcard.Visibility(m[fieldVisibility])
	if !a.Visibility.IsValid() {
		a.Visibility = domcard.Public
	}
	if ms, err := strconv.ParseInt(m[fieldCreatedAt], 10, 64); err == nil {
		a.CreatedAt = time.UnixMilli(ms).UTC()
	}

	return domcard.Reconstruct(a)
}

func parseCounter(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// counters written by float-formatting clients
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 0
		}
		n = int64(f)
	}
	return max(n, 0)
}
