package card

// Field names a text field of a card. Values double as store hash field names.
type Field string

// Text fields.
const (
	FieldTitle    Field = "title"
	FieldFullName Field = "full_name"
	FieldJobTitle Field = "job_title"
	FieldCompany  Field = "company"
	FieldBio      Field = "bio"
	FieldEmail    Field = "email"
	FieldPhone    Field = "phone"
	FieldWebsite  Field = "website"
)

// IsValid reports whether f is a known text field.
func (f Field) IsValid() bool {
	switch f {
	case FieldTitle, FieldFullName, FieldJobTitle, FieldCompany, FieldBio,
		FieldEmail, FieldPhone, FieldWebsite:
		return true
	}
	return false
}

// FieldWeight pairs a text field with its relevance multiplier.
type FieldWeight struct {
	Field  Field
	Weight float64
}

// Weights is an ordered field weight table. Order fixes iteration, never scores.
type Weights []FieldWeight

// DefaultWeights is the relevance table used unless configured otherwise.
func DefaultWeights() Weights {
	return Weights{
		{Field: FieldTitle, Weight: 10},
		{Field: FieldFullName, Weight: 8},
		{Field: FieldJobTitle, Weight: 6},
		{Field: FieldCompany, Weight: 6},
		{Field: FieldBio, Weight: 2},
	}
}

// Fields returns the weighted fields in table order.
func (w Weights) Fields() []Field {
	out := make([]Field, len(w))
	for i, fw := range w {
		out[i] = fw.Field
	}
	return out
}

// Of returns the weight of f, 0 when f is not weighted.
func (w Weights) Of(f Field) float64 {
	for _, fw := range w {
		if fw.Field == f {
			return fw.Weight
		}
	}
	return 0
}
