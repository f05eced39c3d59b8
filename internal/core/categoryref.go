package core

import (
	"encoding/json"
	"strconv"
	"strings"
)

// UncategorizedName is the display fallback for transactions whose
// category cannot be resolved to a name.
const UncategorizedName = "Uncategorized"

// CategoryRef is the polymorphic category reference attached to
// transactions and goals. The backend emits it either as a bare name
// string or as a structured {id, categoryName, budget} object; both
// shapes funnel through this single type so that display-name
// resolution and matching live in one place instead of being probed
// at every call site.
type CategoryRef struct {
	ID     Ident
	Name   string
	Budget Decimal

	// Raw holds the bare string form when the reference was not a
	// structured object.
	Raw string

	structured bool
}

// StringRef builds a bare-string reference.
func StringRef(name string) CategoryRef {
	return CategoryRef{Raw: name}
}

// StructuredRef builds an object-shaped reference.
func StructuredRef(id Ident, name string, budget float64) CategoryRef {
	return CategoryRef{ID: id, Name: name, Budget: Decimal(budget), structured: true}
}

// Ref returns the reference form of a category definition.
func (c Category) Ref() CategoryRef {
	return StructuredRef(c.ID, c.CategoryName, c.Budget.Float())
}

// IsZero reports whether no category information is present at all.
func (r CategoryRef) IsZero() bool {
	return !r.structured && r.Raw == ""
}

// Structured reports whether the reference carries a canonical id.
func (r CategoryRef) Structured() bool { return r.structured }

// DisplayName resolves the reference to a name for bucketing and
// display: object name, then bare string, then "Uncategorized".
func (r CategoryRef) DisplayName() string {
	if r.structured && r.Name != "" {
		return r.Name
	}
	if r.Raw != "" {
		return r.Raw
	}
	return UncategorizedName
}

// key is the comparison identity: the canonical id for structured
// references, the raw string otherwise.
func (r CategoryRef) key() string {
	if r.structured {
		return string(r.ID)
	}
	return r.Raw
}

// Same reports whether two references denote the same category.
// Structured pairs compare by id; anything else falls back to raw
// identity. Incomparable mixed shapes are "no match", never an error.
func (r CategoryRef) Same(other CategoryRef) bool {
	a, b := r.key(), other.key()
	return a != "" && a == b
}

// MatchesID reports whether this is a structured reference carrying
// the given canonical id. Bare-string references never match: budgets
// require a canonical category id.
func (r CategoryRef) MatchesID(id Ident) bool {
	return r.structured && id != "" && r.ID == id
}

func (r *CategoryRef) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		*r = CategoryRef{}
		return nil
	}
	if s[0] == '"' {
		var name string
		if err := json.Unmarshal(b, &name); err != nil {
			*r = CategoryRef{}
			return nil
		}
		*r = CategoryRef{Raw: name}
		return nil
	}
	var obj struct {
		ID           json.RawMessage `json:"id"`
		CategoryName string          `json:"categoryName"`
		Name         string          `json:"name"`
		Budget       Decimal         `json:"budget"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		*r = CategoryRef{}
		return nil
	}
	name := obj.CategoryName
	if name == "" {
		name = obj.Name
	}
	*r = CategoryRef{
		ID:         Ident(rawToString(obj.ID)),
		Name:       name,
		Budget:     obj.Budget,
		structured: true,
	}
	return nil
}

func (r CategoryRef) MarshalJSON() ([]byte, error) {
	if r.IsZero() {
		return []byte("null"), nil
	}
	if !r.structured {
		return json.Marshal(r.Raw)
	}
	return json.Marshal(struct {
		ID           Ident   `json:"id"`
		CategoryName string  `json:"categoryName"`
		Budget       Decimal `json:"budget,omitempty"`
	}{ID: r.ID, CategoryName: r.Name, Budget: r.Budget})
}

// rawToString normalizes an id field that may be a JSON string or a
// number into its string form.
func rawToString(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return ""
	}
	if s[0] == '"' {
		var v string
		if err := json.Unmarshal(raw, &v); err == nil {
			return v
		}
		return ""
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return ""
	}
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
