package domain

// Author identifies the person behind a commit or an issue.
//
// Two authors are the same when their names match. Username and email are
// informational only, so set membership and author filters work without a
// canonical identity. Distinct people sharing a display name are treated as
// one author.
type Author struct {
	Name     string `json:"name"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Equal reports whether a and other have the same name.
func (a Author) Equal(other Author) bool {
	return a.Name == other.Name
}

// Key returns the value authors are compared and hashed by.
func (a Author) Key() string {
	return a.Name
}

// AuthorSet is a set of authors keyed by name. The first author seen for a
// name wins.
type AuthorSet struct {
	order  []string
	byName map[string]Author
}

// NewAuthorSet builds a set from the given authors.
func NewAuthorSet(authors ...Author) *AuthorSet {
	s := &AuthorSet{byName: make(map[string]Author)}
	for _, a := range authors {
		s.Add(a)
	}
	return s
}

// Add inserts a unless an author with the same name is already present.
func (s *AuthorSet) Add(a Author) {
	if _, ok := s.byName[a.Key()]; ok {
		return
	}
	s.byName[a.Key()] = a
	s.order = append(s.order, a.Key())
}

// Contains reports whether an author with a's name is present.
func (s *AuthorSet) Contains(a Author) bool {
	_, ok := s.byName[a.Key()]
	return ok
}

// Len returns the number of distinct authors.
func (s *AuthorSet) Len() int {
	return len(s.order)
}

// Authors returns the authors in insertion order.
func (s *AuthorSet) Authors() []Author {
	out := make([]Author, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.byName[name])
	}
	return out
}
