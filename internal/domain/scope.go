package domain

// Scope is the set of records a staff caller may see. The zero value is the
// empty scope: nothing is visible. Repositories apply the scope to every
// listing query before returning rows.
type Scope struct {
	All      bool
	MuseumID int64
}

// ScopeAll is the unrestricted scope granted to superadmins.
func ScopeAll() Scope { return Scope{All: true} }

// ScopeMuseum restricts visibility to one museum's subtree: its rooms, those
// rooms' objects, and its tickets.
func ScopeMuseum(museumID int64) Scope { return Scope{MuseumID: museumID} }

// Empty reports whether the scope grants no visibility at all.
func (s Scope) Empty() bool { return !s.All && s.MuseumID == 0 }
