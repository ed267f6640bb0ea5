package models

// IDSet is a set of record IDs persisted as a JSON array.
// Uniqueness is enforced at the application level; membership logic
// must never rely on the stored order.
type IDSet []uint

// Contains reports whether id is a member of the set.
func (s IDSet) Contains(id uint) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// Add returns the set with id included. Adding an existing member is a no-op.
func (s IDSet) Add(id uint) IDSet {
	if s.Contains(id) {
		return s
	}
	return append(s, id)
}

// Remove returns the set with id excluded. Removing a non-member is a no-op.
func (s IDSet) Remove(id uint) IDSet {
	for i, v := range s {
		if v == id {
			out := make(IDSet, 0, len(s)-1)
			out = append(out, s[:i]...)
			return append(out, s[i+1:]...)
		}
	}
	return s
}
