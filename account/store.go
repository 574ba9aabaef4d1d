package account

import "sync/atomic"

// Store holds the current snapshot. Replace swaps the whole value, so a
// reader sees either the old snapshot or the new one, never a mix.
type Store struct {
	cur atomic.Pointer[Snapshot]
}

func NewStore(initial Snapshot) *Store {
	s := &Store{}
	s.Replace(initial)
	return s
}

// Current returns a copy of the current snapshot that the caller may keep
// or modify freely.
func (s *Store) Current() Snapshot {
	p := s.cur.Load()
	if p == nil {
		return Snapshot{}
	}
	return p.Clone()
}

func (s *Store) Replace(next Snapshot) {
	c := next.Clone()
	s.cur.Store(&c)
}
