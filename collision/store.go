// Package collision owns the level's collision lines and answers ray and
// segment queries against them.
package collision

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/jakecoffman/cp"
)

var (
	ErrDanglingLink = errors.New("collision: dangling link")
	ErrUnknownLine  = errors.New("collision: unknown line")
	ErrDuplicateID  = errors.New("collision: duplicate line id")
)

// tieEpsilon treats hits closer than this as equidistant.
const tieEpsilon = 1e-9

// Store is an arena of lines keyed by id. Line pointers stay valid until
// the line itself is removed.
type Store struct {
	lines  map[LineID]*Line
	ids    []LineID // ascending
	nextID LineID
}

func NewStore() *Store {
	return &Store{lines: map[LineID]*Line{}}
}

// AddLine adds a new unlinked line and returns its id.
func (s *Store) AddLine(p1, p2 cp.Vector, t Type) LineID {
	id := s.nextID
	_ = s.AddLineWithID(id, p1, p2, t)
	return id
}

// AddLineWithID adds a line under a caller chosen id, used to keep the
// index space of loaded data.
func (s *Store) AddLineWithID(id LineID, p1, p2 cp.Vector, t Type) error {
	if id < 0 {
		return fmt.Errorf("%w: %d", ErrUnknownLine, id)
	}
	if _, ok := s.lines[id]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateID, id)
	}
	s.lines[id] = &Line{ID: id, P1: p1, P2: p2, Type: t, Prev: NoLine, Next: NoLine}
	pos, _ := slices.BinarySearch(s.ids, id)
	s.ids = slices.Insert(s.ids, pos, id)
	if id >= s.nextID {
		s.nextID = id + 1
	}
	return nil
}

// Line returns the line with the given id.
func (s *Store) Line(id LineID) (*Line, bool) {
	l, ok := s.lines[id]
	return l, ok
}

func (s *Store) Len() int {
	return len(s.ids)
}

// All yields lines in ascending id order.
func (s *Store) All() iter.Seq[*Line] {
	return func(yield func(*Line) bool) {
		for _, id := range s.ids {
			if !yield(s.lines[id]) {
				return
			}
		}
	}
}

// Link records a directed adjacency: a continues into b.
func (s *Store) Link(a, b LineID) error {
	la, ok := s.lines[a]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownLine, a)
	}
	lb, ok := s.lines[b]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownLine, b)
	}
	la.Next = b
	lb.Prev = a
	return nil
}

// SetLinks stores raw prev/next ids without checking them. The loader uses
// it to copy the file's link table and then calls Validate.
func (s *Store) SetLinks(id, prev, next LineID) error {
	l, ok := s.lines[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownLine, id)
	}
	l.Prev = prev
	l.Next = next
	return nil
}

// Unlink clears the outgoing link of a, and b's back link if it points at a.
func (s *Store) Unlink(a LineID) error {
	la, ok := s.lines[a]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownLine, a)
	}
	if lb, ok := s.lines[la.Next]; ok && lb.Prev == a {
		lb.Prev = NoLine
	}
	la.Next = NoLine
	return nil
}

// Remove deletes a line. Links held by other lines are left as they are;
// callers must re-link them or Validate will report them.
func (s *Store) Remove(id LineID) bool {
	if _, ok := s.lines[id]; !ok {
		return false
	}
	delete(s.lines, id)
	if pos, found := slices.BinarySearch(s.ids, id); found {
		s.ids = slices.Delete(s.ids, pos, pos+1)
	}
	return true
}

// Validate checks that every link resolves to a line in this store.
func (s *Store) Validate() error {
	var errs []error
	for _, id := range s.ids {
		l := s.lines[id]
		if l.Prev != NoLine {
			if _, ok := s.lines[l.Prev]; !ok {
				errs = append(errs, fmt.Errorf("%w: line %d prev %d", ErrDanglingLink, id, l.Prev))
			}
		}
		if l.Next != NoLine {
			if _, ok := s.lines[l.Next]; !ok {
				errs = append(errs, fmt.Errorf("%w: line %d next %d", ErrDanglingLink, id, l.Next))
			}
		}
	}
	return errors.Join(errs...)
}

// Hit is the result of a query.
type Hit struct {
	Point    cp.Vector
	Distance float64
	Line     LineID
}

// Query casts an unbounded ray from origin along direction and returns the
// closest line matching mask. Equidistant hits resolve to the lowest id.
func (s *Store) Query(origin, direction cp.Vector, mask Type) (Hit, bool) {
	return s.cast(origin, direction, mask, math.Inf(1))
}

// QuerySegment is Query limited to the segment from a to b.
func (s *Store) QuerySegment(a, b cp.Vector, mask Type) (Hit, bool) {
	return s.cast(a, b.Sub(a), mask, 1)
}

func (s *Store) cast(origin, dir cp.Vector, mask Type, maxT float64) (Hit, bool) {
	dirLen := dir.Length()
	if dirLen == 0 {
		return Hit{}, false
	}

	best := Hit{Line: NoLine, Distance: math.Inf(1)}
	for _, id := range s.ids {
		l := s.lines[id]
		if l.Type&mask == 0 {
			continue
		}
		t, ok := raySegment(origin, dir, l.P1, l.P2)
		if !ok || t > maxT {
			continue
		}
		dist := t * dirLen
		if dist < best.Distance-tieEpsilon {
			best = Hit{Point: origin.Add(dir.Mult(t)), Distance: dist, Line: id}
		}
	}
	return best, best.Line != NoLine
}

// raySegment intersects origin+t*dir (t >= 0) with segment p1-p2 and
// returns t. Parallel segments never hit.
func raySegment(origin, dir, p1, p2 cp.Vector) (float64, bool) {
	seg := p2.Sub(p1)
	denom := dir.Cross(seg)
	if denom == 0 {
		return 0, false
	}
	diff := p1.Sub(origin)
	t := diff.Cross(seg) / denom
	u := diff.Cross(dir) / denom
	if t < 0 || u < 0 || u > 1 {
		return 0, false
	}
	return t, true
}
