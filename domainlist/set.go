package domainlist

import (
	radix "github.com/hashicorp/go-immutable-radix"
)

// DomainSet is a set of canonical domains kept in a radix tree, so walking
// it yields the domains in ascending byte order without a separate sort.
// Not safe for concurrent use.
type DomainSet struct {
	tree *radix.Tree
	txn  *radix.Txn
}

func NewDomainSet(domains ...string) *DomainSet {
	s := &DomainSet{tree: radix.New()}
	for _, d := range domains {
		s.Add(d)
	}
	return s
}

// Add inserts domain and reports whether it was not present before.
func (s *DomainSet) Add(domain string) bool {
	if s.txn == nil {
		s.txn = s.tree.Txn()
	}
	_, existed := s.txn.Insert([]byte(domain), struct{}{})
	return !existed
}

// Union adds every domain of other to s.
func (s *DomainSet) Union(other *DomainSet) {
	for _, d := range other.Sorted() {
		s.Add(d)
	}
}

func (s *DomainSet) Len() int {
	return s.committed().Len()
}

// Sorted returns the domains in ascending lexicographic order.
func (s *DomainSet) Sorted() []string {
	tree := s.committed()
	out := make([]string, 0, tree.Len())
	tree.Root().Walk(func(k []byte, _ interface{}) bool {
		out = append(out, string(k))
		return false
	})
	return out
}

func (s *DomainSet) committed() *radix.Tree {
	if s.txn != nil {
		s.tree = s.txn.Commit()
		s.txn = nil
	}
	return s.tree
}
