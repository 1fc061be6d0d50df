package problemgen

// SignatureSet records which problems have already been issued. One set is
// shared across every stage of a catalog build; each stage also keeps its
// own local set.
type SignatureSet struct {
	seen map[string]struct{}
}

// NewSignatureSet returns an empty set.
func NewSignatureSet() *SignatureSet {
	return &SignatureSet{seen: make(map[string]struct{})}
}

// Has reports whether sig was added before.
func (s *SignatureSet) Has(sig string) bool {
	_, ok := s.seen[sig]
	return ok
}

// Add records sig.
func (s *SignatureSet) Add(sig string) {
	s.seen[sig] = struct{}{}
}

// Len returns the number of recorded signatures.
func (s *SignatureSet) Len() int {
	return len(s.seen)
}
