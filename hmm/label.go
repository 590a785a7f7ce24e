package hmm

// TagSeq is the backing store of one or more Labels.
type TagSeq struct {
	ids []TagID
}

// NewTagSeq creates a store holding a copy of ids.
func NewTagSeq(ids ...TagID) *TagSeq {
	return &TagSeq{ids: append([]TagID(nil), ids...)}
}

// Len returns the number of tags in the store.
func (s *TagSeq) Len() int { return len(s.ids) }

// Label is the tag sequence aligned with a Pattern.
//
// Labels share their TagSeq the same way Patterns share their TokenSeq.
// Index arguments must be in range. As with Pattern, the zero Label gets a
// private store on its first AppendTag or SetLength; use NewLabel for a label
// that will be shared.
type Label struct {
	tags *TagSeq
}

// NewLabel creates a label with a fresh, empty store.
func NewLabel() Label {
	return Label{tags: &TagSeq{}}
}

// Len returns the number of tags.
func (l Label) Len() int {
	if l.tags == nil {
		return 0
	}
	return len(l.tags.ids)
}

// IsEmpty reports whether the label has no tags.
func (l Label) IsEmpty() bool { return l.Len() == 0 }

// Equal reports whether l and other hold the same tags in the same order.
func (l Label) Equal(other Label) bool {
	n := l.Len()
	if n != other.Len() {
		return false
	}
	if n == 0 || l.tags == other.tags {
		return true
	}
	for i, id := range l.tags.ids {
		if other.tags.ids[i] != id {
			return false
		}
	}
	return true
}

// Tag returns the tag at index.
func (l Label) Tag(index int) TagID {
	return l.tags.ids[index]
}

// TagRef returns a pointer to the tag at index for in-place modification.
func (l Label) TagRef(index int) *TagID {
	return &l.tags.ids[index]
}

// LastTag returns a pointer to the final tag.
func (l Label) LastTag() *TagID {
	return &l.tags.ids[len(l.tags.ids)-1]
}

// AppendTag appends id to the shared store.
func (l *Label) AppendTag(id TagID) {
	if l.tags == nil {
		l.tags = &TagSeq{}
	}
	l.tags.ids = append(l.tags.ids, id)
}

// SetLength resizes the shared store to exactly n tags. New positions hold
// the zero TagID and must be assigned by the caller. The change is visible
// through every label sharing the store.
func (l *Label) SetLength(n int) {
	if l.tags == nil {
		l.tags = &TagSeq{}
	}
	ids := l.tags.ids
	if n <= len(ids) {
		l.tags.ids = ids[:n]
		return
	}
	l.tags.ids = append(ids, make([]TagID, n-len(ids))...)
}

// SetTag assigns id at index.
func (l Label) SetTag(index int, id TagID) {
	l.tags.ids[index] = id
}

// SetTagsVector points l at seq without copying it.
func (l *Label) SetTagsVector(seq *TagSeq) {
	l.tags = seq
}

// Tags returns the store l currently refers to.
func (l Label) Tags() *TagSeq {
	return l.tags
}

// Detach redirects l to a copy of its current store.
func (l *Label) Detach() {
	if l.tags == nil {
		l.tags = &TagSeq{}
		return
	}
	l.tags = NewTagSeq(l.tags.ids...)
}

// Strings resolves every tag through reg.
func (l Label) Strings(reg *Registry) ([]string, error) {
	out := make([]string, l.Len())
	for i := range out {
		tag, err := reg.TagByID(l.tags.ids[i])
		if err != nil {
			return nil, err
		}
		out[i] = tag
	}
	return out, nil
}
