package domain

// RecordType distinguishes issue bodies from comments in the flat dataset.
type RecordType string

const (
	RecordIssue   RecordType = "issue"
	RecordComment RecordType = "comment"
)

// FlatRecord is the per-id metadata produced by flattening the issue tree.
type FlatRecord struct {
	CreatedAt      string     `json:"created_at"`
	Author         string     `json:"author"`
	AuthorLocation *string    `json:"author_location"`
	Type           RecordType `json:"type"`
	ParentIssueID  string     `json:"parent_issue_id,omitempty"`
	Text           string     `json:"text"`
}

// FlatDataset is an insertion-ordered id → FlatRecord mapping.
type FlatDataset struct {
	ids     []string
	records map[string]FlatRecord
}

// NewFlatDataset creates an empty dataset.
func NewFlatDataset() *FlatDataset {
	return &FlatDataset{records: make(map[string]FlatRecord)}
}

// Add stores rec under id unless id is already present.
// It reports whether the record was stored.
func (d *FlatDataset) Add(id string, rec FlatRecord) bool {
	if _, ok := d.records[id]; ok {
		return false
	}
	d.ids = append(d.ids, id)
	d.records[id] = rec
	return true
}

// Get returns the record stored under id.
func (d *FlatDataset) Get(id string) (FlatRecord, bool) {
	rec, ok := d.records[id]
	return rec, ok
}

// IDs returns the identifiers in insertion order.
func (d *FlatDataset) IDs() []string {
	out := make([]string, len(d.ids))
	copy(out, d.ids)
	return out
}

// Len returns the number of records.
func (d *FlatDataset) Len() int {
	return len(d.ids)
}

// Each calls fn for every record in insertion order, stopping at the first error.
func (d *FlatDataset) Each(fn func(id string, rec FlatRecord) error) error {
	for _, id := range d.ids {
		if err := fn(id, d.records[id]); err != nil {
			return err
		}
	}
	return nil
}
