package features

import "fmt"

// Feature is a single named value of a record.
type Feature struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Record is an ordered, immutable mapping from feature name to value.
type Record struct {
	fields []Feature
	index  map[string]int
}

func newRecord(fields []Feature) Record {
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[f.Name] = i
	}
	return Record{fields: fields, index: index}
}

func (r Record) Len() int { return len(r.fields) }

// Get returns the value stored under name.
func (r Record) Get(name string) (float64, bool) {
	i, ok := r.index[name]
	if !ok {
		return 0, false
	}
	return r.fields[i].Value, true
}

func (r Record) Names() []string {
	out := make([]string, len(r.fields))
	for i, f := range r.fields {
		out[i] = f.Name
	}
	return out
}

func (r Record) Values() []float64 {
	out := make([]float64, len(r.fields))
	for i, f := range r.fields {
		out[i] = f.Value
	}
	return out
}

// Features returns a copy of the record's entries in order.
func (r Record) Features() []Feature {
	out := make([]Feature, len(r.fields))
	copy(out, r.fields)
	return out
}

// Align returns the record reindexed to order. The key sets must match
// exactly.
func (r Record) Align(order []string) (Record, error) {
	if len(order) != len(r.fields) {
		return Record{}, fmt.Errorf("%w: record has %d features, model expects %d",
			ErrSchemaMismatch, len(r.fields), len(order))
	}

	fields := make([]Feature, 0, len(order))
	for _, name := range order {
		v, ok := r.Get(name)
		if !ok {
			return Record{}, fmt.Errorf("%w: model expects %q", ErrSchemaMismatch, name)
		}
		fields = append(fields, Feature{Name: name, Value: v})
	}

	aligned := newRecord(fields)
	if len(aligned.index) != len(fields) {
		return Record{}, fmt.Errorf("%w: duplicate feature in model ordering", ErrSchemaMismatch)
	}
	return aligned, nil
}
