package report

import (
	"bytes"
	"encoding/json"
)

// Breakdown counts anomalies per type while preserving first-seen insertion
// order. The order carries no meaning beyond reproducibility — the prose
// listing and the JSON snapshot must come out the same way every run for the
// same input.
type Breakdown struct {
	keys   []string
	counts map[string]int
}

// NewBreakdown returns an empty counter.
func NewBreakdown() *Breakdown {
	return &Breakdown{counts: make(map[string]int)}
}

// Add increments the count for typ, registering it on first sight.
func (b *Breakdown) Add(typ string) {
	if _, ok := b.counts[typ]; !ok {
		b.keys = append(b.keys, typ)
	}
	b.counts[typ]++
}

// Count returns the occurrences recorded for typ (0 if never seen).
func (b *Breakdown) Count(typ string) int {
	return b.counts[typ]
}

// Types returns the type keys in first-seen order.
func (b *Breakdown) Types() []string {
	return b.keys
}

// Len returns the number of distinct types.
func (b *Breakdown) Len() int {
	return len(b.keys)
}

// Total returns the sum of all counts. Invariant: equals the number of
// anomalies fed through Add.
func (b *Breakdown) Total() int {
	total := 0
	for _, n := range b.counts {
		total += n
	}
	return total
}

// MarshalJSON emits a JSON object with keys in first-seen order.
// encoding/json sorts map keys, which would destroy the ordering, so the
// object is written by hand.
func (b *Breakdown) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range b.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(b.counts[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON restores a Breakdown from a JSON object. Key order follows
// the document order of the input.
func (b *Breakdown) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return &json.UnmarshalTypeError{Value: "non-object", Type: nil}
	}
	b.keys = nil
	b.counts = make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)
		var n int
		if err := dec.Decode(&n); err != nil {
			return err
		}
		b.keys = append(b.keys, key)
		b.counts[key] = n
	}
	_, err = dec.Token() // closing brace
	return err
}
