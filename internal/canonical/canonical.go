// Package canonical serializes values with deterministically ordered keys.
// Ledger values are the unit of endorsement comparison across peers, so two
// peers encoding the same logical record must produce identical bytes.
package canonical

import (
	"encoding/json"
	"fmt"
)

// Marshal encodes v as JSON with all object keys, nested ones included, in
// lexicographic order. It round-trips through an untyped decode because
// encoding/json writes map keys sorted, which struct encoding does not
// guarantee across type changes.
func Marshal(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("remarshal: %w", err)
	}
	return out, nil
}
