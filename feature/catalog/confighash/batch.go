package confighash

// Input is one configuration for the batch helpers.
type Input struct {
	ProductID    string   `json:"product_id"`
	AttributeIDs []string `json:"attribute_ids"`
}

// BatchResult is the outcome for the input at Index.
type BatchResult struct {
	Index int    `json:"index"`
	Hash  string `json:"hash,omitempty"`
	Err   error  `json:"-"`
}

// GenerateBatch hashes every input. One invalid input does not fail the batch.
func GenerateBatch(inputs []Input, opts ...Option) []BatchResult {
	results := make([]BatchResult, len(inputs))
	for i, in := range inputs {
		hash, err := GenerateConfigHash(in.ProductID, in.AttributeIDs, opts...)
		results[i] = BatchResult{Index: i, Hash: hash, Err: err}
	}
	return results
}

// FindDuplicates groups input indices by hash, keeping only hashes shared by
// more than one input. Invalid inputs are ignored.
func FindDuplicates(inputs []Input, opts ...Option) map[string][]int {
	groups := make(map[string][]int)
	for _, r := range GenerateBatch(inputs, opts...) {
		if r.Err != nil {
			continue
		}
		groups[r.Hash] = append(groups[r.Hash], r.Index)
	}
	for hash, idx := range groups {
		if len(idx) < 2 {
			delete(groups, hash)
		}
	}
	return groups
}
