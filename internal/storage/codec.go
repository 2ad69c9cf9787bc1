package storage

import "encoding/json"

// EncodeGenotype renders a problem-specific genotype as the JSON text
// stored in RunRecord.BestGenotype.
func EncodeGenotype(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeGenotype parses a BestGenotype value back into the problem's
// genotype representation.
func DecodeGenotype(data string, out any) error {
	return json.Unmarshal([]byte(data), out)
}
