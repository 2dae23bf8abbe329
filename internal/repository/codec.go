package repository

import (
	"encoding/json"

	"github.com/deppfellow/booking/internal/model"
	"github.com/pkg/errors"
)

// requiredKeys are the top-level members every stored document must have.
var requiredKeys = []string{"services", "appointments", "businessData", "admin"}

// encodeDataset renders the document with a two-space indent.
func encodeDataset(data *model.Dataset) ([]byte, error) {
	data.Normalize()

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "encode dataset")
	}
	return raw, nil
}

// decodeDataset parses a stored document and rejects one that lacks any of
// the top-level members.
func decodeDataset(raw []byte) (*model.Dataset, error) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(raw, &members); err != nil {
		return nil, errors.Wrap(err, "decode dataset")
	}

	for _, key := range requiredKeys {
		if _, ok := members[key]; !ok {
			return nil, errors.Errorf("decode dataset: missing %q", key)
		}
	}

	var data model.Dataset
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.Wrap(err, "decode dataset")
	}
	data.Normalize()

	return &data, nil
}
