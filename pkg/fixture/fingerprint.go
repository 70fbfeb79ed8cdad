package fixture

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"

	"github.com/mmrzaf/makebelieve/pkg/entity"
)

// Fingerprint hashes records into a stable hex digest: jobs sorted by name,
// record fields sorted by key, values in their JSON form. Equal output gives
// an equal fingerprint regardless of map iteration order.
func Fingerprint(records map[string][]entity.Record) (string, error) {
	canonical := canonicalizeRecords(records)
	data, err := json.Marshal(canonical)
	if err != nil {
		return "", err
	}

	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}

func canonicalizeRecords(records map[string][]entity.Record) []map[string]interface{} {
	names := make([]string, 0, len(records))
	for name := range records {
		names = append(names, name)
	}
	sort.Strings(names)

	jobs := make([]map[string]interface{}, len(names))
	for i, name := range names {
		recs := make([]map[string]interface{}, len(records[name]))
		for j, rec := range records[name] {
			recs[j] = map[string]interface{}(rec)
		}
		jobs[i] = map[string]interface{}{
			"job":     name,
			"records": recs,
		}
	}
	return jobs
}
