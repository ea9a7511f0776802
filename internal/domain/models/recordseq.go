package models

import (
	"encoding/json"
	"fmt"
	"sort"

	"FinGrade/pkg/util"
)

// RecordSeq is an ordered sequence of provider period records. Providers
// ship period data either as a JSON array (already ordered) or as an
// object keyed by period label; both decode into the same sequence.
type RecordSeq []RawRecord

// UnmarshalJSON accepts either `[{...}, ...]` or `{"Mar 2024": {...}}`.
// Keyed-object form gets the key injected as the record's period field and
// the records sorted newest period first, matching the most-recent-first
// convention of array payloads. Keys that do not parse as period labels
// sort after the parseable ones, lexically descending.
func (s *RecordSeq) UnmarshalJSON(b []byte) error {
	var arr []RawRecord
	if err := json.Unmarshal(b, &arr); err == nil {
		*s = arr
		return nil
	}

	var keyed map[string]RawRecord
	if err := json.Unmarshal(b, &keyed); err != nil {
		return fmt.Errorf("record sequence must be array or keyed object: %w", err)
	}

	keys := make([]string, 0, len(keyed))
	for k := range keyed {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ti, iok := util.ParsePeriod(keys[i])
		tj, jok := util.ParsePeriod(keys[j])
		switch {
		case iok && jok:
			if !ti.Equal(tj) {
				return ti.After(tj)
			}
			return keys[i] > keys[j]
		case iok != jok:
			return iok
		default:
			return keys[i] > keys[j]
		}
	})

	out := make([]RawRecord, 0, len(keyed))
	for _, k := range keys {
		rec := keyed[k]
		if rec == nil {
			rec = RawRecord{}
		}
		if _, ok := rec["period"]; !ok {
			rec["period"] = k
		}
		out = append(out, rec)
	}
	*s = out
	return nil
}
