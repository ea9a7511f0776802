package models

import (
	"encoding/json"
	"testing"
)

func periods(s RecordSeq) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, r["period"].(string))
	}
	return out
}

func TestRecordSeqArrayForm(t *testing.T) {
	var s RecordSeq
	in := `[{"period":"Mar 2024","sales":100},{"period":"Dec 2023","sales":90}]`
	if err := json.Unmarshal([]byte(in), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := periods(s); got[0] != "Mar 2024" || got[1] != "Dec 2023" {
		t.Fatalf("array order must be preserved: %v", got)
	}
}

func TestRecordSeqKeyedFormOrdersByPeriod(t *testing.T) {
	// Lexical order would put "Mar 2025" first; period order must win.
	var s RecordSeq
	in := `{"Jun 2025":{"sales":200},"Mar 2025":{"sales":100},"Dec 2024":{"sales":90}}`
	if err := json.Unmarshal([]byte(in), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []string{"Jun 2025", "Mar 2025", "Dec 2024"}
	got := periods(s)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("period order = %v, want %v", got, want)
		}
	}
	if s[0]["sales"].(float64) != 200 {
		t.Fatalf("index 0 must carry the latest quarter's figures")
	}
}

func TestRecordSeqKeyedFormFiscalYears(t *testing.T) {
	var s RecordSeq
	in := `{"FY2023":{"sales":80},"2024":{"sales":90}}`
	if err := json.Unmarshal([]byte(in), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := periods(s); got[0] != "2024" || got[1] != "FY2023" {
		t.Fatalf("fiscal year order = %v", got)
	}
}

func TestRecordSeqKeyedFormUnparseableKeys(t *testing.T) {
	var s RecordSeq
	in := `{"latest":{"sales":50},"Mar 2024":{"sales":100}}`
	if err := json.Unmarshal([]byte(in), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := periods(s); got[0] != "Mar 2024" || got[1] != "latest" {
		t.Fatalf("unparseable keys must sort after dated ones: %v", got)
	}
}

func TestRecordSeqKeyedFormKeepsExplicitPeriod(t *testing.T) {
	var s RecordSeq
	in := `{"Mar 2024":{"period":"Q4 FY24","sales":100}}`
	if err := json.Unmarshal([]byte(in), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s[0]["period"].(string) != "Q4 FY24" {
		t.Fatalf("record's own period field must not be overwritten")
	}
}
