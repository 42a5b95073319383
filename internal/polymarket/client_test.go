package polymarket

import (
	"encoding/json"
	"testing"
)

func TestJSONStringArray(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"plain array", `["0.42","0.58"]`, []string{"0.42", "0.58"}},
		{"string-wrapped array", `"[\"0.42\", \"0.58\"]"`, []string{"0.42", "0.58"}},
		{"empty string", `""`, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var arr JSONStringArray
			if err := json.Unmarshal([]byte(tt.input), &arr); err != nil {
				t.Fatalf("Unmarshal(%s) failed: %v", tt.input, err)
			}
			if len(arr) != len(tt.want) {
				t.Fatalf("got %v, want %v", arr, tt.want)
			}
			for i := range arr {
				if arr[i] != tt.want[i] {
					t.Errorf("arr[%d] = %q, want %q", i, arr[i], tt.want[i])
				}
			}
		})
	}
}

func TestJSONStringArrayRejectsGarbage(t *testing.T) {
	var arr JSONStringArray
	if err := json.Unmarshal([]byte(`"not an array"`), &arr); err == nil {
		t.Error("garbage string accepted")
	}
}

func TestMarketDecode(t *testing.T) {
	raw := `{
		"question": "Will the US strike Iran before July?",
		"slug": "us-strike-iran-july",
		"endDate": "2026-07-01T00:00:00Z",
		"outcomePrices": "[\"0.42\", \"0.58\"]",
		"volumeNum": 2400000,
		"volume24hr": 310000,
		"oneDayPriceChange": 0.065,
		"active": true,
		"closed": false
	}`

	var m Market
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if m.Question != "Will the US strike Iran before July?" {
		t.Errorf("Question = %q", m.Question)
	}
	if len(m.OutcomePrices) != 2 || m.OutcomePrices[0] != "0.42" {
		t.Errorf("OutcomePrices = %v", m.OutcomePrices)
	}
	if m.VolumeNum != 2400000 {
		t.Errorf("VolumeNum = %v", m.VolumeNum)
	}
	if m.OneDayPriceChange != 0.065 {
		t.Errorf("OneDayPriceChange = %v", m.OneDayPriceChange)
	}
}
