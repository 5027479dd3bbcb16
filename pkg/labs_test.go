package pkg

import (
	"encoding/json"
	"testing"
)

func TestLabResultsOrderPreserved(t *testing.T) {
	// Key order here intentionally differs from alphabetical order.
	doc := `{
		"LipidProfile": {"ldl": "high", "hdl_direct": "normal", "triglycerides": "normal"},
		"KidneyFunctionTest": {"creatinine": "high", "urea": "normal"},
		"Vitamins": {"vitamin_d": "low"}
	}`

	var labs LabResults
	if err := json.Unmarshal([]byte(doc), &labs); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	wantPanels := []string{"LipidProfile", "KidneyFunctionTest", "Vitamins"}
	if len(labs) != len(wantPanels) {
		t.Fatalf("expected %d panels, got %d", len(wantPanels), len(labs))
	}
	for i, name := range wantPanels {
		if labs[i].Name != name {
			t.Errorf("panel[%d] = %q, want %q", i, labs[i].Name, name)
		}
	}

	lipid := labs[0].Tests
	wantTests := []string{"ldl", "hdl_direct", "triglycerides"}
	for i, name := range wantTests {
		if lipid[i].Name != name {
			t.Errorf("LipidProfile test[%d] = %q, want %q", i, lipid[i].Name, name)
		}
	}
}

func TestLabResultsRoundTrip(t *testing.T) {
	labs := LabResults{
		{Name: "LipidProfile", Tests: []LabTest{{Name: "ldl", Result: "high"}, {Name: "hdl_direct", Result: "normal"}}},
		{Name: "Vitamins", Tests: []LabTest{{Name: "vitamin_d", Result: "low"}}},
	}

	data, err := json.Marshal(labs)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got LabResults
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(got) != len(labs) {
		t.Fatalf("expected %d panels, got %d", len(labs), len(got))
	}
	for i := range labs {
		if got[i].Name != labs[i].Name {
			t.Errorf("panel[%d] = %q, want %q", i, got[i].Name, labs[i].Name)
		}
		for j := range labs[i].Tests {
			if got[i].Tests[j] != labs[i].Tests[j] {
				t.Errorf("panel %s test[%d] = %+v, want %+v", labs[i].Name, j, got[i].Tests[j], labs[i].Tests[j])
			}
		}
	}
}

func TestLabResultsSkipsNonStringLeaves(t *testing.T) {
	doc := `{"Panel": {"a": "high", "b": 42, "c": null, "d": {"nested": "low"}, "e": "normal"}}`

	var labs LabResults
	if err := json.Unmarshal([]byte(doc), &labs); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(labs) != 1 {
		t.Fatalf("expected 1 panel, got %d", len(labs))
	}
	tests := labs[0].Tests
	if len(tests) != 2 {
		t.Fatalf("expected 2 string results, got %d: %+v", len(tests), tests)
	}
	if tests[0].Name != "a" || tests[1].Name != "e" {
		t.Errorf("unexpected retained tests: %+v", tests)
	}
}

func TestLabResultsSkipsNonObjectPanel(t *testing.T) {
	doc := `{"Good": {"x": "high"}, "Bad": "not a panel", "AlsoGood": {"y": "low"}}`

	var labs LabResults
	if err := json.Unmarshal([]byte(doc), &labs); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(labs) != 2 {
		t.Fatalf("expected 2 panels, got %d", len(labs))
	}
	if labs[0].Name != "Good" || labs[1].Name != "AlsoGood" {
		t.Errorf("unexpected panels: %+v", labs)
	}
}

func TestLabResultsNull(t *testing.T) {
	var labs LabResults
	if err := json.Unmarshal([]byte("null"), &labs); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if labs != nil {
		t.Errorf("expected nil, got %+v", labs)
	}
}
