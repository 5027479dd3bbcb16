package core

import (
	"fmt"
	"strings"
	"testing"

	"healbot/pkg"
)

func TestSummarizeNilRecord(t *testing.T) {
	if got := Summarize(nil); got != "" {
		t.Errorf("expected empty string for nil record, got %q", got)
	}
}

func TestSummarizeEmptyRecord(t *testing.T) {
	got := Summarize(&pkg.PatientRecord{})

	if !strings.Contains(got, "PATIENT MEDICAL PROFILE") {
		t.Errorf("expected top-level heading, got %q", got)
	}
	for _, heading := range []string{
		"Critical Medical Information",
		"Risk Factors",
		"Organ Health Concerns",
		"Mental & Sleep Health",
		"Lifestyle",
		"Key Lab Results",
		"Health Goals",
	} {
		if strings.Contains(got, heading) {
			t.Errorf("empty record should not emit %q section:\n%s", heading, got)
		}
	}
}

func TestSummarizeIdempotent(t *testing.T) {
	rec := &pkg.PatientRecord{
		Profile: pkg.PatientProfile{
			CriticalMedicalInfo: &pkg.CriticalMedicalInfo{MajorConditions: "Hypertension"},
			VitalRiskFactors:    &pkg.VitalRiskFactors{BloodPressureIssue: "High, diagnosed 2022"},
		},
		Labs: pkg.LabResults{{Name: "LipidProfile", Tests: []pkg.LabTest{{Name: "ldl", Result: "high"}}}},
	}

	first := Summarize(rec)
	second := Summarize(rec)
	if first != second {
		t.Errorf("summaries differ between calls:\n%q\n%q", first, second)
	}
}

func TestSummarizeCriticalInfoDefaults(t *testing.T) {
	rec := &pkg.PatientRecord{
		Profile: pkg.PatientProfile{
			CriticalMedicalInfo: &pkg.CriticalMedicalInfo{
				MajorConditions:           "Hypertension, mild asthma",
				PastSurgeriesOrTreatments: "None",
			},
		},
	}
	got := Summarize(rec)

	if !strings.Contains(got, "- Major Conditions: Hypertension, mild asthma\n") {
		t.Errorf("missing major conditions line:\n%s", got)
	}
	if !strings.Contains(got, "- Current Medications: None\n") {
		t.Errorf("missing medications default:\n%s", got)
	}
	if !strings.Contains(got, "- Allergies: None\n") {
		t.Errorf("missing allergies default:\n%s", got)
	}
	if strings.Contains(got, "Past Surgeries") {
		t.Errorf("literal \"None\" past surgeries should be omitted:\n%s", got)
	}
}

func TestSummarizeRiskFactorFilters(t *testing.T) {
	tests := []struct {
		name    string
		factors pkg.VitalRiskFactors
		want    []string
		absent  []string
	}{
		{
			name:    "blood pressure No suppressed",
			factors: pkg.VitalRiskFactors{BloodPressureIssue: "No"},
			absent:  []string{"Blood Pressure"},
		},
		{
			name:    "blood pressure issue verbatim",
			factors: pkg.VitalRiskFactors{BloodPressureIssue: "High, diagnosed 2022"},
			want:    []string{"- Blood Pressure: High, diagnosed 2022\n"},
		},
		{
			name:    "cholesterol No suppressed",
			factors: pkg.VitalRiskFactors{CholesterolIssue: "No"},
			absent:  []string{"Cholesterol"},
		},
		{
			name:    "smoking requires smoking-related text",
			factors: pkg.VitalRiskFactors{SmokingStatus: "Quit in 2019"},
			absent:  []string{"Smoking"},
		},
		{
			name:    "smoker surfaced",
			factors: pkg.VitalRiskFactors{SmokingStatus: "Smokes 5-7 cigarettes per day"},
			want:    []string{"- Smoking: Smokes 5-7 cigarettes per day\n"},
		},
		{
			name:    "diabetes requires diabetes text",
			factors: pkg.VitalRiskFactors{DiabetesStatus: "None"},
			absent:  []string{"- Diabetes:"},
		},
		{
			name:    "diabetes surfaced",
			factors: pkg.VitalRiskFactors{DiabetesStatus: "Type 2 diabetes since 2020"},
			want:    []string{"- Diabetes: Type 2 diabetes since 2020\n"},
		},
		{
			name:    "family history always shown",
			factors: pkg.VitalRiskFactors{FamilyHistoryMajorDisease: "Father had heart disease"},
			want:    []string{"- Family History: Father had heart disease\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &pkg.PatientRecord{Profile: pkg.PatientProfile{VitalRiskFactors: &tt.factors}}
			got := Summarize(rec)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("expected %q in summary:\n%s", w, got)
				}
			}
			for _, a := range tt.absent {
				if strings.Contains(got, a) {
					t.Errorf("did not expect %q in summary:\n%s", a, got)
				}
			}
		})
	}
}

func TestSummarizeOrganFilters(t *testing.T) {
	rec := &pkg.PatientRecord{
		Profile: pkg.PatientProfile{
			OrganHealthSummary: &pkg.OrganHealthSummary{
				HeartHealth:  "Occasional chest discomfort during exercise",
				KidneyHealth: "No kidney problems reported",
				LiverHealth:  "Normal liver function tests",
				GutHealth:    "Frequent bloating",
			},
		},
	}
	got := Summarize(rec)

	if !strings.Contains(got, "- Heart: Occasional chest discomfort during exercise\n") {
		t.Errorf("expected heart concern:\n%s", got)
	}
	if !strings.Contains(got, "- Gut: Frequent bloating\n") {
		t.Errorf("expected gut concern:\n%s", got)
	}
	if strings.Contains(got, "Kidney:") {
		t.Errorf("kidney finding containing \"no\" should be filtered:\n%s", got)
	}
	if strings.Contains(got, "Liver:") {
		t.Errorf("normal liver finding should be filtered:\n%s", got)
	}
}

func TestSummarizeOrganSectionOmittedWhenAllNormal(t *testing.T) {
	rec := &pkg.PatientRecord{
		Profile: pkg.PatientProfile{
			OrganHealthSummary: &pkg.OrganHealthSummary{
				HeartHealth: "Normal",
				GutHealth:   "normal digestion",
			},
		},
	}
	if got := Summarize(rec); strings.Contains(got, "Organ Health Concerns") {
		t.Errorf("heading should be omitted when nothing qualifies:\n%s", got)
	}
}

func TestSummarizeSleepProblemsInline(t *testing.T) {
	rec := &pkg.PatientRecord{
		Profile: pkg.PatientProfile{
			MentalSleepHealth: &pkg.MentalSleepHealth{
				SleepHours:    "5-6 hours",
				SleepProblems: "Difficulty falling asleep",
			},
		},
	}
	got := Summarize(rec)
	if !strings.Contains(got, "- Sleep: 5-6 hours per night (Difficulty falling asleep)\n") {
		t.Errorf("expected sleep problems in parentheses:\n%s", got)
	}
	if !strings.Contains(got, "- Mental Status: Not specified\n") {
		t.Errorf("expected mental status default:\n%s", got)
	}
}

func TestSummarizeLabCapAndOrder(t *testing.T) {
	// 14 abnormal results across two panels; only the first 10 in
	// document order may appear.
	var labs pkg.LabResults
	for p := 0; p < 2; p++ {
		var tests []pkg.LabTest
		for i := 0; i < 7; i++ {
			tests = append(tests, pkg.LabTest{Name: fmt.Sprintf("test_p%d_%d", p, i), Result: "high"})
		}
		labs = append(labs, pkg.LabPanel{Name: fmt.Sprintf("Panel%d", p), Tests: tests})
	}

	got := Summarize(&pkg.PatientRecord{Labs: labs})

	if n := strings.Count(got, ": high"); n != 10 {
		t.Errorf("expected exactly 10 abnormal entries, got %d:\n%s", n, got)
	}
	// First seven from Panel0, first three from Panel1.
	for i := 0; i < 7; i++ {
		if !strings.Contains(got, fmt.Sprintf("Test P0 %d: high", i)) {
			t.Errorf("missing Panel0 entry %d:\n%s", i, got)
		}
	}
	for i := 0; i < 3; i++ {
		if !strings.Contains(got, fmt.Sprintf("Test P1 %d: high", i)) {
			t.Errorf("missing Panel1 entry %d:\n%s", i, got)
		}
	}
	if strings.Contains(got, "Test P1 3: high") {
		t.Errorf("entry past the cap leaked through:\n%s", got)
	}

	// Order within the section follows document traversal.
	if strings.Index(got, "Test P0 6") > strings.Index(got, "Test P1 0") {
		t.Errorf("panel order not preserved:\n%s", got)
	}
}

func TestSummarizeLabFilters(t *testing.T) {
	rec := &pkg.PatientRecord{
		Labs: pkg.LabResults{{
			Name: "KidneyFunctionTest",
			Tests: []pkg.LabTest{
				{Name: "creatinine", Result: "high"},
				{Name: "urea", Result: "normal"},
				{Name: "amylase", Result: "not_tested"},
				{Name: "cholesterol_total", Result: "Borderline high"},
			},
		}},
	}
	got := Summarize(rec)

	if !strings.Contains(got, "- Creatinine: high\n") {
		t.Errorf("expected abnormal creatinine:\n%s", got)
	}
	if !strings.Contains(got, "- Cholesterol Total: Borderline high\n") {
		t.Errorf("expected title-cased borderline entry with raw value:\n%s", got)
	}
	if strings.Contains(got, "Urea") || strings.Contains(got, "Amylase") {
		t.Errorf("normal/not_tested results should be omitted:\n%s", got)
	}
}

func TestSummarizeGoalsVerbatim(t *testing.T) {
	goals := "Weight management, improving sleep"
	got := Summarize(&pkg.PatientRecord{Profile: pkg.PatientProfile{PrimaryHealthGoals: goals}})
	if !strings.Contains(got, "**Health Goals:** "+goals+"\n") {
		t.Errorf("expected goals verbatim:\n%s", got)
	}
}

func TestSummarizeSectionOrder(t *testing.T) {
	rec := &pkg.PatientRecord{
		Profile: pkg.PatientProfile{
			CriticalMedicalInfo: &pkg.CriticalMedicalInfo{MajorConditions: "Asthma"},
			VitalRiskFactors:    &pkg.VitalRiskFactors{FamilyHistoryMajorDisease: "Heart disease"},
			OrganHealthSummary:  &pkg.OrganHealthSummary{GutHealth: "Bloating"},
			MentalSleepHealth:   &pkg.MentalSleepHealth{MentalHealthStatus: "Fair"},
			Lifestyle:           &pkg.Lifestyle{DietType: "Mixed"},
			PrimaryHealthGoals:  "Better sleep",
		},
		Labs: pkg.LabResults{{Name: "Vitamins", Tests: []pkg.LabTest{{Name: "vitamin_d", Result: "low"}}}},
	}
	got := Summarize(rec)

	order := []string{
		"Critical Medical Information",
		"Risk Factors",
		"Organ Health Concerns",
		"Mental & Sleep Health",
		"Lifestyle",
		"Key Lab Results",
		"Health Goals",
	}
	last := -1
	for _, heading := range order {
		idx := strings.Index(got, heading)
		if idx < 0 {
			t.Fatalf("missing section %q:\n%s", heading, got)
		}
		if idx < last {
			t.Errorf("section %q out of order:\n%s", heading, got)
		}
		last = idx
	}
}

func TestSummarizeNewSymptoms(t *testing.T) {
	rec := &pkg.PatientRecord{
		Profile: pkg.PatientProfile{
			NewSymptoms: []string{"I have a bad headache today"},
		},
	}
	got := Summarize(rec)
	if !strings.Contains(got, "- I have a bad headache today\n") {
		t.Errorf("expected reported symptom in summary:\n%s", got)
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct{ in, want string }{
		{"fasting_blood_sugar", "Fasting Blood Sugar"},
		{"ldl", "Ldl"},
		{"hs_crp", "Hs Crp"},
		{"VITAMIN_D", "Vitamin D"},
	}
	for _, tt := range tests {
		if got := titleCase(tt.in); got != tt.want {
			t.Errorf("titleCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
