package core

import (
	"fmt"
	"strings"
	"unicode"

	"healbot/pkg"
)

// maxAbnormalResults caps the lab section at the first qualifying entries
// in document order. No severity ranking is applied.
const maxAbnormalResults = 10

// Summarize renders a patient record into a bounded text block for prompt
// context. It is a best-effort renderer, not a validator: every section is
// independently optional and missing data is simply skipped. A nil record
// yields an empty string. Section order is fixed: critical info, risk
// factors, organ health, mental/sleep, lifestyle, new symptoms, lab
// abnormalities, goals.
func Summarize(rec *pkg.PatientRecord) string {
	if rec == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n🏥 **PATIENT MEDICAL PROFILE**\n")

	profile := &rec.Profile

	if cmi := profile.CriticalMedicalInfo; cmi != nil {
		b.WriteString("\n📌 **Critical Medical Information:**\n")
		fmt.Fprintf(&b, "- Major Conditions: %s\n", orNone(cmi.MajorConditions))
		fmt.Fprintf(&b, "- Current Medications: %s\n", orNone(cmi.CurrentMedications))
		fmt.Fprintf(&b, "- Allergies: %s\n", orNone(cmi.Allergies))
		if cmi.PastSurgeriesOrTreatments != "" && cmi.PastSurgeriesOrTreatments != "None" {
			fmt.Fprintf(&b, "- Past Surgeries: %s\n", cmi.PastSurgeriesOrTreatments)
		}
	}

	if vrf := profile.VitalRiskFactors; vrf != nil {
		b.WriteString("\n⚠️ **Risk Factors:**\n")
		if vrf.SmokingStatus != "" && strings.Contains(strings.ToLower(vrf.SmokingStatus), "smok") {
			fmt.Fprintf(&b, "- Smoking: %s\n", vrf.SmokingStatus)
		}
		if vrf.BloodPressureIssue != "" && vrf.BloodPressureIssue != "No" {
			fmt.Fprintf(&b, "- Blood Pressure: %s\n", vrf.BloodPressureIssue)
		}
		if vrf.CholesterolIssue != "" && vrf.CholesterolIssue != "No" {
			fmt.Fprintf(&b, "- Cholesterol: %s\n", vrf.CholesterolIssue)
		}
		if vrf.DiabetesStatus != "" && strings.Contains(strings.ToLower(vrf.DiabetesStatus), "diabetes") {
			fmt.Fprintf(&b, "- Diabetes: %s\n", vrf.DiabetesStatus)
		}
		if vrf.FamilyHistoryMajorDisease != "" {
			fmt.Fprintf(&b, "- Family History: %s\n", vrf.FamilyHistoryMajorDisease)
		}
	}

	if ohs := profile.OrganHealthSummary; ohs != nil {
		// A finding is surfaced only when it deviates from baseline.
		var issues []string
		if ohs.HeartHealth != "" && !strings.Contains(strings.ToLower(ohs.HeartHealth), "normal") {
			issues = append(issues, "Heart: "+ohs.HeartHealth)
		}
		if ohs.KidneyHealth != "" && !strings.Contains(strings.ToLower(ohs.KidneyHealth), "no") {
			issues = append(issues, "Kidney: "+ohs.KidneyHealth)
		}
		if ohs.LiverHealth != "" &&
			!strings.Contains(strings.ToLower(ohs.LiverHealth), "normal") &&
			!strings.Contains(strings.ToLower(ohs.LiverHealth), "no") {
			issues = append(issues, "Liver: "+ohs.LiverHealth)
		}
		if ohs.GutHealth != "" && !strings.Contains(strings.ToLower(ohs.GutHealth), "normal") {
			issues = append(issues, "Gut: "+ohs.GutHealth)
		}
		if len(issues) > 0 {
			b.WriteString("\n🫀 **Organ Health Concerns:**\n")
			for _, issue := range issues {
				fmt.Fprintf(&b, "- %s\n", issue)
			}
		}
	}

	if msh := profile.MentalSleepHealth; msh != nil {
		b.WriteString("\n🧠 **Mental & Sleep Health:**\n")
		fmt.Fprintf(&b, "- Mental Status: %s\n", orNotSpecified(msh.MentalHealthStatus))
		if msh.MentalConditions != "" {
			fmt.Fprintf(&b, "- Mental Conditions: %s\n", msh.MentalConditions)
		}
		fmt.Fprintf(&b, "- Sleep: %s per night", orNotSpecified(msh.SleepHours))
		if msh.SleepProblems != "" {
			fmt.Fprintf(&b, " (%s)\n", msh.SleepProblems)
		} else {
			b.WriteString("\n")
		}
	}

	if ls := profile.Lifestyle; ls != nil {
		b.WriteString("\n🏃 **Lifestyle:**\n")
		fmt.Fprintf(&b, "- Activity: %s\n", orNotSpecified(ls.PhysicalActivityLevel))
		fmt.Fprintf(&b, "- Diet: %s\n", orNotSpecified(ls.DietType))
	}

	if len(profile.NewSymptoms) > 0 {
		b.WriteString("\n🩺 **Newly Reported Symptoms:**\n")
		for _, s := range profile.NewSymptoms {
			fmt.Fprintf(&b, "- %s\n", s)
		}
	}

	if abnormal := collectAbnormal(rec.Labs); len(abnormal) > 0 {
		b.WriteString("\n🔬 **Key Lab Results (Abnormal):**\n")
		for _, entry := range abnormal {
			fmt.Fprintf(&b, "- %s\n", entry)
		}
	}

	if profile.PrimaryHealthGoals != "" {
		fmt.Fprintf(&b, "\n🎯 **Health Goals:** %s\n", profile.PrimaryHealthGoals)
	}

	return b.String()
}

// collectAbnormal walks every panel and test in document order and keeps
// the first maxAbnormalResults values that read as abnormal.
func collectAbnormal(labs pkg.LabResults) []string {
	var out []string
	for _, panel := range labs {
		for _, test := range panel.Tests {
			if test.Result == "" || !abnormalResult(test.Result) {
				continue
			}
			out = append(out, titleCase(test.Name)+": "+test.Result)
			if len(out) == maxAbnormalResults {
				return out
			}
		}
	}
	return out
}

// titleCase renders a snake_case test name as a readable label, e.g.
// "fasting_blood_sugar" -> "Fasting Blood Sugar".
func titleCase(name string) string {
	words := strings.Fields(strings.ReplaceAll(name, "_", " "))
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}

func orNotSpecified(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}
