package pkg

import "time"

// Role describes who authored a turn. There are only two roles in a
// consultation: the patient and the assistant.
type Role string

const (
	RolePatient   Role = "patient"
	RoleAssistant Role = "assistant"
)

// Turn is a single message in a consultation transcript. Turns are
// append-only; insertion order is the conversation order.
type Turn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// PatientRecord bundles everything known about one patient: an optional
// structured profile and an optional set of lab results. Records are keyed
// by an opaque user identifier owned by the caller.
type PatientRecord struct {
	Name        string         `json:"name,omitempty"`
	Profile     PatientProfile `json:"patient_profile"`
	Labs        LabResults     `json:"lab_test_results,omitempty"`
	LastUpdated time.Time      `json:"last_updated,omitempty"`
}

// PatientProfile is a loosely populated medical/lifestyle document. Every
// section and every field is optional; an empty string means "unknown",
// never "negative".
type PatientProfile struct {
	CriticalMedicalInfo *CriticalMedicalInfo `json:"critical_medical_info,omitempty"`
	VitalRiskFactors    *VitalRiskFactors    `json:"vital_risk_factors,omitempty"`
	OrganHealthSummary  *OrganHealthSummary  `json:"organ_health_summary,omitempty"`
	MentalSleepHealth   *MentalSleepHealth   `json:"mental_sleep_health,omitempty"`
	Lifestyle           *Lifestyle           `json:"lifestyle,omitempty"`
	PrimaryHealthGoals  string               `json:"primary_health_goals,omitempty"`

	// NewSymptoms accumulates raw patient messages that matched the
	// symptom vocabulary, so the current turn's complaint is visible in
	// the same turn's summary.
	NewSymptoms []string `json:"newly_reported_symptoms,omitempty"`
}

// CriticalMedicalInfo lists the conditions the assistant must always be
// aware of when advising the patient.
type CriticalMedicalInfo struct {
	MajorConditions           string `json:"major_conditions,omitempty"`
	CurrentMedications        string `json:"current_medications,omitempty"`
	Allergies                 string `json:"allergies,omitempty"`
	PastSurgeriesOrTreatments string `json:"past_surgeries_or_treatments,omitempty"`
	CancerHistory             string `json:"cancer_history,omitempty"`
}

type VitalRiskFactors struct {
	SmokingStatus             string `json:"smoking_status,omitempty"`
	AlcoholUse                string `json:"alcohol_use,omitempty"`
	DrugUse                   string `json:"drug_use,omitempty"`
	BloodPressureIssue        string `json:"blood_pressure_issue,omitempty"`
	CholesterolIssue          string `json:"cholesterol_issue,omitempty"`
	DiabetesStatus            string `json:"diabetes_status,omitempty"`
	FamilyHistoryMajorDisease string `json:"family_history_major_disease,omitempty"`
}

type OrganHealthSummary struct {
	HeartHealth  string `json:"heart_health,omitempty"`
	KidneyHealth string `json:"kidney_health,omitempty"`
	LiverHealth  string `json:"liver_health,omitempty"`
	GutHealth    string `json:"gut_health,omitempty"`
	ImmuneHealth string `json:"immune_health,omitempty"`
}

type MentalSleepHealth struct {
	MentalHealthStatus string `json:"mental_health_status,omitempty"`
	MentalConditions   string `json:"mental_conditions,omitempty"`
	SleepHours         string `json:"sleep_hours,omitempty"`
	SleepProblems      string `json:"sleep_problems,omitempty"`
}

type Lifestyle struct {
	PhysicalActivityLevel string `json:"physical_activity_level,omitempty"`
	DietType              string `json:"diet_type,omitempty"`
	FoodIntolerances      string `json:"food_intolerances,omitempty"`
	WaterIntake           string `json:"water_intake,omitempty"`
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message  string `json:"message"`
	UserID   string `json:"user_id"`
	Language string `json:"language,omitempty"`
}

// ChatResponse carries the assistant's reply and the transcript length
// after this exchange.
type ChatResponse struct {
	Reply        string `json:"reply"`
	UserID       string `json:"user_id"`
	MessageCount int    `json:"message_count"`
}

// PatientDataRequest is the body of POST /patient-data/{user_id}.
type PatientDataRequest struct {
	Name    string         `json:"name"`
	Profile PatientProfile `json:"patient_profile"`
	Labs    LabResults     `json:"lab_test_results"`
}

// HistoryResponse is returned by GET /chat-history/{user_id}.
type HistoryResponse struct {
	UserID       string `json:"user_id"`
	ChatHistory  []Turn `json:"chat_history"`
	MessageCount int    `json:"message_count"`
}

// SummaryResponse is returned by GET /patient-summary/{user_id}.
type SummaryResponse struct {
	Summary string         `json:"summary"`
	RawData *PatientRecord `json:"raw_data,omitempty"`
}

// TTSRequest is the body of POST /tts.
type TTSRequest struct {
	Text         string `json:"text"`
	LanguageCode string `json:"language_code,omitempty"`
}
