package types

// UserProfile is the slice of the user record the engagement engine and
// prompt builders care about.
type UserProfile struct {
	Name              string   `json:"name,omitempty"`
	Age               string   `json:"age,omitempty"`
	Hobby             string   `json:"hobby,omitempty"`
	SelectedInterests []string `json:"selectedInterests,omitempty"`
	DietaryPreference string   `json:"dietaryPreference,omitempty"`
	Allergies         []string `json:"allergies,omitempty"`
	MedicalHistory    string   `json:"medicalHistory,omitempty"`
}

type ErrorResponse struct {
	Success      bool   `json:"success"`
	ErrorMessage string `json:"error,omitempty"`
}
