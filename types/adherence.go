package types

// ResponseEntry is one logged answer to a medicine reminder question.
type ResponseEntry struct {
	MedicineName string `json:"medicine_name,omitempty"`
	Response     string `json:"response"` // yes | no
	Timestamp    string `json:"timestamp"`
}

// AdherenceSummary is the trailing 7-day medication picture for one user.
type AdherenceSummary struct {
	AllTakenToday bool    `json:"all_taken_today"`
	MissedDoses   int     `json:"missed_doses"`
	AdherenceRate float64 `json:"adherence_rate"` // percentage, two decimals
	NextDose      string  `json:"next_dose"`
}

type AdherenceResponse struct {
	Success      bool             `json:"success"`
	Summary      AdherenceSummary `json:"summary,omitempty"`
	ErrorMessage string           `json:"error,omitempty"`
}
