package models

// Allergy is a single allergy entry inside a student's medical record.
type Allergy struct {
	ID       string          `json:"id,omitempty"`
	Name     string          `json:"name"`
	Severity AllergySeverity `json:"severity"`
	Notes    string          `json:"notes,omitempty"`
}

// MedicalRecord is embedded in the student document.
type MedicalRecord struct {
	HasRestriction bool      `json:"hasRestriction"`
	Allergies      []Allergy `json:"allergies"`
	Intolerances   []string  `json:"intolerances"`
	MedicalNotes   string    `json:"medicalNotes"`
	BloodType      string    `json:"bloodType,omitempty"`
}

// Student is the core enrollment record. Documents written by older
// revisions may miss any field; Normalize fills the documented defaults
// so consumers never see a partial record.
type Student struct {
	ID           string        `json:"id"`
	FullName     string        `json:"fullName"`
	DateOfBirth  string        `json:"dateOfBirth"` // YYYY-MM-DD
	Gender       string        `json:"gender"`      // "M" | "F"
	HeightCm     float64       `json:"heightCm"`
	WeightKg     float64       `json:"weightKg"`
	GuardianName string        `json:"guardianName"`
	ContactPhone string        `json:"contactPhone"`
	ContactEmail string        `json:"contactEmail"`
	SchoolClass  string        `json:"schoolClass"`
	Shift        Shift         `json:"shift"`
	TeacherName  string        `json:"teacherName"`
	AvatarURL    string        `json:"avatarUrl,omitempty"`
	GeneralNotes string        `json:"generalNotes,omitempty"`
	Medical      MedicalRecord `json:"medical"`
}

// Normalize applies the read-side defaulting policy for student
// documents: every missing field gets its documented default so legacy
// or partially written records cannot crash a consumer.
func (s *Student) Normalize() {
	if s.FullName == "" {
		s.FullName = "Sem Nome"
	}
	if s.Gender == "" {
		s.Gender = "M"
	}
	if s.Shift == "" {
		s.Shift = ShiftMorning
	}
	if s.Medical.Allergies == nil {
		s.Medical.Allergies = []Allergy{}
	}
	if s.Medical.Intolerances == nil {
		s.Medical.Intolerances = []string{}
	}
}

// SyncRestriction keeps the restriction flag consistent with the allergy
// list: a non-empty list forces the flag on, an empty list forces it off.
// Applied on every mutation path, never on read.
func (s *Student) SyncRestriction() {
	s.Medical.HasRestriction = len(s.Medical.Allergies) > 0
}

// HasDietaryRestriction reports whether the student counts toward the
// dashboard restriction KPI.
func (s *Student) HasDietaryRestriction() bool {
	return s.Medical.HasRestriction || len(s.Medical.Allergies) > 0
}

// HasSevereAllergy reports whether any allergy is marked severe.
func (s *Student) HasSevereAllergy() bool {
	for _, a := range s.Medical.Allergies {
		if a.Severity == SeveritySevere {
			return true
		}
	}
	return false
}
