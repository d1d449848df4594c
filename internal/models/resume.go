package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Resume is the canonical structured record extracted from one candidate
// document. Every field is independently optional: scalar fields are nil
// when the source document does not mention them, list entries stay
// free-text lines because recognition noise prevents deeper decomposition.
type Resume struct {
	FullName            *string `json:"full_name"`
	CurrentPosition     *string `json:"current_position"`
	Email               *string `json:"email"`
	Phone               *string `json:"phone"`
	LinkedIn            *string `json:"linkedin"`
	GitHub              *string `json:"github"`
	Address             *string `json:"address"`
	ProfessionalSummary *string `json:"professional_summary"`

	WorkExperience  []string `json:"work_experience"`
	Education       []string `json:"education"`
	TechnicalSkills []string `json:"technical_skills"`
	SoftSkills      []string `json:"soft_skills"`
	Certifications  []string `json:"certifications"`
	Projects        []string `json:"projects"`
	Languages       []string `json:"languages"`
	Achievements    []string `json:"achievements"`
}

// IndexText serializes the resume to its canonical text form, the input of
// chunking and embedding. Sections appear in a fixed order so the same
// record always produces the same text.
func (r *Resume) IndexText() string {
	var b strings.Builder

	writeScalar := func(label string, v *string) {
		if v != nil && *v != "" {
			b.WriteString(label)
			b.WriteString(": ")
			b.WriteString(*v)
			b.WriteString("\n")
		}
	}
	writeList := func(label string, items []string) {
		if len(items) == 0 {
			return
		}
		b.WriteString(label)
		b.WriteString(":\n")
		for _, item := range items {
			b.WriteString("- ")
			b.WriteString(item)
			b.WriteString("\n")
		}
	}

	writeScalar("Full name", r.FullName)
	writeScalar("Current position", r.CurrentPosition)
	writeScalar("Email", r.Email)
	writeScalar("Phone", r.Phone)
	writeScalar("LinkedIn", r.LinkedIn)
	writeScalar("GitHub", r.GitHub)
	writeScalar("Address", r.Address)
	writeScalar("Professional summary", r.ProfessionalSummary)
	writeList("Work experience", r.WorkExperience)
	writeList("Education", r.Education)
	writeList("Technical skills", r.TechnicalSkills)
	writeList("Soft skills", r.SoftSkills)
	writeList("Certifications", r.Certifications)
	writeList("Projects", r.Projects)
	writeList("Languages", r.Languages)
	writeList("Achievements", r.Achievements)

	return strings.TrimRight(b.String(), "\n")
}

// ResumeRecord is the persisted form of an ingested resume: the identifier
// doubles as storage key and filename stem, Content holds the canonical
// JSON of the Resume. Records are created once and never mutated.
type ResumeRecord struct {
	ID        string    `db:"id"`
	FileName  string    `db:"file_name"`
	Content   []byte    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

// RandomRecordID returns a fresh filesystem-safe identifier for records
// whose candidate name is absent or slugs to nothing.
func RandomRecordID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}
