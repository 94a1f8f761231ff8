package models

import "time"

const (
	RoleAlumni = "alumni"
	RoleAdmin  = "admin"
)

// E-Card request statuses.
const (
	ECardPending  = "pending"
	ECardApproved = "approved"
	ECardRejected = "rejected"
)

type User struct {
	ID                 uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name               string `gorm:"not null"                 json:"name"`
	Email              string `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash       string `gorm:"not null"                 json:"-"`
	RegistrationNumber string `gorm:"uniqueIndex;not null"     json:"registration_number"`
	GraduationYear     int    `json:"graduation_year"`
	Department         string `json:"department"`
	WhatsappNumber     string `json:"whatsapp_number"`
	ProfilePicture     string `json:"profile_picture"`
	Certificates       string `json:"certificates"`
	Bio                string `json:"bio"`
	IsEmployed         bool   `gorm:"default:false"            json:"is_employed"`
	LookingForJob      bool   `gorm:"default:false"            json:"looking_for_job"`
	IsVerified         bool   `gorm:"default:false"            json:"is_verified"`
	Role               string `gorm:"not null;default:alumni"  json:"role"`
}

type Internship struct {
	ID                 uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	RegistrationNumber string `gorm:"index;not null"           json:"registration_number"`
	Title              string `gorm:"not null"                 json:"title"`
	Company            string `json:"company"`
	Duration           string `json:"duration"`
	StartDate          string `json:"start_date"`
	EndDate            string `json:"end_date"`
	Description        string `json:"description"`
	Paid               bool   `json:"paid"`
}

type Project struct {
	ID                 uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	RegistrationNumber string `gorm:"index;not null"           json:"registration_number"`
	Title              string `gorm:"not null"                 json:"title"`
	Description        string `json:"description"`
	CompletionDate     string `json:"completion_date"`
	MonthsTaken        int    `json:"months_taken"`
}

type Job struct {
	ID                 uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	RegistrationNumber string `gorm:"index;not null"           json:"registration_number"`
	Title              string `gorm:"not null"                 json:"title"`
	Organization       string `json:"organization"`
	JoiningDate        string `json:"joining_date"`
	Description        string `json:"description"`
}

type Achievement struct {
	ID                 uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	RegistrationNumber string `gorm:"index;not null"           json:"registration_number"`
	Title              string `gorm:"not null"                 json:"title"`
	Details            string `json:"details"`
	FilePath           string `json:"file_path"`
}

// SkillSet holds the whole skill list for one account as a JSON array.
// One row per registration number, written with an atomic upsert.
type SkillSet struct {
	ID                 uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	RegistrationNumber string `gorm:"uniqueIndex;not null"     json:"registration_number"`
	Skills             string `gorm:"type:text"                json:"skills"`
}

// Education is the pre-university record, one row per registration number.
type Education struct {
	ID                 uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	RegistrationNumber string  `gorm:"uniqueIndex;not null"     json:"registration_number"`
	MatricInstitute    string  `json:"matric_institute"`
	MatricDegree       string  `json:"matric_degree"`
	MatricYear         int     `json:"matric_year"`
	MatricPercentage   float64 `json:"matric_percentage"`
	FscInstitute       string  `json:"fsc_institute"`
	FscDegree          string  `json:"fsc_degree"`
	FscYear            int     `json:"fsc_year"`
	FscPercentage      float64 `json:"fsc_percentage"`
}

type ECard struct {
	ID                 uint       `gorm:"primaryKey;autoIncrement"             json:"id"`
	UserID             uint       `gorm:"uniqueIndex:idx_ecard_owner;not null" json:"user_id"`
	RegistrationNumber string     `gorm:"uniqueIndex:idx_ecard_owner;not null" json:"registration_number"`
	Status             string     `gorm:"not null;default:pending"             json:"status"`
	CardImage          string     `json:"card_image"`
	RequestDate        time.Time  `gorm:"autoCreateTime"                       json:"request_date"`
	ExpiryDate         time.Time  `json:"expiry_date"`
	ApprovedDate       *time.Time `json:"approved_date"`
	RejectionReason    *string    `json:"rejection_reason"`
}

func (i *Internship) OwnerRegistration() string  { return i.RegistrationNumber }
func (p *Project) OwnerRegistration() string     { return p.RegistrationNumber }
func (j *Job) OwnerRegistration() string         { return j.RegistrationNumber }
func (a *Achievement) OwnerRegistration() string { return a.RegistrationNumber }
func (e *ECard) OwnerRegistration() string       { return e.RegistrationNumber }
