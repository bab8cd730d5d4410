package cms

import (
	"fmt"
	"slices"
)

// SocialLinks holds the profile links shown in the site footer and contact page.
type SocialLinks struct {
	GitHub   string `json:"github"`
	LinkedIn string `json:"linkedin"`
	Twitter  string `json:"twitter"`
}

// Settings is the singleton site configuration record.
// Updates always overwrite the whole record.
type Settings struct {
	SiteName         string      `json:"siteName"`
	SiteDescription  string      `json:"siteDescription"`
	HeroHeadline     string      `json:"heroHeadline"`
	HeroSubheadline  string      `json:"heroSubheadline"`
	AboutBio         string      `json:"aboutBio"`
	YearsExperience  int         `json:"yearsExperience"`
	MissionStatement string      `json:"missionStatement"`
	ContactEmail     string      `json:"contactEmail"`
	ProfileImageURL  string      `json:"profileImageUrl"`
	SocialLinks      SocialLinks `json:"socialLinks"`
}

// SkillCategory groups skills on the skills page.
type SkillCategory string

const (
	SkillWebDev     SkillCategory = "Web Dev"
	SkillSecurity   SkillCategory = "Security"
	SkillPentesting SkillCategory = "Pentesting"
	SkillTools      SkillCategory = "Tools"
)

// SkillCategories lists the valid skill categories in display order.
var SkillCategories = []SkillCategory{SkillWebDev, SkillSecurity, SkillPentesting, SkillTools}

// Valid reports whether c is a known skill category.
func (c SkillCategory) Valid() bool {
	return slices.Contains(SkillCategories, c)
}

// ProjectCategory groups projects in the portfolio.
type ProjectCategory string

const (
	ProjectWebDev     ProjectCategory = "Web Dev"
	ProjectSecurity   ProjectCategory = "Security"
	ProjectPentesting ProjectCategory = "Pentesting"
)

// ProjectCategories lists the valid project categories in display order.
var ProjectCategories = []ProjectCategory{ProjectWebDev, ProjectSecurity, ProjectPentesting}

// Valid reports whether c is a known project category.
func (c ProjectCategory) Valid() bool {
	return slices.Contains(ProjectCategories, c)
}

// Skill is one entry on the skills page. Level is a percentage.
type Skill struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Level    int           `json:"level"`
	Category SkillCategory `json:"category"`
}

// Validate checks the fields the admin form enforces.
func (s Skill) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("%w: skill id is required", ErrInvalidRecord)
	}
	if s.Level < 0 || s.Level > 100 {
		return fmt.Errorf("%w: skill level %d outside 0-100", ErrInvalidRecord, s.Level)
	}
	if !s.Category.Valid() {
		return fmt.Errorf("%w: unknown skill category %q", ErrInvalidRecord, s.Category)
	}
	return nil
}

// Project is one portfolio entry. Date is an ISO date (YYYY-MM-DD).
type Project struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    ProjectCategory `json:"category"`
	ImageURL    string          `json:"imageUrl"`
	Link        string          `json:"link"`
	GitHub      string          `json:"github,omitempty"`
	Date        string          `json:"date"`
}

// Validate checks the fields the admin form enforces.
func (p Project) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: project id is required", ErrInvalidRecord)
	}
	if !p.Category.Valid() {
		return fmt.Errorf("%w: unknown project category %q", ErrInvalidRecord, p.Category)
	}
	return nil
}

// Blog is one article.
type Blog struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Excerpt  string   `json:"excerpt"`
	Content  string   `json:"content"`
	Author   string   `json:"author"`
	Date     string   `json:"date"`
	Tags     []string `json:"tags"`
	ImageURL string   `json:"imageUrl"`
}

// Validate checks the fields the admin form enforces.
func (b Blog) Validate() error {
	if b.ID == "" {
		return fmt.Errorf("%w: blog id is required", ErrInvalidRecord)
	}
	return nil
}

// LogLevel classifies a journal entry.
type LogLevel string

const (
	LevelInfo    LogLevel = "INFO"
	LevelWarn    LogLevel = "WARN"
	LevelError   LogLevel = "ERROR"
	LevelSuccess LogLevel = "SUCCESS"
)

// SystemLog is one entry of the admin dashboard's diagnostic journal.
type SystemLog struct {
	ID        string   `json:"id"`
	Timestamp string   `json:"timestamp"`
	Level     LogLevel `json:"level"`
	Message   string   `json:"message"`
}

// User is the session record. Its presence means the admin is signed in.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Stats are the dashboard counters.
type Stats struct {
	Blogs    int `json:"blogs"`
	Projects int `json:"projects"`
	Skills   int `json:"skills"`
}
