package content

// Endpoints of the Content API. The contact form's endpoint is configurable
// and lives in config.
const (
	EndpointHomePage            = "/homepage"
	EndpointIntroductionPage    = "/introduction-page"
	EndpointAdultEducationPage  = "/adult-education-page"
	EndpointGlobalEducationPage = "/global-education-page"
	EndpointPartnerInstitutions = "/partner-institutions"
	EndpointLeadership          = "/leadership"
	EndpointNews                = "/news"
	EndpointContactInfo         = "/contact"
	EndpointContactMessages     = "/contact/messages"
	EndpointAdminLogin          = "/admin/auth/login"
	EndpointDonorLogin          = "/donor/auth/login"
)

// The records below are read-only view models owned by the CMS. Any field
// may be absent; pages substitute their own defaults.

// Highlight is a card on the home page linking to another part of the site.
type Highlight struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Link        string `json:"link,omitempty"`
}

// Stat is a headline number, like "1,200 learners served".
type Stat struct {
	Value string `json:"value,omitempty"`
	Label string `json:"label,omitempty"`
}

// HomePage is the content of the home page.
type HomePage struct {
	HeroTitle    string      `json:"heroTitle,omitempty"`
	HeroSubtitle string      `json:"heroSubtitle,omitempty"`
	HeroImage    string      `json:"heroImage,omitempty"`
	Mission      string      `json:"mission,omitempty"`
	Highlights   []Highlight `json:"highlights,omitempty"`
	Stats        []Stat      `json:"stats,omitempty"`
	CallToAction string      `json:"callToAction,omitempty"`
}

// IntroductionPage is the content of the "who we are" page.
type IntroductionPage struct {
	Title     string   `json:"title,omitempty"`
	Subtitle  string   `json:"subtitle,omitempty"`
	HeroImage string   `json:"heroImage,omitempty"`
	Body      string   `json:"body,omitempty"` // markdown
	Mission   string   `json:"mission,omitempty"`
	Vision    string   `json:"vision,omitempty"`
	Values    []string `json:"values,omitempty"`
	Image     string   `json:"image,omitempty"`
}

// Activity is one thing a program does.
type Activity struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

// ProgramPage is the content of a program page. The adult education and
// global education pages share it.
type ProgramPage struct {
	Title      string     `json:"title,omitempty"`
	Subtitle   string     `json:"subtitle,omitempty"`
	HeroImage  string     `json:"heroImage,omitempty"`
	Overview   string     `json:"overview,omitempty"` // markdown
	Objectives []string   `json:"objectives,omitempty"`
	Activities []Activity `json:"activities,omitempty"`
	Gallery    []string   `json:"gallery,omitempty"`
}

// SocialLink points at one of the organization's social media profiles.
type SocialLink struct {
	Name string `json:"name,omitempty"`
	URL  string `json:"url,omitempty"`
}

// ContactInfo is the organization's contact details.
type ContactInfo struct {
	Address     string       `json:"address,omitempty"`
	Phone       string       `json:"phone,omitempty"`
	Email       string       `json:"email,omitempty"`
	OfficeHours string       `json:"officeHours,omitempty"`
	MapURL      string       `json:"mapUrl,omitempty"`
	Socials     []SocialLink `json:"socials,omitempty"`
}

// PartnerInstitution is an institution the organization works with.
type PartnerInstitution struct {
	ID          string   `json:"id,omitempty"`
	Slug        string   `json:"slug,omitempty"`
	Name        string   `json:"name,omitempty"`
	Country     string   `json:"country,omitempty"`
	Logo        string   `json:"logo,omitempty"`
	Website     string   `json:"website,omitempty"`
	Summary     string   `json:"summary,omitempty"`
	Description string   `json:"description,omitempty"` // markdown
	Programs    []string `json:"programs,omitempty"`
	Since       string   `json:"since,omitempty"`
}

// LeadershipMember is a member of the board or staff leadership.
type LeadershipMember struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
	Bio   string `json:"bio,omitempty"`
	Photo string `json:"photo,omitempty"`
}

// NewsItem is a news post.
type NewsItem struct {
	ID          string `json:"id,omitempty"`
	Slug        string `json:"slug,omitempty"`
	Title       string `json:"title,omitempty"`
	Summary     string `json:"summary,omitempty"`
	Body        string `json:"body,omitempty"` // markdown
	Image       string `json:"image,omitempty"`
	Category    string `json:"category,omitempty"`
	PublishedAt string `json:"publishedAt,omitempty"`
}

// ContactMessage is what the contact form submits. It creates a new record
// in the CMS; nothing is read back.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// Credentials are posted to the login endpoints.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User is the account returned by a successful login.
type User struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// LoginResult is the token and account a login returns.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
