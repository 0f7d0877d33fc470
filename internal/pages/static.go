package pages

import (
	"context"

	"impractical.co/lantern/internal/content"
	"impractical.co/lantern/internal/forms"
)

// AboutPage introduces the organization and links to the pages about it.
type AboutPage struct {
	Base
}

// About returns the about page.
func About(layout Layout) AboutPage {
	return AboutPage{Base: newBase(layout, Hero{
		Title:    "About us",
		Subtitle: "Who we are and the people behind our work.",
		Image:    defaultHeroImage,
	}, trail("About"))}
}

func (AboutPage) Templates(_ context.Context) []string { return []string{"about.html.tmpl"} }
func (AboutPage) Key(_ context.Context) string { return "about" }

// ProgramsPage lists the programs.
type ProgramsPage struct {
	Base
}

// Programs returns the programs index.
func Programs(layout Layout) ProgramsPage {
	return ProgramsPage{Base: newBase(layout, Hero{
		Title:    "Our programs",
		Subtitle: "Education for adults at home and learners around the world.",
		Image:    defaultHeroImage,
	}, trail("Programs"))}
}

func (ProgramsPage) Templates(_ context.Context) []string { return []string{"programs.html.tmpl"} }
func (ProgramsPage) Key(_ context.Context) string { return "programs" }

// PartnersPage introduces the partner network.
type PartnersPage struct {
	Base
}

// Partners returns the partners index.
func Partners(layout Layout) PartnersPage {
	return PartnersPage{Base: newBase(layout, Hero{
		Title:    "Partners",
		Subtitle: "Working together to widen access to education.",
		Image:    defaultHeroImage,
	}, trail("Partners"))}
}

func (PartnersPage) Templates(_ context.Context) []string {
	return []string{"partners_index.html.tmpl"}
}
func (PartnersPage) Key(_ context.Context) string { return "partners-index" }

// ContactPage shows the organization's contact details next to the contact
// form.
type ContactPage struct {
	Base

	// Info is nil when the contact details weren't fetched, as when the
	// page is shown again after a submission.
	Info *content.ContactInfo

	// InfoError is shown in place of Info when it couldn't be loaded. The
	// form still works.
	InfoError string

	// Form holds the values the form is filled with.
	Form forms.ContactForm

	// Invalid names the field that failed validation, if any.
	Invalid string
}

// Contact returns the contact page showing info, if it isn't nil, and a form
// filled with form.
func Contact(layout Layout, info *content.ContactInfo, form forms.ContactForm) ContactPage {
	if info != nil {
		filled := contactDefaults(*info)
		info = &filled
	}
	return ContactPage{
		Base: newBase(layout, Hero{
			Title:    "Contact us",
			Subtitle: "We'd love to hear from you.",
			Image:    defaultHeroImage,
		}, trail("Contact")),
		Info: info,
		Form: form,
	}
}

func (ContactPage) Templates(_ context.Context) []string { return []string{"contact.html.tmpl"} }
func (ContactPage) Key(_ context.Context) string { return "contact" }

// LoginPage is the login form. It never echoes the password back.
type LoginPage struct {
	Base

	Email       string
	AccountType forms.AccountType
}

// Login returns the login page filled with form's email and account type.
func Login(layout Layout, form forms.LoginForm) LoginPage {
	if form.AccountType == "" {
		form.AccountType = forms.AccountDonor
	}
	return LoginPage{
		Base: newBase(layout, Hero{
			Title:    "Log in",
			Subtitle: "For administrators and donors.",
			Image:    defaultHeroImage,
		}, trail("Log in")),
		Email:       form.Email,
		AccountType: form.AccountType,
	}
}

func (LoginPage) Templates(_ context.Context) []string { return []string{"login.html.tmpl"} }
func (LoginPage) Key(_ context.Context) string { return "login" }

// DashboardPage is where logged-in visitors land.
type DashboardPage struct {
	Base

	AccountType forms.AccountType
	User        content.User
}

// Dashboard returns the dashboard for a user of the given account type.
func Dashboard(layout Layout, accountType forms.AccountType, user content.User) DashboardPage {
	title := "Donor dashboard"
	if accountType == forms.AccountAdmin {
		title = "Admin dashboard"
	}
	subtitle := "Welcome back."
	if user.Name != "" {
		subtitle = "Welcome back, " + user.Name + "."
	}
	layout.Dashboard = forms.DashboardPath(accountType)
	return DashboardPage{
		Base:        newBase(layout, Hero{Title: title, Subtitle: subtitle}, trail(title)),
		AccountType: accountType,
		User:        user,
	}
}

func (DashboardPage) Templates(_ context.Context) []string { return []string{"dashboard.html.tmpl"} }
func (DashboardPage) Key(_ context.Context) string { return "dashboard" }

// NotFoundPage is shown for paths that don't exist.
type NotFoundPage struct {
	Base
}

// NotFound returns the not found page.
func NotFound(layout Layout) NotFoundPage {
	return NotFoundPage{Base: newBase(layout, Hero{
		Title:    "Page not found",
		Subtitle: "We couldn't find the page you were looking for.",
	}, nil)}
}

func (NotFoundPage) Templates(_ context.Context) []string { return []string{"not_found.html.tmpl"} }
func (NotFoundPage) Key(_ context.Context) string { return "not-found" }

// ServerErrorPage is shown when a page fails to render.
type ServerErrorPage struct {
	Base
}

// ServerError returns the server error page.
func ServerError(layout Layout) ServerErrorPage {
	return ServerErrorPage{Base: newBase(layout, Hero{
		Title:    "Something went wrong",
		Subtitle: "Please try again in a little while.",
	}, nil)}
}

func (ServerErrorPage) Templates(_ context.Context) []string {
	return []string{"server_error.html.tmpl"}
}
func (ServerErrorPage) Key(_ context.Context) string { return "server-error" }
