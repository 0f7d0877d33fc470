package pages

import (
	"impractical.co/lantern/internal/content"
)

var (
	aboutCrumb    = Crumb{Label: "About", Href: "/about"}
	programsCrumb = Crumb{Label: "Programs", Href: "/programs"}
	partnersCrumb = Crumb{Label: "Partners", Href: "/partners"}
	globalCrumb   = Crumb{Label: "Global partners", Href: "/partners/global"}
)

// HomeRoute is the home page.
var HomeRoute = Route[content.HomePage]{
	Name:     "home",
	Path:     "/",
	Template: "home.html.tmpl",
	Endpoint: content.EndpointHomePage,
	Defaults: homeDefaults,
	Hero: func(p content.HomePage) Hero {
		return Hero{Title: p.HeroTitle, Subtitle: p.HeroSubtitle, Image: p.HeroImage}
	},
}

// IntroductionRoute is the "who we are" page.
var IntroductionRoute = Route[content.IntroductionPage]{
	Name:     "introduction",
	Path:     "/about/introduction",
	Template: "introduction.html.tmpl",
	Endpoint: content.EndpointIntroductionPage,
	Crumbs:   []Crumb{aboutCrumb},
	Defaults: introductionDefaults,
	Hero: func(p content.IntroductionPage) Hero {
		return Hero{Title: p.Title, Subtitle: p.Subtitle, Image: p.HeroImage}
	},
}

// LeadershipRoute lists the organization's leadership.
var LeadershipRoute = Route[[]content.LeadershipMember]{
	Name:     "leadership",
	Path:     "/about/leadership",
	Template: "leadership.html.tmpl",
	Endpoint: content.EndpointLeadership,
	Crumbs:   []Crumb{aboutCrumb},
	Defaults: leadershipDefaults,
	Hero: func([]content.LeadershipMember) Hero {
		return Hero{
			Title:    "Our leadership",
			Subtitle: "The people guiding our work.",
			Image:    defaultHeroImage,
		}
	},
}

// AdultEducationRoute is the adult education program page.
var AdultEducationRoute = Route[content.ProgramPage]{
	Name:     "adult-education",
	Path:     "/programs/adult-education",
	Template: "program.html.tmpl",
	Endpoint: content.EndpointAdultEducationPage,
	Crumbs:   []Crumb{programsCrumb},
	Defaults: programDefaults("Adult Education", "Learning never stops."),
	Hero:     programHero,
}

// GlobalEducationRoute is the global education program page.
var GlobalEducationRoute = Route[content.ProgramPage]{
	Name:     "global-education",
	Path:     "/programs/global-education",
	Template: "program.html.tmpl",
	Endpoint: content.EndpointGlobalEducationPage,
	Crumbs:   []Crumb{programsCrumb},
	Defaults: programDefaults("Global Education", "Connecting classrooms across borders."),
	Hero:     programHero,
}

func programHero(p content.ProgramPage) Hero {
	return Hero{Title: p.Title, Subtitle: p.Subtitle, Image: p.HeroImage}
}

// PartnersRoute lists the partner institutions.
var PartnersRoute = Route[[]content.PartnerInstitution]{
	Name:     "partners",
	Path:     "/partners/global",
	Template: "partners.html.tmpl",
	Endpoint: content.EndpointPartnerInstitutions,
	Crumbs:   []Crumb{partnersCrumb},
	Defaults: partnersDefaults,
	Hero: func([]content.PartnerInstitution) Hero {
		return Hero{
			Title:    "Global partners",
			Subtitle: "Institutions we work with around the world.",
			Image:    defaultHeroImage,
		}
	},
}

// PartnerRoute is the page of a single partner institution. Its content is
// picked out of PartnersRoute's list with FindPartner, so it fetches
// PartnersRoute's endpoint.
var PartnerRoute = Route[content.PartnerInstitution]{
	Name:     "partner",
	Path:     "/partners/global/{partnerSlug}",
	Template: "partner.html.tmpl",
	Endpoint: content.EndpointPartnerInstitutions,
	Crumbs:   []Crumb{partnersCrumb, globalCrumb},
	Defaults: partnerDefaults,
	Hero: func(p content.PartnerInstitution) Hero {
		return Hero{Title: p.Name, Subtitle: p.Country, Image: defaultHeroImage}
	},
}

// NewsRoute lists news posts.
var NewsRoute = Route[[]content.NewsItem]{
	Name:     "news",
	Path:     "/news",
	Template: "news.html.tmpl",
	Endpoint: content.EndpointNews,
	Defaults: newsDefaults,
	Hero: func([]content.NewsItem) Hero {
		return Hero{
			Title:    "News",
			Subtitle: "Stories and updates from our programs.",
			Image:    defaultHeroImage,
		}
	},
}
