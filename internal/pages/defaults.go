package pages

import (
	"strings"
	"unicode"

	"impractical.co/lantern/internal/content"
)

// Fallbacks for content the CMS leaves out.
const (
	defaultHeroImage    = "/static/img/hero.svg"
	defaultPhoto        = "/static/img/avatar.svg"
	defaultPartnerLogo  = "/static/img/partner.svg"
	defaultImage        = "/static/img/placeholder.svg"
	defaultHomeTitle    = "Education for everyone, everywhere"
	defaultHomeSubtitle = "We open doors to learning for adults and young people around the world."
	defaultMission      = "Our mission is to make quality education available to every learner, whatever their age or where they live."
	defaultCallToAction = "Get involved"
)

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func homeDefaults(p content.HomePage) content.HomePage {
	p.HeroTitle = orDefault(p.HeroTitle, defaultHomeTitle)
	p.HeroSubtitle = orDefault(p.HeroSubtitle, defaultHomeSubtitle)
	p.HeroImage = orDefault(p.HeroImage, defaultHeroImage)
	p.Mission = orDefault(p.Mission, defaultMission)
	p.CallToAction = orDefault(p.CallToAction, defaultCallToAction)
	if len(p.Highlights) == 0 {
		p.Highlights = []content.Highlight{
			{Title: "Adult Education", Description: "Literacy, numeracy and vocational skills for adult learners.", Link: "/programs/adult-education"},
			{Title: "Global Education", Description: "Partnerships that connect classrooms across borders.", Link: "/programs/global-education"},
			{Title: "Our partners", Description: "The institutions we work with.", Link: "/partners/global"},
		}
	}
	highlights := make([]content.Highlight, len(p.Highlights))
	for i, h := range p.Highlights {
		h.Image = orDefault(h.Image, defaultImage)
		h.Link = orDefault(h.Link, "/about")
		highlights[i] = h
	}
	p.Highlights = highlights
	return p
}

func introductionDefaults(p content.IntroductionPage) content.IntroductionPage {
	p.Title = orDefault(p.Title, "Who we are")
	p.Subtitle = orDefault(p.Subtitle, "An introduction to our organization.")
	p.HeroImage = orDefault(p.HeroImage, defaultHeroImage)
	p.Body = orDefault(p.Body, "We are a nonprofit organization working to widen access to education.")
	p.Mission = orDefault(p.Mission, defaultMission)
	p.Vision = orDefault(p.Vision, "A world where everyone can keep learning throughout their life.")
	p.Image = orDefault(p.Image, defaultImage)
	if len(p.Values) == 0 {
		p.Values = []string{"Inclusion", "Integrity", "Collaboration"}
	}
	return p
}

func leadershipDefaults(members []content.LeadershipMember) []content.LeadershipMember {
	if len(members) == 0 {
		return nil
	}
	filled := make([]content.LeadershipMember, len(members))
	for i, m := range members {
		m.Name = orDefault(m.Name, "Team member")
		m.Role = orDefault(m.Role, "Leadership team")
		m.Photo = orDefault(m.Photo, defaultPhoto)
		filled[i] = m
	}
	return filled
}

func programDefaults(title, subtitle string) func(content.ProgramPage) content.ProgramPage {
	return func(p content.ProgramPage) content.ProgramPage {
		p.Title = orDefault(p.Title, title)
		p.Subtitle = orDefault(p.Subtitle, subtitle)
		p.HeroImage = orDefault(p.HeroImage, defaultHeroImage)
		p.Overview = orDefault(p.Overview, "More information about this program is coming soon.")
		activities := make([]content.Activity, len(p.Activities))
		for i, a := range p.Activities {
			a.Image = orDefault(a.Image, defaultImage)
			activities[i] = a
		}
		p.Activities = activities
		return p
	}
}

func partnersDefaults(partners []content.PartnerInstitution) []content.PartnerInstitution {
	if len(partners) == 0 {
		return nil
	}
	filled := make([]content.PartnerInstitution, len(partners))
	for i, p := range partners {
		filled[i] = partnerDefaults(p)
	}
	return filled
}

func partnerDefaults(p content.PartnerInstitution) content.PartnerInstitution {
	p.Name = orDefault(p.Name, "Partner institution")
	p.Slug = orDefault(p.Slug, Slugify(p.Name))
	p.Logo = orDefault(p.Logo, defaultPartnerLogo)
	p.Summary = orDefault(p.Summary, "A partner institution in our global education network.")
	p.Description = orDefault(p.Description, p.Summary)
	return p
}

func newsDefaults(items []content.NewsItem) []content.NewsItem {
	if len(items) == 0 {
		return nil
	}
	filled := make([]content.NewsItem, len(items))
	for i, n := range items {
		n.Title = orDefault(n.Title, "Untitled")
		n.Image = orDefault(n.Image, defaultImage)
		n.Category = orDefault(n.Category, "News")
		filled[i] = n
	}
	return filled
}

func contactDefaults(info content.ContactInfo) content.ContactInfo {
	info.Address = orDefault(info.Address, "Address available on request")
	info.Email = orDefault(info.Email, "info@example.org")
	info.OfficeHours = orDefault(info.OfficeHours, "Monday to Friday, 9:00 to 17:00")
	return info
}

// Slugify turns a name into the slug used in partner URLs: lowercase
// letters and digits, with runs of anything else collapsed into a single
// dash.
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}

// FindPartner returns the partner in partners with the given slug. Partners
// the CMS gave no slug are matched on their slugified name.
func FindPartner(partners []content.PartnerInstitution, slug string) (content.PartnerInstitution, bool) {
	for _, p := range partners {
		if partnerDefaults(p).Slug == slug {
			return p, true
		}
	}
	return content.PartnerInstitution{}, false
}
