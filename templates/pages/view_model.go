package pages

import "ainrion_site_go/models"

// PageData is shared by every public page
type PageData struct {
	SEO  *models.SEO
	Year int
}

// ContactPageData carries the contact form endpoint in addition to page data
type ContactPageData struct {
	PageData
	Endpoint string
}

// LandingPageData carries the newsletter endpoint in addition to page data
type LandingPageData struct {
	PageData
	SubscribeEndpoint string
}
