package handlers

import (
	"ainrion_site_go/middleware"
	"ainrion_site_go/models"
	"ainrion_site_go/services/i18n"
	"strings"

	"github.com/labstack/echo/v4"
)

// Public pages and their paths. Titles and descriptions come from the
// locale files under seo.<page>.
var pagePaths = map[string]string{
	"landing": "/",
	"contact": "/contact",
}

// getSEO returns localized SEO metadata for a page
func getSEO(c echo.Context, page string) *models.SEO {
	locale := middleware.GetLocale(c)
	baseURL := strings.TrimSuffix(getConfig(c).AppURL, "/")

	seo := models.DefaultSEO(
		i18n.Translate(locale, "seo."+page+".title"),
		i18n.Translate(locale, "seo."+page+".description"),
	)

	var alternates []string
	for _, tag := range i18n.Supported {
		if tag.String() != locale {
			alternates = append(alternates, tag.String())
		}
	}
	seo.WithLocale(locale, alternates...)

	if path, ok := pagePaths[page]; ok && baseURL != "" {
		seo.WithCanonical(baseURL + path)
		seo.WithOGImage(baseURL + "/static/images/favicon.svg")
		seo.TwitterCard = "summary"
	}
	return seo
}
