package handlers

import (
	"ainrion_site_go/templates/pages"
	"net/http"

	"github.com/labstack/echo/v4"
)

// LandingHandler renders the coming-soon page
func LandingHandler(c echo.Context) error {
	component := pages.ComingSoon(pages.LandingPageData{
		PageData: pages.PageData{
			SEO:  getSEO(c, "landing"),
			Year: now().Year(),
		},
		SubscribeEndpoint: "/subscribe",
	})
	return render(c, http.StatusOK, component)
}
