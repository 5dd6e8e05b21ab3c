package handler

import (
	"net/http"

	"github.com/oapi-codegen/runtime"

	"github.com/firnco-tech/holacupid/backend/internal/domain"
	"github.com/firnco-tech/holacupid/backend/internal/slug"
)

// ParseSlugResponse is the body of GET /slugs/parse.
type ParseSlugResponse struct {
	Lang string `json:"lang"`
	Slug string `json:"slug"`
	slug.Parsed
}

// ParseSlug handles GET /slugs/parse?lang=&slug=.
// It reports the name and location recovered from a slug. A slug that does
// not split cleanly still returns 200 with ok=false.
func (s *Server) ParseSlug(w http.ResponseWriter, r *http.Request) {
	var langParam, value string
	if err := runtime.BindQueryParameter("form", true, true, "lang", r.URL.Query(), &langParam); err != nil {
		badRequest(w, "lang query parameter is required")
		return
	}
	if err := runtime.BindQueryParameter("form", true, true, "slug", r.URL.Query(), &value); err != nil {
		badRequest(w, "slug query parameter is required")
		return
	}

	lang, err := domain.ParseLanguage(langParam)
	if err != nil {
		badRequest(w, unwrapMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, ParseSlugResponse{
		Lang:   lang.String(),
		Slug:   value,
		Parsed: slug.Parse(value, lang),
	})
}
