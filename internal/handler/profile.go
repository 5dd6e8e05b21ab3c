package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/firnco-tech/holacupid/backend/internal/domain"
)

// CreateProfileRequest is the body of POST /profiles.
type CreateProfileRequest struct {
	FirstName string  `json:"first_name"`
	Location  string  `json:"location"`
	Age       *int    `json:"age,omitempty"`
	About     *string `json:"about,omitempty"`
}

// ProfileResponse is the wire form of a profile. Slugs is keyed by
// language code and omitted for profiles the backfill has not reached.
type ProfileResponse struct {
	ID        int64             `json:"id"`
	FirstName string            `json:"first_name"`
	Location  string            `json:"location"`
	Age       *int              `json:"age,omitempty"`
	About     string            `json:"about"`
	Slugs     map[string]string `json:"slugs,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// ProfileList is the body of GET /profiles.
type ProfileList struct {
	Data       []ProfileResponse `json:"data"`
	Pagination domain.Pagination `json:"pagination"`
}

// Alternate is one language version of a profile page.
type Alternate struct {
	Lang string `json:"lang"`
	Slug string `json:"slug"`
	Path string `json:"path"`
}

// AlternatesResponse is the body of GET /profiles/{id}/alternates.
type AlternatesResponse struct {
	ID         int64       `json:"id"`
	Alternates []Alternate `json:"alternates"`
}

// CreateProfile handles POST /profiles.
func (s *Server) CreateProfile(w http.ResponseWriter, r *http.Request) {
	p, err := decodeCreateProfile(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large")
		case errors.Is(err, domain.ErrValidation):
			validationFailed(w, err)
		default:
			badRequest(w, err.Error())
		}
		return
	}

	created, err := s.profiles.Create(r.Context(), p)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			validationFailed(w, err)
		case errors.Is(err, domain.ErrConflict):
			conflict(w, "could not reserve a unique slug, retry the request")
		default:
			s.internalError(w, r, err)
		}
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/profiles/%d", created.ID))
	writeJSON(w, http.StatusCreated, profileToResponse(created))
}

// ListProfiles handles GET /profiles.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListProfiles(w http.ResponseWriter, r *http.Request) {
	var page, limit *int
	if err := runtime.BindQueryParameter("form", true, false, "page", r.URL.Query(), &page); err != nil {
		badRequest(w, "invalid page parameter")
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		badRequest(w, "invalid limit parameter")
		return
	}

	profiles, pagination, err := s.profiles.List(r.Context(), domain.NewPaginationParams(page, limit))
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	data := make([]ProfileResponse, len(profiles))
	for i, p := range profiles {
		data[i] = profileToResponse(p)
	}
	writeJSON(w, http.StatusOK, ProfileList{Data: data, Pagination: pagination})
}

// GetProfile handles GET /profiles/{id}.
func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(w, r)
	if !ok {
		return
	}

	p, err := s.profiles.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, "profile not found")
			return
		}
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profileToResponse(p))
}

// GetProfileAlternates handles GET /profiles/{id}/alternates.
// The response lists the profile's page in every language, in display order,
// for hreflang link generation.
func (s *Server) GetProfileAlternates(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(w, r)
	if !ok {
		return
	}

	bundle, err := s.profiles.Alternates(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, "profile not found")
			return
		}
		s.internalError(w, r, err)
		return
	}

	resp := AlternatesResponse{ID: id, Alternates: make([]Alternate, 0, len(bundle))}
	for _, l := range domain.Languages {
		v, ok := bundle[l]
		if !ok {
			continue
		}
		resp.Alternates = append(resp.Alternates, Alternate{Lang: l.String(), Slug: v, Path: profilePath(l, v)})
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetProfileBySlug handles GET /{lang}/profiles/{slug}.
func (s *Server) GetProfileBySlug(w http.ResponseWriter, r *http.Request) {
	lang, err := domain.ParseLanguage(chi.URLParam(r, "lang"))
	if err != nil {
		badRequest(w, unwrapMessage(err))
		return
	}

	p, err := s.profiles.GetBySlug(r.Context(), lang, chi.URLParam(r, "slug"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			notFound(w, "profile not found")
		case errors.Is(err, domain.ErrValidation):
			badRequest(w, unwrapMessage(err))
		default:
			s.internalError(w, r, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, profileToResponse(p))
}

// --- mapping helpers --------------------------------------------------------

// profileID binds the {id} path parameter, writing a 400 when it is not a
// positive integer.
func profileID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil || id < 1 {
		badRequest(w, "id must be a positive integer")
		return 0, false
	}
	return id, true
}

// decodeCreateProfile converts a CreateProfileRequest body into a domain.Profile.
// Business validation happens in the service; this rejects bodies that are
// not the expected JSON shape, and an explicit age of 0, which the domain
// would otherwise read as "not set".
func decodeCreateProfile(r *http.Request) (domain.Profile, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return domain.Profile{}, errors.New("request body is required")
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var body CreateProfileRequest
	if err := dec.Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return domain.Profile{}, err
		}
		return domain.Profile{}, errors.New("request body must be a JSON object with first_name and location")
	}

	p := domain.Profile{FirstName: body.FirstName, Location: body.Location}
	if body.Age != nil {
		if *body.Age == 0 {
			return domain.Profile{}, fmt.Errorf("%w: age must be between 18 and 99", domain.ErrValidation)
		}
		p.Age = *body.Age
	}
	if body.About != nil {
		p.About = *body.About
	}
	return p, nil
}

// profileToResponse converts a domain.Profile into its wire form.
func profileToResponse(p domain.Profile) ProfileResponse {
	resp := ProfileResponse{
		ID:        p.ID,
		FirstName: p.FirstName,
		Location:  p.Location,
		About:     p.About,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.Age != 0 {
		age := p.Age
		resp.Age = &age
	}
	if len(p.Slugs) > 0 {
		resp.Slugs = make(map[string]string, len(p.Slugs))
		for l, v := range p.Slugs {
			resp.Slugs[l.String()] = v
		}
	}
	return resp
}

// profilePath is the public URL path of a profile page in lang.
func profilePath(lang domain.Language, slug string) string {
	return "/" + lang.String() + "/profiles/" + slug
}
