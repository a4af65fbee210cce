// Package validate implements the context validator (§4.1): it turns a raw
// request into an immutable domain.ValidatedContext or a classified error.
package validate

import (
	"context"

	"github.com/google/uuid"
	errx "github.com/wayfarer-ai/agent-core/internal/core/error"
	"github.com/wayfarer-ai/agent-core/internal/config"
	"github.com/wayfarer-ai/agent-core/internal/domain"
	"github.com/wayfarer-ai/agent-core/internal/persist"
)

const maxPartySize = 100

// Validator validates requests and merges stored preferences into context.
type Validator struct {
	languages config.LanguageConfig
	prefs     persist.PreferencesStore
}

func New(languages config.LanguageConfig, prefs persist.PreferencesStore) *Validator {
	return &Validator{languages: languages, prefs: prefs}
}

// Validate implements validate(request) -> ValidatedContext | error (§4.1).
func (v *Validator) Validate(ctx context.Context, req domain.Request) (domain.ValidatedContext, error) {
	if req.UserID == "" {
		return domain.ValidatedContext{}, errx.New(errx.InvalidSession, "user id is required", nil)
	}

	if _, err := uuid.Parse(req.SessionID); err != nil {
		return domain.ValidatedContext{}, errx.New(errx.InvalidSession, "session id must be a valid UUID", err)
	}

	var loc *domain.Location
	if req.Location != nil {
		if req.Location.Lat < -90 || req.Location.Lat > 90 || req.Location.Lon < -180 || req.Location.Lon > 180 {
			return domain.ValidatedContext{}, errx.New(errx.InvalidLocation, "coordinates out of range", nil)
		}
		loc = &domain.Location{Lat: req.Location.Lat, Lon: req.Location.Lon}
	}

	prefs := domain.Preferences{UserID: req.UserID}
	if v.prefs != nil {
		loaded, found, err := v.prefs.GetPreferences(ctx, req.UserID)
		if err != nil {
			// Preferences are an enrichment, not a hard dependency: a
			// durable-store hiccup here degrades to an empty-preferences
			// context rather than failing the whole request.
			loaded = domain.Preferences{UserID: req.UserID}
		} else if found {
			loaded = clampPreferences(loaded)
			prefs = loaded
		}
	}
	prefs.UserID = req.UserID

	// Omitted language resolves request -> stored preference -> configured
	// default (§6); an explicit request language always wins over both.
	lang := req.Language
	if lang == "" {
		lang = prefs.PreferredLang
	}
	if lang == "" {
		lang = v.languages.Default
	}
	if !v.languages.IsSupported(lang) {
		return domain.ValidatedContext{}, errx.New(errx.UnsupportedLanguage, "language not supported", nil)
	}

	return domain.ValidatedContext{
		UserID:      req.UserID,
		SessionID:   req.SessionID,
		Language:    lang,
		Location:    loc,
		Preferences: prefs,
	}, nil
}

func clampPreferences(p domain.Preferences) domain.Preferences {
	if p.PartySizeDefault > maxPartySize {
		p.PartySizeDefault = maxPartySize
	}
	return p
}
