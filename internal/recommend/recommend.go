// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package recommend drives one book recommendation from a preference
// questionnaire to an outcome. It asks the generative service for a book,
// matches the answer against the catalog, and asks once more for a
// different book when the first answer is not in the catalog.
//
//	Initial -> Suggested -> Matched | Retrying
//	Retrying -> Matched | NoMatch
//	Matched, NoMatch -> Done
package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pdiddy/bookmatch/internal/logging"
	"github.com/pdiddy/bookmatch/internal/match"
	"github.com/pdiddy/bookmatch/internal/suggestion"
	"github.com/pdiddy/bookmatch/pkg/types"
)

// NoMatchMessage is returned when neither suggestion is in the catalog.
const NoMatchMessage = "Üzgünüz, tercihlerinize uygun bir kitabı kataloğumuzda bulamadık. Lütfen farklı tercihlerle tekrar deneyin."

var (
	// ErrMissingIdentity is returned when no user can be associated with
	// the request. No generative call is made.
	ErrMissingIdentity = errors.New("recommend: no authenticated user")

	// ErrInvalidRequest wraps questionnaire validation failures.
	ErrInvalidRequest = errors.New("recommend: invalid preference request")
)

// TextGenerator turns a prompt into free text. Implementations absorb their
// own failures and always return some text.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) string
}

// Catalog returns the full set of books a suggestion may match.
type Catalog interface {
	All(ctx context.Context) ([]types.CatalogEntry, error)
}

// Identity reports the user on whose behalf the request runs.
type Identity interface {
	CurrentUser(ctx context.Context) (string, bool)
}

// StaticIdentity is an Identity that always reports the same user. A blank
// value reports no user.
type StaticIdentity string

// CurrentUser implements Identity.
func (s StaticIdentity) CurrentUser(context.Context) (string, bool) {
	id := strings.TrimSpace(string(s))
	return id, id != ""
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithObserver registers fn to be called on every state transition.
func WithObserver(fn func(from, to State)) Option {
	return func(o *Orchestrator) { o.observer = fn }
}

// Orchestrator runs recommendations. It holds no per-request state and is
// safe for concurrent use if its collaborators are.
type Orchestrator struct {
	generator TextGenerator
	catalog   Catalog
	identity  Identity
	validate  *validator.Validate
	observer  func(from, to State)
}

// New returns an Orchestrator wired to its collaborators.
func New(generator TextGenerator, catalog Catalog, identity Identity, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		generator: generator,
		catalog:   catalog,
		identity:  identity,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// run carries the mutable state of a single Recommend call.
type run struct {
	o     *Orchestrator
	req   types.PreferenceRequest
	state State
}

func (r *run) transition(ctx context.Context, to State) {
	from := r.state
	r.state = to
	logging.Ctx(ctx).Debug().
		Str("from", from.String()).
		Str("to", to.String()).
		Msg("recommendation state")
	if r.o.observer != nil {
		r.o.observer(from, to)
	}
}

// Recommend produces an outcome for req on behalf of the user reported by
// the identity collaborator. It returns ErrInvalidRequest or
// ErrMissingIdentity before contacting the generative service; catalog
// read failures are returned as errors. A book absent from the catalog is
// not an error: the outcome carries NoMatchMessage and nil book fields.
func (o *Orchestrator) Recommend(ctx context.Context, req types.PreferenceRequest) (types.RecommendationOutcome, error) {
	if err := o.validate.Struct(req); err != nil {
		return types.RecommendationOutcome{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	// The identity collaborator is the only source of the user; a caller
	// supplied UserID is replaced, never trusted on its own.
	user, ok := "", false
	if o.identity != nil {
		user, ok = o.identity.CurrentUser(ctx)
	}
	user = strings.TrimSpace(user)
	if !ok || user == "" {
		return types.RecommendationOutcome{}, ErrMissingIdentity
	}
	req.UserID = user

	if logging.RequestID(ctx) == "" {
		ctx, _ = logging.WithRequestID(ctx)
	}
	log := logging.Ctx(ctx)
	log.Info().
		Str("user", req.UserID).
		Str("genre", req.Genre).
		Bool("can_focus", req.CanFocus).
		Msg("recommendation requested")

	r := &run{o: o, req: req, state: Initial}

	prompt, err := suggestion.BuildPrompt(req)
	if err != nil {
		return types.RecommendationOutcome{}, fmt.Errorf("building prompt: %w", err)
	}
	s := suggestion.Parse(o.generator.Generate(ctx, prompt))
	r.transition(ctx, Suggested)

	entry, found, err := r.match(ctx, s)
	if err != nil {
		return types.RecommendationOutcome{}, err
	}

	if !found {
		r.transition(ctx, Retrying)

		prompt, err := suggestion.BuildRetryPrompt(req)
		if err != nil {
			return types.RecommendationOutcome{}, fmt.Errorf("building retry prompt: %w", err)
		}
		s = suggestion.Parse(o.generator.Generate(ctx, prompt))

		entry, found, err = r.match(ctx, s)
		if err != nil {
			return types.RecommendationOutcome{}, err
		}
	}

	var outcome types.RecommendationOutcome
	if found {
		r.transition(ctx, Matched)
		outcome = matchedOutcome(s, entry)
		log.Info().
			Str("book_id", entry.ID).
			Str("title", entry.Title).
			Msg("recommendation matched catalog")
	} else {
		r.transition(ctx, NoMatch)
		outcome = types.RecommendationOutcome{Recommendation: NoMatchMessage}
		log.Info().Msg("no catalog match after retry")
	}

	r.transition(ctx, Done)
	return outcome, nil
}

func (r *run) match(ctx context.Context, s suggestion.Suggestion) (types.CatalogEntry, bool, error) {
	entries, err := r.o.catalog.All(ctx)
	if err != nil {
		return types.CatalogEntry{}, false, fmt.Errorf("reading catalog: %w", err)
	}

	logging.Ctx(ctx).Debug().
		Str("title", s.Title.String()).
		Str("author", s.Author.String()).
		Str("genre", s.Genre.String()).
		Int("catalog_size", len(entries)).
		Msg("matching suggestion")

	entry, ok := match.Best(s, entries, r.req)
	return entry, ok, nil
}

// matchedOutcome composes the narrative for a catalog hit: the generated
// explanation, a sentence naming the book, then the catalog summary.
func matchedOutcome(s suggestion.Suggestion, e types.CatalogEntry) types.RecommendationOutcome {
	var parts []string
	if s.Explanation.Known() {
		parts = append(parts, strings.TrimSpace(s.Explanation.Value))
	}
	parts = append(parts, fmt.Sprintf("Size önerdiğim kitap: %s, yazarı %s, türü %s.", e.Title, e.Author, e.Genre))
	if summary := strings.TrimSpace(e.Summary); summary != "" {
		parts = append(parts, summary)
	}

	return types.RecommendationOutcome{
		Recommendation: strings.Join(parts, " "),
		Title:          ptr(e.Title),
		Author:         ptr(e.Author),
		Genre:          ptr(e.Genre),
		ImageURL:       optional(e.ImageURL),
		Summary:        optional(e.Summary),
	}
}

func ptr(s string) *string { return &s }

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
