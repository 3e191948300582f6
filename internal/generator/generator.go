package generator

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/juansean527/persona-service/internal/model"
)

const (
	defaultMinAge        = 18
	defaultMaxAge        = 80
	defaultNotesOmitRate = 0.2
	noteWordCount        = 6
	maxEmailRedraws      = 10
)

// Generator produces synthetic personas. It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand

	firstNames    []string
	lastNames     []string
	domains       []string
	now           func() time.Time
	minAge        int
	maxAge        int
	notesOmitRate float64
}

// Option configures a Generator.
type Option func(*Generator)

// WithNames replaces the first and last name pools. Empty pools are ignored.
func WithNames(first, last []string) Option {
	return func(g *Generator) {
		if len(first) > 0 {
			g.firstNames = first
		}
		if len(last) > 0 {
			g.lastNames = last
		}
	}
}

// WithDomains replaces the email domain pool. An empty pool is ignored.
func WithDomains(domains ...string) Option {
	return func(g *Generator) {
		if len(domains) > 0 {
			g.domains = domains
		}
	}
}

// WithClock sets the source of "today" for birth date generation.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// WithAgeRange bounds generated ages in whole years, both ends inclusive.
// Negative or inverted ranges are ignored.
func WithAgeRange(minAge, maxAge int) Option {
	return func(g *Generator) {
		if minAge >= 0 && minAge <= maxAge {
			g.minAge, g.maxAge = minAge, maxAge
		}
	}
}

// WithNotesOmitRate sets the probability in [0, 1] that a record has no notes.
func WithNotesOmitRate(rate float64) Option {
	return func(g *Generator) {
		if rate >= 0 && rate <= 1 {
			g.notesOmitRate = rate
		}
	}
}

// New creates a Generator drawing from src.
func New(src rand.Source, opts ...Option) *Generator {
	g := &Generator{
		rng:           rand.New(src),
		firstNames:    firstNames,
		lastNames:     lastNames,
		domains:       defaultDomains,
		now:           time.Now,
		minAge:        defaultMinAge,
		maxAge:        defaultMaxAge,
		notesOmitRate: defaultNotesOmitRate,
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// NewSource returns a PCG source for seed. Seed 0 derives one from the clock.
func NewSource(seed uint64) rand.Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}

// Generate returns count synthetic personas with emails unique within the batch.
func (g *Generator) Generate(count int) ([]model.CreatePersonaParams, error) {
	if count < model.MinPopulateCount || count > model.MaxPopulateCount {
		return nil, fmt.Errorf("%w: count must be between %d and %d, got %d",
			model.ErrInvalidArgument, model.MinPopulateCount, model.MaxPopulateCount, count)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	today := truncateToDate(g.now())
	seen := make(map[string]struct{}, count)
	records := make([]model.CreatePersonaParams, 0, count)

	for range count {
		rec := g.record(today)
		for attempt := 0; ; attempt++ {
			if _, dup := seen[rec.Email]; !dup {
				break
			}
			if attempt == maxEmailRedraws {
				rec.Email = withFreeSuffix(rec.Email, seen)
				break
			}
			rec = g.record(today)
		}
		seen[rec.Email] = struct{}{}
		records = append(records, rec)
	}

	return records, nil
}

func (g *Generator) record(today time.Time) model.CreatePersonaParams {
	first := g.pick(g.firstNames)
	last := g.pick(g.lastNames)
	phone := g.phone()
	birth := g.birthDate(today)

	rec := model.CreatePersonaParams{
		FirstName: truncate(first, model.MaxNameLength),
		LastName:  truncate(last, model.MaxNameLength),
		Email:     EmailLocalPart(first, last) + "@" + g.pick(g.domains),
		Phone:     &phone,
		BirthDate: &birth,
		IsActive:  g.rng.IntN(2) == 1,
	}
	if g.rng.Float64() >= g.notesOmitRate {
		notes := g.sentence(noteWordCount)
		rec.Notes = &notes
	}

	return rec
}

// phone returns a Spanish number, mobile (6xx/7xx) or landline (9xx).
func (g *Generator) phone() string {
	var p string
	switch g.rng.IntN(3) {
	case 0:
		p = fmt.Sprintf("+34 9%02d %02d %02d %02d", g.rng.IntN(100), g.rng.IntN(100), g.rng.IntN(100), g.rng.IntN(100))
	default:
		lead := 6 + g.rng.IntN(2)
		p = fmt.Sprintf("+34 %d%02d %03d %03d", lead, g.rng.IntN(100), g.rng.IntN(1000), g.rng.IntN(1000))
	}
	return truncate(p, model.MaxPhoneLength)
}

// birthDate draws a date for which the age on today lies in [minAge, maxAge].
func (g *Generator) birthDate(today time.Time) time.Time {
	earliest, latest := g.birthDateRange(today)
	days := int(latest.Sub(earliest).Hours() / 24)

	return earliest.AddDate(0, 0, g.rng.IntN(days+1))
}

// birthDateRange returns the inclusive bounds of valid birth dates.
func (g *Generator) birthDateRange(today time.Time) (time.Time, time.Time) {
	earliest := today.AddDate(-(g.maxAge + 1), 0, 1)
	latest := today.AddDate(-g.minAge, 0, 0)
	if latest.Day() != today.Day() {
		// Feb 29 normalised into March; the last valid birthday is Feb 28.
		latest = latest.AddDate(0, 0, -latest.Day())
	}

	return earliest, latest
}

func (g *Generator) sentence(words int) string {
	parts := make([]string, words)
	for i := range parts {
		parts[i] = g.pick(noteWords)
	}
	s := strings.Join(parts, " ")
	r, size := utf8.DecodeRuneInString(s)

	return strings.ToUpper(string(r)) + s[size:] + "."
}

func (g *Generator) pick(s []string) string {
	return s[g.rng.IntN(len(s))]
}

// withFreeSuffix appends the smallest number >= 2 to the local part that
// makes email absent from seen.
func withFreeSuffix(email string, seen map[string]struct{}) string {
	at := strings.LastIndex(email, "@")
	local, domain := email[:at], email[at:]
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s%d%s", local, n, domain)
		if _, dup := seen[candidate]; !dup {
			return candidate
		}
	}
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
