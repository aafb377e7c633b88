package wizard

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skylist/skylist-api/internal/domain/photo"
)

// Step is one of the five ordered wizard steps
type Step int

const (
	StepBasicInfo Step = iota + 1
	StepSpecifications
	StepLocation
	StepPhotos
	StepPreview
)

// String returns the step's wire name
func (s Step) String() string {
	switch s {
	case StepBasicInfo:
		return "basic_info"
	case StepSpecifications:
		return "specifications"
	case StepLocation:
		return "location"
	case StepPhotos:
		return "photos"
	case StepPreview:
		return "preview"
	default:
		return "unknown"
	}
}

// Draft is the field record accumulated across wizard steps. All fields start
// at their zero value and stay editable on every step up to and including
// Preview.
type Draft struct {
	Make            string  `json:"make"`
	Model           string  `json:"model"`
	Year            int     `json:"year"`
	Registration    string  `json:"registration"`
	Category        string  `json:"category"`
	PriceCents      int64   `json:"price_cents"`
	Currency        string  `json:"currency"`
	TotalTimeHours  float64 `json:"total_time_hours"`
	EngineTimeHours float64 `json:"engine_time_hours"`
	LocationCity    string  `json:"location_city"`
	LocationCountry string  `json:"location_country"`
	Description     string  `json:"description"`
}

// DraftPatch is a partial update of the draft. Only non-nil fields are
// applied, everything else is retained.
type DraftPatch struct {
	Make            *string  `json:"make"`
	Model           *string  `json:"model"`
	Year            *int     `json:"year" validate:"omitempty,min=1903,max=2100"`
	Registration    *string  `json:"registration" validate:"omitempty,max=20"`
	Category        *string  `json:"category" validate:"omitempty,aircraft_category"`
	PriceCents      *int64   `json:"price_cents" validate:"omitempty,min=0"`
	Currency        *string  `json:"currency" validate:"omitempty,len=3"`
	TotalTimeHours  *float64 `json:"total_time_hours" validate:"omitempty,min=0"`
	EngineTimeHours *float64 `json:"engine_time_hours" validate:"omitempty,min=0"`
	LocationCity    *string  `json:"location_city" validate:"omitempty,max=100"`
	LocationCountry *string  `json:"location_country" validate:"omitempty,max=100"`
	Description     *string  `json:"description" validate:"omitempty,max=10000"`
}

func (d *Draft) apply(p DraftPatch) {
	if p.Make != nil {
		d.Make = *p.Make
	}
	if p.Model != nil {
		d.Model = *p.Model
	}
	if p.Year != nil {
		d.Year = *p.Year
	}
	if p.Registration != nil {
		d.Registration = *p.Registration
	}
	if p.Category != nil {
		d.Category = *p.Category
	}
	if p.PriceCents != nil {
		d.PriceCents = *p.PriceCents
	}
	if p.Currency != nil {
		d.Currency = *p.Currency
	}
	if p.TotalTimeHours != nil {
		d.TotalTimeHours = *p.TotalTimeHours
	}
	if p.EngineTimeHours != nil {
		d.EngineTimeHours = *p.EngineTimeHours
	}
	if p.LocationCity != nil {
		d.LocationCity = *p.LocationCity
	}
	if p.LocationCountry != nil {
		d.LocationCountry = *p.LocationCountry
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
}

// Session is one in-progress listing creation flow. Navigation is strictly
// linear and no step gates advancement; the Preview checklist is advisory.
// Candidate files live only in the session until submission.
type Session struct {
	mu         sync.Mutex
	id         uuid.UUID
	step       Step
	draft      Draft
	candidates []photo.CandidateFile
	createdAt  time.Time
	touchedAt  time.Time
}

func newSession() *Session {
	now := time.Now()
	return &Session{
		id:        uuid.New(),
		step:      StepBasicInfo,
		createdAt: now,
		touchedAt: now,
	}
}

// ID returns the session id
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Next advances one step
func (s *Session) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step >= StepPreview {
		return ErrAtLastStep
	}
	s.step++
	s.touchedAt = time.Now()
	return nil
}

// Prev retreats one step
func (s *Session) Prev() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step <= StepBasicInfo {
		return ErrAtFirstStep
	}
	s.step--
	s.touchedAt = time.Now()
	return nil
}

// ApplyPatch merges a partial field update into the draft
func (s *Session) ApplyPatch(p DraftPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.draft.apply(p)
	s.touchedAt = time.Now()
}

// AddCandidates appends files to the candidate queue. Files are not validated
// here; a bad file is reported per-file at submission.
func (s *Session) AddCandidates(files []photo.CandidateFile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.candidates = append(s.candidates, files...)
	s.touchedAt = time.Now()
}

// RemoveCandidate drops the candidate at the given position
func (s *Session) RemoveCandidate(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.candidates) {
		return ErrBadCandidateIndex
	}
	s.candidates = append(s.candidates[:i], s.candidates[i+1:]...)
	s.touchedAt = time.Now()
	return nil
}

// MoveCandidate moves the candidate at from to position to, shifting the rest
func (s *Session) MoveCandidate(from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if from < 0 || from >= len(s.candidates) || to < 0 || to >= len(s.candidates) {
		return ErrBadCandidateIndex
	}
	if from == to {
		return nil
	}
	c := s.candidates[from]
	s.candidates = append(s.candidates[:from], s.candidates[from+1:]...)
	s.candidates = append(s.candidates[:to], append([]photo.CandidateFile{c}, s.candidates[to:]...)...)
	s.touchedAt = time.Now()
	return nil
}

// Snapshot returns a consistent copy of the session's current state for
// rendering or submission
func (s *Session) Snapshot() (Step, Draft, []photo.CandidateFile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidates := make([]photo.CandidateFile, len(s.candidates))
	copy(candidates, s.candidates)
	return s.step, s.draft, candidates
}

func (s *Session) expiredAt(now time.Time, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.touchedAt) > ttl
}
