// Package store owns the five persisted slices of learnnova data and every
// rule for mutating them. Invalid input is ignored rather than reported;
// callers that want feedback validate before calling.
package store

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/learnnova/internal/constants"
	"github.com/julianstephens/learnnova/internal/logger"
	"github.com/julianstephens/learnnova/internal/models"
	"github.com/julianstephens/learnnova/internal/persist"
	"github.com/julianstephens/learnnova/internal/storage"
	"github.com/julianstephens/learnnova/internal/utils"
)

// Listener is called synchronously after a mutation changes a slice.
type Listener func(changed constants.Slice)

type Option func(*Store)

// WithClock overrides the wall clock used for "today" and link timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLocation sets the timezone whose calendar date counts as "today".
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithNamespace changes the durable key prefix.
func WithNamespace(ns string) Option {
	return func(s *Store) { s.namespace = ns }
}

// WithIDGenerator overrides how entity IDs are minted.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

type Store struct {
	namespace string
	now       func() time.Time
	loc       *time.Location
	newID     func() string

	study  *persist.Slice[[]models.StudyEntry]
	sleep  *persist.Slice[[]models.SleepEntry]
	habits *persist.Slice[[]models.Habit]
	links  *persist.Slice[[]models.YoutubeLink]
	goals  *persist.Slice[models.Goals]

	mu        sync.Mutex
	listeners map[int]Listener
	nextID    int
}

func New(provider storage.Provider, opts ...Option) *Store {
	s := &Store{
		namespace: constants.KeyNamespace,
		now:       time.Now,
		loc:       time.Local,
		newID:     uuid.NewString,
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.study = persist.New(provider, constants.SliceStudy.Key(s.namespace),
		func() []models.StudyEntry { return []models.StudyEntry{} }, persist.WithNormalize(cleanStudy))
	s.sleep = persist.New(provider, constants.SliceSleep.Key(s.namespace),
		func() []models.SleepEntry { return []models.SleepEntry{} }, persist.WithNormalize(cleanSleep))
	s.habits = persist.New(provider, constants.SliceHabits.Key(s.namespace),
		func() []models.Habit { return []models.Habit{} }, persist.WithNormalize(cleanHabits))
	s.links = persist.New(provider, constants.SliceLinks.Key(s.namespace),
		func() []models.YoutubeLink { return []models.YoutubeLink{} }, persist.WithNormalize(cleanLinks))
	s.goals = persist.New(provider, constants.SliceGoals.Key(s.namespace),
		models.DefaultGoals, persist.WithNormalize(cleanGoals))

	return s
}

// Hydrate loads all five slices concurrently. It returns once every slice
// is hydrated or ctx is done.
func (s *Store) Hydrate(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.study.Load(ctx) })
	g.Go(func() error { return s.sleep.Load(ctx) })
	g.Go(func() error { return s.habits.Load(ctx) })
	g.Go(func() error { return s.links.Load(ctx) })
	g.Go(func() error { return s.goals.Load(ctx) })
	if err := g.Wait(); err != nil {
		return err
	}
	logger.Debug("Store hydrated", "namespace", s.namespace)
	return nil
}

// Hydrated reports whether every slice has finished loading.
func (s *Store) Hydrated() bool {
	return s.study.Hydrated() && s.sleep.Hydrated() && s.habits.Hydrated() &&
		s.links.Hydrated() && s.goals.Hydrated()
}

// Now returns the current time in the store's timezone.
func (s *Store) Now() time.Time {
	return s.now().In(s.loc)
}

// Today returns the current calendar date in the store's timezone.
func (s *Store) Today() string {
	return utils.FormatDate(s.Now())
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Store) notify(changed constants.Slice) {
	s.mu.Lock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]Listener, 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.listeners[id])
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(changed)
	}
}

// resolveDate maps "" to today and rejects anything that is not an ISO date.
func (s *Store) resolveDate(date string) (string, bool) {
	date = strings.TrimSpace(date)
	if date == "" {
		return s.Today(), true
	}
	return date, utils.ValidateDateFormat(date)
}

// StudyEntries returns study entries, newest date first.
func (s *Store) StudyEntries() []models.StudyEntry {
	return slices.Clone(s.study.Value())
}

// SleepEntries returns sleep entries, newest date first.
func (s *Store) SleepEntries() []models.SleepEntry {
	return slices.Clone(s.sleep.Value())
}

// Habits returns habits in creation order.
func (s *Store) Habits() []models.Habit {
	src := s.habits.Value()
	out := make([]models.Habit, len(src))
	for i, h := range src {
		out[i] = h.Clone()
	}
	return out
}

// Habit looks a habit up by ID.
func (s *Store) Habit(id string) (models.Habit, bool) {
	for _, h := range s.habits.Value() {
		if h.ID == id {
			return h.Clone(), true
		}
	}
	return models.Habit{}, false
}

// YoutubeLinks returns saved links, newest first.
func (s *Store) YoutubeLinks() []models.YoutubeLink {
	return slices.Clone(s.links.Value())
}

func (s *Store) Goals() models.Goals {
	return s.goals.Value()
}
