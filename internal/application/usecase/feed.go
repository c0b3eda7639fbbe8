package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storysync/internal/domain/entity"
	"storysync/internal/domain/errs"
	"storysync/internal/domain/model"
	"storysync/internal/domain/repository/database"
	"storysync/internal/domain/repository/identity"
	"storysync/pkg/logger"
)

const dayKeyLayout = "2006-01-02"

// FeedService exposes the live grouped views of an identity's stories.
// The unfiltered and date-filtered modes share a single subscription
// slot: activating either cancels and joins the other first, so two
// pipelines never write to the same observer.
type FeedService struct {
	lister    database.Lister
	retriever database.Retriever
	watcher   database.Watcher
	identity  identity.Provider
	debounce  time.Duration

	mu     sync.Mutex
	active *subscription
}

type subscription struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func NewFeedService(lister database.Lister, retriever database.Retriever, watcher database.Watcher,
	provider identity.Provider, debounce time.Duration,
) *FeedService {
	return &FeedService{
		lister:    lister,
		retriever: retriever,
		watcher:   watcher,
		identity:  provider,
		debounce:  debounce,
	}
}

// ObserveAll emits the full feed grouped into calendar days of loc.
func (s *FeedService) ObserveAll(ctx context.Context, loc *time.Location) <-chan entity.FeedUpdate {
	return s.observe(ctx, loc, nil, nil)
}

// ObserveFiltered restricts the feed to stories whose timestamp falls in
// [windowStart, windowEnd).
func (s *FeedService) ObserveFiltered(ctx context.Context, loc *time.Location,
	windowStart, windowEnd time.Time,
) <-chan entity.FeedUpdate {
	return s.observe(ctx, loc, &windowStart, &windowEnd)
}

func (s *FeedService) observe(ctx context.Context, loc *time.Location, since, until *time.Time) <-chan entity.FeedUpdate {
	out := make(chan entity.FeedUpdate, 1)

	owner, ok := s.identity.CurrentIdentity()
	if !ok {
		out <- entity.FeedUpdate{Err: errs.ErrUnauthenticated}
		close(out)

		return out
	}

	subCtx, cancel := context.WithCancel(ctx)
	sub := &subscription{cancel: cancel, done: make(chan struct{})}
	s.swap(sub)

	go s.run(subCtx, sub, out, owner, loc, since, until)

	return out
}

// swap installs the next subscription and joins the previous one. The
// previous pipeline, its watch stream included, is fully released before
// the new one subscribes.
func (s *FeedService) swap(next *subscription) {
	s.mu.Lock()
	prev := s.active
	s.active = next
	s.mu.Unlock()

	if prev != nil {
		prev.cancel()
		<-prev.done
	}
}

func (s *FeedService) run(ctx context.Context, sub *subscription, out chan entity.FeedUpdate,
	owner string, loc *time.Location, since, until *time.Time,
) {
	defer close(out)
	defer close(sub.done)

	events, err := s.watcher.Watch(ctx, owner)
	if err != nil {
		s.emit(ctx, out, entity.FeedUpdate{Err: errors.Join(errs.ErrTransient, err)})

		return
	}

	// initial snapshot goes out immediately; only change bursts are
	// debounced
	s.emit(ctx, out, s.snapshot(ctx, owner, loc, since, until))

	timer := time.NewTimer(s.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()
	armed := false

	for {
		select {
		case <-ctx.Done():
			// join the watch stream so the subscription is fully
			// released before done closes
			for range events {
			}

			return
		case _, ok := <-events:
			if !ok {
				if ctx.Err() == nil {
					s.emit(ctx, out, entity.FeedUpdate{Err: errs.ErrTransient})
				}

				return
			}
			if armed && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(s.debounce)
			armed = true
		case <-timer.C:
			armed = false
			s.emit(ctx, out, s.snapshot(ctx, owner, loc, since, until))
		}
	}
}

func (s *FeedService) snapshot(ctx context.Context, owner string, loc *time.Location,
	since, until *time.Time,
) entity.FeedUpdate {
	stories, err := s.lister.ListOwned(ctx, owner, since, until)
	if err != nil {
		return entity.FeedUpdate{Err: err}
	}

	return entity.FeedUpdate{Groups: GroupByDay(stories, loc)}
}

func (s *FeedService) emit(ctx context.Context, out chan entity.FeedUpdate, upd entity.FeedUpdate) {
	select {
	case out <- upd:
	case <-ctx.Done():
	}
}

// ObserveSelected streams one story. Deletion while observed terminates
// the stream with an in-band ErrAlreadyDeleted, never a fault.
func (s *FeedService) ObserveSelected(ctx context.Context, id primitive.ObjectID) <-chan entity.StoryUpdate {
	out := make(chan entity.StoryUpdate, 1)

	owner, ok := s.identity.CurrentIdentity()
	if !ok {
		out <- entity.StoryUpdate{Err: errs.ErrUnauthenticated}
		close(out)

		return out
	}

	go func() {
		defer close(out)

		events, err := s.watcher.Watch(ctx, owner)
		if err != nil {
			s.emitStory(ctx, out, entity.StoryUpdate{Err: errors.Join(errs.ErrTransient, err)})

			return
		}

		if !s.emitSelected(ctx, out, id, owner) {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-events:
				if !ok {
					if ctx.Err() == nil {
						s.emitStory(ctx, out, entity.StoryUpdate{Err: errs.ErrTransient})
					}

					return
				}
				if !s.emitSelected(ctx, out, id, owner) {
					return
				}
			}
		}
	}()

	return out
}

// emitSelected reports false when the stream has terminated.
func (s *FeedService) emitSelected(ctx context.Context, out chan entity.StoryUpdate,
	id primitive.ObjectID, owner string,
) bool {
	story, err := s.retriever.GetByID(ctx, id, owner)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			s.emitStory(ctx, out, entity.StoryUpdate{Err: errs.ErrAlreadyDeleted})

			return false
		}
		s.emitStory(ctx, out, entity.StoryUpdate{Err: err})

		return true
	}

	s.emitStory(ctx, out, entity.StoryUpdate{Story: story})

	return true
}

func (s *FeedService) emitStory(ctx context.Context, out chan entity.StoryUpdate, upd entity.StoryUpdate) {
	select {
	case out <- upd:
	case <-ctx.Done():
	}
}

// Snapshot serves the point-in-time view used by the HTTP surface. day,
// when set, restricts the view to that local calendar day.
func (s *FeedService) Snapshot(ctx context.Context, loc *time.Location, day *time.Time) ([]entity.DayGroup, error) {
	owner, ok := s.identity.CurrentIdentity()
	if !ok {
		return nil, errs.ErrUnauthenticated
	}

	var since, until *time.Time
	if day != nil {
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
		end := start.AddDate(0, 0, 1)
		since, until = &start, &end
	}

	stories, err := s.lister.ListOwned(ctx, owner, since, until)
	if err != nil {
		logger.Error("feed snapshot failed", "owner", owner, "err", err)

		return nil, err
	}

	return GroupByDay(stories, loc), nil
}

// GroupByDay buckets stories into local calendar days. Stories are
// ordered by timestamp descending inside each bucket, and buckets follow
// the timestamp order of their most recent member.
func GroupByDay(stories []model.Story, loc *time.Location) []entity.DayGroup {
	sorted := make([]model.Story, len(stories))
	copy(sorted, stories)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	var groups []entity.DayGroup
	index := make(map[string]int)

	for _, story := range sorted {
		key := story.Date.In(loc).Format(dayKeyLayout)
		if i, ok := index[key]; ok {
			groups[i].Stories = append(groups[i].Stories, story)

			continue
		}
		index[key] = len(groups)
		groups = append(groups, entity.DayGroup{Date: key, Stories: []model.Story{story}})
	}

	return groups
}
