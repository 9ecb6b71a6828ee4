package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/westem/event-registration/internal/core/domain"
	"github.com/westem/event-registration/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type regPair struct {
	userID  int64
	eventID int64
}

type stubRegistrationRepo struct {
	pairs []regPair
	// participant details for roster lookups, keyed by user id
	users map[int64]*domain.Participant
}

func newStubRegistrationRepo() *stubRegistrationRepo {
	return &stubRegistrationRepo{users: make(map[int64]*domain.Participant)}
}

func (r *stubRegistrationRepo) Join(_ context.Context, userID, eventID int64) error {
	for _, p := range r.pairs {
		if p.userID == userID && p.eventID == eventID {
			return nil // unique pair already present, silent no-op
		}
	}
	r.pairs = append(r.pairs, regPair{userID: userID, eventID: eventID})
	return nil
}

func (r *stubRegistrationRepo) Leave(_ context.Context, userID, eventID int64) error {
	kept := r.pairs[:0]
	for _, p := range r.pairs {
		if p.userID != userID || p.eventID != eventID {
			kept = append(kept, p)
		}
	}
	r.pairs = kept
	return nil
}

func (r *stubRegistrationRepo) IsJoined(_ context.Context, userID, eventID int64) (bool, error) {
	for _, p := range r.pairs {
		if p.userID == userID && p.eventID == eventID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubRegistrationRepo) Count(_ context.Context, eventID int64) (int, error) {
	n := 0
	for _, p := range r.pairs {
		if p.eventID == eventID {
			n++
		}
	}
	return n, nil
}

func (r *stubRegistrationRepo) ListParticipants(_ context.Context, eventID int64) ([]*domain.Participant, error) {
	var out []*domain.Participant
	for _, p := range r.pairs {
		if p.eventID != eventID {
			continue
		}
		if u, ok := r.users[p.userID]; ok {
			clone := *u
			out = append(out, &clone)
		} else {
			out = append(out, &domain.Participant{UserID: p.userID})
		}
	}
	return out, nil
}

func (r *stubRegistrationRepo) removeEvent(eventID int64) {
	kept := r.pairs[:0]
	for _, p := range r.pairs {
		if p.eventID != eventID {
			kept = append(kept, p)
		}
	}
	r.pairs = kept
}

type stubEventRepo struct {
	events map[int64]*domain.Event
	nextID int64
	// registrations cascade target for Delete
	regs *stubRegistrationRepo
	// op log for verifying sweep-before-list ordering
	ops []string
}

func newStubEventRepo(regs *stubRegistrationRepo) *stubEventRepo {
	return &stubEventRepo{events: make(map[int64]*domain.Event), regs: regs}
}

func cloneEvent(e *domain.Event) *domain.Event {
	clone := *e
	return &clone
}

func (r *stubEventRepo) ExpireStale(_ context.Context) error {
	r.ops = append(r.ops, "sweep")
	now := time.Now()
	for _, e := range r.events {
		if e.Expired(now) {
			e.IsActive = false
		}
	}
	return nil
}

func (r *stubEventRepo) Create(_ context.Context, e *domain.Event) (int64, error) {
	r.nextID++
	stored := cloneEvent(e)
	stored.ID = r.nextID
	r.events[stored.ID] = stored
	return stored.ID, nil
}

func (r *stubEventRepo) FindByID(_ context.Context, id int64) (*domain.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return cloneEvent(e), nil
}

func (r *stubEventRepo) ListActive(_ context.Context) ([]*domain.Event, error) {
	r.ops = append(r.ops, "list")
	var out []*domain.Event
	for _, e := range r.events {
		if e.IsActive {
			out = append(out, cloneEvent(e))
		}
	}
	sortEvents(out)
	return out, nil
}

func (r *stubEventRepo) ListByCreator(_ context.Context, userID int64) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range r.events {
		if e.IsActive && e.CreatedBy == userID {
			out = append(out, cloneEvent(e))
		}
	}
	sortEvents(out)
	return out, nil
}

func (r *stubEventRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.events[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(r.events, id)
	if r.regs != nil {
		r.regs.removeEvent(id)
	}
	return nil
}

func sortEvents(events []*domain.Event) {
	sort.Slice(events, func(i, j int) bool {
		if !events[i].EventDate.Equal(events[j].EventDate) {
			return events[i].EventDate.Before(events[j].EventDate)
		}
		return events[i].EventTime < events[j].EventTime
	})
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var (
	teacher      = ports.Actor{UserID: 1, Role: domain.RoleTeacher}
	otherTeacher = ports.Actor{UserID: 2, Role: domain.RoleTeacher}
	student      = ports.Actor{UserID: 3, Role: domain.RoleStudent}
)

func newEventSvc(events *stubEventRepo, regs *stubRegistrationRepo) ports.EventService {
	return NewEventService(events, regs, zerolog.Nop())
}

func seedEvent(repo *stubEventRepo, createdBy int64, date time.Time, clock string, active bool) int64 {
	repo.nextID++
	id := repo.nextID
	repo.events[id] = &domain.Event{
		ID:        id,
		Title:     "event",
		EventDate: date,
		EventTime: clock,
		CreatedBy: createdBy,
		IsActive:  active,
	}
	return id
}

func today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestEventService_Create_RequiresTeacherRole(t *testing.T) {
	regs := newStubRegistrationRepo()
	svc := newEventSvc(newStubEventRepo(regs), regs)

	input := ports.CreateEventInput{
		Title:    "Robotics intro",
		Date:     "2030-05-01",
		Time:     "14:00",
		Location: "Lab 2",
	}

	if _, err := svc.Create(context.Background(), student, input); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized for student, got %v", err)
	}

	event, err := svc.Create(context.Background(), teacher, input)
	if err != nil {
		t.Fatalf("teacher create failed: %v", err)
	}
	if event.ID == 0 || event.CreatedBy != teacher.UserID || !event.IsActive {
		t.Fatalf("unexpected event: %+v", event)
	}
}

func TestEventService_Create_RejectsBadDate(t *testing.T) {
	regs := newStubRegistrationRepo()
	svc := newEventSvc(newStubEventRepo(regs), regs)

	_, err := svc.Create(context.Background(), teacher, ports.CreateEventInput{
		Title:    "x",
		Date:     "01.05.2030",
		Time:     "14:00",
		Location: "y",
	})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestEventService_ListActive_SweepsBeforeListing(t *testing.T) {
	regs := newStubRegistrationRepo()
	repo := newStubEventRepo(regs)
	svc := newEventSvc(repo, regs)

	yesterday := today().AddDate(0, 0, -1)
	tomorrow := today().AddDate(0, 0, 1)
	seedEvent(repo, teacher.UserID, yesterday, "10:00:00", true)
	fresh := seedEvent(repo, teacher.UserID, tomorrow, "10:00:00", true)

	summaries, err := svc.ListActive(context.Background(), student)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(repo.ops) < 2 || repo.ops[0] != "sweep" || repo.ops[1] != "list" {
		t.Fatalf("expected sweep applied before listing, got ops %v", repo.ops)
	}
	if len(summaries) != 1 || summaries[0].Event.ID != fresh {
		t.Fatalf("expected only the future event, got %+v", summaries)
	}
}

func TestEventService_ListActive_SweepIsIdempotent(t *testing.T) {
	regs := newStubRegistrationRepo()
	repo := newStubEventRepo(regs)
	svc := newEventSvc(repo, regs)

	seedEvent(repo, teacher.UserID, today().AddDate(0, 0, -2), "09:00:00", true)
	seedEvent(repo, teacher.UserID, today().AddDate(0, 0, 2), "09:00:00", true)

	first, err := svc.ListActive(context.Background(), student)
	if err != nil {
		t.Fatalf("first list failed: %v", err)
	}
	second, err := svc.ListActive(context.Background(), student)
	if err != nil {
		t.Fatalf("second list failed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("sweep not idempotent: %d then %d events", len(first), len(second))
	}
	for i := range first {
		if first[i].Event.ID != second[i].Event.ID {
			t.Fatalf("active set changed between sweeps")
		}
	}
}

func TestEventService_ListActive_OrderedBySchedule(t *testing.T) {
	regs := newStubRegistrationRepo()
	repo := newStubEventRepo(regs)
	svc := newEventSvc(repo, regs)

	day1 := today().AddDate(0, 0, 1)
	day2 := today().AddDate(0, 0, 2)
	late := seedEvent(repo, teacher.UserID, day2, "15:00:00", true)
	early := seedEvent(repo, teacher.UserID, day1, "09:00:00", true)
	mid := seedEvent(repo, teacher.UserID, day1, "12:30:00", true)

	summaries, err := svc.ListActive(context.Background(), student)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	got := []int64{summaries[0].Event.ID, summaries[1].Event.ID, summaries[2].Event.ID}
	want := []int64{early, mid, late}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("wrong order: got %v, want %v", got, want)
		}
	}
}

func TestEventService_ListActive_DecoratesJoinState(t *testing.T) {
	regs := newStubRegistrationRepo()
	repo := newStubEventRepo(regs)
	svc := newEventSvc(repo, regs)

	id := seedEvent(repo, teacher.UserID, today().AddDate(0, 0, 1), "10:00:00", true)
	_ = regs.Join(context.Background(), student.UserID, id)
	_ = regs.Join(context.Background(), otherTeacher.UserID, id)

	summaries, err := svc.ListActive(context.Background(), student)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if summaries[0].Participants != 2 {
		t.Fatalf("expected 2 participants, got %d", summaries[0].Participants)
	}
	if !summaries[0].Joined {
		t.Fatalf("expected joined flag for the actor")
	}

	other, _ := svc.ListActive(context.Background(), ports.Actor{UserID: 99, Role: domain.RoleStudent})
	if other[0].Joined {
		t.Fatalf("joined flag leaked to a non-participant")
	}
}

func TestEventService_ListMine_OnlyCreatorEvents(t *testing.T) {
	regs := newStubRegistrationRepo()
	repo := newStubEventRepo(regs)
	svc := newEventSvc(repo, regs)

	mine := seedEvent(repo, teacher.UserID, today().AddDate(0, 0, 1), "10:00:00", true)
	seedEvent(repo, otherTeacher.UserID, today().AddDate(0, 0, 1), "11:00:00", true)

	events, err := svc.ListMine(context.Background(), teacher)
	if err != nil {
		t.Fatalf("list mine failed: %v", err)
	}
	if len(events) != 1 || events[0].ID != mine {
		t.Fatalf("expected only own event, got %+v", events)
	}

	if _, err := svc.ListMine(context.Background(), student); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized for student, got %v", err)
	}
}

func TestEventService_Delete_CreatorOnly(t *testing.T) {
	regs := newStubRegistrationRepo()
	repo := newStubEventRepo(regs)
	svc := newEventSvc(repo, regs)

	id := seedEvent(repo, teacher.UserID, today().AddDate(0, 0, 1), "10:00:00", true)

	if err := svc.Delete(context.Background(), student, id); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized for student, got %v", err)
	}
	if err := svc.Delete(context.Background(), otherTeacher, id); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized for non-creator, got %v", err)
	}
	if err := svc.Delete(context.Background(), teacher, id); err != nil {
		t.Fatalf("creator delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), teacher, id); !errors.Is(err, domain.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound after delete, got %v", err)
	}
}

func TestEventService_Delete_CascadesRegistrations(t *testing.T) {
	regs := newStubRegistrationRepo()
	repo := newStubEventRepo(regs)
	svc := newEventSvc(repo, regs)

	id := seedEvent(repo, teacher.UserID, today().AddDate(0, 0, 1), "10:00:00", true)
	_ = regs.Join(context.Background(), student.UserID, id)
	_ = regs.Join(context.Background(), otherTeacher.UserID, id)

	if err := svc.Delete(context.Background(), teacher, id); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	count, _ := regs.Count(context.Background(), id)
	if count != 0 {
		t.Fatalf("expected no registrations after event delete, got %d", count)
	}
}
