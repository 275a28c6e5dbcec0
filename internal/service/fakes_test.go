package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/gym-service/internal/domain"
)

// fakeTxRunner mirrors the per-student serialization of the Postgres
// runner with one mutex per student.
type fakeTxRunner struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newFakeTxRunner() *fakeTxRunner {
	return &fakeTxRunner{locks: make(map[string]*sync.Mutex)}
}

func (r *fakeTxRunner) WithStudentLock(ctx context.Context, studentID string, fn func(ctx context.Context) error) error {
	r.mu.Lock()
	lock, ok := r.locks[studentID]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[studentID] = lock
	}
	r.mu.Unlock()

	lock.Lock()
	defer lock.Unlock()
	return fn(ctx)
}

type fakeStudentRepo struct {
	mu       sync.Mutex
	seq      int
	students map[string]domain.Student
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: make(map[string]domain.Student)}
}

func (r *fakeStudentRepo) Create(_ context.Context, s *domain.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	s.ID = fmt.Sprintf("student-%d", r.seq)
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	r.students[s.ID] = *s
	return nil
}

func (r *fakeStudentRepo) Update(_ context.Context, s *domain.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.students[s.ID]; !ok {
		return pgx.ErrNoRows
	}
	s.UpdatedAt = time.Now()
	r.students[s.ID] = *s
	return nil
}

func (r *fakeStudentRepo) GetByID(_ context.Context, id string) (*domain.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.students[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &s, nil
}

func (r *fakeStudentRepo) GetByEmail(_ context.Context, email string) (*domain.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.students {
		if s.Email == email {
			copied := s
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeStudentRepo) List(_ context.Context, limit, offset int) ([]domain.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Student, 0, len(r.students))
	for _, s := range r.students {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}

func (r *fakeStudentRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.students[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.students, id)
	return nil
}

type fakePlanRepo struct {
	mu    sync.Mutex
	seq   int
	plans map[string]domain.Plan
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: make(map[string]domain.Plan)}
}

func (r *fakePlanRepo) Create(_ context.Context, p *domain.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	p.ID = fmt.Sprintf("plan-%d", r.seq)
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	r.plans[p.ID] = *p
	return nil
}

func (r *fakePlanRepo) Update(_ context.Context, p *domain.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plans[p.ID]; !ok {
		return pgx.ErrNoRows
	}
	p.UpdatedAt = time.Now()
	r.plans[p.ID] = *p
	return nil
}

func (r *fakePlanRepo) GetByID(_ context.Context, id string) (*domain.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.plans[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &p, nil
}

func (r *fakePlanRepo) GetByTitle(_ context.Context, title string) (*domain.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.plans {
		if p.Title == title {
			copied := p
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakePlanRepo) List(_ context.Context) ([]domain.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Plan, 0, len(r.plans))
	for _, p := range r.plans {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DurationMonths < out[j].DurationMonths })
	return out, nil
}

func (r *fakePlanRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plans[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.plans, id)
	return nil
}

type fakeRegistrationRepo struct {
	mu            sync.Mutex
	seq           int
	registrations map[string]domain.Registration
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{registrations: make(map[string]domain.Registration)}
}

func (r *fakeRegistrationRepo) Create(_ context.Context, reg *domain.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	reg.ID = fmt.Sprintf("reg-%d", r.seq)
	reg.CreatedAt = time.Now()
	reg.UpdatedAt = reg.CreatedAt
	r.registrations[reg.ID] = *reg
	return nil
}

func (r *fakeRegistrationRepo) Update(_ context.Context, reg *domain.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.registrations[reg.ID]; !ok {
		return pgx.ErrNoRows
	}
	reg.UpdatedAt = time.Now()
	r.registrations[reg.ID] = *reg
	return nil
}

func (r *fakeRegistrationRepo) GetByID(_ context.Context, id string) (*domain.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg, ok := r.registrations[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &reg, nil
}

func (r *fakeRegistrationRepo) List(_ context.Context, limit, offset int) ([]domain.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Registration, 0, len(r.registrations))
	for _, reg := range r.registrations {
		out = append(out, reg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return paginate(out, limit, offset), nil
}

func (r *fakeRegistrationRepo) HasActive(_ context.Context, studentID, excludeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, reg := range r.registrations {
		if reg.StudentID == studentID && reg.CanceledAt == nil && reg.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRegistrationRepo) Cancel(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg, ok := r.registrations[id]
	if !ok || reg.CanceledAt != nil {
		return pgx.ErrNoRows
	}
	reg.CanceledAt = &at
	reg.UpdatedAt = time.Now()
	r.registrations[id] = reg
	return nil
}

type fakeCheckinRepo struct {
	mu       sync.Mutex
	seq      int
	checkins []domain.Checkin
}

func newFakeCheckinRepo() *fakeCheckinRepo {
	return &fakeCheckinRepo{}
}

func (r *fakeCheckinRepo) Create(_ context.Context, c *domain.Checkin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	c.ID = fmt.Sprintf("checkin-%d", r.seq)
	r.checkins = append(r.checkins, *c)
	return nil
}

func (r *fakeCheckinRepo) CountInRange(_ context.Context, studentID string, from, to time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, c := range r.checkins {
		if c.StudentID != studentID {
			continue
		}
		if !c.CreatedAt.Before(from) && !c.CreatedAt.After(to) {
			count++
		}
	}
	return count, nil
}

func (r *fakeCheckinRepo) ListByStudent(_ context.Context, studentID string, limit, offset int) ([]domain.Checkin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Checkin{}
	for _, c := range r.checkins {
		if c.StudentID == studentID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, limit, offset), nil
}

type fakeHelpOrderRepo struct {
	mu     sync.Mutex
	seq    int
	orders map[string]domain.HelpOrder
}

func newFakeHelpOrderRepo() *fakeHelpOrderRepo {
	return &fakeHelpOrderRepo{orders: make(map[string]domain.HelpOrder)}
}

func (r *fakeHelpOrderRepo) Create(_ context.Context, order *domain.HelpOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	order.ID = fmt.Sprintf("order-%d", r.seq)
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	r.orders[order.ID] = *order
	return nil
}

func (r *fakeHelpOrderRepo) GetByID(_ context.Context, id string) (*domain.HelpOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &order, nil
}

func (r *fakeHelpOrderRepo) ListByStudent(_ context.Context, studentID string, limit, offset int) ([]domain.HelpOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.HelpOrder{}
	for _, order := range r.orders {
		if order.StudentID == studentID {
			out = append(out, order)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, limit, offset), nil
}

func (r *fakeHelpOrderRepo) ListUnanswered(_ context.Context, limit, offset int) ([]domain.HelpOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.HelpOrder{}
	for _, order := range r.orders {
		if order.Answer == nil {
			out = append(out, order)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return paginate(out, limit, offset), nil
}

func (r *fakeHelpOrderRepo) Answer(_ context.Context, id, answer string, at time.Time) (*domain.HelpOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok || order.Answer != nil {
		return nil, pgx.ErrNoRows
	}
	order.Answer = &answer
	order.AnswerAt = &at
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return &order, nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
