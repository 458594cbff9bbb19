package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/fr0staman/pigbot/internal/domain"
	"github.com/fr0staman/pigbot/internal/events"
	"github.com/fr0staman/pigbot/internal/repo"
)

var (
	_ PigRepository         = repo.Store{}
	_ AchievementRepository = repo.Store{}
	_ LeaderboardRepository = repo.Store{}
	_ UserRepository        = repo.Store{}
	_ UserStatusProvider    = (*UserService)(nil)
)

// plainNow is a game-clock noon with no date-based achievement active.
var plainNow = time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)

// fakeStore is an in-memory implementation of every repository contract.
// The db argument is ignored.
type fakeStore struct {
	mu     sync.Mutex
	nextID uint
	pigs   map[uint]*domain.Pig
	logs   map[uint][]domain.GrowthLog
	ach    map[uint]map[int16]time.Time
	users  map[uint64]domain.User

	// fail makes the named method return the error.
	fail map[string]error
	// beforeGetPig runs before every GetPig, outside the store lock.
	beforeGetPig func(ownerID uint64)
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		pigs:  map[uint]*domain.Pig{},
		logs:  map[uint][]domain.GrowthLog{},
		ach:   map[uint]map[int16]time.Time{},
		users: map[uint64]domain.User{},
		fail:  map[string]error{},
	}
}

func (f *fakeStore) failure(method string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fail[method]
}

// seed inserts a pig and returns its id.
func (f *fakeStore) seed(t *testing.T, p domain.Pig) uint {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	p.ID = f.nextID
	f.pigs[p.ID] = &p
	return p.ID
}

// pig returns a copy of the stored pig.
func (f *fakeStore) pig(t *testing.T, id uint) domain.Pig {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pigs[id]
	if !ok {
		t.Fatalf("pig %d not stored", id)
	}
	return *p
}

func (f *fakeStore) GetPig(_ context.Context, _ *gorm.DB, ownerID uint64, scope domain.Scope) (*domain.Pig, error) {
	if f.beforeGetPig != nil {
		f.beforeGetPig(ownerID)
	}
	if err := f.failure("GetPig"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.pigs {
		if p.OwnerID == ownerID && p.Scope() == scope {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStore) GetPigByID(_ context.Context, _ *gorm.DB, id uint) (*domain.Pig, error) {
	if err := f.failure("GetPigByID"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pigs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) CreatePig(_ context.Context, _ *gorm.DB, ownerID uint64, scope domain.Scope, name string, mass int, date time.Time) (*domain.Pig, error) {
	if err := f.failure("CreatePig"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.pigs {
		if p.OwnerID == ownerID && p.Scope() == scope {
			return nil, repo.ErrDuplicate
		}
	}
	f.nextID++
	p := &domain.Pig{
		ID:             f.nextID,
		OwnerID:        ownerID,
		Kind:           scope.Kind,
		ChatID:         scope.ChatID,
		Name:           name,
		Mass:           mass,
		LastUpdateDate: date,
	}
	f.pigs[p.ID] = p
	cp := *p
	return &cp, nil
}

func (f *fakeStore) UpdateMassAndDate(_ context.Context, _ *gorm.DB, pigID uint, mass int, date time.Time) error {
	if err := f.failure("UpdateMassAndDate"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pigs[pigID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Mass, p.LastUpdateDate = mass, date
	return nil
}

func (f *fakeStore) UpdateName(_ context.Context, _ *gorm.DB, pigID uint, name string) error {
	if err := f.failure("UpdateName"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pigs[pigID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Name = name
	return nil
}

func (f *fakeStore) AppendGrowthLog(_ context.Context, _ *gorm.DB, entry *domain.GrowthLog) error {
	if err := f.failure("AppendGrowthLog"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	entry.ID = f.nextID
	f.logs[entry.PigID] = append(f.logs[entry.PigID], *entry)
	return nil
}

func (f *fakeStore) ListGrowthLog(_ context.Context, _ *gorm.DB, pigID uint) ([]domain.GrowthLog, error) {
	if err := f.failure("ListGrowthLog"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.GrowthLog(nil), f.logs[pigID]...), nil
}

func (f *fakeStore) BiggestMass(_ context.Context, _ *gorm.DB, ownerID uint64, kind domain.PigKind) (int, error) {
	if err := f.failure("BiggestMass"); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	biggest := 0
	for _, p := range f.pigs {
		if p.OwnerID == ownerID && p.Kind == kind && p.Mass > biggest {
			biggest = p.Mass
		}
	}
	return biggest, nil
}

func (f *fakeStore) ApplyDuelResult(_ context.Context, _ *gorm.DB, pigID uint, delta int, win, loss bool) error {
	if err := f.failure("ApplyDuelResult"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pigs[pigID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Mass = max(p.Mass+delta, 1)
	if win {
		p.WinCount++
	}
	if loss {
		p.LossCount++
	}
	return nil
}

func (f *fakeStore) UnlockedCodes(_ context.Context, _ *gorm.DB, pigID uint) ([]int16, error) {
	if err := f.failure("UnlockedCodes"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []int16
	for c := range f.ach[pigID] {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (f *fakeStore) UnlockAchievement(_ context.Context, _ *gorm.DB, pigID uint, code int16, at time.Time) error {
	if err := f.failure("UnlockAchievement"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ach[pigID] == nil {
		f.ach[pigID] = map[int16]time.Time{}
	}
	if _, ok := f.ach[pigID][code]; ok {
		return repo.ErrDuplicate
	}
	f.ach[pigID][code] = at
	return nil
}

func (f *fakeStore) GetUser(_ context.Context, _ *gorm.DB, id uint64) (*domain.User, error) {
	if err := f.failure("GetUser"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (f *fakeStore) UpsertUser(_ context.Context, _ *gorm.DB, u *domain.User) error {
	if err := f.failure("UpsertUser"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.ID] = *u
	return nil
}

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) kinds() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, ev := range p.events {
		out[i] = ev.Kind
	}
	return out
}

// scriptedRand returns the queued values in order and fails the test when a
// value is out of range or the script runs dry.
type scriptedRand struct {
	t      *testing.T
	mu     sync.Mutex
	values []int
}

func script(t *testing.T, values ...int) *scriptedRand {
	return &scriptedRand{t: t, values: values}
}

func (r *scriptedRand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.values) == 0 {
		r.t.Fatalf("rand script exhausted (IntN(%d))", n)
	}
	v := r.values[0]
	r.values = r.values[1:]
	if v < 0 || v >= n {
		r.t.Fatalf("scripted value %d out of range [0,%d)", v, n)
	}
	return v
}

// growthChance is the IntN value that makes CalculateGrowth draw chance.
func growthChance(chance int) int { return chance + 8 }

var errBoom = errors.New("boom")

// constRand always draws min(v, n-1).
type constRand int

func (c constRand) IntN(n int) int { return min(int(c), n-1) }
