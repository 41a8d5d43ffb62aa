package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/sut-badminton/registration/models"
	"github.com/sut-badminton/registration/repositories"
	"github.com/sut-badminton/registration/storage"
)

// memStore backs the fake repositories. snapshot/restore give the fake
// transactor rollback semantics.
type memStore struct {
	mu      sync.Mutex
	teams   map[int]models.Team
	players map[int][]models.Player
	config  map[string]string
	nextID  int
	seq     map[models.Level]int

	createErr     error
	playersErr    error
	transitionErr error
	listErr       error
	configGetErr  error
	configSetErr  error
}

func newMemStore() *memStore {
	return &memStore{
		teams:   map[int]models.Team{},
		players: map[int][]models.Player{},
		config:  map[string]string{},
		seq:     map[models.Level]int{},
	}
}

type memSnapshot struct {
	teams   map[int]models.Team
	players map[int][]models.Player
}

func (m *memStore) snapshot() memSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := memSnapshot{teams: map[int]models.Team{}, players: map[int][]models.Player{}}
	for k, v := range m.teams {
		s.teams[k] = v
	}
	for k, v := range m.players {
		s.players[k] = append([]models.Player(nil), v...)
	}
	return s
}

func (m *memStore) restore(s memSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teams = s.teams
	m.players = s.players
}

func (m *memStore) addTeam(t models.Team) models.Team {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	t.ID = m.nextID
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	m.teams[t.ID] = t
	return t
}

func (m *memStore) team(id int) models.Team {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.teams[id]
}

func (m *memStore) teamCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.teams)
}

func (m *memStore) playerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, ps := range m.players {
		n += len(ps)
	}
	return n
}

// teamRepo

type memTeamRepo struct{ *memStore }

func (r memTeamRepo) NextTeamCode(_ context.Context, level models.Level) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq[level]++
	return fmt.Sprintf("SUT25-%s%03d", level, r.seq[level]), nil
}

func (r memTeamRepo) Create(_ context.Context, _ repositories.SQLExecutor, t *models.Team) error {
	if r.createErr != nil {
		return r.createErr
	}
	created := r.addTeam(*t)
	t.ID = created.ID
	t.CreatedAt = created.CreatedAt
	return nil
}

func (r memTeamRepo) find(match func(models.Team) bool) (*models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var found *models.Team
	for _, t := range r.teams {
		if match(t) {
			t := t
			if found == nil || t.ID > found.ID {
				found = &t
			}
		}
	}
	if found == nil {
		return nil, repositories.ErrTeamNotFound
	}
	return found, nil
}

func (r memTeamRepo) GetByID(_ context.Context, id int) (*models.Team, error) {
	return r.find(func(t models.Team) bool { return t.ID == id })
}

func (r memTeamRepo) GetByCode(_ context.Context, code string) (*models.Team, error) {
	return r.find(func(t models.Team) bool { return t.TeamCode == code })
}

func (r memTeamRepo) GetByName(_ context.Context, name string) (*models.Team, error) {
	return r.find(func(t models.Team) bool { return t.TeamName == name })
}

func (r memTeamRepo) List(_ context.Context) ([]models.Team, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Team, 0, len(r.teams))
	for id := r.nextID; id > 0; id-- {
		if t, ok := r.teams[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r memTeamRepo) TransitionStatus(_ context.Context, _ repositories.SQLExecutor, id int, from, to models.TeamStatus) error {
	if r.transitionErr != nil {
		return r.transitionErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.teams[id]
	if !ok || t.Status != from {
		return repositories.ErrTeamStatusConflict
	}
	t.Status = to
	r.teams[id] = t
	return nil
}

func (r memTeamRepo) AttachSlip(_ context.Context, id int, slipPath string, from, to models.TeamStatus) error {
	if r.transitionErr != nil {
		return r.transitionErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.teams[id]
	if !ok || t.Status != from {
		return repositories.ErrTeamStatusConflict
	}
	t.Status = to
	t.SlipPath = &slipPath
	r.teams[id] = t
	return nil
}

func (r memTeamRepo) DetachSlip(_ context.Context, id int, from, to models.TeamStatus) error {
	if r.transitionErr != nil {
		return r.transitionErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.teams[id]
	if !ok || t.Status != from {
		return repositories.ErrTeamStatusConflict
	}
	t.Status = to
	t.SlipPath = nil
	r.teams[id] = t
	return nil
}

func (r memTeamRepo) CountByLevel(_ context.Context) ([]models.LevelCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	agg := map[models.Level]*models.LevelCount{}
	for _, t := range r.teams {
		c, ok := agg[t.Level]
		if !ok {
			c = &models.LevelCount{Level: t.Level}
			agg[t.Level] = c
		}
		c.Total++
		if t.Status.CountsAsPassed() {
			c.Passed++
		}
	}
	out := make([]models.LevelCount, 0, len(agg))
	for _, c := range agg {
		out = append(out, *c)
	}
	return out, nil
}

// playerRepo

type memPlayerRepo struct{ *memStore }

func (r memPlayerRepo) CreateBatch(_ context.Context, _ repositories.SQLExecutor, players []*models.Player) error {
	if r.playersErr != nil {
		return r.playersErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range players {
		p.ID = len(r.players[p.TeamID]) + i + 1
		r.players[p.TeamID] = append(r.players[p.TeamID], *p)
	}
	return nil
}

func (r memPlayerRepo) ListByTeamID(_ context.Context, teamID int) ([]models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Player{}, r.players[teamID]...), nil
}

// configRepo

type memConfigRepo struct{ *memStore }

func (r memConfigRepo) Get(_ context.Context, key string) (string, error) {
	if r.configGetErr != nil {
		return "", r.configGetErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.config[key]
	if !ok {
		return "", repositories.ErrConfigNotFound
	}
	return v, nil
}

func (r memConfigRepo) Set(_ context.Context, key, value string) error {
	if r.configSetErr != nil {
		return r.configSetErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.config[key] = value
	return nil
}

// fakeTx rolls the store back when fn fails.
type fakeTx struct{ store *memStore }

func (f fakeTx) WithinTx(_ context.Context, fn func(exec repositories.SQLExecutor) error) error {
	snap := f.store.snapshot()
	if err := fn(nil); err != nil {
		f.store.restore(snap)
		return err
	}
	return nil
}

// fakeUploader keeps objects in memory. Uploads whose key starts with one of
// failPrefixes fail.
type fakeUploader struct {
	mu           sync.Mutex
	objects      map[string][]byte
	deleted      []string
	failPrefixes []string
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{objects: map[string][]byte{}}
}

func (u *fakeUploader) Upload(_ context.Context, key, _ string, r io.Reader) (*storage.UploadResult, error) {
	for _, p := range u.failPrefixes {
		if strings.HasPrefix(key, p) {
			return nil, errors.New("storage unavailable")
		}
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.objects[key] = body
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *fakeUploader) Delete(_ context.Context, key string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.objects, key)
	u.deleted = append(u.deleted, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.test/" + key
}

func (u *fakeUploader) objectCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.objects)
}

func (u *fakeUploader) keys() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]string, 0, len(u.objects))
	for k := range u.objects {
		out = append(out, k)
	}
	return out
}

type recordedEvent struct {
	Type    string
	Payload interface{}
}

type fakePublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *fakePublisher) Publish(eventType string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{Type: eventType, Payload: payload})
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func photo(name string) *models.File {
	return &models.File{Name: name, ContentType: "image/png", Body: strings.NewReader("png:" + name)}
}
