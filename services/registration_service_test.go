package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sut-badminton/registration/live"
	"github.com/sut-badminton/registration/metrics"
	"github.com/sut-badminton/registration/models"
	"github.com/sut-badminton/registration/storage"
)

type registrationFixture struct {
	store    *memStore
	uploader *fakeUploader
	events   *fakePublisher
	metrics  *metrics.Collectors
	svc      RegistrationService
}

func newRegistrationFixture() *registrationFixture {
	store := newMemStore()
	up := newFakeUploader()
	events := &fakePublisher{}
	m := metrics.New(prometheus.NewRegistry())
	svc := NewRegistrationService(
		fakeTx{store: store},
		memTeamRepo{store},
		memPlayerRepo{store},
		storage.NewGateway(up),
		events,
		m,
		nil,
	)
	return &registrationFixture{store: store, uploader: up, events: events, metrics: m, svc: svc}
}

func validInput() RegisterTeamInput {
	return RegisterTeamInput{
		TeamName:   "  Shuttle Kings ",
		Level:      "a",
		EvalMethod: "clip",
		EvalLink:   "https://youtu.be/x",
		Player1: PlayerInput{
			FullName: "Anan", StdStaffID: "B6500001", Type: "Student", Photo: photo("p1.png"),
		},
		Player2: PlayerInput{
			FullName: "Boon", StdStaffID: "S1234", Type: "staff", Photo: photo("p2.jpg"),
		},
	}
}

func TestRegister_PersistsTeamAndPlayers(t *testing.T) {
	f := newRegistrationFixture()

	team, err := f.svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, "SUT25-A001", team.TeamCode)
	assert.Equal(t, "Shuttle Kings", team.TeamName)
	assert.Equal(t, models.LevelA, team.Level)
	assert.Equal(t, 450, team.TotalFee)
	assert.Equal(t, models.StatusPendingEvaluation, team.Status)
	require.Len(t, team.Players, 2)
	assert.True(t, team.Players[0].IsPlayerOne)
	assert.Equal(t, models.PlayerTypeStudent, team.Players[0].Type)
	assert.False(t, team.Players[1].IsPlayerOne)
	assert.True(t, strings.HasPrefix(team.Players[0].PhotoPath, "https://cdn.test/p1_SUT25-A001_"))
	assert.True(t, strings.HasPrefix(team.Players[1].PhotoPath, "https://cdn.test/p2_SUT25-A001_"))
	assert.True(t, strings.HasSuffix(team.Players[1].PhotoPath, ".jpg"))

	assert.Equal(t, 1, f.store.teamCount())
	assert.Equal(t, 2, f.store.playerCount())
	assert.Equal(t, 2, f.uploader.objectCount())
	assert.Equal(t, []string{live.EventTeamRegistered}, f.events.types())
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Registrations.WithLabelValues("A")))
	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.Uploads.WithLabelValues("photo", "ok")))
}

func TestRegister_Fees(t *testing.T) {
	cases := []struct {
		name   string
		p1, p2 string
		want   int
	}{
		{"two students", "student", "student", 300},
		{"student and staff", "student", "staff", 450},
		{"two staff", "staff", "staff", 600},
		{"unknown type pays full rate", "alumni", "student", 450},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newRegistrationFixture()
			in := validInput()
			in.Player1.Type = tc.p1
			in.Player2.Type = tc.p2

			team, err := f.svc.Register(context.Background(), in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, team.TotalFee)
		})
	}
}

func TestRegister_CodesAreSequentialPerLevel(t *testing.T) {
	f := newRegistrationFixture()

	codes := make([]string, 0, 3)
	for _, level := range []string{"E", "E", "B"} {
		in := validInput()
		in.Level = level
		in.Player1.Photo = photo("a.png")
		in.Player2.Photo = photo("b.png")
		team, err := f.svc.Register(context.Background(), in)
		require.NoError(t, err)
		codes = append(codes, team.TeamCode)
	}
	assert.Equal(t, []string{"SUT25-E001", "SUT25-E002", "SUT25-B001"}, codes)
}

func TestRegister_ConcurrentCodesAreDistinct(t *testing.T) {
	f := newRegistrationFixture()
	const n = 20

	var wg sync.WaitGroup
	codes := make([]string, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := validInput()
			in.TeamName = fmt.Sprintf("Team %d", i)
			in.Level = "C"
			team, err := f.svc.Register(context.Background(), in)
			errs[i] = err
			if err == nil {
				codes[i] = team.TeamCode
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.True(t, strings.HasPrefix(codes[i], "SUT25-C"), codes[i])
		assert.False(t, seen[codes[i]], "duplicate code %s", codes[i])
		seen[codes[i]] = true
	}
	assert.Equal(t, n, f.store.teamCount())
	assert.Equal(t, 2*n, f.store.playerCount())
}

func TestRegister_MissingPhotoPersistsNothing(t *testing.T) {
	f := newRegistrationFixture()
	in := validInput()
	in.Player2.Photo = nil

	_, err := f.svc.Register(context.Background(), in)
	assert.ErrorIs(t, err, ErrPhotosRequired)
	assert.Zero(t, f.store.teamCount())
	assert.Zero(t, f.store.playerCount())
	assert.Zero(t, f.uploader.objectCount())
	assert.Empty(t, f.events.types())
}

func TestRegister_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*RegisterTeamInput)
		want   error
	}{
		{"blank team name", func(in *RegisterTeamInput) { in.TeamName = "  " }, ErrTeamNameRequired},
		{"bad level", func(in *RegisterTeamInput) { in.Level = "F" }, ErrInvalidLevel},
		{"missing player name", func(in *RegisterTeamInput) { in.Player2.FullName = "" }, ErrPlayerNameRequired},
		{"missing player id", func(in *RegisterTeamInput) { in.Player1.StdStaffID = " " }, ErrPlayerIDRequired},
		{"missing player type", func(in *RegisterTeamInput) { in.Player1.Type = "" }, ErrPlayerTypeRequired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newRegistrationFixture()
			in := validInput()
			tc.mutate(&in)

			_, err := f.svc.Register(context.Background(), in)
			assert.ErrorIs(t, err, tc.want)
			assert.Zero(t, f.store.teamCount())
			assert.Zero(t, f.uploader.objectCount())
		})
	}
}

func TestRegister_UploadFailureCleansUp(t *testing.T) {
	f := newRegistrationFixture()
	f.uploader.failPrefixes = []string{"p2_"}

	_, err := f.svc.Register(context.Background(), validInput())
	assert.ErrorIs(t, err, ErrUploadFailed)
	assert.Zero(t, f.store.teamCount())
	assert.Zero(t, f.uploader.objectCount(), "player 1 photo must be removed")
	assert.Empty(t, f.events.types())
}

func TestRegister_DatabaseFailureRollsBackAndRemovesPhotos(t *testing.T) {
	f := newRegistrationFixture()
	f.store.playersErr = errors.New("disk full")

	_, err := f.svc.Register(context.Background(), validInput())
	require.Error(t, err)
	assert.Zero(t, f.store.teamCount(), "team insert must be rolled back")
	assert.Zero(t, f.store.playerCount())
	assert.Zero(t, f.uploader.objectCount())
	assert.Len(t, f.uploader.deleted, 2)
	assert.Empty(t, f.events.types())
}
