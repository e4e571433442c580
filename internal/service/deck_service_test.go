package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/lingodeck/internal/domain"
	"github.com/phrazzld/lingodeck/internal/generation"
	"github.com/phrazzld/lingodeck/internal/mocks"
	"github.com/phrazzld/lingodeck/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockDeckRepository is a func-field mock of DeckRepository.
// WithTx returns the receiver so transactional calls hit the same fns.
type mockDeckRepository struct {
	db *sql.DB

	CountCreatedSinceFn func(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)
	CreateWithCardsFn   func(ctx context.Context, deck *domain.Deck) error
	GetByIDFn           func(ctx context.Context, id uuid.UUID) (*domain.Deck, error)
	ListByUserFn        func(ctx context.Context, userID uuid.UUID) ([]*domain.DeckSummary, error)
	DeleteFn            func(ctx context.Context, id uuid.UUID) error

	mu          sync.Mutex
	txCalls     int
	createCalls int
	countCalls  int
}

func (m *mockDeckRepository) CountCreatedSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	m.mu.Lock()
	m.countCalls++
	m.mu.Unlock()
	if m.CountCreatedSinceFn != nil {
		return m.CountCreatedSinceFn(ctx, userID, since)
	}
	return 0, nil
}

func (m *mockDeckRepository) CreateWithCards(ctx context.Context, deck *domain.Deck) error {
	m.mu.Lock()
	m.createCalls++
	m.mu.Unlock()
	if m.CreateWithCardsFn != nil {
		return m.CreateWithCardsFn(ctx, deck)
	}
	return nil
}

func (m *mockDeckRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrDeckNotFound
}

func (m *mockDeckRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.DeckSummary, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return []*domain.DeckSummary{}, nil
}

func (m *mockDeckRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *mockDeckRepository) WithTx(_ *sql.Tx) DeckRepository {
	m.mu.Lock()
	m.txCalls++
	m.mu.Unlock()
	return m
}

func (m *mockDeckRepository) DB() *sql.DB {
	return m.db
}

var fixedNow = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

var testLimit = RateLimit{Max: 10, Window: time.Hour}

type deckServiceFixture struct {
	svc       *deckServiceImpl
	repo      *mockDeckRepository
	users     *mocks.TestifyMockUserStore
	completer *mocks.MockCompleter
	sqlMock   sqlmock.Sqlmock
}

func newDeckServiceFixture(t *testing.T, completer *mocks.MockCompleter) *deckServiceFixture {
	t.Helper()
	return newDeckServiceFixtureWithLimit(t, completer, testLimit)
}

func newDeckServiceFixtureWithLimit(t *testing.T, completer *mocks.MockCompleter, limit RateLimit) *deckServiceFixture {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := &mockDeckRepository{db: db}
	users := &mocks.TestifyMockUserStore{}

	svc, err := NewDeckService(repo, users, completer, limit, nil)
	require.NoError(t, err)

	impl := svc.(*deckServiceImpl)
	impl.timeFunc = func() time.Time { return fixedNow }

	return &deckServiceFixture{
		svc:       impl,
		repo:      repo,
		users:     users,
		completer: completer,
		sqlMock:   sqlMock,
	}
}

func validRequest() domain.GenerationRequest {
	topic := "  restaurant ordering  "
	return domain.GenerationRequest{
		SourceLanguage: domain.LanguageEnglish,
		TargetLanguage: domain.LanguageSpanish,
		DeckType:       domain.DeckTypePhrases,
		TopicContext:   &topic,
	}
}

func TestNewDeckService(t *testing.T) {
	t.Parallel()

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := &mockDeckRepository{db: db}
	users := &mocks.TestifyMockUserStore{}
	completer := mocks.NewMockCompleterWithDefaultCards()

	tests := []struct {
		name      string
		repo      DeckRepository
		users     store.UserStore
		completer generation.Completer
		limit     RateLimit
		wantErr   string
	}{
		{name: "valid_dependencies", repo: repo, users: users, completer: completer, limit: testLimit},
		{name: "nil_repo", users: users, completer: completer, limit: testLimit, wantErr: "deckRepo cannot be nil"},
		{name: "nil_user_store", repo: repo, completer: completer, limit: testLimit, wantErr: "userStore cannot be nil"},
		{name: "nil_completer", repo: repo, users: users, limit: testLimit, wantErr: "completer cannot be nil"},
		{
			name:      "zero_rate_limit",
			repo:      repo,
			users:     users,
			completer: completer,
			limit:     RateLimit{Max: 0, Window: time.Hour},
			wantErr:   "rate limit must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewDeckService(tt.repo, tt.users, tt.completer, tt.limit, nil)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, svc)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, svc)
		})
	}
}

func TestDeckService_Generate_Success(t *testing.T) {
	t.Parallel()

	f := newDeckServiceFixture(t, mocks.NewMockCompleterWithDefaultCards())
	userID := uuid.New()
	ctx := context.Background()

	var sinceSeen []time.Time
	f.repo.CountCreatedSinceFn = func(_ context.Context, id uuid.UUID, since time.Time) (int, error) {
		assert.Equal(t, userID, id)
		sinceSeen = append(sinceSeen, since)
		return 9, nil
	}
	var saved *domain.Deck
	f.repo.CreateWithCardsFn = func(_ context.Context, deck *domain.Deck) error {
		saved = deck
		return nil
	}
	f.users.On("LockForUpdate", mock.Anything, userID).Return(nil).Once()

	f.sqlMock.ExpectBegin()
	f.sqlMock.ExpectCommit()

	deck, err := f.svc.Generate(ctx, userID, validRequest())
	require.NoError(t, err)
	require.NotNil(t, deck)

	assert.Same(t, saved, deck)
	assert.Equal(t, userID, deck.UserID)
	assert.Equal(t, "English → Spanish (phrases)", deck.Name)
	assert.Equal(t, domain.ProficiencyIntermediate, deck.Proficiency)
	assert.Equal(t, domain.FormalityNeutral, deck.Formality)
	require.NotNil(t, deck.TopicContext)
	assert.Equal(t, "restaurant ordering", *deck.TopicContext)
	assert.Equal(t, mocks.DefaultModel, deck.ModelUsed)
	assert.Equal(t, fixedNow, deck.CreatedAt)
	assert.Equal(t, 2, deck.CardCount)

	require.Len(t, deck.Cards, 2)
	assert.Equal(t, "hola", deck.Cards[0].Front)
	assert.Equal(t, 0, deck.Cards[0].OrderIndex)
	assert.Equal(t, "gracias", deck.Cards[1].Front)
	assert.Equal(t, 1, deck.Cards[1].OrderIndex)
	assert.Nil(t, deck.Cards[1].Explanation)

	assert.Equal(t, deck.PromptUsed, f.completer.LastPrompt())
	assert.Contains(t, deck.PromptUsed, "restaurant ordering")
	assert.Contains(t, deck.PromptUsed, "25")

	// The limit is checked once up front and again under the user lock.
	require.Len(t, sinceSeen, 2)
	for _, since := range sinceSeen {
		assert.Equal(t, fixedNow.Add(-time.Hour), since)
	}

	f.users.AssertExpectations(t)
	assert.NoError(t, f.sqlMock.ExpectationsWereMet())
}

func TestDeckService_Generate_Errors(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name          string
		req           func() domain.GenerationRequest
		completer     *mocks.MockCompleter
		setup         func(f *deckServiceFixture)
		wantErr       error
		wantCompletes int
	}{
		{
			name: "invalid_request",
			req: func() domain.GenerationRequest {
				r := validRequest()
				r.TargetLanguage = r.SourceLanguage
				return r
			},
			completer:     mocks.NewMockCompleterWithDefaultCards(),
			wantErr:       domain.ErrValidation,
			wantCompletes: 0,
		},
		{
			name:      "rate_limited_before_completion",
			req:       validRequest,
			completer: mocks.NewMockCompleterWithDefaultCards(),
			setup: func(f *deckServiceFixture) {
				f.repo.CountCreatedSinceFn = func(context.Context, uuid.UUID, time.Time) (int, error) {
					return testLimit.Max, nil
				}
			},
			wantErr:       ErrRateLimited,
			wantCompletes: 0,
		},
		{
			name: "provider_failure",
			req:  validRequest,
			completer: mocks.NewMockCompleterWithError(
				errors.Join(generation.ErrProviderError, errors.New("upstream 503")),
			),
			wantErr:       ErrGenerationFailed,
			wantCompletes: 1,
		},
		{
			name:          "malformed_completion",
			req:           validRequest,
			completer:     mocks.NewMockCompleterWithContent("Sorry, I cannot help with that."),
			wantErr:       ErrParseFailed,
			wantCompletes: 1,
		},
		{
			name:          "schema_violation",
			req:           validRequest,
			completer:     mocks.NewMockCompleterWithContent(`[{"front": "hola"}]`),
			wantErr:       ErrParseFailed,
			wantCompletes: 1,
		},
		{
			name:          "empty_array",
			req:           validRequest,
			completer:     mocks.NewMockCompleterWithContent("```json\n[]\n```"),
			wantErr:       ErrEmptyGeneration,
			wantCompletes: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDeckServiceFixture(t, tt.completer)
			if tt.setup != nil {
				tt.setup(f)
			}

			deck, err := f.svc.Generate(context.Background(), userID, tt.req())
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, deck)
			assert.Equal(t, tt.wantCompletes, f.completer.CallCount())
			assert.Equal(t, 0, f.repo.createCalls)
			assert.NoError(t, f.sqlMock.ExpectationsWereMet())
		})
	}
}

func TestDeckService_Generate_RateLimitMessage(t *testing.T) {
	t.Parallel()

	f := newDeckServiceFixture(t, mocks.NewMockCompleterWithDefaultCards())
	f.repo.CountCreatedSinceFn = func(context.Context, uuid.UUID, time.Time) (int, error) {
		return 12, nil
	}

	_, err := f.svc.Generate(context.Background(), uuid.New(), validRequest())

	var rateErr *RateLimitError
	require.ErrorAs(t, err, &rateErr)
	assert.Equal(t, testLimit.Max, rateErr.Max)
	assert.Equal(t, time.Hour, rateErr.Window)
}

func TestDeckService_Generate_RateLimitedWhileSaving(t *testing.T) {
	t.Parallel()

	f := newDeckServiceFixture(t, mocks.NewMockCompleterWithDefaultCards())
	userID := uuid.New()

	// A concurrent request committed a deck between the pre-check and the lock.
	f.repo.CountCreatedSinceFn = func(context.Context, uuid.UUID, time.Time) (int, error) {
		if f.repo.countCalls == 1 {
			return testLimit.Max - 1, nil
		}
		return testLimit.Max, nil
	}
	f.users.On("LockForUpdate", mock.Anything, userID).Return(nil).Once()

	f.sqlMock.ExpectBegin()
	f.sqlMock.ExpectRollback()

	deck, err := f.svc.Generate(context.Background(), userID, validRequest())
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Nil(t, deck)
	assert.Equal(t, 0, f.repo.createCalls)
	assert.NoError(t, f.sqlMock.ExpectationsWereMet())
}

func TestDeckService_Generate_PersistFailure(t *testing.T) {
	t.Parallel()

	f := newDeckServiceFixture(t, mocks.NewMockCompleterWithDefaultCards())
	userID := uuid.New()
	dbErr := errors.New("connection reset")

	f.repo.CreateWithCardsFn = func(context.Context, *domain.Deck) error {
		return dbErr
	}
	f.users.On("LockForUpdate", mock.Anything, userID).Return(nil).Once()

	f.sqlMock.ExpectBegin()
	f.sqlMock.ExpectRollback()

	deck, err := f.svc.Generate(context.Background(), userID, validRequest())
	require.Error(t, err)
	assert.Nil(t, deck)
	assert.ErrorIs(t, err, dbErr)

	var svcErr *DeckServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "generate", svcErr.Operation)
	assert.NoError(t, f.sqlMock.ExpectationsWereMet())
}

func TestDeckService_Generate_LockFailure(t *testing.T) {
	t.Parallel()

	f := newDeckServiceFixture(t, mocks.NewMockCompleterWithDefaultCards())
	userID := uuid.New()

	f.users.On("LockForUpdate", mock.Anything, userID).Return(store.ErrUserNotFound).Once()

	f.sqlMock.ExpectBegin()
	f.sqlMock.ExpectRollback()

	_, err := f.svc.Generate(context.Background(), userID, validRequest())
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	assert.Equal(t, 0, f.repo.createCalls)
	f.users.AssertExpectations(t)
}

func TestDeckService_ListDecks(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("returns_summaries", func(t *testing.T) {
		f := newDeckServiceFixture(t, mocks.NewMockCompleterWithDefaultCards())
		summaries := []*domain.DeckSummary{
			{Deck: domain.Deck{ID: uuid.New(), UserID: userID}, CardTotal: 25},
			{Deck: domain.Deck{ID: uuid.New(), UserID: userID}, CardTotal: 10},
		}
		f.repo.ListByUserFn = func(_ context.Context, id uuid.UUID) ([]*domain.DeckSummary, error) {
			assert.Equal(t, userID, id)
			return summaries, nil
		}

		got, err := f.svc.ListDecks(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, summaries, got)
	})

	t.Run("empty", func(t *testing.T) {
		f := newDeckServiceFixture(t, mocks.NewMockCompleterWithDefaultCards())

		got, err := f.svc.ListDecks(context.Background(), userID)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("store_error", func(t *testing.T) {
		f := newDeckServiceFixture(t, mocks.NewMockCompleterWithDefaultCards())
		f.repo.ListByUserFn = func(context.Context, uuid.UUID) ([]*domain.DeckSummary, error) {
			return nil, errors.New("db down")
		}

		got, err := f.svc.ListDecks(context.Background(), userID)
		assert.Nil(t, got)

		var svcErr *DeckServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "list_decks", svcErr.Operation)
	})
}

func TestDeckService_GetDeck(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	deckID := uuid.New()
	owned := &domain.Deck{ID: deckID, UserID: ownerID}

	tests := []struct {
		name     string
		userID   uuid.UUID
		getByID  func(ctx context.Context, id uuid.UUID) (*domain.Deck, error)
		wantDeck *domain.Deck
		wantErr  error
	}{
		{
			name:     "owner",
			userID:   ownerID,
			getByID:  func(context.Context, uuid.UUID) (*domain.Deck, error) { return owned, nil },
			wantDeck: owned,
		},
		{
			name:    "other_user",
			userID:  uuid.New(),
			getByID: func(context.Context, uuid.UUID) (*domain.Deck, error) { return owned, nil },
			wantErr: ErrNotOwned,
		},
		{
			name:    "not_found",
			userID:  ownerID,
			getByID: func(context.Context, uuid.UUID) (*domain.Deck, error) { return nil, store.ErrDeckNotFound },
			wantErr: ErrDeckNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDeckServiceFixture(t, mocks.NewMockCompleterWithDefaultCards())
			f.repo.GetByIDFn = tt.getByID

			deck, err := f.svc.GetDeck(context.Background(), tt.userID, deckID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, deck)
				return
			}
			require.NoError(t, err)
			assert.Same(t, tt.wantDeck, deck)
		})
	}
}

func TestDeckService_DeleteDeck(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	deckID := uuid.New()
	owned := &domain.Deck{ID: deckID, UserID: ownerID}

	tests := []struct {
		name        string
		userID      uuid.UUID
		getByID     func(ctx context.Context, id uuid.UUID) (*domain.Deck, error)
		deleteErr   error
		wantErr     error
		wantDeleted bool
	}{
		{
			name:        "owner_deletes",
			userID:      ownerID,
			getByID:     func(context.Context, uuid.UUID) (*domain.Deck, error) { return owned, nil },
			wantDeleted: true,
		},
		{
			name:    "other_user",
			userID:  uuid.New(),
			getByID: func(context.Context, uuid.UUID) (*domain.Deck, error) { return owned, nil },
			wantErr: ErrNotOwned,
		},
		{
			name:    "missing_deck",
			userID:  ownerID,
			getByID: func(context.Context, uuid.UUID) (*domain.Deck, error) { return nil, store.ErrDeckNotFound },
			wantErr: ErrDeckNotFound,
		},
		{
			name:        "deleted_concurrently",
			userID:      ownerID,
			getByID:     func(context.Context, uuid.UUID) (*domain.Deck, error) { return owned, nil },
			deleteErr:   store.ErrDeckNotFound,
			wantErr:     ErrDeckNotFound,
			wantDeleted: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDeckServiceFixture(t, mocks.NewMockCompleterWithDefaultCards())
			f.repo.GetByIDFn = tt.getByID

			deleted := false
			f.repo.DeleteFn = func(_ context.Context, id uuid.UUID) error {
				assert.Equal(t, deckID, id)
				deleted = true
				return tt.deleteErr
			}

			f.sqlMock.ExpectBegin()
			if tt.wantErr != nil {
				f.sqlMock.ExpectRollback()
			} else {
				f.sqlMock.ExpectCommit()
			}

			err := f.svc.DeleteDeck(context.Background(), tt.userID, deckID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantDeleted, deleted)
			assert.NoError(t, f.sqlMock.ExpectationsWereMet())
		})
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "ñññ…", truncate(strings.Repeat("ñ", 5), 3))
}

// countCreatedSince models the store's window query over a fixed set of
// deck creation times.
func countCreatedSince(createdAt []time.Time) func(context.Context, uuid.UUID, time.Time) (int, error) {
	return func(_ context.Context, _ uuid.UUID, since time.Time) (int, error) {
		n := 0
		for _, at := range createdAt {
			if !at.Before(since) {
				n++
			}
		}
		return n, nil
	}
}

func TestDeckService_Generate_RateLimitWindow(t *testing.T) {
	t.Parallel()

	limit := RateLimit{Max: 3, Window: time.Hour}

	tests := []struct {
		name          string
		existing      []time.Time
		wantErr       error
		wantCompletes int
	}{
		{
			name:          "no_previous_decks",
			wantCompletes: 1,
		},
		{
			name: "three_in_last_hour",
			existing: []time.Time{
				fixedNow.Add(-5 * time.Minute),
				fixedNow.Add(-30 * time.Minute),
				fixedNow.Add(-59 * time.Minute),
			},
			wantErr:       ErrRateLimited,
			wantCompletes: 0,
		},
		{
			name: "two_from_two_hours_ago",
			existing: []time.Time{
				fixedNow.Add(-2 * time.Hour),
				fixedNow.Add(-2*time.Hour - 10*time.Minute),
			},
			wantCompletes: 1,
		},
		{
			name: "two_in_window_three_outside",
			existing: []time.Time{
				fixedNow.Add(-10 * time.Minute),
				fixedNow.Add(-50 * time.Minute),
				fixedNow.Add(-61 * time.Minute),
				fixedNow.Add(-3 * time.Hour),
				fixedNow.Add(-24 * time.Hour),
			},
			wantCompletes: 1,
		},
		{
			name: "deck_exactly_at_window_start_counts",
			existing: []time.Time{
				fixedNow.Add(-time.Hour),
				fixedNow.Add(-20 * time.Minute),
				fixedNow.Add(-1 * time.Minute),
			},
			wantErr:       ErrRateLimited,
			wantCompletes: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDeckServiceFixtureWithLimit(t, mocks.NewMockCompleterWithDefaultCards(), limit)
			userID := uuid.New()
			f.repo.CountCreatedSinceFn = countCreatedSince(tt.existing)

			if tt.wantErr == nil {
				f.users.On("LockForUpdate", mock.Anything, userID).Return(nil).Once()
				f.sqlMock.ExpectBegin()
				f.sqlMock.ExpectCommit()
			}

			deck, err := f.svc.Generate(context.Background(), userID, validRequest())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, deck)

				var rateErr *RateLimitError
				require.ErrorAs(t, err, &rateErr)
				assert.Equal(t, 3, rateErr.Max)
				assert.Equal(t, time.Hour, rateErr.Window)
				assert.Equal(t, 0, f.repo.createCalls)
			} else {
				require.NoError(t, err)
				require.NotNil(t, deck)
				assert.Equal(t, 1, f.repo.createCalls)
			}

			assert.Equal(t, tt.wantCompletes, f.completer.CallCount())
			f.users.AssertExpectations(t)
			assert.NoError(t, f.sqlMock.ExpectationsWereMet())
		})
	}
}

func TestDeckService_Generate_FullDeck(t *testing.T) {
	t.Parallel()

	type cardJSON struct {
		Front       string  `json:"front"`
		Back        string  `json:"back"`
		Explanation string  `json:"explanation"`
		Example     *string `json:"example"`
	}
	cards := make([]cardJSON, 25)
	for i := range cards {
		cards[i] = cardJSON{
			Front:       fmt.Sprintf("palabra %02d", i),
			Back:        fmt.Sprintf("word %02d", i),
			Explanation: "common vocabulary",
		}
	}
	raw, err := json.Marshal(cards)
	require.NoError(t, err)

	f := newDeckServiceFixture(t, mocks.NewMockCompleterWithContent("```json\n"+string(raw)+"\n```"))
	userID := uuid.New()
	f.users.On("LockForUpdate", mock.Anything, userID).Return(nil).Once()
	f.sqlMock.ExpectBegin()
	f.sqlMock.ExpectCommit()

	req := validRequest()
	req.DeckType = domain.DeckTypeWords
	req.CardCount = 25

	deck, err := f.svc.Generate(context.Background(), userID, req)
	require.NoError(t, err)

	assert.Equal(t, 25, deck.CardCount)
	require.Len(t, deck.Cards, 25)
	for i, card := range deck.Cards {
		assert.Equal(t, i, card.OrderIndex)
		assert.Equal(t, deck.ID, card.DeckID)
		assert.Equal(t, fmt.Sprintf("palabra %02d", i), card.Front)
		assert.Equal(t, fmt.Sprintf("word %02d", i), card.Back)
		assert.Nil(t, card.Example)
	}

	f.users.AssertExpectations(t)
	assert.NoError(t, f.sqlMock.ExpectationsWereMet())
}
