//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lingodeck/internal/domain"
	"github.com/phrazzld/lingodeck/internal/platform/postgres"
	"github.com/phrazzld/lingodeck/internal/store"
	"github.com/phrazzld/lingodeck/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeckStoreIntegration(t *testing.T) {
	t.Parallel()

	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx, cancel := context.WithTimeout(context.Background(), testdb.TestTimeout)
		defer cancel()

		decks := postgres.NewPostgresDeckStore(tx, nil)
		userID := testdb.MustInsertUser(ctx, t, tx, "deck_owner")

		deck := testDeck(t)
		deck.UserID = userID
		require.NoError(t, decks.CreateWithCards(ctx, deck))

		got, err := decks.GetByID(ctx, deck.ID)
		require.NoError(t, err)
		assert.Equal(t, deck.Name, got.Name)
		require.NotNil(t, got.TopicContext)
		assert.Equal(t, "travel", *got.TopicContext)
		require.Len(t, got.Cards, 2)
		assert.Equal(t, "hello", got.Cards[0].Front)
		assert.Equal(t, "goodbye", got.Cards[1].Front)
		assert.Nil(t, got.Cards[1].Explanation)

		count, err := decks.CountCreatedSince(ctx, userID, time.Now().Add(-time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		summaries, err := decks.ListByUser(ctx, userID)
		require.NoError(t, err)
		require.Len(t, summaries, 1)
		assert.Equal(t, 2, summaries[0].CardTotal)

		require.NoError(t, decks.Delete(ctx, deck.ID))
		_, err = decks.GetByID(ctx, deck.ID)
		assert.ErrorIs(t, err, store.ErrDeckNotFound)

		var orphanCards int
		require.NoError(t, tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM cards WHERE deck_id = $1`, deck.ID).Scan(&orphanCards))
		assert.Zero(t, orphanCards, "cards should cascade with their deck")

		assert.ErrorIs(t, decks.Delete(ctx, deck.ID), store.ErrDeckNotFound)
	})
}

func TestDeckStoreIntegration_ListNewestFirst(t *testing.T) {
	t.Parallel()

	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		decks := postgres.NewPostgresDeckStore(tx, nil)
		userID := testdb.MustInsertUser(ctx, t, tx, "list_owner")

		base := time.Now().UTC().Add(-time.Hour)
		for i, deckType := range []domain.DeckType{domain.DeckTypeWords, domain.DeckTypePhrases} {
			deck := testDeck(t)
			deck.UserID = userID
			deck.DeckType = deckType
			deck.CreatedAt = base.Add(time.Duration(i) * time.Minute)
			deck.UpdatedAt = deck.CreatedAt
			require.NoError(t, decks.CreateWithCards(ctx, deck))
		}

		summaries, err := decks.ListByUser(ctx, userID)
		require.NoError(t, err)
		require.Len(t, summaries, 2)
		assert.Equal(t, domain.DeckTypePhrases, summaries[0].DeckType)

		others, err := decks.ListByUser(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, others)
	})
}

func TestDeckStoreIntegration_CountCreatedSinceWindow(t *testing.T) {
	t.Parallel()

	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		decks := postgres.NewPostgresDeckStore(tx, nil)
		userID := testdb.MustInsertUser(ctx, t, tx, "window_owner")
		now := time.Now().UTC()

		insertAt := func(at time.Time) {
			deck := testDeck(t)
			deck.UserID = userID
			deck.CreatedAt = at
			deck.UpdatedAt = at
			require.NoError(t, decks.CreateWithCards(ctx, deck))
		}

		insertAt(now.Add(-2 * time.Hour))
		insertAt(now.Add(-2*time.Hour - 5*time.Minute))

		count, err := decks.CountCreatedSince(ctx, userID, now.Add(-time.Hour))
		require.NoError(t, err)
		assert.Zero(t, count, "decks older than the window should not count")

		insertAt(now.Add(-10 * time.Minute))

		count, err = decks.CountCreatedSince(ctx, userID, now.Add(-time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		count, err = decks.CountCreatedSince(ctx, userID, now.Add(-3*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 3, count)

		count, err = decks.CountCreatedSince(ctx, uuid.New(), now.Add(-3*time.Hour))
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestUserStoreIntegration(t *testing.T) {
	t.Parallel()

	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		users := postgres.NewPostgresUserStore(tx, nil)
		subject := "user_" + uuid.NewString()

		first, err := users.GetOrCreateByExternalID(ctx, subject)
		require.NoError(t, err)
		second, err := users.GetOrCreateByExternalID(ctx, subject)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID, "the same subject should resolve to one user")

		got, err := users.GetByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, subject, got.ExternalID)

		require.NoError(t, users.LockForUpdate(ctx, first.ID))
		assert.ErrorIs(t, users.LockForUpdate(ctx, uuid.New()), store.ErrUserNotFound)
	})
}
