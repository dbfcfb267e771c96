package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pushpitkamboj/lyftrAI-assignment/internal/config"
	"github.com/pushpitkamboj/lyftrAI-assignment/internal/database"
	"github.com/pushpitkamboj/lyftrAI-assignment/internal/model"
	"github.com/pushpitkamboj/lyftrAI-assignment/internal/repository"
)

func newTestRepo(t *testing.T) repository.MessageRepository {
	t.Helper()

	cfg := &config.Config{Database: config.Database{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "messages.db"),
	}}
	conn := database.NewConn(cfg, zap.NewNop())

	return repository.NewMessageRepository(conn)
}

func newMessage(id, from string, ts time.Time, text string) *model.Message {
	return &model.Message{
		MessageID:  id,
		FromMSISDN: from,
		ToMSISDN:   "+19999999999",
		TS:         ts,
		Text:       &text,
		ReceivedAt: time.Now().UTC(),
	}
}

func mustInsert(t *testing.T, repo repository.MessageRepository, m *model.Message) {
	t.Helper()

	created, err := repo.InsertIfAbsent(context.Background(), m)
	require.NoError(t, err)
	require.True(t, created)
}

func TestMessageRepository_InsertIfAbsent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	created, err := repo.InsertIfAbsent(ctx, newMessage("msg-1", "+1", ts, "first"))
	require.NoError(t, err)
	assert.True(t, created)

	// Redelivery with different text writes nothing; first write wins.
	created, err = repo.InsertIfAbsent(ctx, newMessage("msg-1", "+1", ts, "second"))
	require.NoError(t, err)
	assert.False(t, created)

	messages, total, err := repo.Query(ctx, repository.Filters{}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, messages, 1)
	assert.Equal(t, "first", *messages[0].Text)
}

func TestMessageRepository_QueryOrdering(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// Identical ts, inserted out of id order.
	mustInsert(t, repo, newMessage("b", "+1", ts, "x"))
	mustInsert(t, repo, newMessage("c", "+1", ts, "x"))
	mustInsert(t, repo, newMessage("a", "+1", ts, "x"))
	mustInsert(t, repo, newMessage("d", "+1", ts.Add(-time.Hour), "x"))

	messages, total, err := repo.Query(ctx, repository.Filters{}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)

	var ids []string
	for _, m := range messages {
		ids = append(ids, m.MessageID)
	}
	assert.Equal(t, []string{"d", "a", "b", "c"}, ids)
}

func TestMessageRepository_QueryPaginationCompleteness(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	ids := []string{"m1", "m2", "m3", "m4", "m5", "m6", "m7"}
	for i, id := range ids {
		mustInsert(t, repo, newMessage(id, "+1", base.Add(time.Duration(i%3)*time.Hour), "x"))
	}

	all, total, err := repo.Query(ctx, repository.Filters{}, 100, 0)
	require.NoError(t, err)
	require.Equal(t, int64(7), total)

	var paged []model.Message
	for offset := 0; ; offset += 3 {
		page, pageTotal, err := repo.Query(ctx, repository.Filters{}, 3, offset)
		require.NoError(t, err)
		assert.Equal(t, int64(7), pageTotal)

		paged = append(paged, page...)
		if len(page) < 3 {
			break
		}
	}

	require.Len(t, paged, len(all))
	for i := range all {
		assert.Equal(t, all[i].MessageID, paged[i].MessageID)
	}
}

func TestMessageRepository_QueryFilters(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	mustInsert(t, repo, newMessage("m1", "+1234567890", base, "Hello World"))
	mustInsert(t, repo, newMessage("m2", "+1234567890", base.Add(time.Hour), "50% discount"))
	mustInsert(t, repo, newMessage("m3", "+1987654321", base.Add(2*time.Hour), "other sender"))

	t.Run("from exact match", func(t *testing.T) {
		messages, total, err := repo.Query(ctx,
			repository.Filters{From: "+1234567890"}, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, messages, 2)
	})

	t.Run("since is inclusive", func(t *testing.T) {
		since := base.Add(time.Hour)
		messages, total, err := repo.Query(ctx,
			repository.Filters{Since: &since}, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, messages, 2)
		assert.Equal(t, "m2", messages[0].MessageID)
	})

	t.Run("q is case-insensitive substring", func(t *testing.T) {
		_, total, err := repo.Query(ctx, repository.Filters{Q: "hello w"}, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("q percent is literal", func(t *testing.T) {
		_, total, err := repo.Query(ctx, repository.Filters{Q: "50%"}, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)

		_, total, err = repo.Query(ctx, repository.Filters{Q: "5%t"}, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})

	t.Run("filters compose conjunctively", func(t *testing.T) {
		_, total, err := repo.Query(ctx,
			repository.Filters{From: "+1234567890", Q: "nomatch"}, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})
}

func TestMessageRepository_Aggregate(t *testing.T) {
	t.Run("empty store", func(t *testing.T) {
		repo := newTestRepo(t)

		result, err := repo.Aggregate(context.Background())
		require.NoError(t, err)

		assert.Equal(t, int64(0), result.TotalMessages)
		assert.Equal(t, int64(0), result.SendersCount)
		assert.Empty(t, result.PerSender)
		assert.Nil(t, result.FirstTS)
		assert.Nil(t, result.LastTS)
	})

	t.Run("populated store", func(t *testing.T) {
		repo := newTestRepo(t)
		ctx := context.Background()
		base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

		mustInsert(t, repo, newMessage("m1", "+1", base.Add(time.Hour), "x"))
		mustInsert(t, repo, newMessage("m2", "+1", base.Add(2*time.Hour), "x"))
		mustInsert(t, repo, newMessage("m3", "+2", base, "x"))

		result, err := repo.Aggregate(ctx)
		require.NoError(t, err)

		assert.Equal(t, int64(3), result.TotalMessages)
		assert.Equal(t, int64(2), result.SendersCount)
		assert.Equal(t, []repository.SenderCount{
			{From: "+1", Count: 2},
			{From: "+2", Count: 1},
		}, result.PerSender)

		require.NotNil(t, result.FirstTS)
		require.NotNil(t, result.LastTS)
		assert.True(t, result.FirstTS.Equal(base))
		assert.True(t, result.LastTS.Equal(base.Add(2*time.Hour)))
	})
}

func TestMessageRepository_Ping(t *testing.T) {
	repo := newTestRepo(t)
	assert.NoError(t, repo.Ping(context.Background()))
}
