package publish

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-datagen/internal/models"
	"marketplace-datagen/internal/stats"
)

func TestRedisSnapshot_Publish(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	snap := testSnapshot(t, 5, 3)
	sink := NewRedisSnapshot(client, "test", time.Hour)
	require.NoError(t, sink.Publish(context.Background(), snap))

	latest, err := mr.Get("test:latest_run")
	require.NoError(t, err)
	assert.Equal(t, snap.RunID, latest)
	assert.Equal(t, time.Hour, mr.TTL("test:latest_run"))

	raw, err := mr.Get("test:rfqs")
	require.NoError(t, err)
	var rfqs []models.RFQ
	require.NoError(t, json.Unmarshal([]byte(raw), &rfqs))
	require.Len(t, rfqs, len(snap.RFQs))
	for i := range rfqs {
		assert.Equal(t, snap.RFQs[i].ID, rfqs[i].ID)
		assert.Equal(t, snap.RFQs[i].Budget, rfqs[i].Budget)
	}

	raw, err = mr.Get("test:summary")
	require.NoError(t, err)
	var summary stats.RFQSummary
	require.NoError(t, json.Unmarshal([]byte(raw), &summary))
	assert.Equal(t, 5, summary.Total)

	assert.True(t, mr.Exists("test:suppliers"))
	assert.True(t, mr.Exists("test:supplier_summary"))
}

func TestRedisSnapshot_EmptyCorpusWritesEmptyArrays(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	sink := NewRedisSnapshot(client, "", 0)
	require.NoError(t, sink.Publish(context.Background(), Snapshot{RunID: "empty"}))

	raw, err := mr.Get("datagen:rfqs")
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
	assert.Zero(t, mr.TTL("datagen:rfqs"))
}

func TestRedisSnapshot_StopsBeforeLatestRunOnError(t *testing.T) {
	client, mock := redismock.NewClientMock()

	snap := Snapshot{RunID: "run-9", Summary: stats.RFQSummary{Total: 1}}
	summary, err := json.Marshal(snap.Summary)
	require.NoError(t, err)

	mock.ExpectSet("test:summary", summary, time.Minute).SetErr(errors.New("connection reset"))

	sink := NewRedisSnapshot(client, "test", time.Minute)
	err = sink.Publish(context.Background(), snap)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test:summary")
	assert.NoError(t, mock.ExpectationsWereMet())
}
