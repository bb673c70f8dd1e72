// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/fia-offline-sync/internal/adapter"
	"github.com/MKhiriev/fia-offline-sync/internal/config"
	"github.com/MKhiriev/fia-offline-sync/internal/logger"
	"github.com/MKhiriev/fia-offline-sync/internal/mock"
	"github.com/MKhiriev/fia-offline-sync/internal/netstate"
	"github.com/MKhiriev/fia-offline-sync/internal/store"
	"github.com/MKhiriev/fia-offline-sync/models"
)

func rec(id string, fields string) models.Record {
	payload := fmt.Sprintf(`{"id":%q%s}`, id, fields)
	return models.Record{ID: id, Payload: json.RawMessage(payload)}
}

// newTestSyncSvc builds a coordinator over mocks with an empty outbox.
func newTestSyncSvc(
	t *testing.T,
	ctrl *gomock.Controller,
	online bool,
	cfg config.ClientWorkers,
) (
	*clientSyncService,
	*mock.MockLocalStorage,
	*mock.MockRemoteAdapter,
	*netstate.Monitor,
) {
	t.Helper()
	local := mock.NewMockLocalStorage(ctrl)
	remote := mock.NewMockRemoteAdapter(ctrl)
	monitor := netstate.NewMonitor(online, logger.Nop())

	local.EXPECT().CountOutbox(gomock.Any()).Return(0, nil)
	svc := newClientSyncService(context.Background(), local, remote, monitor, cfg, logger.Nop())
	t.Cleanup(svc.Close)

	return svc, local, remote, monitor
}

// ── write paths ─────────────────────────────────────────────────────────────

func TestClientSyncService_Add_OnlineWritesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, local, remote, _ := newTestSyncSvc(t, ctrl, true, config.ClientWorkers{})
	ctx := context.Background()
	r := rec("t1", `,"amount":500`)

	gomock.InOrder(
		local.EXPECT().Put(ctx, models.StoreTransactions, r).Return(nil),
		remote.EXPECT().UpsertBatch(ctx, models.StoreTransactions, []models.Record{r}).Return(nil),
	)

	got, err := svc.Add(ctx, models.StoreTransactions, r)
	require.NoError(t, err)
	assert.Equal(t, r, got)
	assert.Zero(t, svc.State().PendingCount)
}

func TestClientSyncService_Add_OfflineQueues(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, local, _, _ := newTestSyncSvc(t, ctrl, false, config.ClientWorkers{})
	ctx := context.Background()
	r := rec("t1", `,"amount":500`)

	var queued models.OutboxEntry
	gomock.InOrder(
		local.EXPECT().Put(ctx, models.StoreTransactions, r).Return(nil),
		local.EXPECT().EnqueueOutbox(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e models.OutboxEntry) error {
			queued = e
			return nil
		}),
		local.EXPECT().CountOutbox(ctx).Return(1, nil),
	)

	_, err := svc.Add(ctx, models.StoreTransactions, r)
	require.NoError(t, err)

	assert.Equal(t, models.StoreTransactions, queued.Table)
	assert.Equal(t, models.ActionCreate, queued.Action)
	assert.Equal(t, models.FullRecord{Record: r}, queued.Data)
	assert.Equal(t, models.OutboxEntryID(models.StoreTransactions, "t1", queued.Timestamp), queued.ID)
	assert.Equal(t, 1, svc.State().PendingCount)
}

func TestClientSyncService_Update_OfflineUsesUpdateAction(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, local, _, _ := newTestSyncSvc(t, ctrl, false, config.ClientWorkers{})
	ctx := context.Background()
	r := rec("a1", `,"status":"Completed"`)

	local.EXPECT().Put(ctx, models.StoreAudits, r).Return(nil)
	local.EXPECT().EnqueueOutbox(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e models.OutboxEntry) error {
		assert.Equal(t, models.ActionUpdate, e.Action)
		return nil
	})
	local.EXPECT().CountOutbox(ctx).Return(1, nil)

	_, err := svc.Update(ctx, models.StoreAudits, r)
	require.NoError(t, err)
}

func TestClientSyncService_Delete_OfflineQueuesIDOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, local, _, _ := newTestSyncSvc(t, ctrl, false, config.ClientWorkers{})
	ctx := context.Background()

	local.EXPECT().Delete(ctx, models.StoreComplaints, "c1").Return(nil)
	local.EXPECT().EnqueueOutbox(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e models.OutboxEntry) error {
		assert.Equal(t, models.ActionDelete, e.Action)
		assert.Equal(t, models.IDOnly{ID: "c1"}, e.Data)
		return nil
	})
	local.EXPECT().CountOutbox(ctx).Return(1, nil)

	require.NoError(t, svc.Delete(ctx, models.StoreComplaints, "c1"))
}

func TestClientSyncService_Delete_OnlineWritesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, local, remote, _ := newTestSyncSvc(t, ctrl, true, config.ClientWorkers{})
	ctx := context.Background()

	gomock.InOrder(
		local.EXPECT().Delete(ctx, models.StoreComplaints, "c1").Return(nil),
		remote.EXPECT().DeleteBatch(ctx, models.StoreComplaints, []string{"c1"}).Return(nil),
	)

	require.NoError(t, svc.Delete(ctx, models.StoreComplaints, "c1"))
}

func TestClientSyncService_WriteThroughFailure(t *testing.T) {
	tests := []struct {
		name      string
		remoteErr error
		queued    bool
		wantErr   error
	}{
		{"server error is queued", fmt.Errorf("%w: boom", adapter.ErrInternalServerError), true, ErrRemoteUnavailable},
		{"offline body is queued", adapter.ErrOffline, true, ErrRemoteUnavailable},
		{"transport error is queued", fmt.Errorf("%w: dial", adapter.ErrTransport), true, ErrRemoteUnavailable},
		{"bad request is only surfaced", fmt.Errorf("%w: invalid", adapter.ErrBadRequest), false, ErrRejectedByRemote},
		{"unauthorized is only surfaced", adapter.ErrUnauthorized, false, ErrSessionRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, local, remote, _ := newTestSyncSvc(t, ctrl, true, config.ClientWorkers{})
			ctx := context.Background()
			r := rec("t1", "")

			local.EXPECT().Put(ctx, models.StoreTransactions, r).Return(nil)
			remote.EXPECT().UpsertBatch(ctx, models.StoreTransactions, []models.Record{r}).Return(tt.remoteErr)
			if tt.queued {
				local.EXPECT().EnqueueOutbox(ctx, gomock.Any()).Return(nil)
				local.EXPECT().CountOutbox(ctx).Return(1, nil)
			}

			_, err := svc.Add(ctx, models.StoreTransactions, r)
			assert.ErrorIs(t, err, ErrWriteThroughFailed)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, tt.remoteErr)
		})
	}
}

func TestClientSyncService_LocalWriteFailureSkipsRemote(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, local, _, _ := newTestSyncSvc(t, ctrl, true, config.ClientWorkers{})
	ctx := context.Background()

	local.EXPECT().Put(ctx, models.StoreAudits, gomock.Any()).Return(store.ErrStorageWrite)

	_, err := svc.Add(ctx, models.StoreAudits, rec("a1", ""))
	assert.ErrorIs(t, err, ErrLocalWriteFailed)
	assert.ErrorIs(t, err, store.ErrStorageWrite)
}

func TestClientSyncService_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _, _ := newTestSyncSvc(t, ctrl, true, config.ClientWorkers{})
	ctx := context.Background()

	_, err := svc.Add(ctx, "outbox", rec("x", ""))
	assert.ErrorIs(t, err, models.ErrUnknownStore)

	_, err = svc.Update(ctx, models.StoreAudits, models.Record{})
	assert.ErrorIs(t, err, ErrValidationEmptyRecordID)

	assert.ErrorIs(t, svc.Delete(ctx, models.StoreAudits, ""), ErrValidationEmptyRecordID)

	_, err = svc.GetAll(ctx, "pendingSync")
	assert.ErrorIs(t, err, models.ErrUnknownStore)
}

func TestClientSyncService_RejectsInvalidPayloadBeforeLocalWrite(t *testing.T) {
	tests := []struct {
		name   string
		record models.Record
	}{
		{name: "not a json object", record: models.Record{ID: "bad", Payload: json.RawMessage("not json")}},
		{name: "json array", record: models.Record{ID: "bad", Payload: json.RawMessage(`[{"id":"bad"}]`)}},
		{name: "payload id differs", record: models.Record{ID: "t1", Payload: json.RawMessage(`{"id":"t2"}`)}},
		{name: "payload without id", record: models.Record{ID: "t1", Payload: json.RawMessage(`{"amount":1}`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, online := range []bool{true, false} {
				ctrl := gomock.NewController(t)
				// Put, EnqueueOutbox and UpsertBatch are not expected.
				svc, _, _, _ := newTestSyncSvc(t, ctrl, online, config.ClientWorkers{})

				_, err := svc.Add(context.Background(), models.StoreTransactions, tt.record)
				assert.ErrorIs(t, err, ErrValidationInvalidPayload)

				_, err = svc.Update(context.Background(), models.StoreTransactions, tt.record)
				assert.ErrorIs(t, err, ErrValidationInvalidPayload)
				assert.Zero(t, svc.State().PendingCount)
			}
		})
	}
}

func TestClientSyncService_AcceptsRecordWithoutPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, local, _, _ := newTestSyncSvc(t, ctrl, false, config.ClientWorkers{})
	ctx := context.Background()
	r := models.Record{ID: "a1"}

	local.EXPECT().Put(ctx, models.StoreAudits, r).Return(nil)
	local.EXPECT().EnqueueOutbox(ctx, gomock.Any()).Return(nil)
	local.EXPECT().CountOutbox(ctx).Return(1, nil)

	_, err := svc.Add(ctx, models.StoreAudits, r)
	require.NoError(t, err)
	assert.Equal(t, 1, svc.State().PendingCount)
}

func TestClientSyncService_OutboxStampsStrictlyIncrease(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, local, _, _ := newTestSyncSvc(t, ctrl, false, config.ClientWorkers{})
	ctx := context.Background()

	frozen := time.Unix(1700000000, 0)
	svc.now = func() time.Time { return frozen }

	var stamps []time.Time
	local.EXPECT().Put(ctx, models.StoreTransactions, gomock.Any()).Return(nil).Times(3)
	local.EXPECT().EnqueueOutbox(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e models.OutboxEntry) error {
		stamps = append(stamps, e.Timestamp)
		return nil
	}).Times(3)
	local.EXPECT().CountOutbox(ctx).Return(1, nil).Times(3)

	for i := 0; i < 3; i++ {
		_, err := svc.Update(ctx, models.StoreTransactions, rec("t1", fmt.Sprintf(`,"amount":%d`, i)))
		require.NoError(t, err)
	}

	require.Len(t, stamps, 3)
	assert.True(t, stamps[0].Before(stamps[1]))
	assert.True(t, stamps[1].Before(stamps[2]))
}

// ── reads ───────────────────────────────────────────────────────────────────

func TestClientSyncService_ReadsComeFromLocalStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, local, _, _ := newTestSyncSvc(t, ctrl, true, config.ClientWorkers{})
	ctx := context.Background()

	local.EXPECT().GetAll(ctx, models.StoreAudits).Return([]models.Record{rec("a1", "")}, nil)
	local.EXPECT().GetByID(ctx, models.StoreAudits, "a2").Return(models.Record{}, store.ErrRecordNotFound)

	all, err := svc.GetAll(ctx, models.StoreAudits)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = svc.GetByID(ctx, models.StoreAudits, "a2")
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
}

// ── refresh ─────────────────────────────────────────────────────────────────

func TestClientSyncService_Refresh(t *testing.T) {
	t.Run("offline", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, _, _, _ := newTestSyncSvc(t, ctrl, false, config.ClientWorkers{})
		assert.ErrorIs(t, svc.Refresh(context.Background(), models.StoreAudits), ErrOffline)
	})

	t.Run("pending changes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, local, _, _ := newTestSyncSvc(t, ctrl, true, config.ClientWorkers{})
		ctx := context.Background()

		local.EXPECT().DrainOutbox(ctx).Return([]models.OutboxEntry{
			models.NewOutboxEntry(models.StoreAudits, models.ActionCreate, rec("a1", ""), time.Now()),
		}, nil)

		assert.ErrorIs(t, svc.Refresh(ctx, models.StoreAudits), ErrPendingChanges)
	})

	t.Run("replaces local copy", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, local, remote, _ := newTestSyncSvc(t, ctrl, true, config.ClientWorkers{})
		ctx := context.Background()
		remoteRecords := []models.Record{rec("c1", ""), rec("c2", "")}

		local.EXPECT().DrainOutbox(ctx).Return([]models.OutboxEntry{
			models.NewOutboxEntry(models.StoreAudits, models.ActionCreate, rec("a1", ""), time.Now()),
		}, nil)
		remote.EXPECT().FetchAll(gomock.Any(), models.StoreComplaints).
			DoAndReturn(func(ctx context.Context, _ models.StoreName) ([]models.Record, error) {
				assert.True(t, adapter.FreshReadRequired(ctx))
				return remoteRecords, nil
			})
		local.EXPECT().ReplaceAll(ctx, models.StoreComplaints, remoteRecords).Return(nil)

		require.NoError(t, svc.Refresh(ctx, models.StoreComplaints))
	})

	t.Run("stored copy leaves local store untouched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, local, remote, _ := newTestSyncSvc(t, ctrl, true, config.ClientWorkers{})
		ctx := context.Background()

		local.EXPECT().DrainOutbox(ctx).Return(nil, nil)
		remote.EXPECT().FetchAll(gomock.Any(), models.StoreComplaints).Return(nil, adapter.ErrStaleResponse)
		// ReplaceAll is not expected.

		err := svc.Refresh(ctx, models.StoreComplaints)
		assert.ErrorIs(t, err, adapter.ErrStaleResponse)
		assert.ErrorIs(t, err, ErrRemoteUnavailable)
	})
}

// ── state ───────────────────────────────────────────────────────────────────

func TestClientSyncService_SubscribeSeesTransitions(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _, monitor := newTestSyncSvc(t, ctrl, true, config.ClientWorkers{})

	ch, unsubscribe := svc.Subscribe()
	initial := <-ch
	assert.True(t, initial.Online)

	monitor.SetOnline(false)
	next := <-ch
	assert.False(t, next.Online)
	assert.False(t, svc.State().Online)

	unsubscribe()
	_, open := <-ch
	assert.False(t, open)
	unsubscribe()
}

func TestClientSyncService_CloseDetachesFromConnectivity(t *testing.T) {
	ctrl := gomock.NewController(t)
	local := mock.NewMockLocalStorage(ctrl)
	monitor := netstate.NewMonitor(false, logger.Nop())

	local.EXPECT().CountOutbox(gomock.Any()).Return(3, nil)
	svc := newClientSyncService(context.Background(), local, mock.NewMockRemoteAdapter(ctrl), monitor, config.ClientWorkers{}, logger.Nop())
	svc.Close()

	// No drain may start after Close: the mocks would fail on DrainOutbox.
	monitor.SetOnline(true)
	assert.False(t, svc.State().Online)
}

func TestDescribeError(t *testing.T) {
	assert.Empty(t, DescribeError(nil))
	assert.Contains(t, DescribeError(fmt.Errorf("%w: x", ErrSessionRejected)), "session")
	assert.Contains(t, DescribeError(adapter.ErrOffline), "queued")
	assert.Contains(t, DescribeError(store.ErrStorageUnavailable), "online only")
	assert.Equal(t, "boom", DescribeError(errors.New("boom")))
}
