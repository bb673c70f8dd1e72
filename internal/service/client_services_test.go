// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
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

// ── online-only coordinator ─────────────────────────────────────────────────

func TestOnlineOnly_WritesGoStraightToRemote(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mock.NewMockRemoteAdapter(ctrl)
	monitor := netstate.NewMonitor(true, logger.Nop())
	svc := NewOnlineOnlySyncService(remote, monitor, store.ErrStorageUnavailable, logger.Nop())
	defer svc.Close()
	ctx := context.Background()
	r := rec("t1", "")

	remote.EXPECT().UpsertBatch(ctx, models.StoreTransactions, []models.Record{r}).Return(nil)
	remote.EXPECT().DeleteBatch(ctx, models.StoreTransactions, []string{"t1"}).Return(adapter.ErrOffline)

	_, err := svc.Add(ctx, models.StoreTransactions, r)
	require.NoError(t, err)

	err = svc.Delete(ctx, models.StoreTransactions, "t1")
	assert.ErrorIs(t, err, ErrWriteThroughFailed)
	assert.ErrorIs(t, err, ErrRemoteUnavailable)

	state := svc.State()
	assert.True(t, state.OnlineOnly)
	assert.Zero(t, state.PendingCount)
	assert.ErrorIs(t, state.LastError, store.ErrStorageUnavailable)
}

func TestOnlineOnly_RejectsMismatchedPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	// UpsertBatch is not expected.
	remote := mock.NewMockRemoteAdapter(ctrl)
	svc := NewOnlineOnlySyncService(remote, netstate.NewMonitor(true, logger.Nop()), store.ErrStorageUnavailable, logger.Nop())
	defer svc.Close()

	_, err := svc.Add(context.Background(), models.StoreTransactions, models.Record{ID: "t1", Payload: []byte(`{"id":"t2"}`)})
	assert.ErrorIs(t, err, ErrValidationInvalidPayload)
}

func TestOnlineOnly_ReadsComeFromRemote(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mock.NewMockRemoteAdapter(ctrl)
	svc := NewOnlineOnlySyncService(remote, netstate.NewMonitor(true, logger.Nop()), store.ErrStorageUnavailable, logger.Nop())
	defer svc.Close()
	ctx := context.Background()

	remote.EXPECT().FetchAll(ctx, models.StoreAudits).Return([]models.Record{rec("a1", "")}, nil)
	remote.EXPECT().FetchByID(ctx, models.StoreAudits, "a2").Return(models.Record{}, adapter.ErrNotFound)

	all, err := svc.GetAll(ctx, models.StoreAudits)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = svc.GetByID(ctx, models.StoreAudits, "a2")
	assert.ErrorIs(t, err, store.ErrRecordNotFound)

	require.NoError(t, svc.PerformSync(ctx))
	require.NoError(t, svc.Refresh(ctx, models.StoreAudits))
	assert.ErrorIs(t, svc.Refresh(ctx, "nope"), models.ErrUnknownStore)
}

func TestOnlineOnly_FollowsConnectivity(t *testing.T) {
	ctrl := gomock.NewController(t)
	monitor := netstate.NewMonitor(true, logger.Nop())
	svc := NewOnlineOnlySyncService(mock.NewMockRemoteAdapter(ctrl), monitor, errors.New("disk full"), logger.Nop())

	monitor.SetOnline(false)
	assert.False(t, svc.State().Online)

	svc.Close()
	monitor.SetOnline(true)
	assert.False(t, svc.State().Online)
}

func TestNewClientServices_SelectsCoordinator(t *testing.T) {
	ctrl := gomock.NewController(t)
	monitor := netstate.NewMonitor(false, logger.Nop())
	remote := mock.NewMockRemoteAdapter(ctrl)

	degraded := NewClientServices(context.Background(), nil, store.ErrStorageUnavailable, remote, monitor, config.ClientWorkers{}, logger.Nop())
	defer degraded.SyncService.Close()
	assert.True(t, degraded.SyncService.State().OnlineOnly)
	assert.Equal(t, models.StoreComplaints, degraded.Complaints.Store())

	local := mock.NewMockLocalStorage(ctrl)
	local.EXPECT().CountOutbox(gomock.Any()).Return(2, nil)
	full := NewClientServices(context.Background(), local, nil, remote, monitor, config.ClientWorkers{}, logger.Nop())
	defer full.SyncService.Close()

	state := full.SyncService.State()
	assert.False(t, state.OnlineOnly)
	assert.Equal(t, 2, state.PendingCount)
}

// ── typed collections ───────────────────────────────────────────────────────

func TestCollection_RoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockClientSyncService(ctrl)
	txns := NewCollection[models.Transaction](svc)
	ctx := context.Background()

	var stored models.Record
	svc.EXPECT().Add(ctx, models.StoreTransactions, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ models.StoreName, r models.Record) (models.Record, error) {
			stored = r
			return r, nil
		})

	_, err := txns.Add(ctx, models.Transaction{ID: "t1", Amount: 500, Status: models.TransactionStatus("Pending")})
	require.NoError(t, err)
	assert.Equal(t, "t1", stored.ID)
	assert.JSONEq(t, `{"id":"t1","amount":500,"status":"Pending"}`, string(stored.Payload))

	svc.EXPECT().GetAll(ctx, models.StoreTransactions).Return([]models.Record{stored}, nil)
	svc.EXPECT().GetByID(ctx, models.StoreTransactions, "t1").Return(stored, nil)

	all, err := txns.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, int64(500), all[0].Amount)

	one, err := txns.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "t1", one.ID)
}

func TestCollection_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockClientSyncService(ctrl)
	audits := NewCollection[models.Audit](svc)
	ctx := context.Background()

	_, err := audits.Update(ctx, models.Audit{})
	assert.ErrorIs(t, err, models.ErrEmptyRecordID)

	svc.EXPECT().Delete(ctx, models.StoreAudits, "a1").Return(ErrLocalWriteFailed)
	assert.ErrorIs(t, audits.Delete(ctx, "a1"), ErrLocalWriteFailed)

	svc.EXPECT().GetByID(ctx, models.StoreAudits, "a2").Return(models.Record{}, store.ErrRecordNotFound)
	_, err = audits.Get(ctx, "a2")
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
}

// ── sync job ────────────────────────────────────────────────────────────────

func TestClientSyncJob_DrainsWhilePending(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockClientSyncService(ctrl)
	called := make(chan struct{}, 1)

	svc.EXPECT().State().Return(models.SyncState{Online: true, PendingCount: 2}).AnyTimes()
	svc.EXPECT().PerformSync(gomock.Any()).DoAndReturn(func(context.Context) error {
		select {
		case called <- struct{}{}:
		default:
		}
		return nil
	}).MinTimes(1)

	job := NewClientSyncJob(svc, time.Hour, logger.Nop())
	job.Start(context.Background())

	select {
	case <-called:
	case <-time.After(time.Second):
		t.Fatal("job never called PerformSync")
	}
	job.Stop()
}

func TestClientSyncJob_SkipsWhenIdle(t *testing.T) {
	states := []models.SyncState{
		{Online: false, PendingCount: 3},
		{Online: true, PendingCount: 0},
		{Online: true, PendingCount: 1, OnlineOnly: true},
	}

	for _, st := range states {
		ctrl := gomock.NewController(t)
		svc := mock.NewMockClientSyncService(ctrl)
		svc.EXPECT().State().Return(st).MinTimes(1)

		job := NewClientSyncJob(svc, 5*time.Millisecond, logger.Nop())
		job.Start(context.Background())
		time.Sleep(20 * time.Millisecond)
		job.Stop()
		job.Stop()
		ctrl.Finish()
	}
}
