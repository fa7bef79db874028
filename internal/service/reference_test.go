package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sidoine1991/agent-position-sub003/internal/domain"
	"github.com/Sidoine1991/agent-position-sub003/internal/service"
	mock_service "github.com/Sidoine1991/agent-position-sub003/internal/service/mocks"
	mock_postgres "github.com/Sidoine1991/agent-position-sub003/internal/storage/postgres/mocks"
	"github.com/Sidoine1991/agent-position-sub003/pkg/e"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReferenceProvider_CacheHit(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mock_postgres.NewMockReferenceRepository(ctrl)
	cache := mock_service.NewMockReferenceCache(ctrl)

	want := &domain.ReferenceLocation{AgentID: "agent-7", Latitude: 6.3654, Longitude: 2.4183, ToleranceRadiusMeters: 500}
	cache.EXPECT().Get(gomock.Any(), "agent-7").Return(want, true, nil)

	got, err := service.NewReferenceProvider(repo, cache, discardLogger()).GetReferenceLocation(context.Background(), "agent-7")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReferenceProvider_CachedAbsence(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mock_postgres.NewMockReferenceRepository(ctrl)
	cache := mock_service.NewMockReferenceCache(ctrl)

	cache.EXPECT().Get(gomock.Any(), "agent-7").Return(nil, true, nil)

	got, err := service.NewReferenceProvider(repo, cache, discardLogger()).GetReferenceLocation(context.Background(), "agent-7")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestReferenceProvider_MissFillsCache(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mock_postgres.NewMockReferenceRepository(ctrl)
	cache := mock_service.NewMockReferenceCache(ctrl)

	want := &domain.ReferenceLocation{AgentID: "agent-7", ToleranceRadiusMeters: 500}
	gomock.InOrder(
		cache.EXPECT().Get(gomock.Any(), "agent-7").Return(nil, false, nil),
		repo.EXPECT().Get(gomock.Any(), "agent-7").Return(want, nil),
		cache.EXPECT().Set(gomock.Any(), "agent-7", want).Return(nil),
	)

	got, err := service.NewReferenceProvider(repo, cache, discardLogger()).GetReferenceLocation(context.Background(), "agent-7")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReferenceProvider_NotConfiguredIsNil(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mock_postgres.NewMockReferenceRepository(ctrl)
	cache := mock_service.NewMockReferenceCache(ctrl)

	cache.EXPECT().Get(gomock.Any(), "agent-7").Return(nil, false, nil)
	repo.EXPECT().Get(gomock.Any(), "agent-7").Return(nil, e.ErrNotFound)
	cache.EXPECT().Set(gomock.Any(), "agent-7", nil).Return(nil)

	got, err := service.NewReferenceProvider(repo, cache, discardLogger()).GetReferenceLocation(context.Background(), "agent-7")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestReferenceProvider_CacheDownFallsBackToRepo(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mock_postgres.NewMockReferenceRepository(ctrl)
	cache := mock_service.NewMockReferenceCache(ctrl)

	want := &domain.ReferenceLocation{AgentID: "agent-7", ToleranceRadiusMeters: 500}
	cache.EXPECT().Get(gomock.Any(), "agent-7").Return(nil, false, errors.New("dial tcp: refused"))
	repo.EXPECT().Get(gomock.Any(), "agent-7").Return(want, nil)
	cache.EXPECT().Set(gomock.Any(), "agent-7", want).Return(errors.New("dial tcp: refused"))

	got, err := service.NewReferenceProvider(repo, cache, discardLogger()).GetReferenceLocation(context.Background(), "agent-7")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReferenceProvider_RepoError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mock_postgres.NewMockReferenceRepository(ctrl)
	cache := mock_service.NewMockReferenceCache(ctrl)

	cache.EXPECT().Get(gomock.Any(), "agent-7").Return(nil, false, nil)
	repo.EXPECT().Get(gomock.Any(), "agent-7").Return(nil, e.ErrInternal)

	_, err := service.NewReferenceProvider(repo, cache, discardLogger()).GetReferenceLocation(context.Background(), "agent-7")
	assert.ErrorIs(t, err, e.ErrInternal)
}

func TestReferenceAdmin_PutInvalidatesCache(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mock_postgres.NewMockReferenceRepository(ctrl)
	cache := mock_service.NewMockReferenceCache(ctrl)

	req := domain.UpsertReferenceRequest{Latitude: 6.3654, Longitude: 2.4183, ToleranceRadiusMeters: 500}
	gomock.InOrder(
		repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, ref *domain.ReferenceLocation) error {
			assert.Equal(t, "agent-7", ref.AgentID)
			assert.Equal(t, 500.0, ref.ToleranceRadiusMeters)
			return nil
		}),
		cache.EXPECT().Invalidate(gomock.Any(), "agent-7").Return(nil),
	)

	got, err := service.NewReferenceAdmin(repo, cache, discardLogger()).Put(context.Background(), "agent-7", req)
	require.NoError(t, err)
	assert.Equal(t, 6.3654, got.Latitude)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestReferenceAdmin_PutValidation(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mock_postgres.NewMockReferenceRepository(ctrl)
	cache := mock_service.NewMockReferenceCache(ctrl)
	admin := service.NewReferenceAdmin(repo, cache, discardLogger())

	tests := []struct {
		name    string
		agentID string
		req     domain.UpsertReferenceRequest
		wantErr error
	}{
		{"empty agent", "", domain.UpsertReferenceRequest{ToleranceRadiusMeters: 500}, e.ErrInvalidAgentID},
		{"long agent", strings.Repeat("a", 65), domain.UpsertReferenceRequest{ToleranceRadiusMeters: 500}, e.ErrInvalidAgentID},
		{"zero tolerance", "agent-7", domain.UpsertReferenceRequest{Latitude: 6.3, Longitude: 2.4}, e.ErrInvalidInput},
		{"latitude out of range", "agent-7", domain.UpsertReferenceRequest{Latitude: 95, Longitude: 2.4, ToleranceRadiusMeters: 500}, e.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := admin.Put(context.Background(), tt.agentID, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestReferenceAdmin_Delete(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mock_postgres.NewMockReferenceRepository(ctrl)
	cache := mock_service.NewMockReferenceCache(ctrl)
	admin := service.NewReferenceAdmin(repo, cache, discardLogger())

	repo.EXPECT().Delete(gomock.Any(), "agent-7").Return(nil)
	cache.EXPECT().Invalidate(gomock.Any(), "agent-7").Return(errors.New("redis down"))
	require.NoError(t, admin.Delete(context.Background(), "agent-7"))

	repo.EXPECT().Delete(gomock.Any(), "agent-8").Return(e.ErrNotFound)
	assert.ErrorIs(t, admin.Delete(context.Background(), "agent-8"), e.ErrNotFound)
}

func TestNewService_Wires(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	rec := mock_service.NewMockReconciliationService(ctrl)
	refs := mock_service.NewMockReferenceAdminService(ctrl)
	prov := mock_service.NewMockReferenceLocationProvider(ctrl)

	svc := service.NewService(rec, refs, prov)
	assert.Same(t, rec, svc.Reconciliation)
	assert.Same(t, refs, svc.References)
	assert.Same(t, prov, svc.Provider)
}
