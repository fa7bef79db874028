package agent_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"github.com/Sidoine1991/agent-position-sub003/internal/api/handlers/http/agent"
	mock_agent "github.com/Sidoine1991/agent-position-sub003/internal/api/handlers/http/agent/mocks"
	"github.com/Sidoine1991/agent-position-sub003/internal/domain"
	"github.com/Sidoine1991/agent-position-sub003/internal/middleware"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func decodeJSON[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json response: %v, body=%s", err, rr.Body.String())
	}
	return out
}

func asAgent(r *http.Request, agentID string) *http.Request {
	return r.WithContext(middleware.WithAgentID(r.Context(), agentID))
}

func syncBody(t *testing.T, agentID string, events ...domain.CheckinEvent) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(domain.SyncRequest{AgentID: agentID, Events: events})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return bytes.NewBuffer(b)
}

func checkin() domain.CheckinEvent {
	return domain.CheckinEvent{
		ClientEventID: uuid.New(),
		AgentID:       "agent-7",
		Kind:          domain.KindCheckin,
		Latitude:      6.3658,
		Longitude:     2.4186,
		CapturedAt:    time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
	}
}

func TestSyncCheckins_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	rec := mock_agent.NewMockReconciler(ctrl)
	h := agent.NewHandler(newTestLogger(), rec, mock_agent.NewMockReferenceProvider(ctrl), 100)

	ev := checkin()
	bad := checkin()
	want := domain.SyncResponse{
		Accepted: []domain.ValidationRecord{{ID: uuid.New(), AgentID: "agent-7", CheckinEventID: ev.ClientEventID, Valid: true, Reason: domain.ReasonOK}},
		Rejected: []domain.Rejection{{ClientEventID: bad.ClientEventID, Code: domain.RejectNoOpenMission, Error: "no open mission for agent", Retryable: true}},
	}
	rec.EXPECT().
		Reconcile(gomock.Any(), "agent-7", []domain.CheckinEvent{ev, bad}).
		Return(want, nil).
		Times(1)

	req := asAgent(httptest.NewRequest(http.MethodPost, "/api/v1/sync/checkins", syncBody(t, "agent-7", ev, bad)), "agent-7")
	rr := httptest.NewRecorder()
	h.SyncCheckins(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d, body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}
	got := decodeJSON[domain.SyncResponse](t, rr)
	if len(got.Accepted) != 1 || got.Accepted[0].CheckinEventID != ev.ClientEventID {
		t.Fatalf("unexpected accepted: %+v", got.Accepted)
	}
	if len(got.Rejected) != 1 || got.Rejected[0].Code != domain.RejectNoOpenMission || !got.Rejected[0].Retryable {
		t.Fatalf("unexpected rejected: %+v", got.Rejected)
	}
}

func TestSyncCheckins_EmptyListsEncodeAsArrays(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	rec := mock_agent.NewMockReconciler(ctrl)
	h := agent.NewHandler(newTestLogger(), rec, mock_agent.NewMockReferenceProvider(ctrl), 100)

	rec.EXPECT().Reconcile(gomock.Any(), "agent-7", gomock.Any()).Return(domain.SyncResponse{}, nil)

	req := asAgent(httptest.NewRequest(http.MethodPost, "/api/v1/sync/checkins", syncBody(t, "agent-7", checkin())), "agent-7")
	rr := httptest.NewRecorder()
	h.SyncCheckins(rr, req)

	if !strings.Contains(rr.Body.String(), `"accepted":[]`) || !strings.Contains(rr.Body.String(), `"rejected":[]`) {
		t.Fatalf("expected empty arrays, body=%s", rr.Body.String())
	}
}

func TestSyncCheckins_BadRequests(t *testing.T) {
	t.Parallel()

	tooMany := make([]domain.CheckinEvent, 3)
	for i := range tooMany {
		tooMany[i] = checkin()
	}

	tests := []struct {
		name    string
		tokenID string
		body    string
		want    int
	}{
		{"no token agent", "", `{"agent_id":"agent-7","events":[]}`, http.StatusUnauthorized},
		{"agent mismatch", "agent-8", syncBody(t, "agent-7", checkin()).String(), http.StatusUnauthorized},
		{"invalid json", "agent-7", `{"agent_id":`, http.StatusBadRequest},
		{"unknown field", "agent-7", `{"agent_id":"agent-7","events":[],"extra":1}`, http.StatusBadRequest},
		{"trailing data", "agent-7", `{"agent_id":"agent-7","events":[]} {}`, http.StatusBadRequest},
		{"empty batch", "agent-7", `{"agent_id":"agent-7","events":[]}`, http.StatusBadRequest},
		{"batch too large", "agent-7", syncBody(t, "agent-7", tooMany...).String(), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			h := agent.NewHandler(newTestLogger(), mock_agent.NewMockReconciler(ctrl), mock_agent.NewMockReferenceProvider(ctrl), 2)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/sync/checkins", strings.NewReader(tt.body))
			if tt.tokenID != "" {
				req = asAgent(req, tt.tokenID)
			}
			rr := httptest.NewRecorder()
			h.SyncCheckins(rr, req)

			if rr.Code != tt.want {
				t.Fatalf("expected %d got %d, body=%s", tt.want, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestSyncCheckins_ServiceError_500(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	rec := mock_agent.NewMockReconciler(ctrl)
	h := agent.NewHandler(newTestLogger(), rec, mock_agent.NewMockReferenceProvider(ctrl), 100)

	rec.EXPECT().Reconcile(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.SyncResponse{}, errors.New("db down"))

	req := asAgent(httptest.NewRequest(http.MethodPost, "/api/v1/sync/checkins", syncBody(t, "agent-7", checkin())), "agent-7")
	rr := httptest.NewRecorder()
	h.SyncCheckins(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", rr.Code)
	}
	if got := decodeJSON[map[string]string](t, rr); got["error"] != "internal error" {
		t.Fatalf("leaked error: %v", got)
	}
}

func TestMyReference(t *testing.T) {
	t.Parallel()

	ref := &domain.ReferenceLocation{AgentID: "agent-7", Latitude: 6.3654, Longitude: 2.4183, ToleranceRadiusMeters: 500}

	tests := []struct {
		name string
		ref  *domain.ReferenceLocation
		err  error
		want int
	}{
		{"configured", ref, nil, http.StatusOK},
		{"absent", nil, nil, http.StatusNotFound},
		{"failure", nil, fmt.Errorf("postgres.Reference.Get: %w", context.DeadlineExceeded), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			prov := mock_agent.NewMockReferenceProvider(ctrl)
			prov.EXPECT().GetReferenceLocation(gomock.Any(), "agent-7").Return(tt.ref, tt.err)

			h := agent.NewHandler(newTestLogger(), mock_agent.NewMockReconciler(ctrl), prov, 100)
			rr := httptest.NewRecorder()
			h.MyReference(rr, asAgent(httptest.NewRequest(http.MethodGet, "/api/v1/agents/me/reference", nil), "agent-7"))

			if rr.Code != tt.want {
				t.Fatalf("expected %d got %d, body=%s", tt.want, rr.Code, rr.Body.String())
			}
			if tt.want == http.StatusOK {
				got := decodeJSON[domain.ReferenceLocation](t, rr)
				if got.ToleranceRadiusMeters != 500 {
					t.Fatalf("unexpected body: %+v", got)
				}
			}
		})
	}
}
