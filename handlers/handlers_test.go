package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DucQuyen199/quanlybongda/models"
	"github.com/DucQuyen199/quanlybongda/services"
	"github.com/go-chi/chi/v5"
)

type stubScheduleService struct {
	view *models.ScheduleView
	list *services.ScheduleList
	err  error

	gotMode  services.UpsertMode
	gotID    string
	gotInput services.UpsertScheduleInput
	gotPage  int
	gotLimit int
}

func (s *stubScheduleService) CreateSchedule(ctx context.Context, input services.UpsertScheduleInput) (*models.ScheduleView, error) {
	return s.UpsertSchedule(ctx, services.UpsertCreate, input)
}

func (s *stubScheduleService) UpdateSchedule(ctx context.Context, scheduleID string, input services.UpsertScheduleInput) (*models.ScheduleView, error) {
	s.gotID = scheduleID
	return s.UpsertSchedule(ctx, services.UpsertUpdate, input)
}

func (s *stubScheduleService) UpsertSchedule(_ context.Context, mode services.UpsertMode, input services.UpsertScheduleInput) (*models.ScheduleView, error) {
	s.gotMode = mode
	s.gotInput = input
	return s.view, s.err
}

func (s *stubScheduleService) GetSchedule(_ context.Context, scheduleID string) (*models.ScheduleView, error) {
	s.gotID = scheduleID
	return s.view, s.err
}

func (s *stubScheduleService) ListSchedules(_ context.Context, page, limit int) (*services.ScheduleList, error) {
	s.gotPage, s.gotLimit = page, limit
	return s.list, s.err
}

func (s *stubScheduleService) DeleteSchedule(_ context.Context, scheduleID string) error {
	s.gotID = scheduleID
	return s.err
}

func newTestRouter(svc services.ScheduleService) http.Handler {
	h := NewScheduleHandler(svc)
	r := chi.NewRouter()
	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)
	r.Get("/api/lichtd", h.ListHandler)
	r.Post("/api/lichtd", h.CreateHandler)
	r.Get("/api/lichtd/{scheduleID}", h.GetByIDHandler)
	r.Put("/api/lichtd/{scheduleID}", h.UpdateHandler)
	r.Delete("/api/lichtd/{scheduleID}", h.DeleteHandler)
	return r
}

func sampleView() *models.ScheduleView {
	match, home, away := "TRAN600123", "TEAM001", "TEAM002"
	return &models.ScheduleView{
		ID:           "L001",
		TournamentID: "GD001",
		MatchID:      &match,
		HomeTeamID:   &home,
		AwayTeamID:   &away,
		DateString:   "2024-05-01",
	}
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	decoded := map[string]interface{}{}
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("response is not a JSON object: %v\n%s", err, rec.Body.String())
	}
	return rec, decoded
}

func TestCreateHandler(t *testing.T) {
	svc := &stubScheduleService{view: sampleView()}
	body := `{"maLich":"L001","maGiaiDau":"GD001","ngayThiDau":"2024-05-01","maDoiNha":"TEAM001","maDoiKhach":"TEAM002","banThangDoiNha":0}`

	rec, resp := do(t, newTestRouter(svc), http.MethodPost, "/api/lichtd", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if svc.gotMode != services.UpsertCreate || svc.gotInput.ScheduleID != "L001" {
		t.Fatalf("service got %s %+v", svc.gotMode, svc.gotInput)
	}
	if svc.gotInput.HomeScore == nil || *svc.gotInput.HomeScore != 0 {
		t.Fatalf("zero score lost: %v", svc.gotInput.HomeScore)
	}
	data, ok := resp["data"].(map[string]interface{})
	if !ok || data["maLich"] != "L001" || data["maTran"] != "TRAN600123" || data["ngayThiDau"] != "2024-05-01" {
		t.Fatalf("unexpected body %v", resp)
	}
}

func TestCreateHandlerRejectsBadJSON(t *testing.T) {
	cases := map[string]string{
		"unknown field": `{"maLich":"L001","extra":1}`,
		"wrong type":    `{"maLich":"L001","banThangDoiNha":"two"}`,
		"empty body":    ``,
		"two values":    `{"maLich":"L001"}{"maLich":"L002"}`,
		"broken":        `{"maLich":`,
	}
	for name, body := range cases {
		svc := &stubScheduleService{view: sampleView()}
		req := httptest.NewRequest(http.MethodPost, "/api/lichtd", strings.NewReader(body))
		rec := httptest.NewRecorder()
		newTestRouter(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d", name, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"reason": "MalformedRequest"`) {
			t.Fatalf("%s: body %s", name, rec.Body.String())
		}
		if svc.gotMode != "" {
			t.Fatalf("%s: service should not be called", name)
		}
	}
}

func TestServiceErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		kind   string
		reason string
	}{
		{fmt.Errorf("%w: GD404", services.ErrTournamentNotFound), http.StatusNotFound, "NotFound", "Tournament"},
		{services.ErrAwayTeamNotFound, http.StatusNotFound, "NotFound", "AwayTeam"},
		{services.ErrDuplicateScheduleID, http.StatusConflict, "Conflict", "DuplicateScheduleId"},
		{services.ErrSameTeam, http.StatusBadRequest, "InvalidArgument", "SameTeam"},
		{services.ErrUnresolvableMatchReference, http.StatusBadRequest, "InvalidArgument", "UnresolvableMatchReference"},
		{services.ErrDanglingReference, http.StatusBadRequest, "InvalidArgument", "DanglingReference"},
		{errors.New("connection reset"), http.StatusInternalServerError, "Internal", "Internal"},
	}
	for _, tc := range cases {
		svc := &stubScheduleService{err: tc.err}
		rec, resp := do(t, newTestRouter(svc), http.MethodPost, "/api/lichtd", `{"maLich":"L001"}`)
		if rec.Code != tc.status {
			t.Fatalf("%v: status = %d, want %d", tc.err, rec.Code, tc.status)
		}
		if resp["errorKind"] != tc.kind || resp["reason"] != tc.reason {
			t.Fatalf("%v: body %v", tc.err, resp)
		}
		if tc.kind == "Internal" && strings.Contains(rec.Body.String(), "connection reset") {
			t.Fatalf("internal error leaked to client: %s", rec.Body.String())
		}
	}
}

func TestUpdateHandlerUsesPathID(t *testing.T) {
	svc := &stubScheduleService{view: sampleView()}
	rec, resp := do(t, newTestRouter(svc), http.MethodPut, "/api/lichtd/L001", `{"banThangDoiNha":2,"banThangDoiKhach":1,"trangThai":"finished"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if svc.gotMode != services.UpsertUpdate || svc.gotID != "L001" {
		t.Fatalf("service got %s %q", svc.gotMode, svc.gotID)
	}
	if svc.gotInput.Status == nil || *svc.gotInput.Status != "finished" {
		t.Fatalf("status not forwarded: %+v", svc.gotInput)
	}
	if resp["message"] != "Schedule updated successfully." {
		t.Fatalf("body %v", resp)
	}
}

func TestGetByIDHandler(t *testing.T) {
	svc := &stubScheduleService{view: sampleView()}
	rec, resp := do(t, newTestRouter(svc), http.MethodGet, "/api/lichtd/L001", "")
	if rec.Code != http.StatusOK || resp["maLich"] != "L001" || svc.gotID != "L001" {
		t.Fatalf("status %d body %v", rec.Code, resp)
	}

	svc = &stubScheduleService{err: services.ErrScheduleNotFound}
	rec, resp = do(t, newTestRouter(svc), http.MethodGet, "/api/lichtd/L404", "")
	if rec.Code != http.StatusNotFound || resp["reason"] != "Schedule" {
		t.Fatalf("status %d body %v", rec.Code, resp)
	}
}

func TestListHandler(t *testing.T) {
	svc := &stubScheduleService{list: &services.ScheduleList{
		Data: []models.ScheduleView{*sampleView()},
		Meta: services.PageMeta{Page: 2, Limit: 5, Total: 6, TotalPages: 2},
	}}
	rec, resp := do(t, newTestRouter(svc), http.MethodGet, "/api/lichtd?page=2&limit=5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if svc.gotPage != 2 || svc.gotLimit != 5 {
		t.Fatalf("page/limit = %d/%d", svc.gotPage, svc.gotLimit)
	}
	meta, ok := resp["meta"].(map[string]interface{})
	if !ok || meta["totalPages"] != float64(2) {
		t.Fatalf("body %v", resp)
	}

	svc = &stubScheduleService{list: &services.ScheduleList{Data: []models.ScheduleView{}}}
	if rec, _ := do(t, newTestRouter(svc), http.MethodGet, "/api/lichtd", ""); rec.Code != http.StatusOK || svc.gotPage != 1 || svc.gotLimit != 10 {
		t.Fatalf("defaults: status %d page %d limit %d", rec.Code, svc.gotPage, svc.gotLimit)
	}

	for _, query := range []string{"page=abc", "limit=0", "page=-1"} {
		rec, resp := do(t, newTestRouter(&stubScheduleService{}), http.MethodGet, "/api/lichtd?"+query, "")
		if rec.Code != http.StatusBadRequest || resp["errorKind"] != "InvalidArgument" {
			t.Fatalf("%s: status %d body %v", query, rec.Code, resp)
		}
	}
}

func TestDeleteHandler(t *testing.T) {
	svc := &stubScheduleService{}
	rec, resp := do(t, newTestRouter(svc), http.MethodDelete, "/api/lichtd/L001", "")
	if rec.Code != http.StatusOK || svc.gotID != "L001" || resp["message"] != "Schedule deleted successfully." {
		t.Fatalf("status %d body %v", rec.Code, resp)
	}
}

func TestUnknownRouteAndMethod(t *testing.T) {
	rec, resp := do(t, newTestRouter(&stubScheduleService{}), http.MethodGet, "/api/unknown", "")
	if rec.Code != http.StatusNotFound || resp["errorKind"] != "NotFound" {
		t.Fatalf("status %d body %v", rec.Code, resp)
	}
	rec, resp = do(t, newTestRouter(&stubScheduleService{}), http.MethodPatch, "/api/lichtd/L001", "")
	if rec.Code != http.StatusMethodNotAllowed || resp["reason"] != "MethodNotAllowed" {
		t.Fatalf("status %d body %v", rec.Code, resp)
	}
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

func TestHealthz(t *testing.T) {
	rec, resp := do(t, http.HandlerFunc(NewHealthHandler(stubPinger{}).Healthz), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK || resp["status"] != "ok" {
		t.Fatalf("status %d body %v", rec.Code, resp)
	}
	rec, resp = do(t, http.HandlerFunc(NewHealthHandler(stubPinger{err: errors.New("down")}).Healthz), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusServiceUnavailable || resp["status"] != "unavailable" {
		t.Fatalf("status %d body %v", rec.Code, resp)
	}
}
