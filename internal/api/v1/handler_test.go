package v1

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ankur-mali/carbonaegis-v2.0/internal/store"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := filepath.Join(t.TempDir(), "carbonaegis.db")
	st, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	h := NewHandler(st, nil, 0, t.TempDir())
	r := gin.New()
	api := r.Group("/api")
	h.RegisterRoutes(api)
	return r, st
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSummarizeEmissions(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/emissions/summarize", map[string]any{
		"entries": []map[string]any{
			{"scope": 1, "category": "natural_gas", "amount": 100},
			{"scope": 2, "category": "electricity", "amount": 50},
			{"scope": 3, "category": "business_travel", "amount": 50},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Summary struct {
			TotalByScope   map[string]float64 `json:"totalByScope"`
			GrandTotal     float64            `json:"grandTotal"`
			PercentByScope map[string]float64 `json:"percentByScope"`
			PercentDefined bool               `json:"percentDefined"`
		} `json:"summary"`
		ByCategory map[string]float64 `json:"byCategory"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Summary.GrandTotal != 200 {
		t.Errorf("grand total = %v, want 200", resp.Summary.GrandTotal)
	}
	if !resp.Summary.PercentDefined {
		t.Error("percent should be defined")
	}
	if resp.Summary.PercentByScope["1"] != 0.5 {
		t.Errorf("scope 1 percent = %v, want 0.5", resp.Summary.PercentByScope["1"])
	}
	if resp.ByCategory["electricity"] != 50 {
		t.Errorf("electricity category = %v, want 50", resp.ByCategory["electricity"])
	}
}

func TestSummarizeEmissions_InvalidScope(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/emissions/summarize", map[string]any{
		"entries": []map[string]any{
			{"scope": 4, "category": "other", "amount": 10},
		},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
}

func TestComputeEmissions(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/emissions/compute", map[string]any{
		"activities": []map[string]any{
			{"activity": "natural_gas", "amount": 1000},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Entries []struct {
			Scope    int     `json:"scope"`
			Category string  `json:"category"`
			Amount   float64 `json:"amount"`
		} `json:"entries"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(resp.Entries))
	}
	if resp.Entries[0].Scope != 1 {
		t.Errorf("scope = %d, want 1", resp.Entries[0].Scope)
	}
	if diff := resp.Entries[0].Amount - 2050; diff < -1e-6 || diff > 1e-6 {
		t.Errorf("amount = %v, want 2050", resp.Entries[0].Amount)
	}
}

func TestComputeEmissions_UnknownActivity(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/emissions/compute", map[string]any{
		"activities": []map[string]any{
			{"activity": "teleportation", "amount": 5},
		},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
}

func TestListFactors(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/emissions/factors", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}

	var resp struct {
		Factors []struct {
			Activity string  `json:"activity"`
			Value    float64 `json:"value"`
		} `json:"factors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Factors) == 0 {
		t.Fatal("factor catalog should not be empty")
	}
}

func TestMatchFrameworks(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/frameworks/match", map[string]any{
		"sector":       "finance",
		"revenueBand":  "large",
		"listed":       true,
		"jurisdiction": "Germany",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Matches []struct {
			ID string `json:"id"`
		} `json:"matches"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	found := false
	for _, m := range resp.Matches {
		if m.ID == "CSRD" {
			found = true
		}
	}
	if !found {
		t.Errorf("CSRD should match for a large listed EU organization, got %+v", resp.Matches)
	}
}

func TestMatchFrameworks_IncompleteProfile(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/frameworks/match", map[string]any{
		"sector": "finance",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		MissingField string `json:"missingField"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.MissingField != "revenueBand" {
		t.Errorf("missingField = %q, want revenueBand", resp.MissingField)
	}
}

func TestScoreReadiness(t *testing.T) {
	r, _ := newTestRouter(t)

	answers := map[string]int{
		"env_1": 0, "env_2": 0, "env_3": 0, "env_4": 0,
		"soc_1": 0, "soc_2": 0, "soc_3": 0,
		"gov_1": 0, "gov_2": 0, "gov_3": 0,
	}
	w := doJSON(t, r, http.MethodPost, "/api/readiness/score", map[string]any{"answers": answers})
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		TotalScore int    `json:"totalScore"`
		Level      string `json:"level"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TotalScore != 100 {
		t.Errorf("total score = %d, want 100", resp.TotalScore)
	}
	if resp.Level != "Advanced" {
		t.Errorf("level = %q, want Advanced", resp.Level)
	}
}

func TestAdvisory_NotConfigured(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/advisory/ask", map[string]any{"query": "How to reduce Scope 2?"})
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
}

func TestSnapshotLifecycle(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/snapshots", map[string]any{
		"organizationName":  "Acme GmbH",
		"reportYear":        2025,
		"timePeriod":        "Annually",
		"calculationMethod": "Exact",
		"entries": []map[string]any{
			{"scope": 1, "category": "natural_gas", "amount": 100},
			{"scope": 2, "category": "electricity", "amount": 100},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create snapshot: %d body=%s", w.Code, w.Body.String())
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.ID == "" {
		t.Fatal("snapshot id should not be empty")
	}

	w = doJSON(t, r, http.MethodGet, "/api/snapshots/"+created.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get snapshot: %d body=%s", w.Code, w.Body.String())
	}
	var got struct {
		OrganizationName string  `json:"organizationName"`
		GrandTotal       float64 `json:"grandTotal"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode get response: %v", err)
	}
	if got.OrganizationName != "Acme GmbH" {
		t.Errorf("organization = %q, want Acme GmbH", got.OrganizationName)
	}
	if got.GrandTotal != 200 {
		t.Errorf("grand total = %v, want 200", got.GrandTotal)
	}

	w = doJSON(t, r, http.MethodGet, "/api/snapshots", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list snapshots: %d", w.Code)
	}
	var list struct {
		Snapshots []json.RawMessage `json:"snapshots"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(list.Snapshots) != 1 {
		t.Errorf("snapshots = %d, want 1", len(list.Snapshots))
	}

	w = doJSON(t, r, http.MethodDelete, "/api/snapshots/"+created.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete snapshot: %d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/snapshots/"+created.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("get deleted snapshot: %d, want 404", w.Code)
	}
}

func TestCreateSnapshot_EmptyEntries(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/snapshots", map[string]any{
		"organizationName": "Acme GmbH",
		"reportYear":       2025,
		"entries":          []map[string]any{},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
}

func TestExportAndDownload(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/snapshots", map[string]any{
		"organizationName": "Acme GmbH",
		"reportYear":       2025,
		"entries": []map[string]any{
			{"scope": 1, "category": "natural_gas", "amount": 100},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create snapshot: %d body=%s", w.Code, w.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	w = doJSON(t, r, http.MethodPost, "/api/export", map[string]any{
		"snapshotId": created.ID,
		"preparedBy": "tester",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("export: %d body=%s", w.Code, w.Body.String())
	}
	var exported struct {
		DownloadURL string `json:"downloadUrl"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &exported); err != nil {
		t.Fatalf("decode export response: %v", err)
	}
	if exported.DownloadURL == "" {
		t.Fatal("download url should not be empty")
	}

	w = doJSON(t, r, http.MethodGet, "/api/snapshots/"+created.ID+"/reports", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list reports: %d body=%s", w.Code, w.Body.String())
	}
	var reports struct {
		Reports []struct {
			ReportType string `json:"reportType"`
		} `json:"reports"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &reports); err != nil {
		t.Fatalf("decode reports response: %v", err)
	}
	if len(reports.Reports) != 1 || reports.Reports[0].ReportType != "excel" {
		t.Errorf("unexpected reports: %+v", reports.Reports)
	}

	req := httptest.NewRequest(http.MethodGet, exported.DownloadURL, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("download: %d body=%s", rec.Code, rec.Body.String())
	}
	if rec.Body.Len() == 0 {
		t.Error("downloaded file should not be empty")
	}

	// 令牌一次性，二次下载应失效
	req = httptest.NewRequest(http.MethodGet, exported.DownloadURL, nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second download: %d, want 404", rec.Code)
	}
}

func TestExport_SnapshotNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/export", map[string]any{
		"snapshotId": "no-such-id",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
}

func TestGetStatus(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}

	var resp StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Initialized {
		t.Error("fresh store should not be initialized")
	}
	if resp.AdvisoryEnabled {
		t.Error("advisory should be disabled without api key")
	}
}
