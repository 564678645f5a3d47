package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ledgerdesk/ledgerdesk/internal/model"
)

// fakeBackend serves the accounts and attendance-requests endpoints from memory.
type fakeBackend struct {
	mu            sync.Mutex
	accounts      []model.Account
	requests      []model.Request
	accountPosts  int
	requestPosts  int
	createMessage string // when set, POST /accounts fails with this message
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/accounts", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeData(w, http.StatusOK, b.accounts)
	})
	mux.HandleFunc("POST /api/accounts", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.accountPosts++
		if b.createMessage != "" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": b.createMessage})
			return
		}
		var in model.AccountInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		a := model.Account{ID: 100 + len(b.accounts), AccountCode: in.AccountCode, Name: in.Name, Type: in.Type, ParentID: in.ParentID}
		b.accounts = append(b.accounts, a)
		writeData(w, http.StatusCreated, a)
	})
	mux.HandleFunc("GET /api/attendance-requests", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		entityID, _ := strconv.Atoi(r.URL.Query().Get("entity_id"))
		out := []model.Request{}
		for _, req := range b.requests {
			if string(req.EntityType) == r.URL.Query().Get("entity_type") && req.EntityID == entityID {
				out = append(out, req)
			}
		}
		writeData(w, http.StatusOK, out)
	})
	mux.HandleFunc("GET /api/attendance-requests/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if req, ok := b.findRequest(r.PathValue("id")); ok {
			writeData(w, http.StatusOK, *req)
			return
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"request not found"}`))
	})
	mux.HandleFunc("POST /api/attendance-requests", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.requestPosts++
		var in model.RequestInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		req := model.Request{
			ID:         len(b.requests) + 1,
			EntityType: in.EntityType,
			EntityID:   in.EntityID,
			Kind:       in.Kind,
			Reason:     in.Reason,
			Status:     model.StatusPending,
		}
		b.requests = append(b.requests, req)
		writeData(w, http.StatusCreated, req)
	})
	mux.HandleFunc("POST /api/attendance-requests/{id}/{decision}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		req, ok := b.findRequest(r.PathValue("id"))
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var body struct {
			Note string `json:"note"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		req.Status = model.StatusApproved
		if r.PathValue("decision") == "reject" {
			req.Status = model.StatusRejected
		}
		req.DecisionNote = body.Note
		writeData(w, http.StatusOK, *req)
	})
	return mux
}

func (b *fakeBackend) findRequest(raw string) (*model.Request, bool) {
	id, _ := strconv.Atoi(raw)
	for i := range b.requests {
		if b.requests[i].ID == id {
			return &b.requests[i], true
		}
	}
	return nil, false
}

func writeData(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"data": v})
}

func sampleAccounts() []model.Account {
	return []model.Account{
		{ID: 1, AccountCode: "1", Name: "Assets", Type: model.AccountTypeSynthetic},
		{ID: 2, AccountCode: "1.1", Name: "Current Assets", Type: model.AccountTypeSynthetic, ParentID: model.IntPtr(1)},
		{ID: 3, AccountCode: "1.1.1", Name: "Cash", Type: model.AccountTypeAnalytical, ParentID: model.IntPtr(2)},
		{ID: 4, AccountCode: "2", Name: "Liabilities", Type: model.AccountTypeSynthetic},
	}
}

// env is a fake backend plus a config path in a temp dir.
type env struct {
	backend *fakeBackend
	url     string
	dir     string
	cfgPath string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	b := &fakeBackend{accounts: sampleAccounts()}
	srv := httptest.NewServer(b.handler())
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	return &env{backend: b, url: srv.URL + "/api", dir: dir, cfgPath: filepath.Join(dir, "ledgerdesk.yaml")}
}

// run executes the CLI in-process against the fake backend.
func (e *env) run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer

	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", e.cfgPath, "--api-url", e.url, "--log-level", "error"}, args...))
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func (e *env) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, errOut, err := e.run(t, args...)
	require.NoError(t, err, "stderr: %s", errOut)
	return out
}
