package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/ymurata/kaiyaku-form/app"
	"github.com/ymurata/kaiyaku-form/config"
	"github.com/ymurata/kaiyaku-form/gateway"
	"github.com/ymurata/kaiyaku-form/model"
	"github.com/ymurata/kaiyaku-form/pdf"
)

// fakeBackend stands in for the remote spreadsheet endpoint and counts the
// calls it receives per action.
type fakeBackend struct {
	mu          sync.Mutex
	calls       map[string]int
	password    string
	settings    model.Settings
	submissions []model.Submission
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		calls:    map[string]int{},
		password: "secret",
		settings: model.DefaultSettings(),
	}
}

func (b *fakeBackend) count(action string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[action]
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		b.mu.Lock()
		b.calls["getSettings"]++
		b.mu.Unlock()
		json.NewEncoder(w).Encode(b.settings)
		return
	}

	var body struct {
		Action   string         `json:"action"`
		Password string         `json:"password"`
		Data     map[string]any `json:"data"`
	}
	json.NewDecoder(r.Body).Decode(&body)

	b.mu.Lock()
	b.calls[body.Action]++
	b.mu.Unlock()

	switch body.Action {
	case "verifyPassword":
		json.NewEncoder(w).Encode(map[string]bool{"valid": body.Password == b.password})
	case "getSubmissions":
		if body.Password != b.password {
			json.NewEncoder(w).Encode(map[string]string{"error": "invalid password"})
			return
		}
		json.NewEncoder(w).Encode(b.submissions)
	default:
		w.WriteHeader(http.StatusOK)
	}
}

// memStore is an in-memory app.Store so handler tests need no sqlite file.
type memStore struct {
	mu       sync.Mutex
	settings *model.Settings
	sessions map[string]string
	next     int
}

func newMemStore() *memStore {
	return &memStore{sessions: map[string]string{}}
}

func (m *memStore) LoadSettings(ctx context.Context) (model.Settings, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.settings == nil {
		return model.Settings{}, false
	}
	return *m.settings, true
}

func (m *memStore) SaveSettings(ctx context.Context, s model.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = &s
	return nil
}

func (m *memStore) CreateSession(ctx context.Context, password string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	token := fmt.Sprintf("token-%d", m.next)
	m.sessions[token] = password
	return token, nil
}

func (m *memStore) SessionPassword(ctx context.Context, token string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	password, ok := m.sessions[token]
	return password, ok
}

func (m *memStore) DeleteSession(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

type fixture struct {
	backend *fakeBackend
	store   *memStore
	app     app.App
	api     http.Handler
}

func newFixture() (*fixture, func()) {
	backend := newFakeBackend()
	server := httptest.NewServer(backend)

	store := newMemStore()
	a := app.App{
		Gateway: gateway.New(server.URL, store),
		Store:   store,
		Fonts:   pdf.NewFontLoader(),
		Config:  config.Config{},
	}

	return &fixture{
		backend: backend,
		store:   store,
		app:     a,
		api:     apiRouter(a),
	}, server.Close
}

// validPayload fills every field required by the default schema.
func validPayload() model.Submission {
	return model.Submission{
		TenantAddress:     "東京都新宿区1-2-3",
		TenantName:        "山田太郎",
		PropertyName:      "コーポ山田",
		RoomNumber:        "201",
		PropertyAddress:   "東京都杉並区4-5-6",
		ContractorName:    "山田太郎",
		ApplicationDate:   "2026-08-01",
		CancellationDate:  "2026-08-31",
		CancelReason:      "転勤",
		BankName:          "みずほ",
		BranchName:        "新宿",
		AccountNumber:     "1234567",
		AccountHolderKana: "ヤマダタロウ",
		NewPostalCode:     "123-4567",
		NewAddress:        "大阪府大阪市7-8-9",
		PhoneNumber:       "03-1234-5678",
	}
}
