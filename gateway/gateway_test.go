package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ymurata/kaiyaku-form/model"
)

type memStore struct {
	settings *model.Settings
	saves    int
}

func (m *memStore) LoadSettings(ctx context.Context) (model.Settings, bool) {
	if m.settings == nil {
		return model.Settings{}, false
	}
	return *m.settings, true
}

func (m *memStore) SaveSettings(ctx context.Context, s model.Settings) error {
	m.settings = &s
	m.saves++
	return nil
}

type call struct {
	Action   string          `json:"action"`
	Password string          `json:"password"`
	Data     json.RawMessage `json:"data"`
}

func TestSubmitPostsSubmitAction(t *testing.T) {
	var received call
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
	}))
	defer server.Close()

	client := New(server.URL, &memStore{})

	s := model.Submission{ContractorName: "山田太郎"}
	require.NoError(t, client.Submit(context.Background(), s))

	assert.Equal(t, "submit", received.Action)
	var data model.Submission
	require.NoError(t, json.Unmarshal(received.Data, &data))
	assert.Equal(t, "山田太郎", data.ContractorName)
}

func TestSubmitUnconfiguredPretendsSuccess(t *testing.T) {
	client := New("", &memStore{})
	assert.NoError(t, client.Submit(context.Background(), model.Submission{}))
}

func TestSubmitTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := New(server.URL, &memStore{})
	assert.Error(t, client.Submit(context.Background(), model.Submission{}))
}

func TestFetchSettingsParsesRemoteRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "getSettings", r.URL.Query().Get("action"))
		json.NewEncoder(w).Encode(model.Settings{
			FieldVisibility: map[string]bool{"remarks": false},
			CancelReasons:   []string{"転勤", "その他"},
		})
	}))
	defer server.Close()

	client := New(server.URL, &memStore{})
	settings := client.FetchSettings(context.Background())

	assert.Equal(t, []string{"転勤", "その他"}, settings.CancelReasons)
	assert.False(t, settings.FieldVisibility["remarks"])
	// Lists absent from the remote record come back as defaults.
	assert.Equal(t, model.DefaultSettings().PhoneTypes, settings.PhoneTypes)
}

func TestFetchSettingsFallsBackToLocalMirror(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	mirrored := model.DefaultSettings()
	mirrored.CancelReasons = []string{"退去"}
	store := &memStore{settings: &mirrored}

	client := New(server.URL, store)
	settings := client.FetchSettings(context.Background())

	assert.Equal(t, []string{"退去"}, settings.CancelReasons)
}

func TestFetchSettingsFallsBackToDefaults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := New(server.URL, &memStore{})
	settings := client.FetchSettings(context.Background())

	assert.Equal(t, model.DefaultSettings(), settings)
}

func TestSaveSettingsMirrorsEvenWhenRemoteFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	store := &memStore{}
	client := New(server.URL, store)

	err := client.SaveSettings(context.Background(), model.Settings{CancelReasons: []string{"退去"}})
	assert.Error(t, err)
	assert.Equal(t, 1, store.saves)
	require.NotNil(t, store.settings)
	assert.Equal(t, []string{"退去"}, store.settings.CancelReasons)
}

func TestVerifyPassword(t *testing.T) {
	valid := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var received call
		json.NewDecoder(r.Body).Decode(&received)
		assert.Equal(t, "verifyPassword", received.Action)
		json.NewEncoder(w).Encode(map[string]bool{"valid": valid})
	}))
	defer server.Close()

	client := New(server.URL, &memStore{})

	assert.False(t, client.VerifyPassword(context.Background(), "nope"))
	valid = true
	assert.True(t, client.VerifyPassword(context.Background(), "correct"))
}

func TestVerifyPasswordFallsBackToDefaultCredential(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := New(server.URL, &memStore{})

	assert.True(t, client.VerifyPassword(context.Background(), DefaultPassword))
	assert.False(t, client.VerifyPassword(context.Background(), "wrong"))
}

func TestVerifyPasswordUnconfigured(t *testing.T) {
	client := New("", &memStore{})

	assert.True(t, client.VerifyPassword(context.Background(), DefaultPassword))
	assert.False(t, client.VerifyPassword(context.Background(), "wrong"))
}

func TestListSubmissions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var received call
		json.NewDecoder(r.Body).Decode(&received)
		assert.Equal(t, "getSubmissions", received.Action)
		assert.Equal(t, "secret", received.Password)
		json.NewEncoder(w).Encode([]model.Submission{
			{ContractorName: "山田太郎"},
			{ContractorName: "佐藤花子"},
		})
	}))
	defer server.Close()

	client := New(server.URL, &memStore{})
	submissions := client.ListSubmissions(context.Background(), "secret")

	// Gateway order is preserved as-is.
	require.Len(t, submissions, 2)
	assert.Equal(t, "山田太郎", submissions[0].ContractorName)
	assert.Equal(t, "佐藤花子", submissions[1].ContractorName)
}

func TestListSubmissionsEmptyOnErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid password"})
	}))
	defer server.Close()

	client := New(server.URL, &memStore{})
	assert.Empty(t, client.ListSubmissions(context.Background(), "wrong"))
}

func TestListSubmissionsEmptyOnTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := New(server.URL, &memStore{})
	assert.Empty(t, client.ListSubmissions(context.Background(), "secret"))
}

func TestListSubmissionsUnconfigured(t *testing.T) {
	client := New("", &memStore{})
	assert.Empty(t, client.ListSubmissions(context.Background(), "secret"))
}

func TestChangePasswordPostsAction(t *testing.T) {
	var received map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
	}))
	defer server.Close()

	client := New(server.URL, &memStore{})
	require.NoError(t, client.ChangePassword(context.Background(), "old", "new1234"))

	assert.Equal(t, "changePassword", received["action"])
	assert.Equal(t, "old", received["currentPassword"])
	assert.Equal(t, "new1234", received["newPassword"])
}
