package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/millio-space/guardops/config"
	"github.com/millio-space/guardops/internal/domain/model"
)

func modelIncidentFilter() model.IncidentFilter {
	return model.IncidentFilter{SiteID: "site-1", Status: model.IncidentOpen}
}

func modelIncidentDraft() model.IncidentDraft {
	return model.IncidentDraft{SiteID: "site-1", Title: "broken gate", Severity: model.SeverityHigh}
}

func modelIncidentUpdate() model.IncidentUpdate {
	status := model.IncidentResolved
	return model.IncidentUpdate{Status: &status}
}

func TestLoginFormEncoding(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		require.Equal(t, "g1", r.PostForm.Get("username"))
		require.Equal(t, "pw", r.PostForm.Get("password"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-form","token_type":"bearer"}`))
	}))
	defer ts.Close()

	client, err := NewClient(Config{
		BaseURL:       ts.URL,
		LoginEncoding: config.LoginEncodingForm,
	}, staticTokens{})
	require.NoError(t, err)

	token, err := client.Login(context.Background(), "g1", "pw")
	require.NoError(t, err)
	require.Equal(t, "tok-form", token)
}

func TestLoginJSONEncoding(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "g1", payload["username"])
		require.Equal(t, "pw", payload["password"])
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-json"}`))
	}))
	defer ts.Close()

	client, err := NewClient(Config{
		BaseURL:       ts.URL,
		LoginEncoding: config.LoginEncodingJSON,
	}, staticTokens{})
	require.NoError(t, err)

	token, err := client.Login(context.Background(), "g1", "pw")
	require.NoError(t, err)
	require.Equal(t, "tok-json", token)
}

func TestLoginAcceptsLegacyTokenField(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"tok-legacy"}`))
	}))
	defer ts.Close()

	token, err := newTestClient(t, ts.URL, "").Login(context.Background(), "g1", "pw")
	require.NoError(t, err)
	require.Equal(t, "tok-legacy", token)
}

func TestLoginRejectsTokenlessSuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token_type":"bearer"}`))
	}))
	defer ts.Close()

	_, err := newTestClient(t, ts.URL, "").Login(context.Background(), "g1", "pw")
	require.Error(t, err)
}

func TestCurrentShiftMaps404ToAbsent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/patrol/shifts/current", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"no active shift"}`))
	}))
	defer ts.Close()

	shift, err := newTestClient(t, ts.URL, "abc").CurrentShift(context.Background())
	require.NoError(t, err)
	require.Nil(t, shift)
}

func TestCurrentShiftReturnsActiveShift(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"sh-9","guard_id":"u1","site_id":"site-1","status":"active","started_at":"2026-08-30T08:00:00Z"}`))
	}))
	defer ts.Close()

	shift, err := newTestClient(t, ts.URL, "abc").CurrentShift(context.Background())
	require.NoError(t, err)
	require.NotNil(t, shift)
	require.Equal(t, "sh-9", shift.ID)
	require.True(t, shift.Active())
}

func TestEndShiftPathIncludesID(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/patrol/shifts/sh-9/end", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"sh-9","status":"completed","ended_at":"2026-08-30T16:00:00Z"}`))
	}))
	defer ts.Close()

	shift, err := newTestClient(t, ts.URL, "abc").EndShift(context.Background(), "sh-9")
	require.NoError(t, err)
	require.False(t, shift.Active())
}

func TestCheckpointsFilterBySite(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/patrol/checkpoints/", r.URL.Path)
		require.Equal(t, "site-1", r.URL.Query().Get("site_id"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"cp-1","site_id":"site-1","name":"north gate"}]`))
	}))
	defer ts.Close()

	checkpoints, err := newTestClient(t, ts.URL, "abc").Checkpoints(context.Background(), "site-1")
	require.NoError(t, err)
	require.Len(t, checkpoints, 1)
	require.Equal(t, "north gate", checkpoints[0].Name)
}

func TestTriggerSOSUsesQueryParameters(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/gps/sos", r.URL.Path)
		query := r.URL.Query()
		require.Equal(t, "51.5", query.Get("latitude"))
		require.Equal(t, "-0.12", query.Get("longitude"))
		require.Equal(t, "man down", query.Get("message"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.Empty(t, body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"al-1","status":"active","latitude":51.5,"longitude":-0.12}`))
	}))
	defer ts.Close()

	alert, err := newTestClient(t, ts.URL, "abc").TriggerSOS(context.Background(), 51.5, -0.12, "man down")
	require.NoError(t, err)
	require.Equal(t, "al-1", alert.ID)
	require.Equal(t, model.SOSActive, alert.Status)
}

func TestIncidentFilterValues(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/incidents/", r.URL.Path)
		require.Equal(t, "site-1", r.URL.Query().Get("site_id"))
		require.Equal(t, "open", r.URL.Query().Get("status"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	incidents, err := newTestClient(t, ts.URL, "abc").Incidents(context.Background(), modelIncidentFilter())
	require.NoError(t, err)
	require.Empty(t, incidents)
}

func TestPatrolIncidentsAreASeparateResource(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/patrol/incidents/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"pi-1","title":"suspicious vehicle","severity":"low","status":"open"}]`))
	}))
	defer ts.Close()

	incidents, err := newTestClient(t, ts.URL, "abc").PatrolIncidents(context.Background())
	require.NoError(t, err)
	require.Len(t, incidents, 1)
	require.Equal(t, "pi-1", incidents[0].ID)
}

func TestAcknowledgeAlert(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/gps/alerts/al-1/acknowledge", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"al-1","status":"acknowledged","acknowledged_at":"2026-08-30T10:00:00Z"}`))
	}))
	defer ts.Close()

	alert, err := newTestClient(t, ts.URL, "abc").AcknowledgeAlert(context.Background(), "al-1")
	require.NoError(t, err)
	require.Equal(t, model.SOSAcknowledged, alert.Status)
	require.NotNil(t, alert.AcknowledgedAt)
}

func TestSitesList(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/sites/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"site-1","name":"Harbour Depot","address":"1 Dock Rd"}]`))
	}))
	defer ts.Close()

	sites, err := newTestClient(t, ts.URL, "abc").Sites(context.Background())
	require.NoError(t, err)
	require.Len(t, sites, 1)
	require.Equal(t, "Harbour Depot", sites[0].Name)
}

func TestUnassignUserFromSite(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/sites/site-1/users/u2", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	err := newTestClient(t, ts.URL, "abc").UnassignUserFromSite(context.Background(), "site-1", "u2")
	require.NoError(t, err)
}

func TestMarkMessageRead(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/messages/m-1/read", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"m-1","sender_id":"u2","body":"shift swap?","is_read":true}`))
	}))
	defer ts.Close()

	message, err := newTestClient(t, ts.URL, "abc").MarkMessageRead(context.Background(), "m-1")
	require.NoError(t, err)
	require.True(t, message.IsRead)
}

func TestCreatePatrolIncident(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/patrol/incidents/", r.URL.Path)
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "broken gate", payload["title"])
		require.Equal(t, "high", payload["severity"])
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pi-2","title":"broken gate","severity":"high","status":"open"}`))
	}))
	defer ts.Close()

	incident, err := newTestClient(t, ts.URL, "abc").CreatePatrolIncident(context.Background(), modelIncidentDraft())
	require.NoError(t, err)
	require.Equal(t, "pi-2", incident.ID)
}

func TestIncidentCountBySite(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/analytics/incidents/by-site", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"site_id":"site-1","site_name":"Harbour Depot","count":4}]`))
	}))
	defer ts.Close()

	counts, err := newTestClient(t, ts.URL, "abc").IncidentCountBySite(context.Background())
	require.NoError(t, err)
	require.Len(t, counts, 1)
	require.Equal(t, 4, counts[0].Count)
}

func TestLogCheckpointVisit(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/patrol/shifts/logs/", r.URL.Path)
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "cp-1", payload["checkpoint_id"])
		require.Equal(t, "all clear", payload["notes"])
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"log-1","checkpoint_id":"cp-1","timestamp":"2026-08-30T09:30:00Z"}`))
	}))
	defer ts.Close()

	entry, err := newTestClient(t, ts.URL, "abc").LogCheckpointVisit(context.Background(), model.CheckpointVisit{
		CheckpointID: "cp-1",
		Notes:        "all clear",
	})
	require.NoError(t, err)
	require.Equal(t, "log-1", entry.ID)
}
