package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flexfitapp/flexfit/internal/errors"
	"github.com/flexfitapp/flexfit/internal/session"
)

func adminClient(t *testing.T, handler http.Handler) (*Client, session.Store) {
	t.Helper()
	server := newTestServer(t, handler)
	store := session.NewMemStore()
	require.NoError(t, store.Save(validSession(server.URL)))
	return New(server.URL, store, nil), store
}

func TestListPlans(t *testing.T) {
	client, _ := adminClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/admin/memberships", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"id": "p-1", "name": "Gold", "price": 49.9, "duration_months": 12, "benefits": []string{"sauna"}},
				{"id": "p-2", "name": "Silver", "price": 29.9, "duration_months": 6},
			},
		})
	}))

	plans, err := client.ListPlans(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "Gold", plans[0].Name)
	assert.Equal(t, []string{"sauna"}, plans[0].Benefits)
	assert.Equal(t, 6, plans[1].DurationMonths)
}

func TestCreatePlanValidatesLocally(t *testing.T) {
	requests := 0
	client, _ := adminClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))

	tests := []struct {
		name   string
		params PlanParams
	}{
		{"missing name", PlanParams{Price: 10, DurationMonths: 1}},
		{"negative price", PlanParams{Name: "Gold", Price: -1, DurationMonths: 1}},
		{"zero duration", PlanParams{Name: "Gold", Price: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.CreatePlan(context.Background(), tt.params)
			assert.True(t, errors.IsValidation(err))
		})
	}
	assert.Zero(t, requests)
}

func TestUpdateAndDeletePlanHitExpectedRoutes(t *testing.T) {
	var gotMethod, gotPath string
	client, _ := adminClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"id": "p-1", "name": "Gold"}})
	}))

	_, err := client.UpdatePlan(context.Background(), "p-1", PlanParams{Name: "Gold", Price: 59.9, DurationMonths: 12})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/v1/admin/memberships/p-1", gotPath)

	require.NoError(t, client.DeletePlan(context.Background(), "p-1"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/v1/admin/memberships/p-1", gotPath)
}

func TestListUsers(t *testing.T) {
	client, _ := adminClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/admin/users", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"id": "u-1", "email": "a@example.com", "role": "member", "is_active": true},
				{"id": "u-2", "email": "b@example.com", "role": "member", "is_active": false},
			},
		})
	}))

	users, err := client.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.True(t, users[0].Active)
	assert.False(t, users[1].Active)
}

func TestSetUserActive(t *testing.T) {
	var gotPath string
	var gotBody map[string]bool
	client, _ := adminClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]string{"status": "success"})
	}))

	require.NoError(t, client.SetUserActive(context.Background(), "u-7", false))
	assert.Equal(t, "/api/v1/admin/users/u-7", gotPath)
	assert.Equal(t, map[string]bool{"is_active": false}, gotBody)
}

func TestSubscribeUser(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	client, _ := adminClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]string{"status": "success"})
	}))

	require.NoError(t, client.SubscribeUser(context.Background(), "u-7", "p-1"))
	assert.Equal(t, "/api/v1/admin/users/u-7/subscribe", gotPath)
	assert.Equal(t, "p-1", gotBody["membership_id"])
}

func TestGetProfile(t *testing.T) {
	client, _ := adminClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/auth/profile", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"age":             29,
				"fitness_goals":   []string{"strength"},
				"injury_status":   map[string]any{"has_injury": true, "injury_description": "left knee"},
				"bench_press_max": 85.0,
			},
		})
	}))

	p, err := client.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 29, p.Age)
	assert.True(t, p.InjuryStatus.HasInjury)
	assert.Equal(t, 85.0, p.BenchPressMax)
}

func TestUpdateProfileCompletesOnboarding(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		json.NewEncoder(w).Encode(map[string]string{"status": "success"})
	}))

	store := session.NewMemStore()
	s := validSession(server.URL)
	s.Onboarded = false
	require.NoError(t, store.Save(s))
	client := New(server.URL, store, nil)

	require.NoError(t, client.UpdateProfile(context.Background(), Profile{Age: 29}))

	saved, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.True(t, saved.Onboarded, "first profile submission completes onboarding")
}

func TestUpdateProfileFailureKeepsOnboardingPending(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"message": "height is out of range"})
	}))

	store := session.NewMemStore()
	s := validSession(server.URL)
	s.Onboarded = false
	require.NoError(t, store.Save(s))
	client := New(server.URL, store, nil)

	err := client.UpdateProfile(context.Background(), Profile{Age: 29, Height: 999})
	require.Error(t, err)

	saved, loadErr := store.Load()
	require.NoError(t, loadErr)
	require.NotNil(t, saved)
	assert.False(t, saved.Onboarded, "a rejected profile must not complete onboarding")
}
