package tui

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flexfitapp/flexfit/internal/api"
	"github.com/flexfitapp/flexfit/internal/session"
)

func dashSession() *session.Session {
	return &session.Session{
		Identity: session.Identity{
			UserID:   "u-1",
			Email:    "jo@example.com",
			FullName: "Jo Nguyen",
		},
		Role:        session.RoleMember,
		AccessToken: "tok",
		Onboarded:   true,
	}
}

func noopFetch(ctx context.Context) ([]api.Plan, error) {
	return nil, nil
}

func TestDashboardShowsPlansAfterLoad(t *testing.T) {
	m := NewDashboard(dashSession(), noopFetch)
	assert.Contains(t, m.View(), "loading")

	updated, _ := m.Update(plansMsg{
		generation: 0,
		plans: []api.Plan{
			{ID: "p-1", Name: "Gold", Price: 49.9, DurationMonths: 12, Benefits: []string{"sauna", "pool"}},
		},
	})
	m = updated.(DashboardModel)

	assert.False(t, m.loading)
	view := m.View()
	assert.Contains(t, view, "Gold")
	assert.Contains(t, view, "49.90")
	assert.Contains(t, view, "Jo Nguyen")
}

func TestDashboardShowsFetchError(t *testing.T) {
	m := NewDashboard(dashSession(), noopFetch)

	updated, _ := m.Update(plansMsg{generation: 0, err: fmt.Errorf("boom")})
	m = updated.(DashboardModel)

	assert.False(t, m.loading)
	assert.Contains(t, m.View(), "could not load plans")
}

func TestDashboardDiscardsStaleFetch(t *testing.T) {
	m := NewDashboard(dashSession(), noopFetch)

	// First load completes.
	updated, _ := m.Update(plansMsg{generation: 0, plans: []api.Plan{{Name: "Gold"}}})
	m = updated.(DashboardModel)

	// User refreshes; generation advances.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = updated.(DashboardModel)
	assert.True(t, m.loading)
	assert.Equal(t, 1, m.generation)

	// A stale response from the first fetch arrives late and must be ignored.
	updated, _ = m.Update(plansMsg{generation: 0, err: fmt.Errorf("stale failure")})
	m = updated.(DashboardModel)
	assert.True(t, m.loading, "stale response must not settle the refresh")
	assert.NoError(t, m.err)

	// The current fetch settles normally.
	updated, _ = m.Update(plansMsg{generation: 1, plans: []api.Plan{{Name: "Silver"}}})
	m = updated.(DashboardModel)
	assert.False(t, m.loading)
	assert.Contains(t, m.View(), "Silver")
}

func TestDashboardQuitKeys(t *testing.T) {
	m := NewDashboard(dashSession(), noopFetch)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = updated.(DashboardModel)
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
}

func TestPlanRowsSummarizeBenefits(t *testing.T) {
	rows := planRows([]api.Plan{
		{Name: "Gold", Price: 49.9, DurationMonths: 12, Benefits: []string{"sauna", "pool", "classes"}},
		{Name: "Basic", Price: 19.9, DurationMonths: 1},
	})
	require.Len(t, rows, 2)
	assert.Equal(t, "sauna (+2 more)", rows[0][3])
	assert.Equal(t, "", rows[1][3])
}
