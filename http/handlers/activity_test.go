package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"eduportal/http/middleware"
	"eduportal/models"
	"eduportal/services"
)

type activityStoreStub struct {
	items []models.Activity
}

func (s *activityStoreStub) CreateActivity(ctx context.Context, a *models.Activity) (int, error) {
	return 0, nil
}

func (s *activityStoreStub) GetActivityByID(ctx context.Context, id int) (*models.Activity, error) {
	return nil, nil
}

func (s *activityStoreStub) ListActivities(ctx context.Context, activeOnly bool) ([]models.Activity, error) {
	if !activeOnly {
		return s.items, nil
	}
	var active []models.Activity
	for _, a := range s.items {
		if a.IsActive {
			active = append(active, a)
		}
	}
	return active, nil
}

func (s *activityStoreStub) UpdateActivity(ctx context.Context, id int, upd *models.ActivityUpdate) error {
	return nil
}

func activityListFixture() *ActivityHandler {
	store := &activityStoreStub{items: []models.Activity{
		{ID: 1, Title: "夏令营", Price: "980.00", IsActive: true},
		{ID: 2, Title: "内部草稿", Price: "100.00", IsActive: false},
	}}
	return NewActivityHandler(services.NewActivityService(store))
}

func TestListActivitiesAnonymousIgnoresAll(t *testing.T) {
	handler := activityListFixture()

	r := httptest.NewRequest(http.MethodGet, "/activities?all=true", nil)
	w := httptest.NewRecorder()

	handler.List(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "夏令营")
	assert.NotContains(t, w.Body.String(), "内部草稿")
}

func TestListActivitiesAdminSeesInactive(t *testing.T) {
	handler := activityListFixture()

	r := httptest.NewRequest(http.MethodGet, "/admin/activities?all=true", nil)
	ctx := middleware.WithAdmin(r.Context(), &services.AdminClaims{AdminID: 1, Username: "admin"})
	w := httptest.NewRecorder()

	handler.List(w, r.WithContext(ctx))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "夏令营")
	assert.Contains(t, w.Body.String(), "内部草稿")
}
