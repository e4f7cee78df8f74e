package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eduportal/models"
	"eduportal/services"
)

type registrationStoreStub struct {
	activity *models.Activity
	created  *models.Registration
}

func (s *registrationStoreStub) GetActivityByID(ctx context.Context, id int) (*models.Activity, error) {
	return s.activity, nil
}

func (s *registrationStoreStub) CreateRegistration(ctx context.Context, reg *models.Registration) (int, error) {
	s.created = reg
	return 7, nil
}

func (s *registrationStoreStub) GetRegistrationByID(ctx context.Context, id int) (*models.Registration, error) {
	return s.created, nil
}

func (s *registrationStoreStub) SearchRegistrations(ctx context.Context, f *models.RegistrationSearch) ([]models.Registration, error) {
	return nil, nil
}

func (s *registrationStoreStub) CountRegistrations(ctx context.Context, f *models.RegistrationSearch) (int, error) {
	return 0, nil
}

func (s *registrationStoreStub) DeleteRegistration(ctx context.Context, id int) error {
	return nil
}

func TestRegisterEndpointCapturesClientIP(t *testing.T) {
	store := &registrationStoreStub{
		activity: &models.Activity{ID: 1, Price: "980.00", IsActive: true},
	}
	handler := NewRegistrationHandler(services.NewRegistrationService(store, nil))

	body := `{
		"activity_id": 1,
		"student_name": "测试学生",
		"student_gender": "男",
		"student_school": "实验中学",
		"student_grade": "高一",
		"student_class": "3班",
		"guardian_name": "测试家长",
		"guardian_phone": "13800138000"
	}`
	r := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	r.Header.Set("X-Forwarded-For", "203.0.113.9, 70.41.3.18")
	w := httptest.NewRecorder()

	handler.Create(w, r)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, store.created)
	assert.Equal(t, "203.0.113.9", store.created.IPAddress)
	assert.Equal(t, "980.00", store.created.PaymentAmount)
	assert.Equal(t, models.RegistrationPaymentPending, store.created.PaymentStatus)
}

func TestRegisterEndpointRejectsBadBody(t *testing.T) {
	handler := NewRegistrationHandler(services.NewRegistrationService(&registrationStoreStub{}, nil))

	r := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader("not json"))
	w := httptest.NewRecorder()

	handler.Create(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterEndpointRejectsGet(t *testing.T) {
	handler := NewRegistrationHandler(services.NewRegistrationService(&registrationStoreStub{}, nil))

	r := httptest.NewRequest(http.MethodGet, "/register", nil)
	w := httptest.NewRecorder()

	handler.Create(w, r)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
