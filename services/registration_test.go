package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eduportal/errors"
	"eduportal/models"
)

func validRegistrationInput() *CreateRegistrationInput {
	return &CreateRegistrationInput{
		ActivityID:    1,
		StudentName:   "测试学生",
		StudentGender: "男",
		StudentSchool: "实验中学",
		StudentGrade:  "高一",
		StudentClass:  "3班",
		GuardianName:  "测试家长",
		GuardianPhone: "13800138000",
		ClientIP:      "203.0.113.9",
	}
}

func TestRegistrationCreateCopiesActivityPrice(t *testing.T) {
	gw := newFakeGateway()
	gw.activities[1] = &models.Activity{ID: 1, Title: "研学营", Price: "980.00", IsActive: true}
	svc := NewRegistrationService(gw, nil)

	id, err := svc.Create(context.Background(), validRegistrationInput())
	require.NoError(t, err)
	require.NotZero(t, id)

	reg := gw.registrations[id]
	require.NotNil(t, reg)
	assert.Equal(t, "980.00", reg.PaymentAmount)
	assert.Equal(t, models.RegistrationPaymentPending, reg.PaymentStatus)
	assert.Equal(t, "203.0.113.9", reg.IPAddress)
	assert.Equal(t, "测试学生", reg.StudentName)
}

func TestRegistrationCreateNormalizesPrice(t *testing.T) {
	gw := newFakeGateway()
	gw.activities[1] = &models.Activity{ID: 1, Price: "1200.5", IsActive: true}
	svc := NewRegistrationService(gw, nil)

	id, err := svc.Create(context.Background(), validRegistrationInput())
	require.NoError(t, err)
	assert.Equal(t, "1200.50", gw.registrations[id].PaymentAmount)
}

func TestRegistrationCreateMissingActivity(t *testing.T) {
	gw := newFakeGateway()
	svc := NewRegistrationService(gw, nil)

	_, err := svc.Create(context.Background(), validRegistrationInput())
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.NotFound))
	assert.Empty(t, gw.registrations)
}

func TestRegistrationCreateInactiveActivity(t *testing.T) {
	gw := newFakeGateway()
	gw.activities[1] = &models.Activity{ID: 1, Price: "980.00", IsActive: false}
	svc := NewRegistrationService(gw, nil)

	_, err := svc.Create(context.Background(), validRegistrationInput())
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.Invalid))
	assert.Empty(t, gw.registrations, "no row should be written for a closed activity")
}

func TestRegistrationCreateValidation(t *testing.T) {
	gw := newFakeGateway()
	gw.activities[1] = &models.Activity{ID: 1, Price: "980.00", IsActive: true}
	svc := NewRegistrationService(gw, nil)

	cases := []struct {
		name   string
		mutate func(*CreateRegistrationInput)
	}{
		{"missing student name", func(in *CreateRegistrationInput) { in.StudentName = "" }},
		{"bad gender", func(in *CreateRegistrationInput) { in.StudentGender = "other" }},
		{"bad phone", func(in *CreateRegistrationInput) { in.GuardianPhone = "123" }},
		{"bad email", func(in *CreateRegistrationInput) { in.GuardianEmail = "not-an-email" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validRegistrationInput()
			tc.mutate(in)
			_, err := svc.Create(context.Background(), in)
			require.Error(t, err)
			assert.True(t, errors.IsKind(err, errors.Invalid))
		})
	}
}

func TestRegistrationCreateNoDedup(t *testing.T) {
	gw := newFakeGateway()
	gw.activities[1] = &models.Activity{ID: 1, Price: "980.00", IsActive: true}
	svc := NewRegistrationService(gw, nil)

	id1, err := svc.Create(context.Background(), validRegistrationInput())
	require.NoError(t, err)
	id2, err := svc.Create(context.Background(), validRegistrationInput())
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2)
	assert.Len(t, gw.registrations, 2)
}

func TestRegistrationGetByIDNotFound(t *testing.T) {
	svc := NewRegistrationService(newFakeGateway(), nil)
	_, err := svc.GetByID(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.NotFound))
}

func TestRegistrationBatchDelete(t *testing.T) {
	gw := newFakeGateway()
	gw.registrations[1] = &models.Registration{ID: 1}
	gw.registrations[2] = &models.Registration{ID: 2}
	svc := NewRegistrationService(gw, nil)

	deleted, err := svc.BatchDelete(context.Background(), []int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)
	assert.Empty(t, gw.registrations)

	_, err = svc.BatchDelete(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.Invalid))
}
