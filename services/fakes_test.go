package services

import (
	"context"
	"sync"
	"time"

	"eduportal/models"
)

// fakeGateway is an in-memory stand-in for the persistence gateway. Error
// injection is keyed by method name.
type fakeGateway struct {
	mu            sync.Mutex
	activities    map[int]*models.Activity
	registrations map[int]*models.Registration
	payments      []*models.Payment
	admins        map[int]*models.Admin
	nextID        int
	errs          map[string]error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		activities:    map[int]*models.Activity{},
		registrations: map[int]*models.Registration{},
		admins:        map[int]*models.Admin{},
		errs:          map[string]error{},
		nextID:        100,
	}
}

func (g *fakeGateway) id() int {
	g.nextID++
	return g.nextID
}

func (g *fakeGateway) GetActivityByID(ctx context.Context, id int) (*models.Activity, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.errs["GetActivityByID"]; err != nil {
		return nil, err
	}
	return g.activities[id], nil
}

func (g *fakeGateway) CreateRegistration(ctx context.Context, reg *models.Registration) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.errs["CreateRegistration"]; err != nil {
		return 0, err
	}
	cp := *reg
	cp.ID = g.id()
	g.registrations[cp.ID] = &cp
	return cp.ID, nil
}

func (g *fakeGateway) GetRegistrationByID(ctx context.Context, id int) (*models.Registration, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.errs["GetRegistrationByID"]; err != nil {
		return nil, err
	}
	return g.registrations[id], nil
}

func (g *fakeGateway) UpdateRegistrationPaymentStatus(ctx context.Context, id int, status string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.errs["UpdateRegistrationPaymentStatus"]; err != nil {
		return err
	}
	if reg, ok := g.registrations[id]; ok {
		reg.PaymentStatus = status
	}
	return nil
}

func (g *fakeGateway) SearchRegistrations(ctx context.Context, f *models.RegistrationSearch) ([]models.Registration, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []models.Registration
	for _, reg := range g.registrations {
		out = append(out, *reg)
	}
	return out, nil
}

func (g *fakeGateway) CountRegistrations(ctx context.Context, f *models.RegistrationSearch) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.registrations), nil
}

func (g *fakeGateway) DeleteRegistration(ctx context.Context, id int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.errs["DeleteRegistration"]; err != nil {
		return err
	}
	delete(g.registrations, id)
	return nil
}

func (g *fakeGateway) GetPaymentByRegistrationID(ctx context.Context, registrationID int) (*models.Payment, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.errs["GetPaymentByRegistrationID"]; err != nil {
		return nil, err
	}
	for _, p := range g.payments {
		if p.RegistrationID == registrationID {
			return p, nil
		}
	}
	return nil, nil
}

func (g *fakeGateway) CreatePayment(ctx context.Context, p *models.Payment) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.errs["CreatePayment"]; err != nil {
		return 0, err
	}
	cp := *p
	cp.ID = g.id()
	g.payments = append(g.payments, &cp)
	return cp.ID, nil
}

func (g *fakeGateway) UpdatePaymentSession(ctx context.Context, id int, transactionID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.errs["UpdatePaymentSession"]; err != nil {
		return err
	}
	for _, p := range g.payments {
		if p.ID == id {
			p.Status = models.PaymentStatusPending
			p.TransactionID = transactionID
		}
	}
	return nil
}

func (g *fakeGateway) MarkPaymentCompleted(ctx context.Context, id int, transactionID, paymentData string, paidAt time.Time) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.errs["MarkPaymentCompleted"]; err != nil {
		return err
	}
	for _, p := range g.payments {
		if p.ID == id {
			p.Status = models.PaymentStatusCompleted
			p.TransactionID = transactionID
			p.PaymentData = paymentData
			t := paidAt
			p.PaidAt = &t
		}
	}
	return nil
}

func (g *fakeGateway) CreateAdmin(ctx context.Context, a *models.Admin) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	cp := *a
	cp.ID = g.id()
	g.admins[cp.ID] = &cp
	return cp.ID, nil
}

func (g *fakeGateway) GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, a := range g.admins {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, nil
}

func (g *fakeGateway) GetAdminByID(ctx context.Context, id int) (*models.Admin, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.admins[id], nil
}

func (g *fakeGateway) ListAdmins(ctx context.Context) ([]models.Admin, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []models.Admin
	for _, a := range g.admins {
		out = append(out, *a)
	}
	return out, nil
}

func (g *fakeGateway) UpdateAdmin(ctx context.Context, id int, upd *models.AdminUpdate) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	a, ok := g.admins[id]
	if !ok {
		return nil
	}
	if upd.Password != nil {
		a.Password = *upd.Password
	}
	if upd.IsActive != nil {
		a.IsActive = *upd.IsActive
	}
	if upd.Name != nil {
		a.Name = *upd.Name
	}
	return nil
}

func (g *fakeGateway) UpdateAdminLastLogin(ctx context.Context, id int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if a, ok := g.admins[id]; ok {
		now := time.Now()
		a.LastLoginAt = &now
	}
	return nil
}

func (g *fakeGateway) DeleteAdmin(ctx context.Context, id int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.admins, id)
	return nil
}

// fakeCheckout captures checkout requests and returns a canned session.
type fakeCheckout struct {
	mu     sync.Mutex
	params []CheckoutParams
	err    error
}

func (f *fakeCheckout) CreateCheckoutSession(ctx context.Context, p CheckoutParams) (*CheckoutSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.params = append(f.params, p)
	return &CheckoutSession{
		ID:  "cs_test_abc123",
		URL: "https://checkout.stripe.com/pay/cs_test_abc123",
	}, nil
}

func (f *fakeCheckout) last() CheckoutParams {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.params[len(f.params)-1]
}
