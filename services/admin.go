package services

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"eduportal/errors"
	"eduportal/logger"
	"eduportal/models"
	"eduportal/utils"
)

const tokenTTL = 24 * time.Hour

type adminStore interface {
	CreateAdmin(ctx context.Context, a *models.Admin) (int, error)
	GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error)
	GetAdminByID(ctx context.Context, id int) (*models.Admin, error)
	ListAdmins(ctx context.Context) ([]models.Admin, error)
	UpdateAdmin(ctx context.Context, id int, upd *models.AdminUpdate) error
	UpdateAdminLastLogin(ctx context.Context, id int) error
	DeleteAdmin(ctx context.Context, id int) error
}

// AdminService handles back-office authentication and account management.
type AdminService struct {
	store     adminStore
	jwtSecret []byte
}

func NewAdminService(store adminStore, jwtSecret string) *AdminService {
	return &AdminService{store: store, jwtSecret: []byte(jwtSecret)}
}

// AdminClaims is the JWT payload issued on login.
type AdminClaims struct {
	AdminID  int    `json:"admin_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Login verifies the credentials and returns the admin plus a signed session
// token. Wrong username and wrong password produce the same error, so the
// response does not reveal which accounts exist.
func (s *AdminService) Login(ctx context.Context, username, password string) (*models.Admin, string, error) {
	if username == "" || password == "" {
		return nil, "", errors.E(errors.Invalid, "username and password are required")
	}

	admin, err := s.store.GetAdminByUsername(ctx, username)
	if err != nil {
		return nil, "", errors.E(errors.Internal, "error loading admin", err)
	}
	if admin == nil {
		return nil, "", errors.E(errors.Unauthorized, "invalid username or password")
	}
	if !admin.IsActive {
		return nil, "", errors.E(errors.Unauthorized, "account is disabled")
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
		return nil, "", errors.E(errors.Unauthorized, "invalid username or password")
	}

	if err := s.store.UpdateAdminLastLogin(ctx, admin.ID); err != nil {
		logger.Warn("Failed to stamp last login for admin %d: %v", admin.ID, err)
	}

	token, err := s.issueToken(admin)
	if err != nil {
		return nil, "", errors.E(errors.Internal, "error issuing session token", err)
	}

	logger.Info("Admin %s logged in", admin.Username)
	return admin, token, nil
}

func (s *AdminService) issueToken(admin *models.Admin) (string, error) {
	now := time.Now()
	claims := AdminClaims{
		AdminID:  admin.ID,
		Username: admin.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

// VerifyToken parses a session token and returns its claims.
func (s *AdminService) VerifyToken(tokenString string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.E(errors.Unauthorized, "unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.E(errors.Unauthorized, "invalid or expired token", err)
	}
	return claims, nil
}

// CreateAdminInput is the account creation payload.
type CreateAdminInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// Create registers a new back-office account. createdBy is the acting
// admin's id.
func (s *AdminService) Create(ctx context.Context, in *CreateAdminInput, createdBy int) (*models.Admin, error) {
	if err := utils.ValidateRequired("username", in.Username, utils.MaxNameLength); err != nil {
		return nil, errors.E(errors.Invalid, err.Error())
	}
	if len(in.Password) < 6 {
		return nil, errors.E(errors.Invalid, "password must be at least 6 characters")
	}
	if err := utils.ValidateEmail(in.Email); err != nil {
		return nil, errors.E(errors.Invalid, err.Error())
	}

	existing, err := s.store.GetAdminByUsername(ctx, in.Username)
	if err != nil {
		return nil, errors.E(errors.Internal, "error checking username", err)
	}
	if existing != nil {
		return nil, errors.E(errors.Conflict, "username already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.E(errors.Internal, "error hashing password", err)
	}

	admin := &models.Admin{
		Username:  in.Username,
		Password:  string(hash),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		IsActive:  true,
		CreatedBy: createdBy,
	}
	id, err := s.store.CreateAdmin(ctx, admin)
	if err != nil {
		return nil, errors.E(errors.Internal, "error creating admin", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID returns the admin or NotFound.
func (s *AdminService) GetByID(ctx context.Context, id int) (*models.Admin, error) {
	admin, err := s.store.GetAdminByID(ctx, id)
	if err != nil {
		return nil, errors.E(errors.Internal, "error loading admin", err)
	}
	if admin == nil {
		return nil, errors.E(errors.NotFound, "admin not found")
	}
	return admin, nil
}

// List returns every admin account.
func (s *AdminService) List(ctx context.Context) ([]models.Admin, error) {
	admins, err := s.store.ListAdmins(ctx)
	if err != nil {
		return nil, errors.E(errors.Internal, "error listing admins", err)
	}
	return admins, nil
}

// Update applies the non-nil fields. A password change is re-hashed before
// it reaches the store.
func (s *AdminService) Update(ctx context.Context, id int, upd *models.AdminUpdate) (*models.Admin, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if upd.Password != nil {
		if len(*upd.Password) < 6 {
			return nil, errors.E(errors.Invalid, "password must be at least 6 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, errors.E(errors.Internal, "error hashing password", err)
		}
		hashed := string(hash)
		upd.Password = &hashed
	}
	if err := s.store.UpdateAdmin(ctx, id, upd); err != nil {
		return nil, errors.E(errors.Internal, "error updating admin", err)
	}
	return s.GetByID(ctx, id)
}

// Delete removes an admin account. An admin cannot delete itself.
func (s *AdminService) Delete(ctx context.Context, id, actingID int) error {
	if id == actingID {
		return errors.E(errors.Invalid, "cannot delete your own account")
	}
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.store.DeleteAdmin(ctx, id); err != nil {
		return errors.E(errors.Internal, "error deleting admin", err)
	}
	return nil
}
