package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"bizbid/internal/domain/entity"
	"bizbid/internal/domain/repository"
	"bizbid/internal/domain/service"
	"bizbid/pkg/errors"
	"bizbid/pkg/logger"
)

const otpTTL = 15 * time.Minute

type AuthUseCase struct {
	authClient AuthClient
	userRepo   repository.UserRepository
	mailer     service.Mailer
}

func NewAuthUseCase(authClient AuthClient, userRepo repository.UserRepository, mailer service.Mailer) *AuthUseCase {
	return &AuthUseCase{
		authClient: authClient,
		userRepo:   userRepo,
		mailer:     mailer,
	}
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone"`
	Role     string `json:"role" validate:"required,oneof=buyer seller"`
}

type AuthResult struct {
	User  *entity.User `json:"user"`
	Token string       `json:"token,omitempty"`
}

// Register creates an unverified account and emails a one-time code. No
// token is issued until VerifyOTP succeeds.
func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if input.Role != entity.RoleBuyer && input.Role != entity.RoleSeller {
		return nil, errors.BadRequest("Role must be buyer or seller", nil)
	}

	existing, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}
	if existing != nil {
		return nil, errors.Conflict("Email is already registered")
	}

	uid, err := uc.authClient.CreateUser(ctx, input.Email, input.Password, input.Name)
	if err != nil {
		return nil, err
	}

	otp := newOtp()
	expires := time.Now().Add(otpTTL)
	user := &entity.User{
		ID:           uid,
		Email:        input.Email,
		Name:         input.Name,
		Phone:        input.Phone,
		Role:         input.Role,
		Status:       "active",
		OtpCode:      otp,
		OtpExpiresAt: &expires,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// OTP delivery is part of the registration contract, so a send failure
	// surfaces to the caller.
	if err := uc.sendOtpMail(user.Email, otp); err != nil {
		return nil, err
	}

	logger.Info("User registered", logger.Fields{
		"userId": user.ID,
		"role":   user.Role,
	})
	return &AuthResult{User: user}, nil
}

type VerifyOtpInput struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6"`
}

// VerifyOTP redeems the emailed code, marks the account verified and clears
// the pending code.
func (uc *AuthUseCase) VerifyOTP(ctx context.Context, input VerifyOtpInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user.Verified {
		return nil, errors.InvalidState("Account is already verified", nil)
	}
	if !user.OtpValid(input.Code, time.Now()) {
		return nil, errors.BadRequest("Invalid or expired verification code", nil)
	}

	user.Verified = true
	user.OtpCode = ""
	user.OtpExpiresAt = nil
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("Account verified", logger.Fields{"userId": user.ID})
	return user, nil
}

// ResendOTP replaces the pending code with a fresh one and emails it.
func (uc *AuthUseCase) ResendOTP(ctx context.Context, email string) error {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.Verified {
		return errors.InvalidState("Account is already verified", nil)
	}

	otp := newOtp()
	expires := time.Now().Add(otpTTL)
	user.OtpCode = otp
	user.OtpExpiresAt = &expires
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return err
	}

	return uc.sendOtpMail(user.Email, otp)
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (uc *AuthUseCase) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return nil, errors.Unauthorized("Invalid email or password", nil)
		}
		return nil, err
	}
	if !user.Verified {
		return nil, errors.Forbidden("Account is not verified yet", nil)
	}

	token, err := uc.authClient.SignInWithEmailPassword(input.Email, input.Password)
	if err != nil {
		return nil, errors.Unauthorized("Invalid email or password", err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

func (uc *AuthUseCase) GetUserByID(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

type UpdateProfileInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (uc *AuthUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func newOtp() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

func (uc *AuthUseCase) sendOtpMail(to, otp string) error {
	body := fmt.Sprintf("Welcome to BizBid. Your verification code is %s. It expires in %d minutes.", otp, int(otpTTL.Minutes()))
	return uc.mailer.Send(to, "Verify your account", body)
}
