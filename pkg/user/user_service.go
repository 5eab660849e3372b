package user

import (
	"MangaVerse-Backend/domain"
	"MangaVerse-Backend/entities"
	"MangaVerse-Backend/internal/utils"
	"MangaVerse-Backend/internal/utils/mailing"
	"MangaVerse-Backend/internal/utils/storage"
	"MangaVerse-Backend/pkg/jwt"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (*domain.UserProfile, error)
		Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (*domain.UserProfile, error)
		UpdateUser(ctx context.Context, req domain.UpdateUserRequest, userID string) (*domain.UserProfile, error)
		SendVerificationEmail(ctx context.Context, req domain.SendVerifyEmailRequest) error
		VerifyEmail(ctx context.Context, token string) error
		ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error
		ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		s3             storage.AwsS3
	}
)

// Action tokens carry a purpose claim so a verification link can never be
// replayed as a password reset, or the other way around.
const (
	purposeVerifyEmail   = "verify_email"
	purposeResetPassword = "reset_password"
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, s3 storage.AwsS3) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		s3:             s3,
	}
}

func toUserProfile(u *entities.User) *domain.UserProfile {
	return &domain.UserProfile{
		ID:         u.ID.String(),
		Username:   u.Username,
		Email:      u.Email,
		Role:       u.Role,
		AvatarURL:  u.AvatarURL,
		IsVerified: u.IsVerified,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.UserProfile, error) {
	if _, err := s.userRepository.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, domain.ErrEmailAlreadyExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		ID:       uuid.New(),
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
		Role:     domain.RoleUser,
	}

	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	// Registration succeeded either way, the user can request another mail
	_ = s.sendVerifyMail(user)

	return toUserProfile(user), nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrWrongCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, domain.ErrWrongCredentials
	}

	if user.IsBanned {
		return nil, domain.ErrUserBanned
	}

	token := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)
	return &domain.LoginResponse{
		Token: token,
		Role:  user.Role,
	}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (*domain.UserProfile, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserProfile(user), nil
}

func (s *userService) UpdateUser(ctx context.Context, req domain.UpdateUserRequest, userID string) (*domain.UserProfile, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != "" {
		user.Username = req.Username
	}

	if req.Avatar != nil {
		objectKey, err := s.s3.UploadFile(
			fmt.Sprintf("avatar-%s", user.ID.String()),
			req.Avatar,
			"avatars",
			storage.AllowImage...,
		)
		if err != nil {
			return nil, err
		}
		user.AvatarURL = s.s3.GetPublicLinkKey(objectKey)
	}

	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	return toUserProfile(user), nil
}

func (s *userService) sendVerifyMail(user *entities.User) error {
	token, err := s.jwtService.GenerateTokenForgetPassword(map[string]any{
		"email":   user.Email,
		"purpose": purposeVerifyEmail,
	}, 24*time.Hour)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/api/v1/users/verify?token=%s", utils.GetConfig("APP_URL"), token)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Click <a href=%q>here</a> to verify your MangaVerse account.</p>",
		user.Username, link,
	)
	return mailing.SendMail(user.Email, "Verify your MangaVerse account", body)
}

func (s *userService) SendVerificationEmail(ctx context.Context, req domain.SendVerifyEmailRequest) error {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	return s.sendVerifyMail(user)
}

// actionTokenEmail checks a validated action token against the purpose it
// was issued for and returns the subject email.
func actionTokenEmail(claims map[string]any, purpose string) (string, error) {
	if p, _ := claims["purpose"].(string); p != purpose {
		return "", domain.ErrTokenInvalid
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", domain.ErrTokenInvalid
	}
	return email, nil
}

func (s *userService) VerifyEmail(ctx context.Context, token string) error {
	claims, err := s.jwtService.ValidateTokenForgetPassword(token)
	if err != nil {
		return err
	}

	email, err := actionTokenEmail(claims, purposeVerifyEmail)
	if err != nil {
		return err
	}

	user, err := s.userRepository.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	user.IsVerified = true
	return s.userRepository.UpdateUser(ctx, user)
}

func (s *userService) ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return err
	}

	token, err := s.jwtService.GenerateTokenForgetPassword(map[string]any{
		"email":   user.Email,
		"purpose": purposeResetPassword,
	}, 1*time.Hour)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", utils.GetConfig("APP_URL"), token)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Click <a href=%q>here</a> to reset your password. The link expires in one hour.</p>",
		user.Username, link,
	)
	return mailing.SendMail(user.Email, "Reset your MangaVerse password", body)
}

func (s *userService) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	claims, err := s.jwtService.ValidateTokenForgetPassword(req.Token)
	if err != nil {
		return err
	}

	email, err := actionTokenEmail(claims, purposeResetPassword)
	if err != nil {
		return err
	}

	user, err := s.userRepository.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hashed)
	return s.userRepository.UpdateUser(ctx, user)
}
