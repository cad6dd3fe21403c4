package usecase

import (
	"context"
	"fmt"

	"cine-taquilla/internal/apperrors"
	"cine-taquilla/internal/data/entity"
	"cine-taquilla/internal/data/repository"
	"cine-taquilla/internal/dto/request"
	"cine-taquilla/internal/dto/response"
	"cine-taquilla/pkg/mailer"
	"cine-taquilla/pkg/token"
	"cine-taquilla/pkg/utils"

	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.TokenPairResponse, error)
	Refresh(ctx context.Context, req *request.RefreshRequest) (*response.TokenPairResponse, error)
	RequestPasswordReset(ctx context.Context, req *request.ResetPasswordRequest) error
	ConfirmPasswordReset(ctx context.Context, req *request.ConfirmResetRequest) error
	ConfirmEmail(ctx context.Context, exchangeToken string) error
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	tokens *token.Manager
	sender mailer.Sender
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, config *utils.Config, tokens *token.Manager, sender mailer.Sender, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		tokens: tokens,
		sender: sender,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	if verrs := utils.ValidateStruct(req); len(verrs) > 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, utils.FormatValidationErrors(verrs))
	}

	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email already registered", apperrors.ErrValidation)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         entity.RoleCustomer,
		IsActive:     true,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.sendConfirmationEmail(user)

	s.log.Info("user registered", zap.Int64("user_id", user.ID))
	resp := response.UserToResponse(user)
	return &resp, nil
}

// sendConfirmationEmail is best effort. Registration already succeeded, so a
// mail failure is logged and the exchange token can be re-requested later.
func (s *authService) sendConfirmationEmail(user *entity.User) {
	if s.sender == nil {
		return
	}
	exchange, _, err := s.tokens.Create(token.TypeExchange, user.ID, user.Email, string(user.Role))
	if err != nil {
		s.log.Error("failed to create exchange token", zap.Error(err))
		return
	}
	msg := mailer.Message{
		To:      user.Email,
		Subject: "Confirma tu cuenta",
		HTMLBody: fmt.Sprintf(
			"<p>Hola %s,</p><p>Confirma tu cuenta con el siguiente token:</p><pre>%s</pre>",
			user.Name, exchange),
	}
	if err := s.sender.Send(msg); err != nil {
		s.log.Error("failed to send confirmation email", zap.Error(err), zap.Int64("user_id", user.ID))
	}
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.TokenPairResponse, error) {
	if verrs := utils.ValidateStruct(req); len(verrs) > 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, utils.FormatValidationErrors(verrs))
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	pair, err := s.issueTokenPair(user)
	if err != nil {
		return nil, err
	}
	s.log.Info("user logged in", zap.Int64("user_id", user.ID))
	return pair, nil
}

func (s *authService) Refresh(ctx context.Context, req *request.RefreshRequest) (*response.TokenPairResponse, error) {
	if verrs := utils.ValidateStruct(req); len(verrs) > 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, utils.FormatValidationErrors(verrs))
	}

	claims, err := s.tokens.Verify(req.RefreshToken, token.TypeRefresh)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidCredentials, err)
	}

	user, err := s.repo.User.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokenPair(user)
}

func (s *authService) RequestPasswordReset(ctx context.Context, req *request.ResetPasswordRequest) error {
	if verrs := utils.ValidateStruct(req); len(verrs) > 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, utils.FormatValidationErrors(verrs))
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}
	// Unknown addresses get the same answer as known ones so the endpoint
	// cannot be used to probe which emails are registered.
	if user == nil {
		return nil
	}

	reset, _, err := s.tokens.Create(token.TypeReset, user.ID, user.Email, string(user.Role))
	if err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}

	if s.sender != nil {
		msg := mailer.Message{
			To:      user.Email,
			Subject: "Restablecer contraseña",
			HTMLBody: fmt.Sprintf(
				"<p>Hola %s,</p><p>Usa el siguiente token para restablecer tu contraseña:</p><pre>%s</pre>",
				user.Name, reset),
		}
		if err := s.sender.Send(msg); err != nil {
			s.log.Error("failed to send reset email", zap.Error(err), zap.Int64("user_id", user.ID))
		}
	}
	return nil
}

func (s *authService) ConfirmPasswordReset(ctx context.Context, req *request.ConfirmResetRequest) error {
	if verrs := utils.ValidateStruct(req); len(verrs) > 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, utils.FormatValidationErrors(verrs))
	}

	claims, err := s.tokens.Verify(req.Token, token.TypeReset)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidCredentials, err)
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.repo.User.UpdatePassword(ctx, claims.UserID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	s.log.Info("password reset", zap.Int64("user_id", claims.UserID))
	return nil
}

func (s *authService) ConfirmEmail(ctx context.Context, exchangeToken string) error {
	claims, err := s.tokens.Verify(exchangeToken, token.TypeExchange)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidCredentials, err)
	}
	if err := s.repo.User.MarkEmailVerified(ctx, claims.UserID); err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}
	return nil
}

func (s *authService) issueTokenPair(user *entity.User) (*response.TokenPairResponse, error) {
	access, accessExp, err := s.tokens.Create(token.TypeAccess, user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}
	refresh, refreshExp, err := s.tokens.Create(token.TypeRefresh, user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh token: %w", err)
	}
	return &response.TokenPairResponse{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
		User:             response.UserToResponse(user),
	}, nil
}
