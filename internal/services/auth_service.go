package services

import (
	"context"

	"steeraway/internal/models"
	"steeraway/internal/repositories/interfaces"
	"steeraway/internal/utils"
	"steeraway/internal/validators"
	"steeraway/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, request *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, request *LoginRequest) (*AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error)
	ChangePassword(ctx context.Context, userID primitive.ObjectID, request *ChangePasswordRequest) error
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, request *UpdateProfileRequest) (*models.User, error)
	ListUsers(ctx context.Context, params *utils.PaginationParams) ([]*models.User, int64, error)
}

type authService struct {
	userRepo   interfaces.UserRepository
	jwtSecret  string
	bcryptCost int
	logger     *logger.Logger
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

type UpdateProfileRequest struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Preferences string `json:"preferences"`
}

type AuthResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int64        `json:"expires_in"`
}

func NewAuthService(userRepo interfaces.UserRepository, jwtSecret string, bcryptCost int, logger *logger.Logger) AuthService {
	if bcryptCost == 0 {
		bcryptCost = utils.BcryptCost
	}
	return &authService{
		userRepo:   userRepo,
		jwtSecret:  jwtSecret,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *authService) Register(ctx context.Context, request *RegisterRequest) (*AuthResponse, error) {
	if errs := validators.ValidateStruct(request); len(errs) > 0 {
		return nil, utils.InvalidInputError(errs.Error())
	}

	if _, err := s.userRepo.GetByEmail(ctx, request.Email); err == nil {
		return nil, utils.ConflictError(utils.ErrUserExists)
	} else if utils.KindOf(err) != utils.KindNotFound {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(request.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     request.Name,
		Email:    request.Email,
		Password: string(hashed),
		Phone:    request.Phone,
		Address:  request.Address,
		Role:     models.UserRoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.WithUserID(user.ID).WithField("event", utils.EventUserRegistered).Info("User registered")

	return s.issueTokens(user)
}

func (s *authService) Login(ctx context.Context, request *LoginRequest) (*AuthResponse, error) {
	if errs := validators.ValidateStruct(request); len(errs) > 0 {
		return nil, utils.InvalidInputError(errs.Error())
	}

	user, err := s.userRepo.GetByEmail(ctx, request.Email)
	if err != nil {
		if utils.KindOf(err) == utils.KindNotFound {
			return nil, utils.NewAppError(utils.KindUnauthorized, utils.ErrInvalidCredentials)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.Password)); err != nil {
		return nil, utils.NewAppError(utils.KindUnauthorized, utils.ErrInvalidCredentials)
	}

	s.logger.WithUserID(user.ID).WithField("event", utils.EventUserLogin).Info("User logged in")

	return s.issueTokens(user)
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := utils.ValidateToken(refreshToken, s.jwtSecret)
	if err != nil {
		return nil, utils.NewAppError(utils.KindUnauthorized, utils.ErrInvalidToken)
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, utils.NewAppError(utils.KindUnauthorized, utils.ErrInvalidToken)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// A token minted before the last password change is no longer valid.
	if user.PasswordChangedAt != nil && claims.IssuedAt != nil && claims.IssuedAt.Time.Before(*user.PasswordChangedAt) {
		return nil, utils.NewAppError(utils.KindUnauthorized, utils.ErrTokenExpired)
	}

	return s.issueTokens(user)
}

func (s *authService) ChangePassword(ctx context.Context, userID primitive.ObjectID, request *ChangePasswordRequest) error {
	if errs := validators.ValidateStruct(request); len(errs) > 0 {
		return utils.InvalidInputError(errs.Error())
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.CurrentPassword)); err != nil {
		return utils.NewAppError(utils.KindUnauthorized, utils.ErrInvalidCredentials)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(request.NewPassword), s.bcryptCost)
	if err != nil {
		return err
	}

	return s.userRepo.UpdatePassword(ctx, userID, string(hashed))
}

func (s *authService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *authService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, request *UpdateProfileRequest) (*models.User, error) {
	updates := map[string]interface{}{}
	if request.Name != "" {
		updates["name"] = request.Name
	}
	if request.Phone != "" {
		updates["phone"] = request.Phone
	}
	if request.Address != "" {
		updates["address"] = request.Address
	}
	if request.Preferences != "" {
		updates["preferences"] = request.Preferences
	}

	if len(updates) > 0 {
		if err := s.userRepo.Update(ctx, userID, updates); err != nil {
			return nil, err
		}
	}

	return s.userRepo.GetByID(ctx, userID)
}

func (s *authService) ListUsers(ctx context.Context, params *utils.PaginationParams) ([]*models.User, int64, error) {
	return s.userRepo.List(ctx, params)
}

func (s *authService) issueTokens(user *models.User) (*AuthResponse, error) {
	tokens, err := utils.GenerateTokenPair(user.ID, user.Email, string(user.Role), s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:         user,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		TokenType:    tokens.TokenType,
		ExpiresIn:    tokens.ExpiresIn,
	}, nil
}
