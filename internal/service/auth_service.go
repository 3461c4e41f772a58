package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/codelab-edu/codelab-api/internal/models"
	appErrors "github.com/codelab-edu/codelab-api/pkg/errors"
)

// GoogleClaims is the subset of a verified Google ID token the login flow
// consumes.
type GoogleClaims struct {
	Email   string
	Name    string
	Picture string
}

// GoogleVerifier validates a Google-issued ID token against the OAuth
// client ID and extracts identity claims.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleClaims, error)
}

// GoogleTokenVerifier verifies ID tokens against Google's public keys.
type GoogleTokenVerifier struct {
	clientID string
}

// NewGoogleTokenVerifier constructs a verifier bound to one OAuth client.
func NewGoogleTokenVerifier(clientID string) *GoogleTokenVerifier {
	return &GoogleTokenVerifier{clientID: clientID}
}

// Verify checks the token signature, audience and expiry, then decodes the
// identity claims.
func (v *GoogleTokenVerifier) Verify(_ context.Context, idToken string) (*GoogleClaims, error) {
	verifier := googleAuthIDTokenVerifier.Verifier{}
	if err := verifier.VerifyIDToken(idToken, []string{v.clientID}); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid Google ID token")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "failed to decode ID token")
	}
	return &GoogleClaims{Email: claimSet.Email, Name: claimSet.Name, Picture: claimSet.Picture}, nil
}

type authUserRepository interface {
	FindTeacherByEmail(ctx context.Context, email string) (*models.Teacher, error)
	CreateTeacher(ctx context.Context, teacher *models.Teacher) error
	FindStudentByEmail(ctx context.Context, email string) (*models.Student, error)
	CreateStudent(ctx context.Context, student *models.Student) error
}

// AuthConfig defines configuration for the token exchange flow.
type AuthConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// GoogleLoginRequest is the login exchange payload.
type GoogleLoginRequest struct {
	IDToken  string          `json:"id_token" validate:"required"`
	UserType models.UserType `json:"user_type" validate:"required"`
}

// AuthService exchanges Google identities for platform tokens and
// validates bearer tokens on protected routes.
type AuthService struct {
	repo      authUserRepository
	google    GoogleVerifier
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo authUserRepository, google GoogleVerifier, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{repo: repo, google: google, validator: validate, logger: logger, config: config}
}

// GoogleLogin verifies the Google ID token, creates the account on first
// login, and issues an access token.
func (s *AuthService) GoogleLogin(ctx context.Context, req GoogleLoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "ID token is missing")
	}
	if !req.UserType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid user type")
	}

	claims, err := s.google.Verify(ctx, req.IDToken)
	if err != nil {
		return nil, err
	}

	var info models.UserInfo
	switch req.UserType {
	case models.UserTypeTeacher:
		teacher, err := s.findOrCreateTeacher(ctx, claims)
		if err != nil {
			return nil, err
		}
		info = models.UserInfo{ID: teacher.ID, Email: teacher.Email, Name: teacher.Name, Picture: teacher.Profile, UserType: req.UserType}
	case models.UserTypeStudent:
		student, err := s.findOrCreateStudent(ctx, claims)
		if err != nil {
			return nil, err
		}
		info = models.UserInfo{ID: student.ID, Email: student.Email, Name: student.Name, Picture: student.Profile, UserType: req.UserType}
	}

	token, err := s.generateAccessToken(info)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}

	s.logger.Info("user logged in", zap.String("user_id", info.ID), zap.String("user_type", string(info.UserType)))

	return &models.LoginResponse{Token: token, User: info}, nil
}

func (s *AuthService) findOrCreateTeacher(ctx context.Context, claims *GoogleClaims) (*models.Teacher, error) {
	teacher, err := s.repo.FindTeacherByEmail(ctx, claims.Email)
	if err == nil {
		return teacher, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	profile := claims.Picture
	teacher = &models.Teacher{Name: claims.Name, Email: claims.Email, Profile: &profile}
	if err := s.repo.CreateTeacher(ctx, teacher); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create teacher")
	}
	return teacher, nil
}

func (s *AuthService) findOrCreateStudent(ctx context.Context, claims *GoogleClaims) (*models.Student, error) {
	student, err := s.repo.FindStudentByEmail(ctx, claims.Email)
	if err == nil {
		return student, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	profile := claims.Picture
	student = &models.Student{Name: claims.Name, Email: claims.Email, Profile: &profile}
	if err := s.repo.CreateStudent(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	return student, nil
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "token has expired")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	return claims, nil
}

func (s *AuthService) generateAccessToken(user models.UserInfo) (string, error) {
	issuedAt := time.Now().UTC()
	claims := &models.JWTClaims{
		Email:    user.Email,
		Name:     user.Name,
		UserType: user.UserType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.config.Expiration)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Secret))
}
