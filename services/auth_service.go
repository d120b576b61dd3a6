package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"retail-backend/models"
	"retail-backend/utils"

	"gorm.io/gorm"
)

const apiCredentialLength = 15

type AuthService struct {
	db         *gorm.DB
	box        *utils.SecretBox
	jwtSecret  string
	sessionTTL time.Duration
}

func NewAuthService(db *gorm.DB, box *utils.SecretBox, jwtSecret string, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		db:         db,
		box:        box,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
	}
}

// LoginResult is returned to the desktop client after a successful login.
type LoginResult struct {
	Key            string `json:"key"`
	Secret         string `json:"secret"`
	DisplayPicture string `json:"dp"`

	SessionToken string `json:"-"`
}

// Login checks the password, then makes sure the user owns an API key and
// secret, generating and persisting each one the first time it is missing.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	db := s.db.WithContext(ctx)

	user, err := s.authenticate(db, email, password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := db.Model(&models.User{}).Where("email = ?", user.Email).Update("last_login", &now).Error; err != nil {
		return nil, fmt.Errorf("update last login: %w", err)
	}

	apiKey := user.APIKey
	if apiKey == "" {
		if apiKey, err = utils.GenerateHash(apiCredentialLength); err != nil {
			return nil, err
		}
		if err := db.Model(&models.User{}).Where("email = ?", user.Email).Update("api_key", apiKey).Error; err != nil {
			return nil, fmt.Errorf("save api key: %w", err)
		}
	}

	apiSecret, err := s.decryptSecret(user)
	if err != nil {
		if apiSecret, err = utils.GenerateHash(apiCredentialLength); err != nil {
			return nil, err
		}
		sealed, err := s.box.Encrypt(apiSecret)
		if err != nil {
			return nil, fmt.Errorf("encrypt api secret: %w", err)
		}
		if err := db.Model(&models.User{}).Where("email = ?", user.Email).Update("api_secret", sealed).Error; err != nil {
			return nil, fmt.Errorf("save api secret: %w", err)
		}
	}

	token, err := utils.GenerateToken(user.Email, s.jwtSecret, s.sessionTTL)
	if err != nil {
		return nil, fmt.Errorf("issue session: %w", err)
	}

	return &LoginResult{
		Key:            apiKey,
		Secret:         apiSecret,
		DisplayPicture: displayPicture(user),
		SessionToken:   token,
	}, nil
}

func (s *AuthService) authenticate(db *gorm.DB, email, password string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", strings.TrimSpace(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthentication
		}
		return nil, err
	}
	if !user.Enabled || !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrAuthentication
	}
	return &user, nil
}

func (s *AuthService) decryptSecret(user *models.User) (string, error) {
	if user.APISecret == "" {
		return "", utils.ErrDecrypt
	}
	return s.box.Decrypt(user.APISecret)
}

func displayPicture(user *models.User) string {
	if user.UserImage != "" {
		return user.UserImage
	}
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(user.DisplayName()) + "&color=16794c&background=daf0e1"
}

// ResolveAPIKey implements utils.CredentialResolver.
func (s *AuthService) ResolveAPIKey(ctx context.Context, key, secret string) (string, error) {
	if key == "" || secret == "" {
		return "", ErrAuthentication
	}
	var user models.User
	if err := s.db.WithContext(ctx).Where("api_key = ?", key).First(&user).Error; err != nil {
		return "", ErrAuthentication
	}
	stored, err := s.decryptSecret(&user)
	if err != nil || !user.Enabled {
		return "", ErrAuthentication
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(secret)) != 1 {
		return "", ErrAuthentication
	}
	return user.Email, nil
}

// ResolveSession implements utils.CredentialResolver.
func (s *AuthService) ResolveSession(token string) (string, error) {
	email, err := utils.ParseToken(token, s.jwtSecret)
	if err != nil {
		return "", ErrAuthentication
	}
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil || !user.Enabled {
		return "", ErrAuthentication
	}
	return user.Email, nil
}

// SessionTTL is the lifetime of the session token issued by Login.
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}

type NewUserInput struct {
	Email     string `validate:"required,email"`
	Password  string `validate:"required,min=8"`
	FirstName string `validate:"required"`
	LastName  string
}

// CreateUser provisions an enabled user with a bcrypt password.
func (s *AuthService) CreateUser(ctx context.Context, input NewUserInput) (*models.User, error) {
	if err := utils.NewValidator().Struct(input); err != nil {
		return nil, &ValidationError{Message: utils.ValidationMessage(err)}
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Email:     strings.TrimSpace(input.Email),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		FullName:  strings.TrimSpace(input.FirstName + " " + input.LastName),
		Password:  hashed,
		Enabled:   true,
	}

	db := s.db.WithContext(ctx)
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, validationErrorf("User %s already exists", user.Email)
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}
