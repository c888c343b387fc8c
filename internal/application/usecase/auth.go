package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/VoltEdgeBuilds/learn/internal/domain"
)

const (
	NextLogin  = "login"
	NextSignup = "signup"
)

// LookupResult tells the client which form to show after the phone step.
type LookupResult struct {
	Next  string `json:"next"`
	Phone string `json:"phone"`
}

type Session struct {
	Phone        string `json:"phone"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type SignupInput struct {
	Phone      string
	FirstName  string
	LastName   string
	Email      string
	PIN        string
	ConfirmPIN string
}

type AuthUseCase struct {
	userRepo     UserRepository
	tokenStore   TokenStore
	hasher       PINHasher
	tokenManager TokenManager
}

func NewAuthUseCase(ur UserRepository, ts TokenStore, h PINHasher, tm TokenManager) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     ur,
		tokenStore:   ts,
		hasher:       h,
		tokenManager: tm,
	}
}

func (uc *AuthUseCase) Lookup(ctx context.Context, phone string) (LookupResult, error) {
	_, err := uc.userRepo.GetByPhone(ctx, phone)
	switch {
	case err == nil:
		return LookupResult{Next: NextLogin, Phone: phone}, nil
	case errors.Is(err, domain.ErrUserNotFound):
		return LookupResult{Next: NextSignup, Phone: phone}, nil
	default:
		log.Printf("lookup %s: %v", phone, err)
		return LookupResult{}, fmt.Errorf("lookup user: %w", err)
	}
}

func (uc *AuthUseCase) Signup(ctx context.Context, in SignupInput) (*Session, error) {
	// проверяем до любых обращений к БД
	if in.PIN != in.ConfirmPIN {
		return nil, domain.ErrPINMismatch
	}

	hash, err := uc.hasher.Hash(in.PIN)
	if err != nil {
		return nil, fmt.Errorf("hash pin: %w", err)
	}

	user := &domain.User{
		Phone:     in.Phone,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		PINHash:   hash,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if !errors.Is(err, domain.ErrUserAlreadyExists) {
			log.Printf("signup %s: %v", in.Phone, err)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	log.Printf("Signup successful: %s", in.Phone)
	return uc.issue(ctx, user.Phone)
}

func (uc *AuthUseCase) Login(ctx context.Context, phone, pin string) (*Session, error) {
	user, err := uc.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			log.Printf("login %s: unknown phone", phone)
			return nil, domain.ErrInvalidCredentials
		}
		log.Printf("login %s: %v", phone, err)
		return nil, fmt.Errorf("load user: %w", err)
	}

	if err := uc.hasher.Compare(user.PINHash, pin); err != nil {
		log.Printf("login %s: invalid pin", phone)
		return nil, domain.ErrInvalidCredentials
	}

	return uc.issue(ctx, user.Phone)
}

// Refresh rotates the token pair; the presented refresh token cannot be used again.
func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	phone, err := uc.tokenManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domain.ErrTokenRevoked
	}

	cached, err := uc.tokenStore.CheckRefresh(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrTokenRevoked) {
			return nil, err
		}
		return nil, fmt.Errorf("check refresh: %w", err)
	}
	if cached != phone {
		return nil, domain.ErrTokenRevoked
	}

	if err := uc.tokenStore.DeleteRefresh(ctx, refreshToken); err != nil {
		log.Printf("refresh: delete old token: %v", err)
	}
	return uc.issue(ctx, phone)
}

func (uc *AuthUseCase) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return uc.tokenStore.DeleteRefresh(ctx, refreshToken)
}

func (uc *AuthUseCase) Me(ctx context.Context, phone string) (*domain.User, error) {
	return uc.userRepo.GetByPhone(ctx, phone)
}

func (uc *AuthUseCase) issue(ctx context.Context, phone string) (*Session, error) {
	access, refresh, err := uc.tokenManager.Generate(phone)
	if err != nil {
		return nil, fmt.Errorf("generate tokens: %w", err)
	}
	if err := uc.tokenStore.SaveRefresh(ctx, phone, refresh, uc.tokenManager.RefreshTTL()); err != nil {
		return nil, fmt.Errorf("save refresh: %w", err)
	}
	return &Session{Phone: phone, AccessToken: access, RefreshToken: refresh}, nil
}
