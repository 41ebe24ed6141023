package user

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	classroom "google.golang.org/api/classroom/v1"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/Peyu5h/edusynck-sub000/internal/auth"
	"github.com/Peyu5h/edusynck-sub000/internal/config"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrExchangeFailed = errors.New("failed to exchange google authorization code")
)

const (
	accessTokenTTL  = time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

type LoginResult struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type UserService interface {
	GoogleLogin(ctx context.Context, code string) (*LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (*LoginResult, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

type userService struct {
	repo UserRepository
}

func NewService(repo UserRepository) UserService {
	return &userService{repo: repo}
}

// GoogleOAuthConfig carries the Classroom scopes so the tokens stored at
// login can later drive course/material sync for the same user.
func GoogleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		Endpoint:     google.Endpoint,
		Scopes: []string{
			"openid",
			"email",
			"profile",
			classroom.ClassroomCoursesReadonlyScope,
			classroom.ClassroomRostersReadonlyScope,
			classroom.ClassroomCourseworkMeReadonlyScope,
			classroom.ClassroomCourseworkmaterialsReadonlyScope,
		},
	}
}

func (s *userService) GoogleLogin(ctx context.Context, code string) (*LoginResult, error) {
	log := config.WithContext(ctx)

	conf := GoogleOAuthConfig()
	token, err := conf.Exchange(ctx, code)
	if err != nil {
		log.WithError(err).Error("Falha ao trocar o código de autorização do Google")
		return nil, ErrExchangeFailed
	}

	infoSrv, err := oauth2api.NewService(ctx, option.WithTokenSource(conf.TokenSource(ctx, token)))
	if err != nil {
		log.WithError(err).Error("Failed to create userinfo client")
		return nil, err
	}
	info, err := infoSrv.Userinfo.Get().Do()
	if err != nil {
		log.WithError(err).Error("Failed to fetch google profile")
		return nil, err
	}

	encAccess, err := config.Encrypt(token.AccessToken)
	if err != nil {
		return nil, err
	}
	encRefresh := ""
	if token.RefreshToken != "" {
		if encRefresh, err = config.Encrypt(token.RefreshToken); err != nil {
			return nil, err
		}
	}

	u := &User{
		GoogleID:                    info.Id,
		Name:                        info.Name,
		Email:                       info.Email,
		Role:                        RoleStudent,
		Picture:                     info.Picture,
		EncryptedGoogleAccessToken:  encAccess,
		EncryptedGoogleRefreshToken: encRefresh,
	}

	if err := s.repo.Upsert(u); err != nil {
		log.WithError(err).Error("Failed to upsert user on login")
		return nil, err
	}

	return s.issueTokens(u)
}

func (s *userService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	log := config.WithContext(ctx)

	claims, err := auth.ValidateJWT(refreshToken)
	if err != nil {
		log.WithError(err).Warn("Refresh token inválido")
		return nil, err
	}

	u, err := s.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	return s.issueTokens(u)
}

func (s *userService) GetByID(ctx context.Context, id string) (*User, error) {
	log := config.WithContext(ctx)

	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	u, err := s.repo.FindByID(userID)
	if err != nil {
		log.WithError(err).Error("Failed to find user by id")
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *userService) issueTokens(u *User) (*LoginResult, error) {
	access, err := auth.GenerateJWT(u.ID.String(), string(u.Role), accessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := auth.GenerateJWT(u.ID.String(), string(u.Role), refreshTokenTTL)
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: u, AccessToken: access, RefreshToken: refresh}, nil
}
