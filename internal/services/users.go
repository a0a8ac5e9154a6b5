package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vinted-clone/marketplace-backend/internal/models"
	"github.com/vinted-clone/marketplace-backend/internal/store"
	"github.com/vinted-clone/marketplace-backend/pkg/utils"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) error
}

type SignupInput struct {
	Email    string
	Username string
	Password string
	Phone    string
	Avatar   io.Reader // optional
}

type SignupResult struct {
	ID      primitive.ObjectID `json:"id"`
	Email   string             `json:"email"`
	Account models.Account     `json:"account"`
	Token   string             `json:"token"`
}

type LoginResult struct {
	ID      primitive.ObjectID `json:"_id"`
	Token   string             `json:"token"`
	Account models.Account     `json:"account"`
}

type UserService struct {
	users      UserRepository
	uploader   AssetUploader // nil when uploads are not configured
	scheme     string
	folderRoot string
}

func NewUserService(users UserRepository, uploader AssetUploader, scheme, folderRoot string) *UserService {
	return &UserService{
		users:      users,
		uploader:   uploader,
		scheme:     scheme,
		folderRoot: folderRoot,
	}
}

func (s *UserService) Signup(ctx context.Context, in SignupInput) (*SignupResult, error) {
	if in.Email != "" {
		_, err := s.users.FindByEmail(ctx, in.Email)
		switch {
		case err == nil:
			return nil, ErrEmailTaken
		case !errors.Is(err, store.ErrNotFound):
			return nil, err
		}
	}
	switch {
	case in.Username == "":
		return nil, ErrUsernameRequired
	case in.Password == "":
		return nil, ErrPasswordRequired
	case in.Email == "":
		return nil, ErrEmailRequired
	case in.Phone == "":
		return nil, ErrPhoneRequired
	}

	salt, err := utils.RandomToken(utils.TokenLength)
	if err != nil {
		return nil, err
	}
	token, err := utils.RandomToken(utils.TokenLength)
	if err != nil {
		return nil, err
	}
	hash, err := utils.HashPassword(s.scheme, in.Password, salt)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:    primitive.NewObjectID(),
		Email: in.Email,
		Account: models.Account{
			Username: in.Username,
			Phone:    in.Phone,
		},
		Token: token,
		Hash:  hash,
		Salt:  salt,
	}

	if in.Avatar != nil {
		if s.uploader == nil {
			return nil, ErrUploadsUnavailable
		}
		avatar, err := s.uploader.Upload(ctx, in.Avatar, UserFolder(s.folderRoot, user.ID))
		if err != nil {
			return nil, fmt.Errorf("avatar: %w", err)
		}
		user.Account.Avatar = avatar
	}

	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateUser) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return &SignupResult{
		ID:      user.ID,
		Email:   user.Email,
		Account: user.Account,
		Token:   user.Token,
	}, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUnknownEmail
	}
	if err != nil {
		return nil, err
	}

	ok, err := utils.VerifyPassword(password, user.Salt, user.Hash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, ErrWrongCredentials
	}

	return &LoginResult{
		ID:      user.ID,
		Token:   user.Token,
		Account: user.Account,
	}, nil
}
