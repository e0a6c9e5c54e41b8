package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Skotchmaster/post_shop/internal/apperr"
	"github.com/Skotchmaster/post_shop/internal/events"
	pkg_hash "github.com/Skotchmaster/post_shop/internal/hash"
	"github.com/Skotchmaster/post_shop/internal/logging"
	"github.com/Skotchmaster/post_shop/internal/models"
	"github.com/Skotchmaster/post_shop/internal/repo"
	"github.com/Skotchmaster/post_shop/internal/tokens"
)

const (
	MsgSignupInvalid     = "The request data is not valid"
	MsgPasswordMismatch  = "Password is not the same as password checkbox"
	MsgNicknameTaken     = "You have already registered an nickname."
	MsgLoginIncomplete   = "The request data is not complete"
	MsgInvalidCredential = "Invalid nickname or password."
	MsgLoginRequired     = "Please log in first."
)

type AuthService struct {
	Repo   *repo.GormRepo
	Signer *tokens.Signer
	Events events.Publisher
}

func (s *AuthService) Signup(ctx context.Context, nickname, password, confirmPassword string) error {
	l := logging.FromContext(ctx).With("svc", "auth.signup")

	if nickname == "" || password == "" || confirmPassword == "" {
		return apperr.Validation(MsgSignupInvalid, nil)
	}
	if password != confirmPassword {
		return apperr.Business(MsgPasswordMismatch)
	}

	exists, err := s.Repo.NicknameExists(ctx, nickname)
	if err != nil {
		return fmt.Errorf("check nickname: %w", err)
	}
	if exists {
		l.Warn("signup_error", "status", 400, "reason", "nickname taken")
		return apperr.Business(MsgNicknameTaken)
	}

	pwHash, err := pkg_hash.HashPassword(password)
	if err != nil {
		if errors.Is(err, pkg_hash.ErrPasswordTooLong) {
			return apperr.Validation(MsgSignupInvalid, err)
		}
		return fmt.Errorf("hash password: %w", err)
	}

	user := models.User{Nickname: nickname, Password: pwHash}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			return apperr.Business(MsgNicknameTaken)
		}
		return fmt.Errorf("create user: %w", err)
	}

	publish(ctx, s.Events, events.TopicUser, strconv.FormatUint(uint64(user.UserID), 10),
		events.NewEvent("user_signed_up", map[string]any{"userId": user.UserID, "nickname": user.Nickname}))

	l.Info("signup_success", "user_id", user.UserID)
	return nil
}

// Login answers unknown users and wrong passwords identically, with status 400.
func (s *AuthService) Login(ctx context.Context, nickname, password string) (string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if nickname == "" || password == "" {
		return "", apperr.Validation(MsgLoginIncomplete, nil)
	}

	invalid := apperr.Auth(MsgInvalidCredential, nil).WithStatus(http.StatusBadRequest)

	user, err := s.Repo.GetUserByNickname(ctx, nickname)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("login_failed", "status", 400, "reason", "unknown nickname")
			return "", invalid
		}
		return "", fmt.Errorf("find user: %w", err)
	}
	if !pkg_hash.CheckPassword(user.Password, password) {
		l.Warn("login_failed", "status", 400, "reason", "password mismatch")
		return "", invalid
	}

	token, err := s.Signer.Sign(user.UserID)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	publish(ctx, s.Events, events.TopicUser, strconv.FormatUint(uint64(user.UserID), 10),
		events.NewEvent("user_logged_in", map[string]any{"userId": user.UserID}))

	l.Info("login_success", "user_id", user.UserID)
	return token, nil
}

// Authenticate resolves the user a verified token belongs to.
func (s *AuthService) Authenticate(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.Auth(MsgLoginRequired, err)
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}
