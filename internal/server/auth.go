package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"regexp"
	"strings"

	"ecsrs/internal"
	"ecsrs/internal/utils"
	"ecsrs/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	ctypes "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type confirmRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (s *Service) handleSignup(w http.ResponseWriter, r *http.Request) {
	var ctx = r.Context()

	var req signupRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.respondError(w, err)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.FullName = strings.TrimSpace(req.FullName)

	if msg := validateSignup(req); msg != "" {
		s.respondError(w, fmt.Errorf("%w: %s", types.ErrValidation, msg))
		return
	}

	input := &cognitoidentityprovider.SignUpInput{
		ClientId: aws.String(s.config.CognitoClientID),
		Username: aws.String(req.Email),
		Password: aws.String(req.Password),
		UserAttributes: []ctypes.AttributeType{
			{Name: aws.String("email"), Value: aws.String(req.Email)},
			{Name: aws.String("name"), Value: aws.String(req.FullName)},
		},
	}

	out, err := s.cognito.SignUp(ctx, input)
	if err != nil {
		s.respondError(w, s.mapCognitoSignupError(err))
		return
	}

	userID := aws.ToString(out.UserSub)

	profile := &types.Profile{
		UserID:   userID,
		FullName: utils.StringPtr(req.FullName),
		Email:    utils.StringPtr(req.Email),
	}
	if req.Phone != "" {
		profile.Phone = utils.StringPtr(req.Phone)
	}

	if err := s.profileRepo.CreateProfile(ctx, profile); err != nil {
		s.logger.WithError(err).Error("failed to create profile for new user")
		s.respondError(w, err)
		return
	}

	if err := s.prefsRepo.SavePreferences(ctx, types.DefaultNotificationPreferences(userID)); err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Warn("failed to save default notification preferences")
	}

	s.logger.WithField("user_id", userID).Info("user signed up")

	s.respondJSON(w, http.StatusCreated, map[string]string{"userId": userID})
}

func (s *Service) handleConfirmSignup(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.respondError(w, err)
		return
	}

	input := &cognitoidentityprovider.ConfirmSignUpInput{
		ClientId:         aws.String(s.config.CognitoClientID),
		Username:         aws.String(strings.TrimSpace(req.Email)),
		ConfirmationCode: aws.String(strings.TrimSpace(req.Code)),
	}

	_, err := s.cognito.ConfirmSignUp(r.Context(), input)
	if err != nil {
		var codeMismatch *ctypes.CodeMismatchException
		if errors.As(err, &codeMismatch) {
			s.respondError(w, fmt.Errorf("%w: invalid confirmation code", types.ErrValidation))
			return
		}

		s.logger.WithError(err).Error("failed to confirm user signup")
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]bool{"confirmed": true})
}

func (s *Service) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.respondError(w, err)
		return
	}

	input := &cognitoidentityprovider.InitiateAuthInput{
		AuthFlow: ctypes.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(s.config.CognitoClientID),
		AuthParameters: map[string]string{
			"USERNAME": strings.TrimSpace(req.Email),
			"PASSWORD": req.Password,
		},
	}

	resp, err := s.cognito.InitiateAuth(r.Context(), input)
	if err != nil {
		// NotAuthorizedException, UserNotConfirmedException, etc.
		s.respondErrorMessage(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if resp.AuthenticationResult == nil || resp.AuthenticationResult.AccessToken == nil {
		s.respondErrorMessage(w, http.StatusUnauthorized, "login failed")
		return
	}

	accessToken := aws.ToString(resp.AuthenticationResult.AccessToken)
	expiresIn := int(resp.AuthenticationResult.ExpiresIn)

	encryptedToken, err := s.cookie.Encode(internal.COOKIE_ACCESS_TOKEN_NAME, accessToken)
	if err != nil {
		s.logger.WithError(err).Error("failed to encrypt access token")
		s.respondErrorMessage(w, http.StatusUnauthorized, "login failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     internal.COOKIE_ACCESS_TOKEN_NAME,
		Value:    encryptedToken,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   expiresIn,
		Path:     "/",
	})

	s.respondJSON(w, http.StatusOK, map[string]any{
		"accessToken": accessToken,
		"expiresIn":   expiresIn,
	})
}

func (s *Service) handleLogout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     internal.COOKIE_ACCESS_TOKEN_NAME,
		Value:    "",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})

	w.WriteHeader(http.StatusNoContent)
}

var (
	hasUpperReg  = regexp.MustCompile(`[A-Z]`)
	hasLowerReg  = regexp.MustCompile(`[a-z]`)
	hasDigitReg  = regexp.MustCompile(`[0-9]`)
	hasSymbolReg = regexp.MustCompile(`[^A-Za-z0-9]`)
)

func validateSignup(req signupRequest) string {
	if req.FullName == "" {
		return "full name is required"
	}

	if req.Email == "" {
		return "email is required"
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return "enter a valid email address"
	}

	hasUpper := hasUpperReg.MatchString(req.Password)
	hasLower := hasLowerReg.MatchString(req.Password)
	hasDigit := hasDigitReg.MatchString(req.Password)
	hasSymbol := hasSymbolReg.MatchString(req.Password)

	if len(req.Password) < 12 || !hasUpper || !hasLower || !hasDigit || !hasSymbol {
		return "password must be at least 12 characters and include uppercase, lowercase, number, and symbol"
	}

	return ""
}

func (s *Service) mapCognitoSignupError(err error) error {
	var invalidPw *ctypes.InvalidPasswordException
	if errors.As(err, &invalidPw) {
		return fmt.Errorf("%w: password does not meet the policy", types.ErrValidation)
	}

	var userExists *ctypes.UsernameExistsException
	if errors.As(err, &userExists) {
		return fmt.Errorf("%w: an account with this email already exists", types.ErrValidation)
	}

	var invalidParam *ctypes.InvalidParameterException
	if errors.As(err, &invalidParam) {
		return fmt.Errorf("%w: some details are invalid", types.ErrValidation)
	}

	s.logger.WithError(err).Error("unhandled cognito signup error")

	return err
}
