package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rs/xid"

	"github.com/rahulv/blog-platform/internal/auth"
	"github.com/rahulv/blog-platform/internal/service"
	"github.com/rahulv/blog-platform/internal/validate"
)

// AuthHandler manages account creation and sign-in.
//
// ROUTES:
//   - HandleSignup         → create an email/password account, return a JWT
//   - HandleSignin         → verify credentials, return a JWT
//   - HandleMe             → profile of the authenticated user
//   - HandleGitHubLogin    → redirect the browser to GitHub's authorization page
//   - HandleGitHubCallback → receive the code, exchange it, return a JWT
//
// The API is token-in-body, not cookie-based: every successful auth flow
// answers {"jwt": "..."} and the client sends that value back in the
// Authorization header on blog requests.
type AuthHandler struct {
	auth      *service.AuthService
	github    *auth.GitHubProvider
	validator *validate.Validator
	logger    *slog.Logger
}

// NewAuthHandler creates an AuthHandler. github may be nil when no OAuth
// credentials are configured; the server then skips mounting those routes.
func NewAuthHandler(
	authSvc *service.AuthService,
	github *auth.GitHubProvider,
	validator *validate.Validator,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		auth:      authSvc,
		github:    github,
		validator: validator,
		logger:    logger,
	}
}

// jwtResponse is the success body for every auth flow.
type jwtResponse struct {
	JWT string `json:"jwt"`
}

// HandleSignup creates a new email/password account.
//
// HTTP: POST /api/v1/user/signup
// BODY: {"name": "...", "email": "...", "password": "..."} — name optional.
//
// A duplicate email is the one auth failure that gets its own status (409);
// everything after the schema check otherwise collapses into 400.
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var input validate.SignupInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeInputsIncorrect(w)
		return
	}
	if err := h.validator.Check(input); err != nil {
		writeInputsIncorrect(w)
		return
	}

	token, err := h.auth.Signup(r.Context(), input.Name, *input.Email, *input.Password)
	if err != nil {
		h.logger.Warn("signup failed",
			slog.String("email", *input.Email),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, jwtResponse{JWT: token})
}

// HandleSignin authenticates an existing account.
//
// HTTP: POST /api/v1/user/signin
// BODY: {"email": "...", "password": "..."}
//
// Wrong email and wrong password produce the same 403 — the response never
// confirms whether an address is registered.
func (h *AuthHandler) HandleSignin(w http.ResponseWriter, r *http.Request) {
	var input validate.SigninInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeInputsIncorrect(w)
		return
	}
	if err := h.validator.Check(input); err != nil {
		writeInputsIncorrect(w)
		return
	}

	token, err := h.auth.Signin(r.Context(), *input.Email, *input.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, jwtResponse{JWT: token})
}

// HandleMe returns the authenticated user's profile.
//
// HTTP: GET /api/v1/user/me
// Auth: required — RequireAuth has already put the user id in context.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusForbidden, messageResponse{Message: msgNotLoggedIn})
		return
	}

	user, err := h.auth.GetUserByID(r.Context(), userID)
	if err != nil {
		h.logger.Error("me lookup failed",
			slog.Int64("userID", userID),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// HandleGitHubLogin redirects the browser to GitHub's authorization page.
//
// HTTP: GET /auth/github/login
//
// A random state value goes into a short-lived HttpOnly cookie; the
// callback verifies it to prove the flow started here and not on an
// attacker's page.
func (h *AuthHandler) HandleGitHubLogin(w http.ResponseWriter, r *http.Request) {
	state := xid.New().String()

	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		MaxAge:   600, // 10 minutes
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.github.AuthURL(state), http.StatusTemporaryRedirect)
}

// HandleGitHubCallback completes the OAuth flow.
//
// HTTP: GET /auth/github/callback?code=xxx&state=yyy
//
// FLOW:
//  1. Verify the state parameter against the cookie
//  2. Exchange the code for a GitHub profile
//  3. Upsert the local account and issue a JWT
func (h *AuthHandler) HandleGitHubCallback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" || r.URL.Query().Get("state") != stateCookie.Value {
		h.logger.Warn("github callback: state check failed")
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid OAuth state"})
		return
	}

	// The state is single-use
	http.SetCookie(w, &http.Cookie{
		Name:   "oauth_state",
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.logger.Info("github callback: authorization denied", slog.String("error", errParam))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "authorization denied"})
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing OAuth code"})
		return
	}

	ghUser, err := h.github.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("github callback: exchange failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgSomethingWentWrong})
		return
	}

	token, err := h.auth.LoginOrRegisterGitHub(r.Context(), ghUser)
	if err != nil {
		h.logger.Error("github callback: local sign-in failed",
			slog.Int64("githubID", ghUser.ID),
			slog.String("error", err.Error()),
		)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgSomethingWentWrong})
		return
	}

	writeJSON(w, http.StatusOK, jwtResponse{JWT: token})
}
