package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/rscf/care-fund-portal/internal/domain"
	"github.com/rscf/care-fund-portal/internal/service/member"
	portalerrors "github.com/rscf/care-fund-portal/pkg/errors"
	"go.uber.org/zap"
)

type contextKey string

const sessionKey contextKey = "session"

const storeFailureMessage = "The member store is currently unreachable. Please try again later."

// withSession attaches the visitor's session to the request context,
// creating one (and its cookie) on first contact.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sess *domain.Session

		if cookie, err := r.Cookie(s.cookieName); err == nil {
			sess, err = s.sessions.Get(r.Context(), cookie.Value)
			if err != nil {
				s.logger.Error("Session load failed", zap.Error(err))
				s.render(w, http.StatusInternalServerError, "error", errorView{Message: "Something went wrong. Please try again."})
				return
			}
		}

		if sess == nil {
			created, err := s.sessions.Create(r.Context())
			if err != nil {
				s.logger.Error("Session create failed", zap.Error(err))
				s.render(w, http.StatusInternalServerError, "error", errorView{Message: "Something went wrong. Please try again."})
				return
			}
			sess = created
			http.SetCookie(w, &http.Cookie{
				Name:     s.cookieName,
				Value:    sess.ID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), sessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFrom(ctx context.Context) *domain.Session {
	sess, _ := ctx.Value(sessionKey).(*domain.Session)
	return sess
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	switch {
	case sess.Authenticated:
		http.Redirect(w, r, "/dashboard", http.StatusFound)
	case sess.Screen == domain.ScreenSignup:
		http.Redirect(w, r, "/signup", http.StatusFound)
	default:
		http.Redirect(w, r, "/login", http.StatusFound)
	}
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	if sess.Authenticated {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}

	sess.Screen = domain.ScreenLogin
	_ = s.sessions.Save(r.Context(), sess)

	s.render(w, http.StatusOK, "login", loginView{})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	if err := r.ParseForm(); err != nil {
		s.render(w, http.StatusBadRequest, "login", loginView{Message: "❌ Invalid form submission", MessageKind: kindError})
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	matched, err := s.auth.Login(r.Context(), email, password)
	if err != nil {
		var credErr *portalerrors.CredentialError
		if errors.As(err, &credErr) {
			view := loginView{Email: email}
			if credErr.Reason == portalerrors.ReasonNotApproved {
				view.Message = "⏳ Account not activated by admin"
				view.MessageKind = kindWarning
			} else {
				view.Message = "❌ Invalid credentials"
				view.MessageKind = kindError
			}
			s.render(w, http.StatusUnauthorized, "login", view)
			return
		}

		s.logger.Error("Login failed against record store", zap.Error(err))
		s.render(w, http.StatusBadGateway, "error", errorView{Message: storeFailureMessage})
		return
	}

	sess.Login(matched)
	if err := s.sessions.Save(r.Context(), sess); err != nil {
		s.logger.Error("Session save failed after login", zap.Error(err))
		s.render(w, http.StatusInternalServerError, "error", errorView{Message: "Something went wrong. Please try again."})
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

func (s *Server) handleSignupPage(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	sess.Screen = domain.ScreenSignup
	_ = s.sessions.Save(r.Context(), sess)

	s.render(w, http.StatusOK, "signup", signupView{})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	if err := r.ParseForm(); err != nil {
		s.render(w, http.StatusBadRequest, "signup", signupView{Message: "❌ Invalid form submission", MessageKind: kindError})
		return
	}

	input := member.SignupInput{
		Name:     r.PostFormValue("name"),
		HQ:       r.PostFormValue("hq"),
		CMSID:    r.PostFormValue("cmsid"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
		Mobile:   r.PostFormValue("mobile"),
	}

	if _, err := s.registration.Register(r.Context(), input); err != nil {
		var valErr *portalerrors.ValidationError
		if errors.As(err, &valErr) {
			s.render(w, http.StatusBadRequest, "signup", signupView{
				Message:     "❌ " + valErr.Message,
				MessageKind: kindError,
				Form: signupForm{
					Name:   input.Name,
					HQ:     input.HQ,
					CMSID:  input.CMSID,
					Email:  input.Email,
					Mobile: input.Mobile,
				},
			})
			return
		}

		s.logger.Error("Signup failed against record store", zap.Error(err))
		s.render(w, http.StatusBadGateway, "error", errorView{Message: storeFailureMessage})
		return
	}

	// Back to the login screen with the acknowledgment, matching the
	// original flow.
	sess.Screen = domain.ScreenLogin
	_ = s.sessions.Save(r.Context(), sess)

	s.render(w, http.StatusOK, "login", loginView{
		Message:     "✅ Registered. Wait for admin approval.",
		MessageKind: kindSuccess,
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	if !sess.Authenticated || sess.Member == nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	contribution, err := s.contributions.GetContribution(r.Context(), sess.Member.CMSID)
	if err != nil {
		s.logger.Error("Contribution lookup failed", zap.Error(err))
		s.render(w, http.StatusBadGateway, "error", errorView{Message: storeFailureMessage})
		return
	}

	s.render(w, http.StatusOK, "dashboard", dashboardView{
		Member:       sess.Member,
		Contribution: strconv.FormatFloat(contribution, 'f', -1, 64),
		Links:        quickLinks,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	if err := s.sessions.Reset(r.Context(), sess); err != nil {
		s.logger.Error("Session reset failed", zap.Error(err))
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("unhealthy"))
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
