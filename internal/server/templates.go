package server

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/rscf/care-fund-portal/internal/domain"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

func parseTemplates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

// Message kinds rendered by the flash partial.
const (
	kindError   = "error"
	kindWarning = "warning"
	kindSuccess = "success"
)

type loginView struct {
	Message     string
	MessageKind string
	Email       string
}

type signupView struct {
	Message     string
	MessageKind string
	Form        signupForm
}

type signupForm struct {
	Name   string
	HQ     string
	CMSID  string
	Email  string
	Mobile string
}

type dashboardView struct {
	Member       *domain.Member
	Contribution string
	Links        []quickLink
}

type quickLink struct {
	Label string
	URL   string
}

type errorView struct {
	Message string
}

// Quick links shown on the dashboard sidebar of the original portal.
var quickLinks = []quickLink{
	{Label: "📜 Group Rules", URL: "https://docs.google.com/document/d/1UmwVVb2q8azpaN4nrN22489r9zBH_tJKzXJPZtivyxM/edit?usp=sharing"},
	{Label: "👥 Group Members", URL: "https://docs.google.com/document/d/1YymXCoUaKSVT9I8O-4JrPcAAHTnsmNagHRoZV9Q7quM/edit"},
	{Label: "💰 Fund Status (Coming Soon)", URL: "https://docs.google.com/spreadsheets/d/FUND_STATUS_SHEET_LINK"},
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("Template render failed",
			zap.String("template", name),
			zap.Error(err))
	}
}
