package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"vendas/internal/auth"
	"vendas/internal/core"
	"vendas/internal/log"
	"vendas/internal/report"
	"vendas/internal/session"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
	ClientID string `json:"clientId"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt string    `json:"expiresAt"`
	User      core.User `json:"user"`
}

// handleLogin authenticates explicit credentials, or replays a
// remembered login when the body only carries the client identifier.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Requisição inválida")
		return
	}

	email := strings.TrimSpace(req.Email)
	password := req.Password

	if email == "" && password == "" && req.ClientID != "" {
		remembered, err := s.sessions.FindRemembered(r.Context(), req.ClientID)
		if err == session.ErrNotFound {
			respondError(w, http.StatusUnauthorized, "Credenciais inválidas")
			return
		}
		if err != nil {
			respondError(w, http.StatusServiceUnavailable, "Serviço indisponível, tente novamente")
			return
		}
		email, password = remembered.Email, remembered.Password
	}

	user, token, err := s.auth.Login(r.Context(), email, password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		respondError(w, http.StatusUnauthorized, "Credenciais inválidas")
		return
	}
	if err != nil {
		log.FromContext(r.Context()).Error("login failed",
			log.FieldOperation, log.OpLogin,
			log.FieldError, err.Error())
		respondError(w, http.StatusServiceUnavailable, "Serviço indisponível, tente novamente")
		return
	}

	sess := session.Session{Token: token.Value, User: user, ExpiresAt: token.ExpiresAt}
	if err := s.sessions.SaveSession(r.Context(), sess); err != nil {
		log.FromContext(r.Context()).Error("session save failed",
			log.FieldOperation, log.OpLogin,
			log.FieldError, err.Error())
		respondError(w, http.StatusServiceUnavailable, "Serviço indisponível, tente novamente")
		return
	}

	if req.Remember && req.ClientID != "" {
		// Best effort; login still succeeds without the remembered copy.
		if err := s.sessions.SaveRemembered(r.Context(), req.ClientID, session.RememberedLogin{
			Email:    email,
			Password: password,
		}); err != nil {
			log.FromContext(r.Context()).Warn("remembered login save failed",
				log.FieldError, err.Error())
		}
	}

	if s.svc.State().Len() == 0 {
		if _, err := s.svc.Reload(r.Context()); err != nil {
			log.FromContext(r.Context()).Error("initial record load failed",
				log.FieldOperation, log.OpLoad,
				log.FieldError, err.Error())
		}
	}

	respondJSON(w, http.StatusOK, loginResponse{
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt.Format("2006-01-02T15:04:05Z07:00"),
		User:      user,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request, sess session.Session) {
	if err := s.sessions.DeleteSession(r.Context(), sess.Token); err != nil && err != session.ErrNotFound {
		log.FromContext(r.Context()).Warn("session delete failed",
			log.FieldOperation, log.OpLogout,
			log.FieldError, err.Error())
	}
	if clientID := r.URL.Query().Get("clientId"); clientID != "" {
		_ = s.sessions.DeleteRemembered(r.Context(), clientID)
	}
	s.svc.Reset()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request, _ session.Session) {
	st, err := parseFilterState(r.URL.Query())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, s.svc.Dashboard(st, s.now()))
}

type saleView struct {
	ID         string `json:"id"`
	Date       string `json:"date"`
	Partner    string `json:"partner"`
	Item       string `json:"item,omitempty"`
	Value      string `json:"value"`
	ValueCents int64  `json:"valueCents"`
	Payment    string `json:"payment"`
	State      string `json:"state,omitempty"`
}

func (s *Server) handleSales(w http.ResponseWriter, r *http.Request, _ session.Session) {
	st, err := parseFilterState(r.URL.Query())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	filtered := s.svc.FilteredSales(st, s.now())
	views := make([]saleView, 0, len(filtered))
	for _, sale := range filtered {
		views = append(views, saleView{
			ID:         sale.ID,
			Date:       core.FormatSaleDate(sale.SaleDate),
			Partner:    sale.PartnerName,
			Item:       sale.ItemName,
			Value:      core.FormatBRL(sale.ValueCents),
			ValueCents: sale.ValueCents,
			Payment:    core.ClassifyPayment(sale.PaymentDetail),
			State:      sale.State,
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{"sales": views, "count": len(views)})
}

func (s *Server) handlePartners(w http.ResponseWriter, r *http.Request, _ session.Session) {
	respondJSON(w, http.StatusOK, map[string]any{"partners": s.svc.PartnerOptions()})
}

func (s *Server) handleReportCSV(w http.ResponseWriter, r *http.Request, _ session.Session) {
	st, err := parseFilterState(r.URL.Query())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := s.now()
	rep := report.Build(s.svc.FilteredSales(st, now), st, now)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		`attachment; filename="relatorio-`+now.Format("2006-01-02")+`.csv"`)

	if _, err := report.NewCSVWriter(w).Export(r.Context(), rep); err != nil {
		// Headers are already out; all we can do is log.
		log.FromContext(r.Context()).Error("csv export failed",
			log.FieldOperation, log.OpExport,
			log.FieldError, err.Error())
	}
}

func (s *Server) handleReportSheets(w http.ResponseWriter, r *http.Request, _ session.Session) {
	if s.sheets == nil {
		respondError(w, http.StatusServiceUnavailable, "Exportação para planilha não configurada")
		return
	}

	st, err := parseFilterState(r.URL.Query())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := s.now()
	rep := report.Build(s.svc.FilteredSales(st, now), st, now)

	ref, err := s.sheets.Export(r.Context(), rep)
	if err != nil {
		log.FromContext(r.Context()).Error("sheet export failed",
			log.FieldOperation, log.OpExport,
			log.FieldError, err.Error())
		respondError(w, http.StatusBadGateway, "Falha ao exportar para a planilha")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"ref": ref})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request, _ session.Session) {
	count, err := s.svc.Reload(r.Context())
	if err != nil {
		log.FromContext(r.Context()).Error("reload failed",
			log.FieldOperation, log.OpLoad,
			log.FieldError, err.Error())
		respondError(w, http.StatusServiceUnavailable, "Falha ao recarregar os registros")
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"records": s.svc.State().Len(),
	})
}
