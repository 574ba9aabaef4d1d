package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradesim/account"
	"github.com/rustyeddy/tradesim/bot"
	"github.com/rustyeddy/tradesim/market"
)

type StatusResponse struct {
	Running       bool            `json:"running"`
	Mode          account.Mode    `json:"mode"`
	Balance       decimal.Decimal `json:"balance"`
	OpenPositions int             `json:"open_positions"`
}

type ModeRequest struct {
	Mode account.Mode `json:"mode"`
}

func statusOf(s account.Snapshot) StatusResponse {
	return StatusResponse{
		Running:       s.Running,
		Mode:          s.Mode,
		Balance:       s.Balance,
		OpenPositions: len(s.OpenPositions),
	}
}

// chart periods accepted by /api/equity
var periods = map[string]time.Duration{
	"":    0,
	"all": 0,
	"1h":  time.Hour,
	"24h": 24 * time.Hour,
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respond("handleHealth", map[string]string{"status": "ok"}, w)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	respond("handleSnapshot", s.bot.Snapshot(), w)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	respond("handleStatus", statusOf(s.bot.Snapshot()), w)
}

func (s *Server) handlePerformance(w http.ResponseWriter, r *http.Request) {
	respond("handlePerformance", s.bot.Snapshot().Performance, w)
}

func (s *Server) handlePositions(w http.ResponseWriter, r *http.Request) {
	respond("handlePositions", s.bot.Snapshot().OpenPositions, w)
}

func (s *Server) handleTrades(w http.ResponseWriter, r *http.Request) {
	respond("handleTrades", s.bot.Snapshot().RecentTrades, w)
}

func (s *Server) handleEquity(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	d, ok := periods[period]
	if !ok {
		setErrorResponse("handleEquity: bad period", http.StatusBadRequest,
			fmt.Errorf("unknown period %q (want 1h, 24h or all)", period), w)
		return
	}
	respond("handleEquity", s.bot.Snapshot().EquitySince(d), w)
}

func (s *Server) handleStrategies(w http.ResponseWriter, r *http.Request) {
	respond("handleStrategies", market.Strategies(), w)
}

func (s *Server) handleMarket(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	quotes, err := market.Quotes(vars["market"])
	if err != nil {
		setErrorResponse("handleMarket: not found", http.StatusNotFound, err, w)
		return
	}
	respond("handleMarket", quotes, w)
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	respond("handleToggle", statusOf(s.bot.Toggle()), w)
}

func (s *Server) handleMode(w http.ResponseWriter, r *http.Request) {
	var req ModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		setErrorResponse("handleMode: bad request", http.StatusBadRequest, err, w)
		return
	}

	snap, err := s.bot.SetMode(req.Mode)
	if err != nil {
		setErrorResponse("handleMode: bad mode", http.StatusBadRequest, err, w)
		return
	}
	respond("handleMode", statusOf(snap), w)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	respond("handleGetSettings", s.bot.Settings(), w)
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var req bot.Settings
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		setErrorResponse("handlePutSettings: bad request", http.StatusBadRequest, err, w)
		return
	}

	settings, err := s.bot.UpdateSettings(req)
	if err != nil {
		setErrorResponse("handlePutSettings: invalid settings", http.StatusBadRequest, err, w)
		return
	}
	respond("handlePutSettings", settings, w)
}
