// Package coverage exposes the coverage service over HTTP with gin.
package coverage

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kilianp07/coverage/app"
	"github.com/kilianp07/coverage/core/assign"
	"github.com/kilianp07/coverage/core/ledger"
	"github.com/kilianp07/coverage/core/model"
	"github.com/kilianp07/coverage/core/notify"
	"github.com/kilianp07/coverage/core/roster"
)

// Service is the part of app.Service the handlers need.
type Service interface {
	Roster(path, sheet string) (*model.Roster, error)
	Run(ctx context.Context, req app.Request) (*app.Result, error)
	Ledger(ctx context.Context) *ledger.Ledger
	Subscribe() (<-chan notify.Message, func())
}

// Handler contains dependencies for the route handlers.
type Handler struct {
	Svc Service
}

// StaffView is one roster row as listed by GET /staff.
type StaffView struct {
	Name       string         `json:"name"`
	Preference string         `json:"preference"`
	Need       []model.Period `json:"need"`
	NeedCT     []model.Period `json:"need_ct"`
}

// RunView is the response of POST /coverage.
type RunView struct {
	RunID      string   `json:"run_id"`
	Date       string   `json:"date"`
	Report     string   `json:"report"`
	ReportPath string   `json:"report_path,omitempty"`
	Unassigned int      `json:"unassigned"`
	Unknown    []string `json:"unknown,omitempty"`
}

// LedgerEntryView is one row of GET /ledger.
type LedgerEntryView struct {
	Name         string `json:"name"`
	TimesCovered int    `json:"times_covered"`
}

// NewRouter registers every route on a fresh gin engine.
func NewRouter(svc Service) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	h := &Handler{Svc: svc}
	r.GET("/staff", h.ListStaff)
	r.POST("/coverage", h.CreateCoverage)
	r.GET("/ledger", h.ShowLedger)
	r.GET("/events", h.StreamEvents)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

// ListStaff returns the configured roster. The schedule file is never chosen
// by the client.
func (h *Handler) ListStaff(c *gin.Context) {
	ros, err := h.Svc.Roster("", "")
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, roster.ErrFileNotFound) || errors.Is(err, app.ErrNoRoster) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	out := make([]StaffView, 0, ros.Len())
	for _, s := range ros.Staff() {
		out = append(out, StaffView{Name: s.Name, Preference: s.Preference.String(), Need: s.Need, NeedCT: s.NeedCT})
	}
	c.JSON(http.StatusOK, out)
}

// CreateCoverage runs an assignment for the submitted absences. With
// ?format=text the plain report is returned.
func (h *Handler) CreateCoverage(c *gin.Context) {
	var req app.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.Svc.Run(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, app.ErrInvalidRequest):
			status = http.StatusBadRequest
		case errors.Is(err, app.ErrNoRoster), errors.Is(err, roster.ErrFileNotFound):
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	if c.Query("format") == "text" {
		c.String(http.StatusOK, res.Report)
		return
	}
	v := newRunView(res.RunID, res.Outcome, res.Report)
	v.ReportPath = res.ReportPath
	v.Unknown = res.Unknown
	c.JSON(http.StatusOK, v)
}

func newRunView(runID string, o *assign.Outcome, report string) RunView {
	return RunView{RunID: runID, Date: o.Date, Report: report, Unassigned: o.Unassigned()}
}

// StreamEvents pushes every completed run as a server-sent "run" event until
// the client goes away.
func (h *Handler) StreamEvents(c *gin.Context) {
	ch, cancel := h.Svc.Subscribe()
	defer cancel()
	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case msg, ok := <-ch:
			if !ok {
				return false
			}
			if msg.Outcome != nil {
				c.SSEvent("run", newRunView(msg.RunID, msg.Outcome, msg.Report))
			}
			return true
		}
	})
}

// ShowLedger returns coverage counts and the fairness score.
func (h *Handler) ShowLedger(c *gin.Context) {
	l := h.Svc.Ledger(c.Request.Context())
	names := l.Names()
	entries := make([]LedgerEntryView, 0, len(names))
	for _, n := range names {
		entries = append(entries, LedgerEntryView{Name: n, TimesCovered: l.Count(n)})
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries, "fairness": l.Fairness(names)})
}
