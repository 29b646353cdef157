package web

import (
	"bytes"
	"context"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/shopfixtures/internal/report"
)

// reportResponse is the JSON form of a report. NULL cells stay null and
// every other cell is rendered the same way as in the text table.
type reportResponse struct {
	Columns []string    `json:"columns"`
	Rows    [][]*string `json:"rows"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// runReport loads the query file, checks the store and runs the query.
func (s *Server) runReport(ctx context.Context) (*report.Result, error) {
	query, err := report.LoadQuery(s.cfg.Report.QueryFile)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Report.Timeout)
	defer cancel()

	if err := report.Ready(ctx, s.db); err != nil {
		return nil, err
	}
	return report.Fetch(ctx, s.db, query)
}

func (s *Server) handleReportText(w http.ResponseWriter, r *http.Request) {
	res, err := s.runReport(r.Context())
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, res); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) handleReportJSON(w http.ResponseWriter, r *http.Request) {
	res, err := s.runReport(r.Context())
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	resp := reportResponse{Columns: res.Columns, Rows: make([][]*string, len(res.Rows))}
	for i, row := range res.Rows {
		cells := make([]*string, len(row))
		for j, v := range row {
			if v != nil {
				text := report.FormatValue(v)
				cells[j] = &text
			}
		}
		resp.Rows[i] = cells
	}
	writeJSON(w, resp)
}

func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	if err := report.Ready(r.Context(), s.db); err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	counts, err := s.service.Counts(r.Context())
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, counts)
}

func (s *Server) handleListLoads(w http.ResponseWriter, r *http.Request) {
	limit := parseIntParam(r, "limit", 10)

	loads, err := s.service.LoadHistory(r.Context(), limit)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, loads)
}

// parseIntParam parses a positive integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return min(i, 100)
}
