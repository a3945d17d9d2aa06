package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/JonMunkholm/condenser/internal/core"
	"github.com/JonMunkholm/condenser/internal/logging"
	"github.com/JonMunkholm/condenser/internal/web/templates"
)

// PageResponse is the JSON view of the current page.
type PageResponse struct {
	Columns       []string       `json:"columns"`
	Rows          []core.PageRow `json:"rows"`
	Page          int            `json:"page"`
	PageCount     int            `json:"pageCount"`
	PageSize      int            `json:"pageSize"`
	Total         int            `json:"total"`
	HasNext       bool           `json:"hasNext"`
	HasPrev       bool           `json:"hasPrev"`
	HeaderChecked bool           `json:"headerChecked"`
	Selectable    bool           `json:"selectable"`
}

// DeleteResponse reports a bulk delete and the remapped page.
type DeleteResponse struct {
	Deleted int `json:"deleted"`
	PageResponse
}

// handleGrid renders the HTML grid. Query parameters, when present, update
// the pipeline and re-query; a bare GET renders the current page as is so
// selection and the header survive a reload.
func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	var data templates.GridData
	err := s.session.Do(func(e *core.Engine) error {
		if len(r.URL.Query()) > 0 {
			if err := applyQuery(e, r.URL.Query()); err != nil {
				return err
			}
			if _, err := e.Query(); err != nil {
				return err
			}
		}
		data = s.gridData(e)
		return nil
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	component := templates.GridPage(data)
	if isHTMX(r) {
		component = templates.GridPartial(data)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render grid", "error", err)
	}
}

// handleRows applies query parameters and returns the re-queried page.
func (s *Server) handleRows(w http.ResponseWriter, r *http.Request) {
	var resp PageResponse
	err := s.session.Do(func(e *core.Engine) error {
		if err := applyQuery(e, r.URL.Query()); err != nil {
			return err
		}
		if _, err := e.Query(); err != nil {
			return err
		}
		resp = s.pageResponse(e)
		return nil
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Debug("rows served",
		"page", resp.Page,
		"rows", len(resp.Rows),
		"total", resp.Total,
	)
	writeJSON(w, resp)
}

// handleSelected returns the checked rows of the current page.
func (s *Server) handleSelected(w http.ResponseWriter, r *http.Request) {
	var rows []core.PageRow
	s.session.Do(func(e *core.Engine) error {
		rows = e.CheckedRows()
		return nil
	})
	if rows == nil {
		rows = []core.PageRow{}
	}
	writeJSON(w, map[string]any{
		"rows":  rows,
		"count": len(rows),
	})
}

// handleSelectAll sets every row of the current page to the posted state.
func (s *Server) handleSelectAll(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Checked bool `json:"checked"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, fmt.Errorf("%w: %v", errBadBody, err))
		return
	}

	s.mutate(w, r, func(e *core.Engine) error {
		return e.ToggleAll(req.Checked)
	})
}

// handleToggleRow flips one row of the current page.
func (s *Server) handleToggleRow(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "rowID"))
	if err != nil {
		s.respondError(w, r, fmt.Errorf("%w: %v", errBadRowID, err))
		return
	}

	s.mutate(w, r, func(e *core.Engine) error {
		return e.ToggleOne(id)
	})
}

// handleNext advances one page and re-queries.
func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(e *core.Engine) error {
		e.Next()
		_, err := e.Query()
		return err
	})
}

// handlePrev moves back one page and re-queries.
func (s *Server) handlePrev(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(e *core.Engine) error {
		e.Prev()
		_, err := e.Query()
		return err
	})
}

// handleDelete removes the checked rows. The response shows the remapped
// page without a re-query, so it may be short until the next query.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	var resp DeleteResponse
	err := s.session.Do(func(e *core.Engine) error {
		n, err := e.DeleteSelected()
		if err != nil {
			return err
		}
		resp = DeleteResponse{Deleted: n, PageResponse: s.pageResponse(e)}
		return nil
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	logging.WithFields(r.Context(), "deleted", resp.Deleted).Info("delete selected")
	writeJSON(w, resp)
}

// mutate runs fn against the engine and answers with the resulting page.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, fn func(e *core.Engine) error) {
	var resp PageResponse
	err := s.session.Do(func(e *core.Engine) error {
		if err := fn(e); err != nil {
			return err
		}
		resp = s.pageResponse(e)
		return nil
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, resp)
}

func (s *Server) pageResponse(e *core.Engine) PageResponse {
	rows := e.CurrentPage()
	if rows == nil {
		rows = []core.PageRow{}
	}
	return PageResponse{
		Columns:       core.ColumnNames(s.session.columns, e.Width()),
		Rows:          rows,
		Page:          e.Page(),
		PageCount:     e.PageCount(),
		PageSize:      e.PageSize(),
		Total:         e.VisibleCount(),
		HasNext:       e.HasNext(),
		HasPrev:       e.HasPrev(),
		HeaderChecked: s.session.headerChecked,
		Selectable:    e.Selectable(),
	}
}

func (s *Server) gridData(e *core.Engine) templates.GridData {
	cfg := e.Config()
	sortCol := -1
	if cfg.SortColumn != nil {
		sortCol = *cfg.SortColumn
	}
	return templates.GridData{
		Title:         s.title,
		Columns:       core.ColumnNames(s.session.columns, e.Width()),
		Rows:          e.CurrentPage(),
		Page:          e.Page(),
		PageCount:     e.PageCount(),
		Total:         e.VisibleCount(),
		HasNext:       e.HasNext(),
		HasPrev:       e.HasPrev(),
		HeaderChecked: s.session.headerChecked,
		Selectable:    e.Selectable(),
		Filter:        cfg.Filter,
		SortColumn:    sortCol,
		SortDirection: cfg.SortDirection,
	}
}

// applyQuery builds a new pipeline configuration from the parameters present
// in q and commits it only when every parameter is valid. Absent parameters
// keep the current setting.
//
//	q       text filter
//	cols    comma-separated filter columns
//	sort    sort column, empty to clear
//	dir     asc or desc
//	page    zero-based page index
//	size    rows per page
//	catcol  categorical column, with cat=true|false; empty cat clears it
func applyQuery(e *core.Engine, q url.Values) error {
	cfg := e.Config()

	if q.Has("q") {
		cfg.Filter = q.Get("q")
	}

	if q.Has("cols") {
		cols, err := parseInts(q.Get("cols"))
		if err != nil {
			return invalidParam("cols", q.Get("cols"))
		}
		cfg.FilterColumns = cols
	}

	if q.Has("dir") {
		dir, err := parseDirection(q.Get("dir"))
		if err != nil {
			return err
		}
		cfg.SortDirection = dir
	}

	switch {
	case q.Has("sort") && q.Get("sort") == "":
		cfg.SortColumn = nil
	case q.Has("sort"):
		col, err := strconv.Atoi(q.Get("sort"))
		if err != nil {
			return invalidParam("sort", q.Get("sort"))
		}
		if !q.Has("dir") {
			cfg.SortDirection = core.SortAsc
		}
		cfg.SortColumn = &col
	}

	if q.Has("page") {
		page, err := strconv.Atoi(q.Get("page"))
		if err != nil {
			return invalidParam("page", q.Get("page"))
		}
		cfg.Page = page
	}

	if q.Has("size") {
		size, err := strconv.Atoi(q.Get("size"))
		if err != nil {
			return invalidParam("size", q.Get("size"))
		}
		cfg.PageSize = size
	}

	if q.Has("cat") {
		cat, err := parseCategorical(q.Get("catcol"), q.Get("cat"))
		if err != nil {
			return err
		}
		cfg.Categorical = cat
	}

	return e.SetConfig(cfg)
}

// parseCategorical reads the categorical filter; an empty value clears it.
func parseCategorical(colParam, value string) (*core.Categorical, error) {
	if value == "" {
		return nil, nil
	}
	col, err := strconv.Atoi(colParam)
	if err != nil {
		return nil, invalidParam("catcol", colParam)
	}
	state, err := strconv.ParseBool(value)
	if err != nil {
		return nil, invalidParam("cat", value)
	}
	return &core.Categorical{Column: col, Value: state}, nil
}

// parseDirection rejects unknown values instead of falling back to ascending.
func parseDirection(s string) (core.SortDirection, error) {
	dir := core.SortDirection(strings.ToLower(strings.TrimSpace(s)))
	if !dir.Valid() {
		return "", fmt.Errorf("%w: sort direction %q", core.ErrInvalidConfiguration, s)
	}
	return dir, nil
}

func parseInts(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func invalidParam(name, value string) error {
	return fmt.Errorf("%w: parameter %s=%q is not valid", core.ErrInvalidConfiguration, name, value)
}
