package analytics

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// View names accepted by the query engine
const (
	ViewTimeSeries = "time_series"
	ViewMonthly    = "monthly"
	ViewByDept     = "by_dept"
	ViewMovingAvg  = "moving_avg"
	ViewMoMPct     = "mom_pct"
)

// DefaultWindow is the trailing window size used by moving_avg when the
// caller does not supply one.
const DefaultWindow = 7

// Request errors
var (
	ErrUnknownView   = errors.New("unknown view")
	ErrInvalidWindow = errors.New("window must be a positive integer")
	ErrInvalidDate   = errors.New("date must be formatted YYYY-MM-DD")
)

// ViewRequest carries one aggregation request against the loaded table
type ViewRequest struct {
	View   string     `json:"view" validate:"required,oneof=time_series monthly by_dept moving_avg mom_pct"`
	Store  string     `json:"store,omitempty"`
	Start  *time.Time `json:"start,omitempty"`
	End    *time.Time `json:"end,omitempty"`
	Window int        `json:"window" validate:"gte=1"`
}

var validate = validator.New()

// ParseViewRequest builds a ViewRequest from URL query parameters.
// Missing view defaults to time_series and missing window to DefaultWindow,
// matching the dashboard's expectations. Malformed parameters surface as
// wrapped sentinel errors so transport can map them to a 400.
func ParseViewRequest(q url.Values) (ViewRequest, error) {
	req := ViewRequest{
		View:   ViewTimeSeries,
		Store:  q.Get("store"),
		Window: DefaultWindow,
	}

	if v := q.Get("view"); v != "" {
		req.View = v
	}

	if w := q.Get("window"); w != "" {
		n, err := strconv.Atoi(w)
		if err != nil || n < 1 {
			return ViewRequest{}, fmt.Errorf("%w: %q", ErrInvalidWindow, w)
		}
		req.Window = n
	}

	for _, p := range []struct {
		name string
		dst  **time.Time
	}{
		{"start", &req.Start},
		{"end", &req.End},
	} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return ViewRequest{}, fmt.Errorf("%w: %s=%q", ErrInvalidDate, p.name, raw)
		}
		*p.dst = &t
	}

	if err := validate.Struct(req); err != nil {
		return ViewRequest{}, fmt.Errorf("%w: %q", ErrUnknownView, req.View)
	}

	return req, nil
}
