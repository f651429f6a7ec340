package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/till/internal/encoding"
	"github.com/MrJamesThe3rd/till/internal/export"
	"github.com/MrJamesThe3rd/till/internal/ledger"
)

// amount accepts either a JSON number or a user-typed string such as "1.500,50".
type amount int64

func (a *amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("%w: missing", ledger.ErrInvalidAmount)
	}

	var (
		cents int64
		err   error
	)

	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}

		cents, err = ledger.ParseAmount(raw)
	} else {
		// Numbers are read as plain decimals, exponents included.
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("%w: %s", ledger.ErrInvalidAmount, data)
		}

		d, derr := decimal.NewFromString(n.String())
		if derr != nil {
			return fmt.Errorf("%w: %v", ledger.ErrInvalidAmount, derr)
		}

		cents, err = ledger.DecimalToCents(d)
	}

	if err != nil {
		return err
	}

	*a = amount(cents)

	return nil
}

func (h *Handler) rangeFromQuery(r *http.Request) (ledger.DateRange, error) {
	q := r.URL.Query()
	return h.parseRange(q.Get("start"), q.Get("end"), q.Get("tz"))
}

// parseRange defaults to today in the handler's zone. A single bound means a
// single-day range.
func (h *Handler) parseRange(start, end, tz string) (ledger.DateRange, error) {
	loc := h.loc

	if tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return ledger.DateRange{}, fmt.Errorf("invalid tz %q", tz)
		}

		loc = l
	}

	switch {
	case start == "" && end == "":
		return ledger.Today(h.now(), loc), nil
	case start == "":
		start = end
	case end == "":
		end = start
	}

	dr, err := ledger.ParseDateRange(start, end, loc)
	if err != nil {
		return ledger.DateRange{}, fmt.Errorf("invalid date: %w", err)
	}

	return dr, nil
}

func exportOptions(r *http.Request) (export.Options, error) {
	q := r.URL.Query()

	cs, err := encoding.ParseCharset(q.Get("charset"))
	if err != nil {
		return export.Options{}, err
	}

	opts := export.Options{Comma: ',', Charset: cs}

	switch c := q.Get("comma"); {
	case c == "":
	case c == "tab":
		opts.Comma = '\t'
	case utf8.RuneCountInString(c) == 1 && !strings.ContainsAny(c, "\"\r\n"):
		opts.Comma, _ = utf8.DecodeRuneInString(c)
	default:
		return opts, fmt.Errorf("invalid comma %q", c)
	}

	return opts, nil
}
