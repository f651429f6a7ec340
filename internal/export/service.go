package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/till/internal/encoding"
	"github.com/MrJamesThe3rd/till/internal/ledger"
)

// Charset is the text encoding of an export.
type Charset = encoding.Charset

const (
	CharsetUTF8        = encoding.UTF8
	CharsetUTF8BOM     = encoding.UTF8BOM
	CharsetWindows1252 = encoding.Windows1252
)

// Options control the layout of an export.
type Options struct {
	Comma   rune
	Charset Charset
}

func (o Options) withDefaults() Options {
	if o.Comma == 0 {
		o.Comma = ','
	}

	if o.Charset == "" {
		o.Charset = CharsetUTF8
	}

	return o
}

var header = []string{"id", "date", "movement_type", "customer", "payment_method", "total", "status"}

// Service exports the movements of a till.
type Service struct {
	ledger *ledger.Service
}

// NewService creates a new export Service.
func NewService(ledgerService *ledger.Service) *Service {
	return &Service{ledger: ledgerService}
}

// Export writes every movement of the range to w, one row each, header first.
// It returns the number of movements written.
func (s *Service) Export(ctx context.Context, restaurantID uuid.UUID, r ledger.DateRange, w io.Writer, opts Options) (int, error) {
	movements, err := s.ledger.Movements(ctx, restaurantID, r)
	if err != nil {
		return 0, fmt.Errorf("listing movements: %w", err)
	}

	if err := WriteMovements(w, movements, r, opts); err != nil {
		return 0, err
	}

	return len(movements), nil
}

// ExportToDir writes the export of the range to a file inside dir, creating
// dir if needed, and returns the file path and the number of movements.
func (s *Service) ExportToDir(ctx context.Context, restaurantID uuid.UUID, r ledger.DateRange, dir string, opts Options) (string, int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("creating export directory: %w", err)
	}

	path := filepath.Join(dir, FileName(r))

	f, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("creating export file: %w", err)
	}

	n, err := s.Export(ctx, restaurantID, r, f, opts)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("closing export file: %w", closeErr)
	}

	if err != nil {
		os.Remove(path)
		return "", 0, err
	}

	return path, n, nil
}

// FileName is the name of the export file of a range.
func FileName(r ledger.DateRange) string {
	return fmt.Sprintf("till_%s_%s.csv", r.Start.Format("20060102"), r.End.Format("20060102"))
}

// WriteMovements serializes movements as delimited text, dates in r's time zone.
func WriteMovements(w io.Writer, movements []*ledger.Movement, r ledger.DateRange, opts Options) error {
	opts = opts.withDefaults()

	out, err := encoding.NewWriter(w, opts.Charset)
	if err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}

	cw := csv.NewWriter(out)
	cw.Comma = opts.Comma

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	loc := r.Location
	if loc == nil {
		loc = r.Start.Location()
	}

	for _, m := range movements {
		row := []string{
			m.ID.String(),
			m.CreatedAt.In(loc).Format("2006-01-02 15:04"),
			string(m.Type),
			CustomerLabel(m),
			paymentLabel(m.PaymentMethod),
			ledger.FormatAmount(m.Total),
			string(m.Status),
		}

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing movement %s: %w", m.ID, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing export: %w", err)
	}

	if c, ok := out.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("flushing export: %w", err)
		}
	}

	return nil
}

// CustomerLabel names who a movement belongs to: the customer when known,
// otherwise where it came from.
func CustomerLabel(m *ledger.Movement) string {
	if name := strings.TrimSpace(m.CustomerName); name != "" {
		return name
	}

	switch m.Type {
	case ledger.TypeOpening:
		return "Till opening"
	case ledger.TypeCounter:
		return "Counter"
	}

	return "Online"
}

func paymentLabel(p ledger.PaymentMethod) string {
	if p == "" {
		return "other"
	}

	return string(p)
}

// Summary renders a plain-text report of a snapshot, one line per figure.
func Summary(r ledger.DateRange, s ledger.Snapshot) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Till report %s\n", r)
	fmt.Fprintf(&sb, "Opening balance:   %s\n", ledger.FormatAmount(s.OpeningBalance))
	fmt.Fprintf(&sb, "Cash in drawer:    %s\n", ledger.FormatAmount(s.TotalCashInDrawer))
	fmt.Fprintf(&sb, "Revenue:           %s (%d orders)\n", ledger.FormatAmount(s.TotalRevenue), s.TotalOrders)
	fmt.Fprintf(&sb, "  Counter:         %s\n", ledger.FormatAmount(s.CounterSales))
	fmt.Fprintf(&sb, "  Online:          %s\n", ledger.FormatAmount(s.OnlineSales))
	fmt.Fprintf(&sb, "  Cash:            %s\n", ledger.FormatAmount(s.CashSales))
	fmt.Fprintf(&sb, "  Cash delivery:   %s\n", ledger.FormatAmount(s.CashDeliverySales))
	fmt.Fprintf(&sb, "  Digital:         %s\n", ledger.FormatAmount(s.DigitalSales))

	for _, p := range s.TopProducts {
		fmt.Fprintf(&sb, "* %s x%d | %s\n", p.Name, p.Quantity, ledger.FormatAmount(p.Revenue))
	}

	return sb.String()
}
