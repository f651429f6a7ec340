package ledger

import (
	"cmp"
	"slices"
	"time"
)

// TopProductsLimit caps the product breakdown.
const TopProductsLimit = 10

// Snapshot is the till state derived from the movements of a date range.
// All amounts are in cents.
type Snapshot struct {
	OpeningBalance    int64
	TotalRevenue      int64
	TotalOrders       int
	CounterSales      int64
	OnlineSales       int64
	CashSales         int64
	TotalCashInDrawer int64
	CashDeliverySales int64
	DigitalSales      int64
	DailySeries       []DailyTotal
	TopProducts       []ProductTotal
}

// DailyTotal is the sales total of one local calendar day.
type DailyTotal struct {
	Day    time.Time
	Amount int64
}

// ProductTotal aggregates the sold quantity and revenue of one item name.
type ProductTotal struct {
	Name     string
	Quantity int
	Revenue  int64
}

// CloseResult is the outcome of counting the drawer at closing time.
type CloseResult struct {
	AmountToRegister int64
	FinalDayRevenue  int64
}

// Compute derives the till state for r from movements. It never mutates its
// input and returns a zeroed snapshot when r is invalid.
func Compute(movements []*Movement, r DateRange) Snapshot {
	snap := Snapshot{
		DailySeries: []DailyTotal{},
		TopProducts: []ProductTotal{},
	}

	if !r.Valid() {
		return snap
	}

	loc := r.location()

	var (
		days     = make(map[time.Time]int64)
		products = make(map[string]*ProductTotal)
		order    []string
	)

	for _, m := range movements {
		if m == nil || m.Status == StatusCancelled || !r.Contains(m.CreatedAt) {
			continue
		}

		if m.Type == TypeOpening {
			snap.OpeningBalance += m.Total
			continue
		}

		snap.TotalRevenue += m.Total
		snap.TotalOrders++

		if m.Type == TypeCounter {
			snap.CounterSales += m.Total
		}

		switch {
		case m.PaymentMethod == PaymentCash:
			snap.CashSales += m.Total
			if m.Type != TypeCounter {
				snap.CashDeliverySales += m.Total
			}
		case m.PaymentMethod.IsDigital():
			snap.DigitalSales += m.Total
		}

		days[startOfDay(m.CreatedAt, loc)] += m.Total

		for _, it := range m.Items {
			p, ok := products[it.Name]
			if !ok {
				p = &ProductTotal{Name: it.Name}
				products[it.Name] = p
				order = append(order, it.Name)
			}

			p.Quantity += it.Quantity
			p.Revenue += it.Price * int64(it.Quantity)
		}
	}

	snap.OnlineSales = snap.TotalRevenue - snap.CounterSales
	snap.TotalCashInDrawer = snap.OpeningBalance + snap.CashSales
	snap.DailySeries = dailySeries(days)
	snap.TopProducts = topProducts(products, order)

	return snap
}

func dailySeries(days map[time.Time]int64) []DailyTotal {
	series := make([]DailyTotal, 0, len(days))
	for day, amount := range days {
		series = append(series, DailyTotal{Day: day, Amount: amount})
	}

	slices.SortFunc(series, func(a, b DailyTotal) int {
		return a.Day.Compare(b.Day)
	})

	return series
}

// topProducts orders by quantity descending, then by name so equal quantities
// always come out the same way.
func topProducts(products map[string]*ProductTotal, order []string) []ProductTotal {
	out := make([]ProductTotal, 0, len(order))
	for _, name := range order {
		out = append(out, *products[name])
	}

	slices.SortStableFunc(out, func(a, b ProductTotal) int {
		if c := cmp.Compare(b.Quantity, a.Quantity); c != 0 {
			return c
		}

		return cmp.Compare(a.Name, b.Name)
	})

	if len(out) > TopProductsLimit {
		out = out[:TopProductsLimit]
	}

	return out
}

// ReconcileClose compares the physically counted cash against the snapshot.
// Cash above what the system expected is registered as an extra counter sale;
// the day's revenue counts all cash above the opening float as sales.
func ReconcileClose(countedCash int64, s Snapshot) CloseResult {
	return CloseResult{
		AmountToRegister: max(0, countedCash-s.TotalCashInDrawer),
		FinalDayRevenue:  max(0, countedCash-s.OpeningBalance) + s.DigitalSales,
	}
}
