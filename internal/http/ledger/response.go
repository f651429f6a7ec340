package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/till/internal/ledger"
)

type itemResponse struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

type movementResponse struct {
	ID            uuid.UUID            `json:"id"`
	RestaurantID  uuid.UUID            `json:"restaurant_id"`
	CreatedAt     time.Time            `json:"created_at"`
	Type          ledger.MovementType  `json:"type"`
	PaymentMethod ledger.PaymentMethod `json:"payment_method,omitempty"`
	Total         int64                `json:"total"`
	Items         []itemResponse       `json:"items"`
	Status        ledger.Status        `json:"status"`
	CustomerName  string               `json:"customer_name,omitempty"`
}

type rangeResponse struct {
	Start    string `json:"start"`
	End      string `json:"end"`
	Timezone string `json:"tz"`
}

type dailyTotalResponse struct {
	Day    string `json:"day"`
	Amount int64  `json:"amount"`
}

type productTotalResponse struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Revenue  int64  `json:"revenue"`
}

type snapshotResponse struct {
	Range             rangeResponse          `json:"range"`
	OpeningBalance    int64                  `json:"opening_balance"`
	TotalRevenue      int64                  `json:"total_revenue"`
	TotalOrders       int                    `json:"total_orders"`
	CounterSales      int64                  `json:"counter_sales"`
	OnlineSales       int64                  `json:"online_sales"`
	CashSales         int64                  `json:"cash_sales"`
	TotalCashInDrawer int64                  `json:"total_cash_in_drawer"`
	CashDeliverySales int64                  `json:"cash_delivery_sales"`
	DigitalSales      int64                  `json:"digital_sales"`
	DailySeries       []dailyTotalResponse   `json:"daily_series"`
	TopProducts       []productTotalResponse `json:"top_products"`
}

type closeResponse struct {
	ExpectedCash     int64             `json:"expected_cash"`
	AmountToRegister int64             `json:"amount_to_register"`
	FinalDayRevenue  int64             `json:"final_day_revenue"`
	Adjustment       *movementResponse `json:"adjustment"`
	Snapshot         snapshotResponse  `json:"snapshot"`
}

func toMovementResponse(m *ledger.Movement) movementResponse {
	resp := movementResponse{
		ID:            m.ID,
		RestaurantID:  m.RestaurantID,
		CreatedAt:     m.CreatedAt,
		Type:          m.Type,
		PaymentMethod: m.PaymentMethod,
		Total:         m.Total,
		Items:         make([]itemResponse, len(m.Items)),
		Status:        m.Status,
		CustomerName:  m.CustomerName,
	}

	for i, it := range m.Items {
		resp.Items[i] = itemResponse{Name: it.Name, Quantity: it.Quantity, Price: it.Price}
	}

	return resp
}

func toMovementResponseList(ms []*ledger.Movement) []movementResponse {
	resp := make([]movementResponse, len(ms))
	for i, m := range ms {
		resp[i] = toMovementResponse(m)
	}

	return resp
}

func toRangeResponse(r ledger.DateRange) rangeResponse {
	tz := "UTC"
	if r.Location != nil {
		tz = r.Location.String()
	}

	return rangeResponse{
		Start:    r.Start.Format(time.DateOnly),
		End:      r.End.Format(time.DateOnly),
		Timezone: tz,
	}
}

func toSnapshotResponse(r ledger.DateRange, s ledger.Snapshot) snapshotResponse {
	resp := snapshotResponse{
		Range:             toRangeResponse(r),
		OpeningBalance:    s.OpeningBalance,
		TotalRevenue:      s.TotalRevenue,
		TotalOrders:       s.TotalOrders,
		CounterSales:      s.CounterSales,
		OnlineSales:       s.OnlineSales,
		CashSales:         s.CashSales,
		TotalCashInDrawer: s.TotalCashInDrawer,
		CashDeliverySales: s.CashDeliverySales,
		DigitalSales:      s.DigitalSales,
		DailySeries:       make([]dailyTotalResponse, len(s.DailySeries)),
		TopProducts:       make([]productTotalResponse, len(s.TopProducts)),
	}

	for i, d := range s.DailySeries {
		resp.DailySeries[i] = dailyTotalResponse{Day: d.Day.Format(time.DateOnly), Amount: d.Amount}
	}

	for i, p := range s.TopProducts {
		resp.TopProducts[i] = productTotalResponse{Name: p.Name, Quantity: p.Quantity, Revenue: p.Revenue}
	}

	return resp
}

func toCloseResponse(r ledger.DateRange, out *ledger.CloseOutcome) closeResponse {
	resp := closeResponse{
		ExpectedCash:     out.Snapshot.TotalCashInDrawer,
		AmountToRegister: out.Result.AmountToRegister,
		FinalDayRevenue:  out.Result.FinalDayRevenue,
		Snapshot:         toSnapshotResponse(r, out.Snapshot),
	}

	if out.Adjustment != nil {
		resp.Adjustment = new(toMovementResponse(out.Adjustment))
	}

	return resp
}
