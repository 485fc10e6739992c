package customer

import (
	"fmt"
	"io"
	"strings"
	"time"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/order"
)

// ReceiptTimeLayout formats the ordered date-time on a receipt.
const ReceiptTimeLayout = "2006-01-02 15:04:05"

// Receipt is what the customer is handed after checkout.
type Receipt struct {
	OrderID   int64
	OrderedAt time.Time
	Items     []order.LineItem
	Total     kernel.Money
}

// NewReceipt builds the receipt for a placed order.
func NewReceipt(o order.Order) Receipt {
	return Receipt{
		OrderID:   o.ID(),
		OrderedAt: o.OrderedAt(),
		Items:     o.Items(),
		Total:     o.Total(),
	}
}

// String renders the receipt:
//
//	Order_ID: 1
//	Ordered_Date_Time: 2026-10-18 09:30:00
//	 P1     Widget                 (3)  £   7.50
//	 ---------------------------------------------
//	 Total                              £   7.50
func (r Receipt) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order_ID: %d\n", r.OrderID)
	fmt.Fprintf(&b, "Ordered_Date_Time: %s\n", r.OrderedAt.Format(ReceiptTimeLayout))
	writeItems(&b, r.Items)
	return b.String()
}

func writeItems(w io.Writer, items []order.LineItem) {
	for _, item := range items {
		// Items reach a receipt or a trolley listing only after validation.
		subtotal, _ := item.Subtotal()
		fmt.Fprintf(w, " %-6s %-22s (%d)  £%7s\n", item.ProductID, item.Description, item.Quantity, subtotal)
	}
	fmt.Fprintf(w, " %s\n", strings.Repeat("-", 45))
	fmt.Fprintf(w, " %-35s£%7s\n", "Total", sumItems(items))
}
