package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockbook/pkg/types"
)

var saleCmd = &cobra.Command{
	Use:   "sale",
	Short: "Manage sales",
}

var (
	flagSaleCustomer int64
	flagSaleItems    []string
	flagSalePayment  string
	flagSaleNotes    string
)

var saleAddCmd = &cobra.Command{
	Use:   "add <date>",
	Short: "Record a sale with its items",
	Long: `Record a sale. Each --item takes product-id:quantity:unit-price and
decrements the product's stock; the whole sale is one unit of work.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(flagSaleItems) == 0 {
			return fmt.Errorf("at least one --item is required")
		}
		items, total, err := parseSaleItems(flagSaleItems)
		if err != nil {
			return err
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		sale := &types.Sale{
			Date:          args[0],
			TotalAmount:   total,
			PaymentMethod: flagSalePayment,
			Notes:         flagSaleNotes,
		}
		if flagSaleCustomer != 0 {
			sale.CustomerID = &flagSaleCustomer
		}

		id, err := s.AddSale(sale, items)
		if err != nil {
			return err
		}
		if _, err := s.LogAudit("create", "sale", id, flagUser, ""); err != nil {
			return err
		}
		fmt.Printf("sale %d recorded, total %s\n", id, total)
		return nil
	},
}

var saleGetCmd = &cobra.Command{
	Use:   "get <sale-id>",
	Short: "Show a sale with its items and customer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		detail, err := s.GetSale(id)
		if err != nil {
			return err
		}
		out := map[string]any{"sale": detail.Sale}
		items := make([]map[string]any, len(detail.Items))
		for i, r := range detail.Items {
			items[i] = r.Map()
		}
		out["items"] = items
		if detail.Customer != nil {
			out["customer"] = detail.Customer
		}
		return printJSON(out)
	},
}

var saleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sales",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		rows, err := s.ListSales(flagStartDate, flagEndDate, flagSaleCustomer)
		if err != nil {
			return err
		}
		return printRows(rows)
	},
}

// parseSaleItems parses product-id:quantity:unit-price triples and sums the
// line totals.
func parseSaleItems(specs []string) ([]*types.SaleItem, decimal.Decimal, error) {
	items := make([]*types.SaleItem, 0, len(specs))
	total := decimal.Zero
	for _, spec := range specs {
		parts := strings.Split(spec, ":")
		if len(parts) != 3 {
			return nil, decimal.Zero, fmt.Errorf("invalid item %q, want product-id:quantity:unit-price", spec)
		}
		productID, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("invalid product id in %q", spec)
		}
		quantity, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil || quantity <= 0 {
			return nil, decimal.Zero, fmt.Errorf("invalid quantity in %q", spec)
		}
		price, err := decimal.NewFromString(parts[2])
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("invalid price in %q", spec)
		}
		items = append(items, &types.SaleItem{
			ProductID: productID,
			Quantity:  quantity,
			Price:     price,
		})
		total = total.Add(price.Mul(decimal.NewFromInt(quantity)))
	}
	return items, total, nil
}

func init() {
	saleAddCmd.Flags().Int64Var(&flagSaleCustomer, "customer", 0, "customer id (0 for anonymous)")
	saleAddCmd.Flags().StringArrayVar(&flagSaleItems, "item", nil, "sale item as product-id:quantity:unit-price (repeatable)")
	saleAddCmd.Flags().StringVar(&flagSalePayment, "payment", "", "payment method")
	saleAddCmd.Flags().StringVar(&flagSaleNotes, "notes", "", "free-text notes")

	saleListCmd.Flags().StringVar(&flagStartDate, "start", "", "start date (YYYY-MM-DD, inclusive)")
	saleListCmd.Flags().StringVar(&flagEndDate, "end", "", "end date (YYYY-MM-DD, inclusive)")
	saleListCmd.Flags().Int64Var(&flagSaleCustomer, "customer", 0, "filter by customer id")

	saleCmd.AddCommand(saleAddCmd)
	saleCmd.AddCommand(saleGetCmd)
	saleCmd.AddCommand(saleListCmd)
}
