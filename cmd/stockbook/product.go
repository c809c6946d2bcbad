package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockbook/pkg/types"
)

var productCmd = &cobra.Command{
	Use:   "product",
	Short: "Manage catalog products",
}

var (
	flagProductCategory    string
	flagProductSubcategory string
	flagProductQuantity    int64
	flagProductCost        string
	flagProductPrice       string
	flagAdjustReason       string
)

var productAddCmd = &cobra.Command{
	Use:   "add <sku> <name>",
	Short: "Add a product to the catalog",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		p := &types.Product{
			SKU:         args[0],
			Name:        args[1],
			Category:    flagProductCategory,
			Subcategory: flagProductSubcategory,
			Quantity:    flagProductQuantity,
		}
		if flagProductCost != "" {
			d, err := decimal.NewFromString(flagProductCost)
			if err != nil {
				return fmt.Errorf("invalid cost price: %w", err)
			}
			p.CostPrice = decimal.NewNullDecimal(d)
		}
		if flagProductPrice != "" {
			d, err := decimal.NewFromString(flagProductPrice)
			if err != nil {
				return fmt.Errorf("invalid selling price: %w", err)
			}
			p.SellingPrice = decimal.NewNullDecimal(d)
		}

		id, err := s.AddProduct(p)
		if err != nil {
			return err
		}
		fmt.Printf("product %d added\n", id)
		return nil
	},
}

var productListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		rows, err := s.ListProducts(flagProductCategory, flagProductSubcategory)
		if err != nil {
			return err
		}
		return printRows(rows)
	},
}

var productGetCmd = &cobra.Command{
	Use:   "get <sku>",
	Short: "Show one product by SKU",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		p, err := s.GetProductBySKU(args[0])
		if err != nil {
			return err
		}
		return printJSON(p)
	},
}

var productAdjustCmd = &cobra.Command{
	Use:   "adjust <product-id> <delta>",
	Short: "Adjust a product's on-hand quantity",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		delta, err := parseID(args[1])
		if err != nil {
			return err
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		if !s.AdjustProductQuantity(id, delta, flagUser, flagAdjustReason) {
			return fmt.Errorf("adjustment failed for product %d", id)
		}
		fmt.Println("quantity adjusted")
		return nil
	},
}

func init() {
	productAddCmd.Flags().StringVar(&flagProductCategory, "category", types.CategoryOther, "product category (blank, dtf, other)")
	productAddCmd.Flags().StringVar(&flagProductSubcategory, "subcategory", "", "product subcategory")
	productAddCmd.Flags().Int64Var(&flagProductQuantity, "quantity", 0, "initial quantity")
	productAddCmd.Flags().StringVar(&flagProductCost, "cost", "", "cost price")
	productAddCmd.Flags().StringVar(&flagProductPrice, "price", "", "selling price")

	productListCmd.Flags().StringVar(&flagProductCategory, "category", "", "filter by category")
	productListCmd.Flags().StringVar(&flagProductSubcategory, "subcategory", "", "filter by subcategory")

	productAdjustCmd.Flags().StringVar(&flagAdjustReason, "reason", "", "reason for the adjustment")

	productCmd.AddCommand(productAddCmd)
	productCmd.AddCommand(productListCmd)
	productCmd.AddCommand(productGetCmd)
	productCmd.AddCommand(productAdjustCmd)
}
