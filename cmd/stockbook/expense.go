package main

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockbook/pkg/types"
)

var expenseCmd = &cobra.Command{
	Use:   "expense",
	Short: "Manage recorded expenses",
}

var (
	flagExpenseCategory    string
	flagExpenseDescription string
	flagStartDate          string
	flagEndDate            string
)

var expenseAddCmd = &cobra.Command{
	Use:   "add <date> <vendor> <amount>",
	Short: "Record an expense",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := decimal.NewFromString(args[2])
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		id, err := s.AddExpense(&types.Expense{
			Date:        args[0],
			Vendor:      args[1],
			Amount:      amount,
			Category:    flagExpenseCategory,
			Description: flagExpenseDescription,
		})
		if err != nil {
			return err
		}
		if _, err := s.LogAudit("create", "expense", id, flagUser, ""); err != nil {
			return err
		}
		fmt.Printf("expense %d recorded\n", id)
		return nil
	},
}

var expenseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List expenses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		rows, err := s.ListExpenses(flagStartDate, flagEndDate, flagExpenseCategory)
		if err != nil {
			return err
		}
		return printRows(rows)
	},
}

// parseID parses a decimal int64 argument.
func parseID(arg string) (int64, error) {
	n, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return n, nil
}

func init() {
	expenseAddCmd.Flags().StringVar(&flagExpenseCategory, "category", "other", "expense category")
	expenseAddCmd.Flags().StringVar(&flagExpenseDescription, "description", "", "free-text description")

	expenseListCmd.Flags().StringVar(&flagStartDate, "start", "", "start date (YYYY-MM-DD, inclusive)")
	expenseListCmd.Flags().StringVar(&flagEndDate, "end", "", "end date (YYYY-MM-DD, inclusive)")
	expenseListCmd.Flags().StringVar(&flagExpenseCategory, "category", "", "filter by category")

	expenseCmd.AddCommand(expenseAddCmd)
	expenseCmd.AddCommand(expenseListCmd)
}
