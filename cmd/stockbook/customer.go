package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockbook/pkg/types"
)

var customerCmd = &cobra.Command{
	Use:   "customer",
	Short: "Manage customers",
}

var (
	flagCustomerExternalID string
	flagCustomerContact    string
)

var customerAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a customer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		id, err := s.AddCustomer(&types.Customer{
			Name:        args[0],
			ExternalID:  flagCustomerExternalID,
			ContactInfo: flagCustomerContact,
		})
		if err != nil {
			return err
		}
		if _, err := s.LogAudit("create", "customer", id, flagUser, ""); err != nil {
			return err
		}
		fmt.Printf("customer %d added\n", id)
		return nil
	},
}

var customerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List customers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		rows, err := s.ListCustomers()
		if err != nil {
			return err
		}
		return printRows(rows)
	},
}

func init() {
	customerAddCmd.Flags().StringVar(&flagCustomerExternalID, "external-id", "", "identity in the calling system")
	customerAddCmd.Flags().StringVar(&flagCustomerContact, "contact", "", "contact info")

	customerCmd.AddCommand(customerAddCmd)
	customerCmd.AddCommand(customerListCmd)
}
