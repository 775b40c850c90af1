package main

import (
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/company-intake/internal/store"
)

var companiesFilter store.CompanyFilter

var companiesCmd = &cobra.Command{
	Use:   "companies",
	Short: "List stored companies with optional filters",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		companies, err := st.ListCompanies(ctx, companiesFilter)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(companies, "", "  ")
		if err != nil {
			return eris.Wrap(err, "marshal companies")
		}
		fmt.Println(string(out))
		return nil
	},
}

var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List distinct countries in the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		countries, err := st.ListCountries(ctx)
		if err != nil {
			return err
		}
		for _, c := range countries {
			fmt.Println(c)
		}
		return nil
	},
}

var employeeSizesCmd = &cobra.Command{
	Use:   "employee-sizes",
	Short: "List distinct employee size buckets in the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		sizes, err := st.ListEmployeeSizes(ctx)
		if err != nil {
			return err
		}
		for _, s := range sizes {
			fmt.Println(s)
		}
		return nil
	},
}

func init() {
	companiesCmd.Flags().StringVar(&companiesFilter.Country, "country", "", "filter by country substring")
	companiesCmd.Flags().StringVar(&companiesFilter.Domain, "domain", "", "filter by domain substring")
	companiesCmd.Flags().StringVar(&companiesFilter.EmployeeSize, "employee-size", "", "filter by exact employee size bucket")
	companiesCmd.Flags().IntVar(&companiesFilter.Limit, "limit", 0, "max results (default 100)")
	companiesCmd.Flags().IntVar(&companiesFilter.Offset, "offset", 0, "results offset")
	rootCmd.AddCommand(companiesCmd)
	rootCmd.AddCommand(countriesCmd)
	rootCmd.AddCommand(employeeSizesCmd)
}
