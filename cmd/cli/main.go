package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tripsplit-cli",
		Short: "TripSplit CLI tool",
		Long:  `A command line interface for interacting with the TripSplit API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the TripSplit API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(tripCmd())
	rootCmd.AddCommand(expenseCmd())
	rootCmd.AddCommand(settleCmd())
	rootCmd.AddCommand(breakdownCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func tripCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trip",
		Short: "Trip operations",
	}

	var members []string
	createCmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a trip",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			payload := map[string]any{"name": args[0], "members": members}
			doRequest(http.MethodPost, "/api/v1/trips/", payload)
		},
	}
	createCmd.Flags().StringSliceVar(&members, "members", nil, "Trip member user IDs")

	getCmd := &cobra.Command{
		Use:   "get [trip-id]",
		Short: "Get a trip",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/trips/"+args[0], nil)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List trips",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/trips/", nil)
		},
	}

	cmd.AddCommand(createCmd, getCmd, listCmd)
	return cmd
}

func expenseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Expense operations",
	}

	var file string
	addCmd := &cobra.Command{
		Use:   "add [trip-id]",
		Short: "Add an expense from a JSON file (use - for stdin)",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			var body []byte
			var err error
			if file == "-" {
				body, err = io.ReadAll(os.Stdin)
			} else {
				body, err = os.ReadFile(file)
			}
			if err != nil {
				fmt.Printf("Error reading expense: %v\n", err)
				os.Exit(1)
			}
			doRawRequest(http.MethodPost, "/api/v1/trips/"+args[0]+"/expenses", body)
		},
	}
	addCmd.Flags().StringVar(&file, "file", "-", "Path to the expense JSON")

	listCmd := &cobra.Command{
		Use:   "list [trip-id]",
		Short: "List expenses for a trip",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/trips/"+args[0]+"/expenses", nil)
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [expense-id]",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodDelete, "/api/v1/expenses/"+args[0], nil)
		},
	}

	cmd.AddCommand(addCmd, listCmd, deleteCmd)
	return cmd
}

func settleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settle [trip-id]",
		Short: "Compute the settlement plan for a trip",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/trips/"+args[0]+"/settlement", nil)
		},
	}
}

func breakdownCmd() *cobra.Command {
	var from, to, currency string
	cmd := &cobra.Command{
		Use:   "breakdown [trip-id]",
		Short: "Show how a transfer between two members breaks down per expense",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			path := fmt.Sprintf("/api/v1/trips/%s/settlement/breakdown?from=%s&to=%s&currency=%s",
				args[0], from, to, currency)
			doRequest(http.MethodGet, path, nil)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Debtor user ID")
	cmd.Flags().StringVar(&to, "to", "", "Creditor user ID")
	cmd.Flags().StringVar(&currency, "currency", "USD", "Currency code")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func doRequest(method, path string, payload any) {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			fmt.Printf("Error encoding request: %v\n", err)
			os.Exit(1)
		}
	}
	doRawRequest(method, path, body)
}

func doRawRequest(method, path string, body []byte) {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(method, baseURL+path, bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		os.Exit(1)
	}
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, truncate(string(respBody), 2000))
		os.Exit(1)
	}

	var result any
	if err := json.Unmarshal(respBody, &result); err != nil {
		fmt.Println(string(respBody))
		return
	}
	printJSON(result)
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to encode response: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return strings.Repeat(".", max)
	}
	return s[:max-3] + "..."
}
