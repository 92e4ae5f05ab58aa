package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
	token   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gowallet-cli",
		Short: "GoWallet CLI tool",
		Long:  `A command line interface for interacting with the GoWallet API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the GoWallet API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("GOWALLET_TOKEN"), "Access token (defaults to GOWALLET_TOKEN)")

	// Auth commands
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication operations",
	}

	registerCmd := &cobra.Command{
		Use:   "register <email> <password> <name>",
		Short: "Register a new user and wallet",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			register(args[0], args[1], args[2])
		},
	}

	loginCmd := &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Authenticate and print an access token",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			login(args[0], args[1])
		},
	}

	authCmd.AddCommand(registerCmd)
	authCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(authCmd)

	// Wallet commands
	balanceCmd := &cobra.Command{
		Use:   "balance",
		Short: "Show the wallet balance",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/wallet/balance")
		},
	}
	rootCmd.AddCommand(balanceCmd)

	transactionsCmd := &cobra.Command{
		Use:   "transactions [reference]",
		Short: "List transactions, or show one by reference",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 1 {
				getJSON("/api/v1/transactions/" + args[0])
				return
			}
			getJSON("/api/v1/transactions")
		},
	}
	rootCmd.AddCommand(transactionsCmd)

	depositCmd := &cobra.Command{
		Use:   "deposit <amount>",
		Short: "Initiate a deposit",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/deposits", map[string]string{"amount": args[0]})
		},
	}
	rootCmd.AddCommand(depositCmd)

	transferCmd := &cobra.Command{
		Use:   "transfer <wallet-number> <amount>",
		Short: "Transfer funds to another wallet",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/transfers", map[string]string{
				"recipient_wallet_number": args[0],
				"amount":                  args[1],
			})
		},
	}
	rootCmd.AddCommand(transferCmd)

	// Ledger commands
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		Run: func(cmd *cobra.Command, args []string) {
			checkConsistency()
		},
	}

	ledgerCmd.AddCommand(consistencyCmd)
	rootCmd.AddCommand(ledgerCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func register(email, password, name string) {
	body := doRequest(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":    email,
		"password": password,
		"name":     name,
	})
	printJSON(body)
}

func login(email, password string) {
	body := doRequest(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Token: %s\n", result["token"])
	fmt.Println("Export it with: export GOWALLET_TOKEN=<token>")
}

func getJSON(path string) {
	printJSON(doRequest(http.MethodGet, path, nil))
}

func postJSON(path string, payload map[string]string) {
	printJSON(doRequest(http.MethodPost, path, payload))
}

func doRequest(method, path string, payload map[string]string) []byte {
	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			fmt.Printf("Failed to encode request: %v\n", err)
			os.Exit(1)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, baseURL+path, reqBody)
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if method == http.MethodPost {
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	return body
}

func printJSON(body []byte) {
	var out bytes.Buffer
	if err := json.Indent(&out, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}
	fmt.Println(out.String())
}

func checkConsistency() {
	body := doRequest(http.MethodGet, "/api/v1/ledger/consistency", nil)

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Consistency check PASSED\n")
	if consistent, ok := result["consistent"].(bool); ok {
		fmt.Printf("Consistent: %v\n", consistent)
	}
}
