package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ledgerview-cli",
		Short: "LedgerView CLI tool",
		Long:  `A command line interface for interacting with a running LedgerView instance.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8090", "Base URL of the LedgerView API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	listCmd := &cobra.Command{
		Use:   "transactions",
		Short: "List the reconciled transaction view",
		Run: func(cmd *cobra.Command, args []string) {
			listTransactions()
		},
	}

	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Show the bound account and its last observed balance",
		Run: func(cmd *cobra.Command, args []string) {
			showAccount()
		},
	}

	sendCmd := &cobra.Command{
		Use:   "send <from> <to> <amount>",
		Short: "Submit a transfer",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			sendTransfer(args[0], args[1], args[2])
		},
	}

	refreshCmd := &cobra.Command{
		Use:   "refresh",
		Short: "Force an authoritative history fetch",
		Run: func(cmd *cobra.Command, args []string) {
			refresh()
		},
	}

	rootCmd.AddCommand(listCmd, accountCmd, sendCmd, refreshCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func listTransactions() {
	body := get("/api/view/transactions")

	var records []struct {
		ID     string  `json:"id"`
		FromID string  `json:"from_id"`
		ToID   string  `json:"to_id"`
		Amount *string `json:"amount"`
		Status string  `json:"status"`
		Origin string  `json:"origin"`
	}
	if err := json.Unmarshal(body, &records); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	if len(records) == 0 {
		fmt.Println("No transactions")
		return
	}

	for _, rec := range records {
		amount := "?"
		if rec.Amount != nil {
			amount = *rec.Amount
		}
		fmt.Printf("%-30s %-8s %-10s %s -> %s  %s\n",
			rec.ID, rec.Status, rec.Origin, rec.FromID, rec.ToID, amount)
	}
}

func showAccount() {
	body := get("/api/view/account")

	var account struct {
		AccountID string `json:"account_id"`
		Balance   string `json:"balance"`
	}
	if err := json.Unmarshal(body, &account); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Account: %s\nBalance: %s\n", account.AccountID, account.Balance)
}

func sendTransfer(from, to, amount string) {
	payload, _ := json.Marshal(map[string]string{
		"from_id": from,
		"to_id":   to,
		"amount":  amount,
	})

	body := post("/api/view/transfers", payload)

	var rec struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &rec); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Transfer queued: %s (%s)\n", rec.ID, rec.Status)
}

func refresh() {
	post("/api/view/refresh", nil)
	fmt.Println("History refreshed")
}

func get(path string) []byte {
	client := &http.Client{Timeout: timeout}

	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	return readOK(resp)
}

func post(path string, payload []byte) []byte {
	client := &http.Client{Timeout: timeout}

	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	return readOK(resp)
}

func readOK(resp *http.Response) []byte {
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	return body
}
