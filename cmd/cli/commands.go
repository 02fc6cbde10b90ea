package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var announce bool

func init() {
	pairingsCmd.Flags().BoolVar(&announce, "announce", false, "Post the pairings to Slack")
	standingsCmd.Flags().BoolVar(&announce, "announce", false, "Post the standings to Slack")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(pairingsCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(resetMatchesCmd)
	rootCmd.AddCommand(resetPlayersCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", nil)
	},
}

var registerCmd = &cobra.Command{
	Use:   "register NAME",
	Short: "Register a player",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/players", map[string]string{"name": strings.Join(args, " ")})
	},
}

var reportCmd = &cobra.Command{
	Use:   "report WINNER_ID LOSER_ID",
	Short: "Report the result of a match",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		winner, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid winner id %q: %w", args[0], err)
		}
		loser, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid loser id %q: %w", args[1], err)
		}
		return performRequest(http.MethodPost, "/matches", map[string]int64{"winner": winner, "loser": loser})
	},
}

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Count registered players",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/players/count", nil)
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Show the current standings",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/standings"
		if announce {
			endpoint += "?announce=true"
		}
		return performRequest(http.MethodGet, endpoint, nil)
	},
}

var pairingsCmd = &cobra.Command{
	Use:   "pairings",
	Short: "Show the pairings for the next round",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/pairings"
		if announce {
			endpoint += "?announce=true"
		}
		return performRequest(http.MethodGet, endpoint, nil)
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List recorded matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/matches", nil)
	},
}

var resetMatchesCmd = &cobra.Command{
	Use:   "reset-matches",
	Short: "Delete every recorded match",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodDelete, "/matches", nil)
	},
}

var resetPlayersCmd = &cobra.Command{
	Use:   "reset-players",
	Short: "Delete every player and match",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodDelete, "/players", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics", nil)
	},
}

// buildURL joins endpoint onto host and applies the global flags.
func buildURL(endpoint string) (string, error) {
	u, err := url.Parse(host + endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}
	if dryRun {
		q := u.Query()
		q.Set("dry_run", "true")
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

func performRequest(method, endpoint string, payload any) error {
	target, err := buildURL(endpoint)
	if err != nil {
		return err
	}
	fmt.Printf("Making %s request to %s\n", method, target)

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, target, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(respBody))

	return nil
}
