package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/mauv0809/pitchside/internal/bridge"
	"github.com/mauv0809/pitchside/internal/match"
	"github.com/mauv0809/pitchside/internal/preset"
	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
)

func init() {
	timerCmd.AddCommand(timerStartCmd, timerStopCmd, timerToggleCmd, timerResetCmd)
	teamCmd.AddCommand(teamSetCmd)

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(timerCmd)
	rootCmd.AddCommand(teamCmd)
	rootCmd.AddCommand(tournamentCmd)
	rootCmd.AddCommand(presetCmd)
	rootCmd.AddCommand(periodCmd)
	rootCmd.AddCommand(possessionCmd)

	mirrorCmd.Flags().StringVar(&mirrorNATSURL, "nats", nats.DefaultURL, "NATS server URL")
	mirrorCmd.Flags().StringVar(&mirrorSubject, "subject", "pitchside.match", "Broadcast subject to follow")
	rootCmd.AddCommand(mirrorCmd)
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(redoCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print the current match state",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/state")
	},
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the available game presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/presets")
	},
}

var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Control the match clock",
}

var timerStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the match clock",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performTimerControl("START")
	},
}

var timerStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Pause the match clock",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performTimerControl("STOP")
	},
}

var timerToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Toggle the match clock",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performTimerControl("TOGGLE")
	},
}

var timerResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the match clock to the full segment duration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performTimerControl("RESET")
	},
}

var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Edit a team",
}

var teamSetCmd = &cobra.Command{
	Use:   "set <home|away> <name|score|fouls|logo> <value>",
	Short: "Set a team field",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		side, field, raw := strings.ToLower(args[0]), strings.ToLower(args[1]), args[2]

		var value any = raw
		if field == "score" || field == "fouls" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("%s must be a number: %w", field, err)
			}
			value = n
		}

		return performPostRequest("/command", map[string]any{
			"type":  "TEAM_UPDATE",
			"team":  side,
			"field": field,
			"value": value,
		})
	},
}

var tournamentCmd = &cobra.Command{
	Use:   "tournament <name> [logo]",
	Short: "Set the tournament branding",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := map[string]any{"name": args[0]}
		if len(args) == 2 {
			payload["logo"] = args[1]
		}
		return performPutRequest("/tournament", payload)
	},
}

var presetCmd = &cobra.Command{
	Use:   "preset <index>",
	Short: "Switch the active game preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("index must be a number: %w", err)
		}
		return performPostRequest("/preset", map[string]any{"index": index})
	},
}

var periodCmd = &cobra.Command{
	Use:   "period <half>",
	Short: "Advance the match to the given half",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		half, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("half must be a number: %w", err)
		}
		return performPostRequest("/period", map[string]any{"half": half})
	},
}

var possessionCmd = &cobra.Command{
	Use:   "possession <home|away>",
	Short: "Hand ball possession to a team",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/possession", map[string]any{
			"team": strings.ToLower(args[0]),
		})
	},
}

var (
	mirrorNATSURL string
	mirrorSubject string
)

var mirrorCmd = &cobra.Command{
	Use:   "mirror",
	Short: "Follow live match state from the broadcast channel",
	Long: `Subscribes to the broadcast channel and prints the scoreline whenever it
changes. Useful as a terminal scoreboard next to the main dashboard.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		channel, err := bridge.New(mirrorNATSURL, mirrorSubject)
		if err != nil {
			return fmt.Errorf("connecting to broadcast channel: %w", err)
		}
		defer channel.Close()

		mirror, err := bridge.NewMirror(channel, match.DefaultState(preset.Default()))
		if err != nil {
			return fmt.Errorf("subscribing to state updates: %w", err)
		}

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()

		fmt.Println("Waiting for match state... (ctrl+c to quit)")
		var last string
		for {
			select {
			case <-stop:
				return nil
			case <-ticker.C:
				if !mirror.Synced() {
					continue
				}
				s := mirror.State()
				line := fmt.Sprintf("%s %d - %d %s  %02d:%02d",
					s.HomeTeam.Name, s.HomeTeam.Score, s.AwayTeam.Score, s.AwayTeam.Name,
					s.Time.Minutes, s.Time.Seconds)
				if line != last {
					fmt.Println(line)
					last = line
				}
			}
		}
	},
}

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Undo the most recent change",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/undo", nil)
	},
}

var redoCmd = &cobra.Command{
	Use:   "redo",
	Short: "Redo the most recently undone change",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/redo", nil)
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the whole match for the current preset",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/reset", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performTimerControl(action string) error {
	return performPostRequest("/command", map[string]any{
		"type":   "TIMER_CONTROL",
		"action": action,
	})
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint string, payload any) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	resp, err := http.Post(url, "application/json", body)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPutRequest(endpoint string, payload any) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
