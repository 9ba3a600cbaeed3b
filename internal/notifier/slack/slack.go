package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/pitchside/internal/match"
	"github.com/mauv0809/pitchside/internal/metrics"
	"github.com/mauv0809/pitchside/internal/notifier"
	"github.com/mauv0809/pitchside/internal/preset"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// SendFinalResult announces a decided match.
func (s *Notifier) SendFinalResult(state match.MatchState, dryRun bool) error {
	msg := s.formatFinalResult(state)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// formatFinalResult creates the Slack message for a finished match using Block Kit.
func (s *Notifier) formatFinalResult(state match.MatchState) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header
	headerText := slack.NewTextBlockObject("plain_text", "⚽ Full time! ⚽", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	// Score line
	scoreText := fmt.Sprintf("%s %d - %d %s",
		state.HomeTeam.Name, state.HomeTeam.Score,
		state.AwayTeam.Score, state.AwayTeam.Name)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", scoreText, false, false), nil, nil))

	// Winner
	var winnerText string
	switch {
	case state.HomeTeam.Score > state.AwayTeam.Score:
		winnerText = fmt.Sprintf("%s won! 🏆", state.HomeTeam.Name)
	case state.AwayTeam.Score > state.HomeTeam.Score:
		winnerText = fmt.Sprintf("%s won! 🏆", state.AwayTeam.Name)
	default:
		winnerText = "It's a draw."
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", winnerText, true, false), nil, nil))

	// Context - For simpler, single-line info.
	contextElements := []slack.MixedElement{
		slack.NewTextBlockObject("plain_text",
			fmt.Sprintf("Ended in %s", preset.PhaseLabel(state.Half, state.GamePreset, state.MatchPhase)), true, false),
		slack.NewTextBlockObject("plain_text",
			fmt.Sprintf("Possession: %.1f%% / %.1f%%", state.HomeTeam.Stats.Possession, state.AwayTeam.Stats.Possession), false, false),
	}
	blocks = append(blocks, slack.NewContextBlock("", contextElements...))

	return slack.NewBlockMessage(blocks...)
}
