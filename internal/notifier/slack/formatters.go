package slack

import (
	"fmt"

	"github.com/mauv0809/swiss-ledger/internal/tournament"
	"github.com/slack-go/slack"
)

// formatMatchResult creates the Slack message for a recorded match using Block Kit.
func (s *Notifier) formatMatchResult(match tournament.Match, winnerName, loserName string) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "♟️ Match result ♟️", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	resultText := fmt.Sprintf("*%s* beat *%s*", displayName(winnerName, match.Winner), displayName(loserName, match.Loser))
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", resultText, false, false), nil, nil))

	contextText := fmt.Sprintf("Match #%d reported %s", match.ID, match.ReportedAt.Format("Monday 02 Jan, 15:04"))
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", contextText, true, false)))

	return slack.NewBlockMessage(blocks...)
}

// formatPairings creates a Slack message announcing the next round.
func (s *Notifier) formatPairings(pairings []tournament.Pairing) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🔀 Next round pairings 🔀", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(pairings) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No players registered yet.", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	for i, p := range pairings {
		boardText := fmt.Sprintf("Board %d: %s vs %s", i+1, displayName(p.Name1, p.ID1), displayName(p.Name2, p.ID2))
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", boardText, true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatStandings creates a Slack message to display the standings.
func (s *Notifier) formatStandings(standings []tournament.Standing) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏆 Standings 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(standings) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No players registered yet.", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	for i, st := range standings {
		rank := i + 1
		var medal string
		switch rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}

		playerText := fmt.Sprintf("%d. %s %s\n> Wins: %d | Matches: %d",
			rank,
			medal,
			displayName(st.Name, st.ID),
			st.Wins,
			st.Matches,
		)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", playerText, true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerStanding creates a Slack message to display a single player's record.
func (s *Notifier) formatPlayerStanding(st *tournament.Standing, query string) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := fmt.Sprintf("🏆 Record for %s 🏆", displayName(st.Name, st.ID))
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", headerText, true, false)))

	var winPct float64
	if st.Matches > 0 {
		winPct = float64(st.Wins) / float64(st.Matches) * 100
	}
	playerText := fmt.Sprintf("> *Wins*: %d\n> *Losses*: %d\n> *Win %%*: %.2f%%",
		st.Wins,
		st.Matches-st.Wins,
		winPct,
	)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", playerText, false, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerNotFound creates a Slack message for when no player matches the query.
func (s *Notifier) formatPlayerNotFound(query string) slack.Message {
	text := fmt.Sprintf("Sorry, I couldn't find a player matching *%s*. Try a different name.", query)
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil),
	)
}

// displayName falls back to the id for players registered without a name.
func displayName(name string, id int64) string {
	if name == "" {
		return fmt.Sprintf("Player #%d", id)
	}
	return name
}
