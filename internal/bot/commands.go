package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/mattwilson20/ascrl-platform/internal/league"
	"github.com/mattwilson20/ascrl-platform/internal/models"
)

const (
	publicHelp = `Commands:
/schedule [series] - Season schedule
/standings [series] - Points standings (top 40)
/driver <series> <name> - Driver profile
/results <series> [track] - Race results
/next [series] - Next upcoming race
/leaderboard - Top 3 of every series
/help - Show this message`

	adminHelp = publicHelp + `

Admin commands:
/assign <series> <driver> - Add one driver
/drivers add|remove <series> <d1;d2;...> - Batch add/remove drivers
/race add|remove <series> <date> <track> - Add/remove one race
/races add|remove <series> <track,date;...> - Batch add/remove races
/submit <series> <track> : <driver,pos[,Yes][,FL];...> - Enter race results
/clearresults <series> <track> - Wipe one race's results
/cleardriver <series> <driver> - Remove a driver everywhere
/subscribe <series> [tag] - Send race reminders to this chat
/unsubscribe <series> - Stop reminders for this chat

Examples:
/race add Truck 2025-10-20 Daytona
/submit Truck Daytona : #10 MajorBlaze,1,Yes,FL;#9 DakotaThomas,2
/drivers add Truck #99 Speedy;#88 Racer`
)

type commandHandler func(*tgbotapi.Message) error

func (b *Bot) routePublicCommands(cmd string) (commandHandler, bool) {
	commands := map[string]commandHandler{
		"start":       b.handleStart,
		"help":        b.handleHelp,
		"schedule":    b.handleSchedule,
		"standings":   b.handleStandings,
		"driver":      b.handleDriver,
		"results":     b.handleResults,
		"next":        b.handleNext,
		"leaderboard": b.handleLeaderboard,
	}
	handler, found := commands[cmd]
	return handler, found
}

func (b *Bot) routeAdminCommands(cmd string) (commandHandler, bool) {
	commands := map[string]commandHandler{
		"assign":       b.handleAssign,
		"drivers":      b.handleDrivers,
		"race":         b.handleRace,
		"races":        b.handleRaces,
		"submit":       b.handleSubmit,
		"clearresults": b.handleClearResults,
		"cleardriver":  b.handleClearDriver,
		"subscribe":    b.handleSubscribe,
		"unsubscribe":  b.handleUnsubscribe,
	}
	handler, found := commands[cmd]
	return handler, found
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	if !msg.IsCommand() {
		b.sendHelp(msg.Chat.ID)
		return
	}

	cmd := msg.Command()

	if handler, ok := b.routePublicCommands(cmd); ok {
		if err := handler(msg); err != nil {
			logger.Error.Printf("Command error: %v", err)
			b.sendMessage(msg.Chat.ID, fmt.Sprintf("Error: %v", err))
		}
		return
	}

	if b.admins[msg.From.ID] {
		if handler, ok := b.routeAdminCommands(cmd); ok {
			if err := handler(msg); err != nil {
				logger.Error.Printf("Command error: %v", err)
				b.sendMessage(msg.Chat.ID, fmt.Sprintf("Error: %v", err))
			}
		}
		return
	}

	b.sendHelp(msg.Chat.ID)
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) error {
	if b.admins[msg.From.ID] {
		return b.sendMessage(msg.Chat.ID, adminHelp)
	}
	return b.sendMessage(msg.Chat.ID, publicHelp)
}

func (b *Bot) sendHelp(chatID int64) error {
	return b.sendMessage(chatID, "Send /help for the list of commands.")
}

func (b *Bot) handleStart(msg *tgbotapi.Message) error {
	text := "Welcome to the ASCRL league bot.\n\n"
	if b.admins[msg.From.ID] {
		text += "You have admin access. Use /help for the full command list."
	} else {
		text += "Use /standings or /schedule to follow the season."
	}
	return b.sendMessage(msg.Chat.ID, text)
}

func (b *Bot) handleSchedule(msg *tgbotapi.Message) error {
	args := strings.Fields(msg.CommandArguments())

	var series *models.Series
	if len(args) > 0 {
		s, err := models.ParseSeries(args[0])
		if err != nil {
			return err
		}
		series = &s
	}

	races, err := b.league.Schedule(series)
	if err != nil {
		return err
	}
	if len(races) == 0 {
		return b.sendMessage(msg.Chat.ID, "No races found.")
	}

	return b.sendMonospace(msg.Chat.ID, renderSchedule(races))
}

func (b *Bot) handleStandings(msg *tgbotapi.Message) error {
	series, err := seriesOrDefault(msg.CommandArguments())
	if err != nil {
		return err
	}

	rows, err := b.league.Standings(series)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return b.sendMessage(msg.Chat.ID, fmt.Sprintf("No standings for %s.", series))
	}

	header := fmt.Sprintf("ASCRL %s Standings - %s\n", series, b.league.Season())
	return b.sendMonospace(msg.Chat.ID, header+renderStandings(rows))
}

func (b *Bot) handleDriver(msg *tgbotapi.Message) error {
	series, rest, err := seriesAndRest(msg.CommandArguments())
	if err != nil {
		return err
	}
	if rest == "" {
		return fmt.Errorf("usage: /driver <series> <name>")
	}

	profile, err := b.league.DriverProfile(series, rest)
	if err != nil {
		return err
	}

	return b.sendMessage(msg.Chat.ID, renderProfile(profile))
}

func (b *Bot) handleResults(msg *tgbotapi.Message) error {
	args := strings.Fields(msg.CommandArguments())
	series := models.SeriesTruck
	track := ""
	if len(args) > 0 {
		s, err := models.ParseSeries(args[0])
		if err != nil {
			return err
		}
		series = s
		track = strings.Join(args[1:], " ")
	}

	reports, err := b.league.RaceResults(series, track)
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		suffix := ""
		if track != "" {
			suffix = fmt.Sprintf(" at %s", track)
		}
		return b.sendMessage(msg.Chat.ID, fmt.Sprintf("No results for %s%s.", series, suffix))
	}

	for _, report := range reports {
		for _, part := range renderReport(series, b.league.Season(), report) {
			if err := b.sendMessage(msg.Chat.ID, part); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *Bot) handleNext(msg *tgbotapi.Message) error {
	series, err := seriesOrDefault(msg.CommandArguments())
	if err != nil {
		return err
	}

	race, err := b.league.NextRace(series)
	if err != nil {
		return err
	}
	if race == nil {
		return b.sendMessage(msg.Chat.ID, fmt.Sprintf("No upcoming %s race.", series))
	}

	return b.sendMessage(msg.Chat.ID, fmt.Sprintf(
		"Next %s race:\nTrack: %s\nDate: %s\nTime: %s",
		series, race.Track, race.Date, b.config.League.RaceTimeLabel,
	))
}

func (b *Bot) handleLeaderboard(msg *tgbotapi.Message) error {
	board, err := b.league.Leaderboard()
	if err != nil {
		return err
	}
	return b.sendMessage(msg.Chat.ID, renderLeaderboard(b.league.Season(), board))
}

func (b *Bot) handleAssign(msg *tgbotapi.Message) error {
	series, name, err := seriesAndRest(msg.CommandArguments())
	if err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("usage: /assign <series> <driver>")
	}

	if err := b.league.AssignDriver(series, name); err != nil {
		return err
	}
	return b.sendMessage(msg.Chat.ID, fmt.Sprintf("%s -> %s", name, series))
}

func (b *Bot) handleDrivers(msg *tgbotapi.Message) error {
	sub, series, rest, err := subcommandSeriesAndRest(msg.CommandArguments())
	if err != nil {
		return fmt.Errorf("usage: /drivers add|remove <series> <d1;d2;...>")
	}

	names := league.SplitNames(rest)
	switch sub {
	case "add":
		added, err := b.league.AssignDrivers(series, names)
		if err != nil {
			return err
		}
		return b.sendMessage(msg.Chat.ID, fmt.Sprintf("Added %d drivers to %s.", added, series))
	case "remove":
		removed, err := b.league.RemoveDrivers(series, names)
		if err != nil {
			return err
		}
		return b.sendMessage(msg.Chat.ID, fmt.Sprintf("Removed %d drivers from %s.", removed, series))
	default:
		return fmt.Errorf("unknown subcommand: %s", sub)
	}
}

func (b *Bot) handleRace(msg *tgbotapi.Message) error {
	args := strings.Fields(msg.CommandArguments())
	if len(args) < 4 {
		return fmt.Errorf("usage: /race add|remove <series> <YYYY-MM-DD> <track>")
	}

	sub := strings.ToLower(args[0])
	series, err := models.ParseSeries(args[1])
	if err != nil {
		return err
	}
	date := args[2]
	track := strings.Join(args[3:], " ")

	switch sub {
	case "add":
		if err := b.league.AddRace(series, track, date); err != nil {
			return err
		}
		return b.sendMessage(msg.Chat.ID, fmt.Sprintf("Added %s race: %s on %s", series, track, date))
	case "remove":
		if err := b.league.RemoveRace(series, track, date); err != nil {
			return err
		}
		return b.sendMessage(msg.Chat.ID, fmt.Sprintf("Removed %s race: %s %s", series, track, date))
	default:
		return fmt.Errorf("unknown subcommand: %s", sub)
	}
}

func (b *Bot) handleRaces(msg *tgbotapi.Message) error {
	sub, series, rest, err := subcommandSeriesAndRest(msg.CommandArguments())
	if err != nil {
		return fmt.Errorf("usage: /races add|remove <series> <track,date;track,date;...>")
	}

	switch sub {
	case "add":
		added, skipped, err := b.league.AddRaces(series, rest)
		if err != nil {
			return err
		}
		return b.sendMessage(msg.Chat.ID, batchRaceSummary("Added", added, series, skipped))
	case "remove":
		removed, skipped, err := b.league.RemoveRaces(series, rest)
		if err != nil {
			return err
		}
		return b.sendMessage(msg.Chat.ID, batchRaceSummary("Removed", removed, series, skipped))
	default:
		return fmt.Errorf("unknown subcommand: %s", sub)
	}
}

// handleSubmit expects `<series> <track> : <entries>` so multi-word track
// names do not collide with the entry list.
func (b *Bot) handleSubmit(msg *tgbotapi.Message) error {
	raw := msg.CommandArguments()
	header, entries, found := strings.Cut(raw, ":")
	if !found {
		return fmt.Errorf("usage: /submit <series> <track> : <driver,pos[,Yes][,FL];...>")
	}

	series, track, err := seriesAndRest(header)
	if err != nil {
		return err
	}
	if track == "" {
		return fmt.Errorf("usage: /submit <series> <track> : <driver,pos[,Yes][,FL];...>")
	}

	count, err := b.league.SubmitResults(series, track, entries)
	if err != nil {
		return err
	}
	return b.sendMessage(msg.Chat.ID, fmt.Sprintf("Results entered: %s - %s (%d rows)", series, track, count))
}

func (b *Bot) handleClearResults(msg *tgbotapi.Message) error {
	series, track, err := seriesAndRest(msg.CommandArguments())
	if err != nil {
		return err
	}
	if track == "" {
		return fmt.Errorf("usage: /clearresults <series> <track>")
	}

	if err := b.league.ClearResults(series, track); err != nil {
		return err
	}
	return b.sendMessage(msg.Chat.ID, fmt.Sprintf("Cleared results: %s - %s", series, track))
}

func (b *Bot) handleClearDriver(msg *tgbotapi.Message) error {
	series, name, err := seriesAndRest(msg.CommandArguments())
	if err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("usage: /cleardriver <series> <driver>")
	}

	if err := b.league.RemoveDriver(series, name); err != nil {
		return err
	}
	return b.sendMessage(msg.Chat.ID, fmt.Sprintf("%s removed from %s.", name, series))
}

func (b *Bot) handleSubscribe(msg *tgbotapi.Message) error {
	series, tag, err := seriesAndRest(msg.CommandArguments())
	if err != nil {
		return err
	}
	if tag == "" {
		tag = fmt.Sprintf("%s Series Fans", series)
	}

	if err := b.subs.Subscribe(context.Background(), series, msg.Chat.ID, tag); err != nil {
		return err
	}
	return b.sendMessage(msg.Chat.ID, fmt.Sprintf("This chat now gets %s race reminders (%s).", series, tag))
}

func (b *Bot) handleUnsubscribe(msg *tgbotapi.Message) error {
	series, _, err := seriesAndRest(msg.CommandArguments())
	if err != nil {
		return err
	}

	if err := b.subs.Unsubscribe(context.Background(), series, msg.Chat.ID); err != nil {
		return err
	}
	return b.sendMessage(msg.Chat.ID, fmt.Sprintf("%s race reminders stopped for this chat.", series))
}

// seriesOrDefault parses an optional leading series argument, defaulting to
// Truck like the league always has.
func seriesOrDefault(raw string) (models.Series, error) {
	args := strings.Fields(raw)
	if len(args) == 0 {
		return models.SeriesTruck, nil
	}
	return models.ParseSeries(args[0])
}

// seriesAndRest parses `<series> <rest...>`, joining the remainder so driver
// and track names may contain spaces.
func seriesAndRest(raw string) (models.Series, string, error) {
	args := strings.Fields(raw)
	if len(args) == 0 {
		return "", "", fmt.Errorf("missing series argument")
	}
	series, err := models.ParseSeries(args[0])
	if err != nil {
		return "", "", err
	}
	return series, strings.Join(args[1:], " "), nil
}

func subcommandSeriesAndRest(raw string) (string, models.Series, string, error) {
	args := strings.Fields(raw)
	if len(args) < 3 {
		return "", "", "", fmt.Errorf("missing arguments")
	}
	series, err := models.ParseSeries(args[1])
	if err != nil {
		return "", "", "", err
	}
	return strings.ToLower(args[0]), series, strings.Join(args[2:], " "), nil
}

func batchRaceSummary(verb string, n int, series models.Series, skipped []string) string {
	text := fmt.Sprintf("%s %d races for %s.", verb, n, series)
	if len(skipped) > 0 {
		text += fmt.Sprintf("\nSkipped: %s", strings.Join(skipped, "; "))
	}
	return text
}
