package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ostapenko/lategoal/internal/pkg/models"
)

// Min interval between any two Telegram messages to the same chat to avoid
// 429 Too Many Requests (~30/min limit).
const telegramSendInterval = 2 * time.Second

// TelegramNotifier sends Telegram alerts for high-probability windows.
// Messages go through a buffered queue drained by a single sender goroutine
// that enforces the send interval.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64

	queue  chan string
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	lastSend time.Time
}

// NewTelegramNotifier creates a new Telegram notifier. Returns nil (and logs)
// when the bot cannot be reached; the monitor then runs without alerting.
func NewTelegramNotifier(token string, chatID int64) *TelegramNotifier {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		slog.Error("Failed to create telegram bot", "error", err)
		return nil
	}

	bot.Debug = false

	if _, err := bot.GetMe(); err != nil {
		slog.Error("Failed to get bot info", "error", err)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())

	notifier := &TelegramNotifier{
		bot:    bot,
		chatID: chatID,
		queue:  make(chan string, 100),
		ctx:    ctx,
		cancel: cancel,
	}

	notifier.wg.Add(1)
	go notifier.messageSender()

	slog.Info("Telegram notifier initialized", "chat_id", chatID)

	return notifier
}

// QueueLen returns current number of messages in the send queue (for logging).
func (n *TelegramNotifier) QueueLen() int {
	if n == nil || n.queue == nil {
		return 0
	}
	return len(n.queue)
}

// SendPredictionAlert queues an alert for one match prediction. Non-blocking:
// when the queue is full the alert is dropped and logged.
func (n *TelegramNotifier) SendPredictionAlert(pred *models.MatchPrediction) error {
	if n == nil {
		return fmt.Errorf("notifier is not configured")
	}

	text := formatPredictionAlert(pred)
	select {
	case n.queue <- text:
		return nil
	default:
		slog.Warn("Telegram queue full, dropping alert",
			"match", pred.HomeTeam+" vs "+pred.AwayTeam, "queue_len", len(n.queue))
		return fmt.Errorf("telegram queue full")
	}
}

func (n *TelegramNotifier) messageSender() {
	defer n.wg.Done()

	for {
		select {
		case <-n.ctx.Done():
			return
		case text := <-n.queue:
			n.throttle()
			msg := tgbotapi.NewMessage(n.chatID, text)
			if _, err := n.bot.Send(msg); err != nil {
				slog.Error("Failed to send telegram message", "error", err)
			}
		}
	}
}

// throttle sleeps until telegramSendInterval has passed since the last send.
func (n *TelegramNotifier) throttle() {
	n.mu.Lock()
	wait := telegramSendInterval - time.Since(n.lastSend)
	n.mu.Unlock()

	if wait > 0 {
		select {
		case <-n.ctx.Done():
		case <-time.After(wait):
		}
	}

	n.mu.Lock()
	n.lastSend = time.Now()
	n.mu.Unlock()
}

// Stop shuts the sender down. Queued messages are dropped.
func (n *TelegramNotifier) Stop() {
	if n == nil {
		return
	}
	n.cancel()
	n.wg.Wait()
}

func formatPredictionAlert(pred *models.MatchPrediction) string {
	var b strings.Builder

	fmt.Fprintf(&b, "GOAL WINDOW %s\n", pred.IntervalName)
	fmt.Fprintf(&b, "%s vs %s (%d')\n", pred.HomeTeam, pred.AwayTeam, pred.Minute)
	if pred.League != "" {
		fmt.Fprintf(&b, "%s / %s\n", pred.Country, pred.League)
	}
	fmt.Fprintf(&b, "\nP(goal either team): %.0f%%\n", pred.Combined*100)

	for _, side := range []models.IntervalPrediction{pred.Home, pred.Away} {
		fmt.Fprintf(&b, "\n%s: %.0f%% [%s]", side.Team, side.Probability*100, side.Confidence)
		if side.SampleSize > 0 {
			fmt.Fprintf(&b, "\n  freq %.2f over %d matches", side.HistFrequency, side.SampleSize)
		}
		if side.RecurrenceLast5 != nil {
			fmt.Fprintf(&b, ", last 5: %.1f", *side.RecurrenceLast5)
		}
		if side.AvgMinute > 0 {
			fmt.Fprintf(&b, "\n  typical minute %.0f (spread %d-%d)",
				side.AvgMinute, side.SpreadLowMinute, side.SpreadHighMinute)
		}
	}

	return b.String()
}
