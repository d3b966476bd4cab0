// Package telegram runs a single-operator webhook bot: /plan builds and
// sends today's meal plan for the linked account, URLs are clipped into the
// catalog.
package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"nutriplan/internal/auth"
	"nutriplan/internal/clipper"
	"nutriplan/internal/config"
	"nutriplan/internal/metrics"
	"nutriplan/internal/planner"
	"nutriplan/internal/plans"
	"nutriplan/internal/shopping"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot wraps the Telegram API and the planning services.
type Bot struct {
	api          *tgbotapi.BotAPI
	cfg          *config.Config
	users        *auth.UserRepository
	planner      *planner.Planner
	plans        *plans.Repository
	shopping     *shopping.Repository
	metricsStore *metrics.Store
	clipper      *clipper.Clipper // nil when clipping is not configured
}

// NewBot initializes the Telegram Bot and sets the webhook.
func NewBot(
	cfg *config.Config,
	users *auth.UserRepository,
	p *planner.Planner,
	planRepo *plans.Repository,
	shoppingRepo *shopping.Repository,
	metricsStore *metrics.Store,
	clip *clipper.Clipper,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	wh, _ := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	resp, err := api.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{
		api:          api,
		cfg:          cfg,
		users:        users,
		planner:      p,
		plans:        planRepo,
		shopping:     shoppingRepo,
		metricsStore: metricsStore,
		clipper:      clip,
	}, nil
}

// RegisterHandlers registers the webhook handler on the given mux.
func (b *Bot) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/webhook", b.handleWebhook)
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.Message == nil {
		return
	}

	isAllowed := false
	for _, id := range b.cfg.TelegramAllowedIDs {
		if update.Message.From.ID == id {
			isAllowed = true
			break
		}
	}
	if !isAllowed {
		log.Printf("Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)
	switch {
	case text == "/metrics":
		b.handleMetricsCommand(msg.Chat.ID)
	case text == "/shopping":
		b.handleShoppingCommand(msg.Chat.ID)
	case strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://"):
		b.handleClipRequest(msg.Chat.ID, text)
	default:
		// /plan and any free-form message build today's plan.
		b.handlePlanRequest(msg.Chat.ID)
	}
}

// linkedUser resolves the account the bot plans for.
func (b *Bot) linkedUser(ctx context.Context) (*auth.User, error) {
	if b.cfg.TelegramLinkedEmail == "" {
		return nil, fmt.Errorf("TELEGRAM_LINKED_EMAIL is not configured")
	}
	user, err := b.users.GetByEmail(ctx, b.cfg.TelegramLinkedEmail)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("no account for %s", b.cfg.TelegramLinkedEmail)
	}
	return user, nil
}

func (b *Bot) handlePlanRequest(chatID int64) {
	sentMsg, err := b.sendMarkdown(chatID, "🧑‍🍳 *Building your plan...*")
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user, err := b.linkedUser(ctx)
	if err != nil {
		b.editMarkdown(chatID, sentMsg.MessageID, errorText("loading account", err))
		return
	}

	memory, err := b.plans.LoadMemory(ctx, user.ID)
	if err != nil {
		b.editMarkdown(chatID, sentMsg.MessageID, errorText("loading plan history", err))
		return
	}

	start := time.Now()
	result, err := b.planner.BuildPlan(ctx, user.PlannerProfile(), memory)
	if err != nil {
		b.editMarkdown(chatID, sentMsg.MessageID, errorText("building plan", err))
		return
	}

	planID, err := b.plans.SavePlan(ctx, user.ID, result)
	if err != nil {
		log.Printf("Warning: failed to save plan for user %d: %v", user.ID, err)
	} else {
		if err := b.plans.SaveMemory(ctx, user.ID, result.Memory); err != nil {
			log.Printf("Warning: failed to save exclusion memory: %v", err)
		}
		items := shopping.BuildItems(result)
		if _, err := b.shopping.Save(ctx, user.ID, planID, items); err != nil {
			log.Printf("Warning: failed to save shopping list: %v", err)
		}
	}

	if err := b.metricsStore.Record(ctx, metrics.PlanMetric{
		UserID:       user.ID,
		DurationMS:   time.Since(start).Milliseconds(),
		BlockedSlots: len(result.Audit.Blocked),
		SafetyWaived: len(result.Audit.SafetyWaived),
	}); err != nil {
		log.Printf("Warning: metrics record failed: %v", err)
	}

	b.editMarkdown(chatID, sentMsg.MessageID, formatPlanMarkdown(result))
}

func (b *Bot) handleShoppingCommand(chatID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := b.linkedUser(ctx)
	if err != nil {
		b.sendMarkdown(chatID, errorText("loading account", err))
		return
	}

	history, err := b.plans.History(ctx, user.ID, 1)
	if err != nil || len(history) == 0 {
		b.sendMarkdown(chatID, "🛒 No plan yet. Send /plan first.")
		return
	}

	list, err := b.shopping.GetByMealPlanID(ctx, history[0].ID)
	if err != nil || list == nil {
		b.sendMarkdown(chatID, "🛒 No shopping list found for the latest plan.")
		return
	}
	b.sendMarkdown(chatID, formatShoppingList(list.Items))
}

func (b *Bot) handleClipRequest(chatID int64, url string) {
	if b.clipper == nil {
		b.sendMarkdown(chatID, "✂️ Recipe clipping is not configured.")
		return
	}

	sentMsg, err := b.sendMarkdown(chatID, "✂️ *Clipping recipe...*")
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	rec, err := b.clipper.ClipURL(ctx, url)
	if err != nil {
		log.Printf("Error clipping recipe: %v", err)
		b.editMarkdown(chatID, sentMsg.MessageID, errorText("clipping recipe", err))
		return
	}
	b.editMarkdown(chatID, sentMsg.MessageID,
		fmt.Sprintf("✅ *Recipe Saved!*\n\n*%s* (`%s`)\nTag its meal type to include it in plans.", rec.Name, rec.Slug))
}

func (b *Bot) handleMetricsCommand(chatID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	summary, err := b.metricsStore.Summary(ctx, 7)
	if err != nil {
		b.sendMarkdown(chatID, "❌ Error fetching metrics.")
		return
	}

	var sb strings.Builder
	sb.WriteString("📊 *Planning Activity (7 days)*\n\n")
	if len(summary) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range summary {
		sb.WriteString(fmt.Sprintf("• *%s*: %d plans, avg %.0fms, %d blocked, %d waived\n",
			d.Date, d.Plans, d.AvgDurationMS, d.BlockedSlots, d.SafetyWaived))
	}
	b.sendMarkdown(chatID, sb.String())
}

func (b *Bot) sendMarkdown(chatID int64, text string) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	return b.api.Send(msg)
}

func (b *Bot) editMarkdown(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = "Markdown"
	if _, err := b.api.Send(edit); err != nil {
		log.Printf("Failed to edit message: %v", err)
	}
}

func errorText(action string, err error) string {
	safeErr := strings.ReplaceAll(err.Error(), "`", "'")
	return fmt.Sprintf("❌ *Error %s:*\n```\n%v\n```", action, safeErr)
}
