package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/antonminaichev/flower-shop/internal/logger"
	"github.com/antonminaichev/flower-shop/internal/notify"
	ordersvc "github.com/antonminaichev/flower-shop/internal/order"
	"github.com/antonminaichev/flower-shop/internal/stats"
	"github.com/antonminaichev/flower-shop/internal/types/order"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const helpText = `Доступные команды:
/start - Запуск бота
/orders - Список заказов
/status - Изменить статус заказа
/stats - Статистика
/help - Помощь`

// statusButtons в порядке показа на клавиатуре.
var statusButtons = []string{
	"🆕 Заказано",
	"🔧 Собирается",
	"✅ Собрано",
	"🚚 Едет",
	"📦 Доставлено",
	"❌ Отменен",
}

var statusMapping = map[string]order.Status{
	"🆕 Заказано":   order.StatusOrdered,
	"🔧 Собирается": order.StatusInAssemble,
	"✅ Собрано":    order.StatusAssembled,
	"🚚 Едет":      order.StatusInDelivery,
	"📦 Доставлено": order.StatusDelivered,
	"❌ Отменен":    order.StatusCanceled,
}

// Client — часть Telegram-клиента, нужная боту.
type Client interface {
	GetUpdates(ctx context.Context, offset int64, timeoutSec int) ([]notify.Update, error)
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendKeyboard(ctx context.Context, chatID int64, text string, buttons []string) error
	RemoveKeyboard(ctx context.Context, chatID int64, text string) error
}

type OrderService interface {
	ListActiveOrders(ctx context.Context) ([]order.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status order.Status) (*order.Order, error)
}

type StatsService interface {
	BuildReport(ctx context.Context, now time.Time) (*stats.Report, error)
}

// Состояния диалога /status.
type stage int

const (
	stageIdle stage = iota
	stageAwaitStatus
	stageAwaitOrderID
)

type pending struct {
	stage  stage
	status order.Status
}

// Bot обслуживает операторские команды через long polling.
type Bot struct {
	client Client
	orders OrderService
	stats  StatsService
	loc    *time.Location

	mu     sync.Mutex
	states map[int64]*pending
}

func New(client Client, orders OrderService, statsSvc StatsService, loc *time.Location) *Bot {
	if loc == nil {
		loc = time.UTC
	}
	return &Bot{
		client: client,
		orders: orders,
		stats:  statsSvc,
		loc:    loc,
		states: make(map[int64]*pending),
	}
}

// Run крутит цикл getUpdates до отмены контекста.
func (b *Bot) Run(ctx context.Context) {
	logger.Log.Info("bot polling started")
	var offset int64
	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("bot polling stopped")
			return
		default:
		}

		updates, err := b.client.GetUpdates(ctx, offset, 30)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Log.Error("getUpdates failed", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(3 * time.Second):
			}
			continue
		}
		for _, u := range updates {
			if u.UpdateID >= offset {
				offset = u.UpdateID + 1
			}
			if u.Message == nil {
				continue
			}
			b.handleMessage(ctx, u.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *notify.Message) {
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	if strings.HasPrefix(text, "/") {
		b.setState(chatID, nil)
		b.handleCommand(ctx, chatID, text)
		return
	}

	if st := b.state(chatID); st != nil {
		b.handleDialog(ctx, chatID, text, st)
		return
	}

	b.reply(ctx, chatID, "Используйте /help для списка команд")
}

func (b *Bot) handleCommand(ctx context.Context, chatID int64, text string) {
	cmd := strings.Fields(text)[0]
	switch cmd {
	case "/start":
		b.reply(ctx, chatID, "Добро пожаловать! Используйте /help для списка команд")
	case "/help":
		b.reply(ctx, chatID, helpText)
	case "/orders":
		b.handleOrders(ctx, chatID)
	case "/status":
		b.setState(chatID, &pending{stage: stageAwaitStatus})
		if err := b.client.SendKeyboard(ctx, chatID, "Выберите статус:", statusButtons); err != nil {
			logger.Log.Error("send keyboard failed", zap.Error(err))
		}
	case "/stats":
		b.handleStats(ctx, chatID)
	default:
		b.reply(ctx, chatID, "Неизвестная команда. Используйте /help")
	}
}

func (b *Bot) handleDialog(ctx context.Context, chatID int64, text string, st *pending) {
	switch st.stage {
	case stageAwaitStatus:
		status, ok := statusMapping[text]
		if !ok {
			b.reply(ctx, chatID, "Пожалуйста, выберите статус из предложенных")
			return
		}
		b.setState(chatID, &pending{stage: stageAwaitOrderID, status: status})
		if err := b.client.RemoveKeyboard(ctx, chatID, "Введите номер заказа:"); err != nil {
			logger.Log.Error("remove keyboard failed", zap.Error(err))
		}
	case stageAwaitOrderID:
		defer b.setState(chatID, nil)

		orderID, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			b.reply(ctx, chatID, "❌ Некорректный номер заказа")
			return
		}
		if _, err := b.orders.UpdateStatus(ctx, orderID, st.status); err != nil {
			if errors.Is(err, ordersvc.ErrOrderNotFound) {
				b.reply(ctx, chatID, "❌ Заказ не найден")
				return
			}
			b.reply(ctx, chatID, "⚠️ Ошибка при загрузке данных")
			return
		}
		b.reply(ctx, chatID, fmt.Sprintf("✅ Статус заказа #%d изменен на %s", orderID, st.status))
	}
}

func (b *Bot) handleOrders(ctx context.Context, chatID int64) {
	orders, err := b.orders.ListActiveOrders(ctx)
	if err != nil {
		logger.Log.Error("list active orders failed", zap.Error(err))
		b.reply(ctx, chatID, "⚠️ Ошибка при загрузке данных")
		return
	}
	if len(orders) == 0 {
		b.reply(ctx, chatID, "📭 Активных заказов нет")
		return
	}

	for _, part := range notify.SplitText(b.formatOrders(orders), notify.MaxMessageLen) {
		if err := b.client.SendMessage(ctx, chatID, part); err != nil {
			logger.Log.Error("send orders failed", zap.Error(err))
			return
		}
	}
}

func (b *Bot) formatOrders(orders []order.Order) string {
	var sb strings.Builder
	sb.WriteString("*📌 Активные заказы:*\n")

	for _, o := range orders {
		fmt.Fprintf(&sb, "\n*🆔 Заказ* `#%d`\n", o.ID)
		fmt.Fprintf(&sb, "*📅 Дата заказа:* %s\n", o.OrderDate.In(b.loc).Format("02.01.2006 15:04"))
		fmt.Fprintf(&sb, "*📦 План доставки:* %s\n", o.DeliveryDate.In(b.loc).Format("02.01.2006 15:04"))
		fmt.Fprintf(&sb, "*🚚 Статус:* %s\n", o.Status.Display())
		fmt.Fprintf(&sb, "*💵 Сумма:* %s ₽\n", o.TotalPrice.String())
		fmt.Fprintf(&sb, "*👤 Клиент:* %s\n", o.CustomerLogin)
		fmt.Fprintf(&sb, "*📱 Телефон:* %s\n", orDefault(o.CustomerPhone))
		fmt.Fprintf(&sb, "*📦 Адрес доставки:* %s\n", o.Address)

		if len(o.Items) == 0 {
			sb.WriteString("\n*🛒 Корзина пуста*\n")
		} else {
			sb.WriteString("\n*📦 Состав заказа:*\n")
			for _, it := range o.Items {
				total := it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
				fmt.Fprintf(&sb, "• %s\n  %d × %s ₽ = %s ₽\n",
					it.ProductName, it.Quantity, it.Price.String(), total.String())
			}
		}
		sb.WriteString("\n▬▬▬▬▬▬▬▬▬▬▬▬▬▬▬▬▬\n")
	}
	return sb.String()
}

func (b *Bot) handleStats(ctx context.Context, chatID int64) {
	report, err := b.stats.BuildReport(ctx, time.Now())
	if err != nil {
		logger.Log.Error("build report failed", zap.Error(err))
		b.reply(ctx, chatID, "⚠️ Ошибка при загрузке статистики")
		return
	}
	for _, part := range notify.SplitText(report.Render(), notify.MaxMessageLen) {
		if err := b.client.SendMessage(ctx, chatID, part); err != nil {
			logger.Log.Error("send stats failed", zap.Error(err))
			return
		}
	}
}

func (b *Bot) reply(ctx context.Context, chatID int64, text string) {
	if err := b.client.SendMessage(ctx, chatID, text); err != nil {
		logger.Log.Error("send message failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func orDefault(s string) string {
	if s == "" {
		return "Не указан"
	}
	return s
}

func (b *Bot) state(chatID int64) *pending {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.states[chatID]
}

func (b *Bot) setState(chatID int64, st *pending) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if st == nil {
		delete(b.states, chatID)
		return
	}
	b.states[chatID] = st
}
