package notify

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/antonminaichev/flower-shop/internal/logger"
	"github.com/antonminaichev/flower-shop/internal/types/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Sender — транспорт до операторских чатов.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendPhoto(ctx context.Context, chatID int64, photo []byte, filename string) error
}

// OrderSource перечитывает данные заказа для формирования сообщения.
type OrderSource interface {
	FindOrder(ctx context.Context, id int64) (*order.Order, error)
	ListOrderItems(ctx context.Context, orderID int64) ([]order.Item, error)
}

// OrderNotifier шлёт операторам уведомление о новом заказе: текст и фото
// позиций с подписью. Ошибки доставки в отдельный чат логируются и не
// прерывают рассылку по остальным чатам.
// NopNotifier применяется, когда Telegram не настроен: заказ создаётся,
// уведомление молча пропускается.
type NopNotifier struct{}

func (NopNotifier) SendNewOrder(ctx context.Context, orderID int64) error { return nil }

type OrderNotifier struct {
	sender    Sender
	orders    OrderSource
	chatIDs   []int64
	mediaRoot string
	loc       *time.Location
}

func NewOrderNotifier(sender Sender, orders OrderSource, chatIDs []int64, mediaRoot string, loc *time.Location) *OrderNotifier {
	if loc == nil {
		loc = time.UTC
	}
	return &OrderNotifier{
		sender:    sender,
		orders:    orders,
		chatIDs:   chatIDs,
		mediaRoot: mediaRoot,
		loc:       loc,
	}
}

// FormatOrderMessage — текст уведомления о новом заказе.
func (n *OrderNotifier) FormatOrderMessage(o *order.Order) string {
	var b strings.Builder
	b.WriteString("🛒 *Новый заказ!*\n\n")
	fmt.Fprintf(&b, "🆔 *#%d*\n", o.ID)
	fmt.Fprintf(&b, "📅 *Дата заказа:* %s\n", o.OrderDate.In(n.loc).Format("02.01.2006 15:04"))
	fmt.Fprintf(&b, "📦 *План доставки:* %s\n", o.DeliveryDate.In(n.loc).Format("02.01.2006 15:04"))
	fmt.Fprintf(&b, "💵 *Сумма:* %s ₽\n", o.TotalPrice.String())
	fmt.Fprintf(&b, "👤 *Клиент:* %s\n", o.CustomerLogin)
	fmt.Fprintf(&b, "📱 *Телефон:* %s\n", orDefault(o.CustomerPhone))
	fmt.Fprintf(&b, "📦 *Адрес доставки:* %s\n\n", o.Address)
	b.WriteString("*Состав заказа:*\n")
	b.WriteString(formatItems(o.Items))
	return b.String()
}

func orDefault(s string) string {
	if s == "" {
		return "Не указан"
	}
	return s
}

func formatItems(items []order.Item) string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		total := it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		lines = append(lines, fmt.Sprintf("• *%s*\n  %d × %s ₽ = %s ₽",
			it.ProductName, it.Quantity, it.Price.String(), total.String()))
	}
	return strings.Join(lines, "\n")
}

// SendNewOrder перечитывает заказ из хранилища и рассылает уведомление по
// всем операторским чатам.
func (n *OrderNotifier) SendNewOrder(ctx context.Context, orderID int64) error {
	dispatchID := uuid.NewString()

	o, err := n.orders.FindOrder(ctx, orderID)
	if err != nil {
		return fmt.Errorf("load order %d: %w", orderID, err)
	}
	items, err := n.orders.ListOrderItems(ctx, orderID)
	if err != nil {
		return fmt.Errorf("load order %d items: %w", orderID, err)
	}
	o.Items = items

	message := n.FormatOrderMessage(o)
	photos := n.buildPhotos(items)

	for _, chatID := range n.chatIDs {
		if err := n.sendToChat(ctx, chatID, message, photos); err != nil {
			logger.Log.Error("notification delivery failed",
				zap.String("dispatch_id", dispatchID),
				zap.Int64("order_id", orderID),
				zap.Int64("chat_id", chatID),
				zap.Error(err))
			continue
		}
		logger.Log.Info("notification delivered",
			zap.String("dispatch_id", dispatchID),
			zap.Int64("order_id", orderID),
			zap.Int64("chat_id", chatID))
	}
	return nil
}

type photo struct {
	data     []byte
	filename string
}

func (n *OrderNotifier) buildPhotos(items []order.Item) []photo {
	var photos []photo
	for idx, it := range items {
		if it.ImagePath == "" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(n.mediaRoot, filepath.Clean(it.ImagePath)))
		if err != nil {
			continue
		}
		caption := fmt.Sprintf("Товар %d/%d\n%s\nКоличество: %d × %s₽",
			idx+1, len(items), it.ProductName, it.Quantity, it.Price.String())
		photos = append(photos, photo{
			data:     CaptionImage(data, caption),
			filename: filepath.Base(it.ImagePath),
		})
	}
	return photos
}

func (n *OrderNotifier) sendToChat(ctx context.Context, chatID int64, message string, photos []photo) error {
	for _, part := range SplitText(message, MaxMessageLen) {
		if err := n.sender.SendMessage(ctx, chatID, part); err != nil {
			return err
		}
	}
	for _, p := range photos {
		if err := n.sender.SendPhoto(ctx, chatID, p.data, p.filename); err != nil {
			return err
		}
	}
	return nil
}
