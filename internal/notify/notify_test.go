package notify

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/antonminaichev/flower-shop/internal/types/order"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSplitTextShort(t *testing.T) {
	parts := SplitText("короткое сообщение", MaxMessageLen)
	assert.Equal(t, []string{"короткое сообщение"}, parts)
}

func TestSplitTextPrefersNewline(t *testing.T) {
	text := strings.Repeat("a", 10) + "\n" + strings.Repeat("b", 10)
	parts := SplitText(text, 15)
	assert.Equal(t, []string{strings.Repeat("a", 10), strings.Repeat("b", 10)}, parts)
}

func TestSplitTextFallsBackToSpace(t *testing.T) {
	text := strings.Repeat("a", 10) + " " + strings.Repeat("b", 10)
	parts := SplitText(text, 15)
	assert.Equal(t, []string{strings.Repeat("a", 10), strings.Repeat("b", 10)}, parts)
}

func TestSplitTextHardCut(t *testing.T) {
	text := strings.Repeat("я", 25)
	parts := SplitText(text, 10)
	assert.Equal(t, 3, len(parts))
	assert.Equal(t, strings.Repeat("я", 10), parts[0])
	assert.Equal(t, strings.Repeat("я", 10), parts[1])
	assert.Equal(t, strings.Repeat("я", 5), parts[2])
}

func TestSplitTextPartsWithinLimit(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 500; i++ {
		b.WriteString("строка заказа с товаром и ценой\n")
	}
	for _, p := range SplitText(b.String(), MaxMessageLen) {
		if n := len([]rune(p)); n > MaxMessageLen {
			t.Fatalf("part of %d runes exceeds limit", n)
		}
	}
}

type stubOrderSource struct {
	order *order.Order
	items []order.Item
}

func (s *stubOrderSource) FindOrder(ctx context.Context, id int64) (*order.Order, error) {
	return s.order, nil
}

func (s *stubOrderSource) ListOrderItems(ctx context.Context, orderID int64) ([]order.Item, error) {
	return s.items, nil
}

type recordingSender struct {
	messages []string
	photos   []string
}

func (s *recordingSender) SendMessage(ctx context.Context, chatID int64, text string) error {
	s.messages = append(s.messages, text)
	return nil
}

func (s *recordingSender) SendPhoto(ctx context.Context, chatID int64, photo []byte, filename string) error {
	s.photos = append(s.photos, filename)
	return nil
}

func testOrder() *order.Order {
	return &order.Order{
		ID:            15,
		OrderDate:     time.Date(2025, 3, 19, 12, 0, 0, 0, time.UTC),
		DeliveryDate:  time.Date(2025, 3, 19, 18, 0, 0, 0, time.UTC),
		TotalPrice:    decimal.NewFromInt(350),
		Address:       "ул. Ленина, 1",
		CustomerLogin: "buyer1",
		Items: []order.Item{
			{ProductName: "Розы красные", Price: decimal.NewFromInt(100), Quantity: 2},
			{ProductName: "Тюльпаны", Price: decimal.NewFromInt(50), Quantity: 3},
		},
	}
}

func TestFormatOrderMessage(t *testing.T) {
	n := NewOrderNotifier(&recordingSender{}, &stubOrderSource{}, []int64{1}, "", time.UTC)
	text := n.FormatOrderMessage(testOrder())

	assert.True(t, strings.HasPrefix(text, "🛒 *Новый заказ!*"))
	assert.Contains(t, text, "🆔 *#15*")
	assert.Contains(t, text, "📅 *Дата заказа:* 19.03.2025 12:00")
	assert.Contains(t, text, "📦 *План доставки:* 19.03.2025 18:00")
	assert.Contains(t, text, "💵 *Сумма:* 350 ₽")
	assert.Contains(t, text, "👤 *Клиент:* buyer1")
	assert.Contains(t, text, "📱 *Телефон:* Не указан")
	assert.Contains(t, text, "📦 *Адрес доставки:* ул. Ленина, 1")
	assert.Contains(t, text, "• *Розы красные*\n  2 × 100 ₽ = 200 ₽")
	assert.Contains(t, text, "• *Тюльпаны*\n  3 × 50 ₽ = 150 ₽")
}

func TestSendNewOrderDeliversToAllChats(t *testing.T) {
	o := testOrder()
	sender := &recordingSender{}
	source := &stubOrderSource{order: o, items: o.Items}
	n := NewOrderNotifier(sender, source, []int64{100, 200}, "", time.UTC)

	if err := n.SendNewOrder(context.Background(), o.ID); err != nil {
		t.Fatal(err)
	}
	// Одно сообщение на каждый чат, фото без путей к файлам не отправляются.
	assert.Equal(t, 2, len(sender.messages))
	assert.Empty(t, sender.photos)
	assert.Contains(t, sender.messages[0], "🆔 *#15*")
}
