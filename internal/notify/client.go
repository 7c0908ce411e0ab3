package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
)

var ErrNotConfigured = errors.New("telegram token and admin chat ids must be set")

// TelegramClient — клиент Bot API. Создаётся один раз при старте процесса,
// передаётся явно и закрывается при завершении.
type TelegramClient struct {
	Client  *http.Client
	BaseURL string
	Token   string
	ChatIDs []int64
}

func NewTelegramClient(client *http.Client, token string, chatIDs []int64) (*TelegramClient, error) {
	if token == "" || len(chatIDs) == 0 {
		return nil, ErrNotConfigured
	}
	return &TelegramClient{
		Client:  client,
		BaseURL: "https://api.telegram.org",
		Token:   token,
		ChatIDs: chatIDs,
	}, nil
}

func (c *TelegramClient) Close() {
	c.Client.CloseIdleConnections()
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description"`
	Result      json.RawMessage `json:"result"`
}

func (c *TelegramClient) call(ctx context.Context, method string, body io.Reader, contentType string) (json.RawMessage, error) {
	url := fmt.Sprintf("%s/bot%s/%s", c.BaseURL, c.Token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	var ar apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	if !ar.OK {
		return nil, fmt.Errorf("telegram %s: %s", method, ar.Description)
	}
	return ar.Result, nil
}

// SendMessage отправляет текст в чат, parse_mode=Markdown.
func (c *TelegramClient) SendMessage(ctx context.Context, chatID int64, text string) error {
	payload, err := json.Marshal(map[string]any{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "Markdown",
	})
	if err != nil {
		return err
	}
	_, err = c.call(ctx, "sendMessage", bytes.NewReader(payload), "application/json")
	return err
}

// SendPhoto отправляет фото как multipart-вложение.
func (c *TelegramClient) SendPhoto(ctx context.Context, chatID int64, photo []byte, filename string) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("chat_id", strconv.FormatInt(chatID, 10)); err != nil {
		return err
	}
	fw, err := mw.CreateFormFile("photo", filename)
	if err != nil {
		return err
	}
	if _, err := fw.Write(photo); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}
	_, err = c.call(ctx, "sendPhoto", &buf, mw.FormDataContentType())
	return err
}

// GetUpdates — long polling входящих сообщений бота.
func (c *TelegramClient) GetUpdates(ctx context.Context, offset int64, timeoutSec int) ([]Update, error) {
	payload, err := json.Marshal(map[string]any{
		"offset":          offset,
		"timeout":         timeoutSec,
		"allowed_updates": []string{"message"},
	})
	if err != nil {
		return nil, err
	}
	raw, err := c.call(ctx, "getUpdates", bytes.NewReader(payload), "application/json")
	if err != nil {
		return nil, err
	}
	var updates []Update
	if err := json.Unmarshal(raw, &updates); err != nil {
		return nil, fmt.Errorf("decode updates: %w", err)
	}
	return updates, nil
}

// SendKeyboard отправляет текст с reply-клавиатурой из одного столбца кнопок.
func (c *TelegramClient) SendKeyboard(ctx context.Context, chatID int64, text string, buttons []string) error {
	keyboard := make([][]map[string]string, 0, len(buttons))
	for _, b := range buttons {
		keyboard = append(keyboard, []map[string]string{{"text": b}})
	}
	payload, err := json.Marshal(map[string]any{
		"chat_id": chatID,
		"text":    text,
		"reply_markup": map[string]any{
			"keyboard":          keyboard,
			"resize_keyboard":   true,
			"one_time_keyboard": true,
		},
	})
	if err != nil {
		return err
	}
	_, err = c.call(ctx, "sendMessage", bytes.NewReader(payload), "application/json")
	return err
}

// RemoveKeyboard отправляет текст и убирает reply-клавиатуру.
func (c *TelegramClient) RemoveKeyboard(ctx context.Context, chatID int64, text string) error {
	payload, err := json.Marshal(map[string]any{
		"chat_id":      chatID,
		"text":         text,
		"reply_markup": map[string]any{"remove_keyboard": true},
	})
	if err != nil {
		return err
	}
	_, err = c.call(ctx, "sendMessage", bytes.NewReader(payload), "application/json")
	return err
}

// Update — входящее обновление Bot API.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message"`
}

type Message struct {
	MessageID int64  `json:"message_id"`
	Text      string `json:"text"`
	Chat      Chat   `json:"chat"`
}

type Chat struct {
	ID int64 `json:"id"`
}
