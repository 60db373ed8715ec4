package telegram

import (
	"context"
	"fmt"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"gauge-reader/internal/domain/entity"
	"gauge-reader/internal/domain/port"
)

const (
	msgStart = `👋 Привет! Я слежу за стрелочным манометром через камеру.

🔔 Этот чат подписан на уведомления о тревогах.

📋 Команды:
/reading — текущее показание
/stop — отписаться от тревог
/help — справка`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ /start — подписать чат на уведомления о тревогах
2️⃣ /reading — получить последнее распознанное показание
3️⃣ /stop — отписаться

💡 Показания обновляются по расписанию опроса камеры.`

	msgStopped        = "🔕 Подписка на тревоги отключена. /start — включить снова."
	msgUnknownCommand = "❓ Неизвестная команда. Используйте /help для справки."
	msgNoReading      = "⏳ Показаний пока нет: ни один кадр ещё не распознан."
)

// Bot — Telegram-интерфейс службы: подписка чатов на тревоги и выдача
// последнего показания по запросу.
type Bot struct {
	api         *tgbotapi.BotAPI
	subscribers port.SubscriberRepository
	store       port.ReadingStore
	unit        string // единица измерения шкалы, например "бар"
}

// NewBot создаёт нового бота.
func NewBot(token string, subscribers port.SubscriberRepository, store port.ReadingStore, unit string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api:         api,
		subscribers: subscribers,
		store:       store,
		unit:        unit,
	}, nil
}

// Run запускает основной цикл обработки сообщений.
func (b *Bot) Run() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	ctx := context.Background()

	for update := range updates {
		if update.Message == nil {
			continue
		}

		b.handleMessage(ctx, update.Message)
	}

	return nil
}

// handleMessage обрабатывает входящее сообщение.
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if !msg.IsCommand() {
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
		return
	}

	switch msg.Command() {
	case "start":
		if _, err := b.subscribers.Add(ctx, msg.Chat.ID); err != nil {
			log.Printf("Error adding subscriber: %v", err)
			return
		}
		b.sendMessage(msg.Chat.ID, msgStart)

	case "stop":
		if err := b.subscribers.Remove(ctx, msg.Chat.ID); err != nil {
			log.Printf("Error removing subscriber: %v", err)
			return
		}
		b.sendMessage(msg.Chat.ID, msgStopped)

	case "reading":
		b.sendMessage(msg.Chat.ID, b.readingText(ctx))

	case "help":
		b.sendMessage(msg.Chat.ID, msgHelp)

	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}
}

// readingText готовит ответ на /reading: последнее показание и его возраст.
func (b *Bot) readingText(ctx context.Context) string {
	reading, at, ok, err := b.store.Last(ctx)
	if err != nil {
		log.Printf("Error reading store: %v", err)
		return msgNoReading
	}
	if !ok {
		return msgNoReading
	}
	age := time.Since(at).Round(time.Second)
	return fmt.Sprintf("📟 Показание: %.2f %s (%s назад)", reading.Value, b.unit, age)
}

// NotifyAlarm рассылает подписчикам сообщение о срабатывании порога.
func (b *Bot) NotifyAlarm(ctx context.Context, alarm entity.Alarm, reading entity.Reading) error {
	text := fmt.Sprintf("🚨 Тревога %d: показание %.2f %s (порог %.2f, срабатывание «%s»)",
		alarm.Level, reading.Value, b.unit, alarm.Threshold, alarm.Direction)
	return b.broadcast(ctx, text)
}

// NotifyRecovered рассылает подписчикам сообщение о возврате в норму.
func (b *Bot) NotifyRecovered(ctx context.Context, alarm entity.Alarm, reading entity.Reading) error {
	text := fmt.Sprintf("✅ Тревога %d снята: показание %.2f %s", alarm.Level, reading.Value, b.unit)
	return b.broadcast(ctx, text)
}

// broadcast отправляет текст всем подписчикам.
func (b *Bot) broadcast(ctx context.Context, text string) error {
	subs, err := b.subscribers.All(ctx)
	if err != nil {
		return fmt.Errorf("list subscribers: %w", err)
	}
	for _, sub := range subs {
		b.sendMessage(sub.ChatID, text)
	}
	return nil
}

// sendMessage отправляет текстовое сообщение.
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

// Проверка реализации интерфейса
var _ port.AlarmNotifier = (*Bot)(nil)
