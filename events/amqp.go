package events

import (
	"context"
	"fmt"
	"time"

	"github.com/BerniceZTT/client_crm/utils"

	"github.com/rabbitmq/amqp091-go"
)

// channel AMQPPublisher 用到的通道操作
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// AMQPPublisher 推送到 RabbitMQ topic 交换机，路由键为事件类型
type AMQPPublisher struct {
	conn     *amqp091.Connection
	channel  channel
	exchange string
}

// NewAMQPPublisher 连接并声明交换机
func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("连接消息队列失败: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("打开通道失败: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("声明交换机失败: %w", err)
	}

	utils.Logger.Info().Str("exchange", exchange).Msg("已连接消息队列")
	return &AMQPPublisher{conn: conn, channel: ch, exchange: exchange}, nil
}

// Publish 推送事件
func (p *AMQPPublisher) Publish(ctx context.Context, event Event) error {
	body, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("序列化事件失败: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange, // exchange
		event.Type, // routing key
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    event.OccurredAt,
			MessageId:    event.EntityID,
			Type:         event.Type,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("推送事件失败: %w", err)
	}

	utils.Logger.Debug().Str("type", event.Type).Str("entityId", event.EntityID).Msg("事件已推送")
	return nil
}

// Close 关闭通道和连接
func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NewPublisher url 为空时返回 NoopPublisher
func NewPublisher(url, exchange string) (Publisher, error) {
	if url == "" {
		return NoopPublisher{}, nil
	}
	return NewAMQPPublisher(url, exchange)
}
