package rabbit

import (
	log "github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

// Rabbit holds the connection settings for one queue.
type Rabbit struct {
	Url          string
	Exchange     string
	ExchangeType string
	Queue        string
}

// Consume listens on the queue and calls handler for every delivered message.
// It blocks until the connection is closed.
func Consume(r *Rabbit, handler func(message string)) {
	conn, err := amqp.Dial(r.Url)
	if err != nil {
		log.Errorf("Connect rabbitmq failed: %v", err)
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Errorf("Open rabbitmq channel failed: %v", err)
		return
	}
	defer ch.Close()

	if err := declare(ch, r); err != nil {
		log.Errorf("Declare rabbitmq queue %s failed: %v", r.Queue, err)
		return
	}

	msgs, err := ch.Consume(r.Queue, "", true, false, false, false, nil)
	if err != nil {
		log.Errorf("Consume rabbitmq queue %s failed: %v", r.Queue, err)
		return
	}

	log.Infof("Waiting for messages on queue: %s", r.Queue)
	for d := range msgs {
		handler(string(d.Body))
	}
}

// Publish sends one message to the queue.
func Publish(r *Rabbit, message string) {
	conn, err := amqp.Dial(r.Url)
	if err != nil {
		log.Errorf("Connect rabbitmq failed: %v", err)
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Errorf("Open rabbitmq channel failed: %v", err)
		return
	}
	defer ch.Close()

	if err := declare(ch, r); err != nil {
		log.Errorf("Declare rabbitmq queue %s failed: %v", r.Queue, err)
		return
	}

	err = ch.Publish(r.Exchange, r.Queue, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        []byte(message),
	})
	if err != nil {
		log.Errorf("Publish to queue %s failed: %v", r.Queue, err)
	}
}

func declare(ch *amqp.Channel, r *Rabbit) error {
	if r.Exchange != "" {
		if err := ch.ExchangeDeclare(r.Exchange, r.ExchangeType, true, false, false, false, nil); err != nil {
			return err
		}
	}
	q, err := ch.QueueDeclare(r.Queue, true, false, false, false, nil)
	if err != nil {
		return err
	}
	if r.Exchange != "" {
		return ch.QueueBind(q.Name, r.Queue, r.Exchange, false, nil)
	}
	return nil
}
