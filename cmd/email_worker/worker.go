package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-member-account/internal/application"
	"github.com/oksasatya/go-member-account/pkg/helpers"
	"github.com/oksasatya/go-member-account/pkg/mailer"
	mailtpl "github.com/oksasatya/go-member-account/pkg/mailer/templates"
)

type outcome int

const (
	ack outcome = iota
	drop
	requeue
)

var errNoRecipient = errors.New("event has no recipient email")

type worker struct {
	Sender      mailer.Sender
	Logger      *logrus.Logger
	Options     []mailtpl.Option
	SendTimeout time.Duration
}

// handle renders and sends the email for one member event. Malformed or
// unknown events are dropped; send failures are requeued once.
func (w *worker) handle(ctx context.Context, body []byte, redelivered bool) outcome {
	var ev application.MemberEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		w.Logger.WithError(err).Warn("bad message")
		return drop
	}
	log := w.Logger.WithFields(logrus.Fields{"event_id": ev.ID, "type": ev.Type, "email": ev.Email})

	job, err := buildJob(ev, w.Options...)
	if err != nil {
		log.WithError(err).Warn("skipping event")
		return drop
	}
	subject, text, html, err := mailtpl.Render(job.Template, job.Data)
	if err != nil {
		log.WithError(err).Errorf("render %s failed", job.Template)
		return drop
	}

	timeout := w.SendTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	c, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := w.Sender.Send(c, job.To, subject, text, html); err != nil {
		if redelivered {
			log.WithError(err).Error("send failed twice, dropping")
			return drop
		}
		log.WithError(err).Warn("send failed, requeueing")
		return requeue
	}
	log.Info("email sent")
	return ack
}

func buildJob(ev application.MemberEvent, opts ...mailtpl.Option) (mailer.EmailJob, error) {
	tpl, ok := helpers.TemplateForEvent(ev.Type)
	if !ok {
		return mailer.EmailJob{}, fmt.Errorf("unknown event type %q", ev.Type)
	}
	if ev.Email == "" {
		return mailer.EmailJob{}, errNoRecipient
	}
	all := append([]mailtpl.Option{mailtpl.WithTime(ev.OccurredAt)}, opts...)
	data := mailtpl.NewEmailData(ev.Type, ev.Name, ev.Email, all...)
	job := mailer.EmailJob{
		To:       ev.Email,
		Template: tpl,
		Data:     mailtpl.ToMap(data),
	}
	helpers.EnsureRecipientAndEmail(&job)
	return job, nil
}
