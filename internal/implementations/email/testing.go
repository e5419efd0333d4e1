package email

import (
	"context"
	"errors"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"gopkg.in/gomail.v2"
)

type FakeDialer struct {
	Sent        []*gomail.Message
	ReturnError bool
	lock        sync.Mutex
}

func (d *FakeDialer) DialAndSend(m ...*gomail.Message) error {
	if d.ReturnError {
		return errors.New("535 authentication failed")
	}
	d.lock.Lock()
	defer d.lock.Unlock()
	d.Sent = append(d.Sent, m...)
	return nil
}

type FakeSESClient struct {
	Sent        []*ses.SendEmailInput
	ReturnError bool
	lock        sync.Mutex
}

func (c *FakeSESClient) SendEmail(
	ctx context.Context,
	params *ses.SendEmailInput,
	optFns ...func(*ses.Options),
) (*ses.SendEmailOutput, error) {
	if c.ReturnError {
		return nil, errors.New("MessageRejected: email address is not verified")
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	c.Sent = append(c.Sent, params)
	return &ses.SendEmailOutput{}, nil
}
