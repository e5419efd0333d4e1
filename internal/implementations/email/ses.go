package email

import (
	"context"
	"net/url"
	"passreset/internal/core/domain/user"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type SESClient interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

func NewSESClient(awsConfig aws.Config) *ses.Client {
	return ses.NewFromConfig(awsConfig)
}

type SESSender struct {
	ses SESClient
	// This address must be verified with Amazon SES.
	sender  string
	baseURL url.URL
}

func NewSESSender(client SESClient, sender string, baseURL url.URL) *SESSender {
	return &SESSender{ses: client, sender: sender, baseURL: baseURL}
}

func (s *SESSender) SendPasswordResetToken(ctx context.Context, u user.User, token user.PasswordResetToken) error {
	m, err := newPasswordResetMessage(s.baseURL, u, token)
	if err != nil {
		return err
	}

	_, err = s.ses.SendEmail(
		ctx,
		&ses.SendEmailInput{
			Source: aws.String(s.sender),
			Destination: &types.Destination{
				ToAddresses: []string{m.To},
			},
			Message: &types.Message{
				Subject: &types.Content{Data: aws.String(m.Subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(m.Text), Charset: aws.String("UTF-8")},
					Html: &types.Content{Data: aws.String(m.HTML), Charset: aws.String("UTF-8")},
				},
			},
		},
	)
	return err
}
