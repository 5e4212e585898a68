package service

import (
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"text2learn_backend/internal/config"
)

// EmailService 通过 SendGrid 发送事务性邮件
type EmailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService(cfg config.EmailConfig) *EmailService {
	return &EmailService{
		client:    sendgrid.NewSendClient(cfg.SendGridKey),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
	}
}

// SendOTP 发送注册验证码邮件
func (s *EmailService) SendOTP(to, otp string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	subject := "Your verification code"
	plain := fmt.Sprintf("Your verification code is %s. It expires in 10 minutes.", otp)
	html := fmt.Sprintf("<p>Your verification code is <strong>%s</strong>.</p><p>It expires in 10 minutes.</p>", otp)

	message := mail.NewSingleEmail(from, subject, recipient, plain, html)
	resp, err := s.client.Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid rejected email (status %d): %s", resp.StatusCode, resp.Body)
	}
	return nil
}
