package services

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/go-mail/mail/v2"
)

// EmailService sends transactional mail to users
type EmailService interface {
	SendPasswordResetEmail(to, resetURL string) error
	SendPoolInviteEmail(to, poolName, inviteCode string) error
}

// LogEmailService logs outgoing mail instead of sending it (development)
type LogEmailService struct{}

func NewLogEmailService() *LogEmailService {
	return &LogEmailService{}
}

func (s *LogEmailService) SendPasswordResetEmail(to, resetURL string) error {
	log.Printf("=== EMAIL (dev) ===")
	log.Printf("To: %s", to)
	log.Printf("Subject: Redefinição de senha")
	log.Printf("Reset URL: %s", resetURL)
	log.Printf("===================")
	return nil
}

func (s *LogEmailService) SendPoolInviteEmail(to, poolName, inviteCode string) error {
	log.Printf("=== EMAIL (dev) ===")
	log.Printf("To: %s", to)
	log.Printf("Subject: Convite para o bolão %q", poolName)
	log.Printf("Invite code: %s", inviteCode)
	log.Printf("===================")
	return nil
}

// SMTPEmailService sends real mail through a configured SMTP relay
type SMTPEmailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSMTPEmailService() *SMTPEmailService {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}

	return &SMTPEmailService{
		host:     os.Getenv("SMTP_HOST"),
		port:     port,
		username: os.Getenv("SMTP_USERNAME"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     os.Getenv("SMTP_FROM"),
	}
}

func (s *SMTPEmailService) SendPasswordResetEmail(to, resetURL string) error {
	body := fmt.Sprintf(`Olá,

Você solicitou a redefinição da sua senha no Palpita Agora.
Clique no link abaixo para criar uma nova senha:

%s

Este link é válido por 2 horas.

Se você não fez esta solicitação, ignore esta mensagem.

Equipe Palpita Agora`, resetURL)

	return s.send(to, "Redefinição de senha - Palpita Agora", body)
}

func (s *SMTPEmailService) SendPoolInviteEmail(to, poolName, inviteCode string) error {
	body := fmt.Sprintf(`Olá,

Você foi convidado para o bolão %q no Palpita Agora.
Use o código de convite abaixo para entrar:

%s

Boa sorte!

Equipe Palpita Agora`, poolName, inviteCode)

	return s.send(to, fmt.Sprintf("Convite para o bolão %q", poolName), body)
}

func (s *SMTPEmailService) send(to, subject, body string) error {
	m := mail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := mail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

// NewEmailService picks SMTP when configured, the log fallback otherwise
func NewEmailService() EmailService {
	if os.Getenv("SMTP_HOST") != "" {
		log.Println("Email service: SMTP")
		return NewSMTPEmailService()
	}
	log.Println("Email service: log only (SMTP_HOST not set)")
	return NewLogEmailService()
}
