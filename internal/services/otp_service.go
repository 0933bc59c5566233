package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/shramik-saathi/backend/internal/cache"
	"github.com/shramik-saathi/backend/internal/providers/sms"
	"github.com/shramik-saathi/backend/internal/utils"
)

type OTPService interface {
	Send(ctx context.Context, phone string) error
	// Verify checks the code for the phone number. Codes are single-use:
	// a successful verification deletes the stored code.
	Verify(ctx context.Context, phone, code string) (bool, error)
}

type otpService struct {
	store  cache.Cache
	sender sms.Sender
	ttl    time.Duration
}

func NewOTPService(store cache.Cache, sender sms.Sender, ttl time.Duration) OTPService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &otpService{store: store, sender: sender, ttl: ttl}
}

func otpKey(phone string) string { return "otp:" + phone }

func validPhone(phone string) bool {
	if len(phone) != 10 {
		return false
	}
	for _, c := range phone {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func (s *otpService) Send(ctx context.Context, phone string) error {
	const op = "OTPService.Send"

	if !validPhone(phone) {
		return utils.E(utils.CodeInvalidArgument, op, "invalid phone number", nil)
	}

	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to generate otp", err)
	}
	code := fmt.Sprintf("%06d", n.Int64()+100000)

	if err := s.store.SetJSON(ctx, otpKey(phone), code, s.ttl); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to store otp", err)
	}

	msg := "Your Shramik Saathi verification code is " + code
	if err := s.sender.Send(ctx, phone, msg); err != nil {
		return utils.E(utils.CodeUnavailable, op, "failed to send otp", err)
	}
	return nil
}

func (s *otpService) Verify(ctx context.Context, phone, code string) (bool, error) {
	const op = "OTPService.Verify"

	if !validPhone(phone) || code == "" {
		return false, utils.E(utils.CodeInvalidArgument, op, "phone and otp are required", nil)
	}

	var stored string
	hit, err := s.store.GetJSON(ctx, otpKey(phone), &stored)
	if err != nil {
		return false, utils.E(utils.CodeInternal, op, "failed to read otp", err)
	}
	if !hit || stored != code {
		return false, nil
	}

	if err := s.store.Del(ctx, otpKey(phone)); err != nil {
		return false, utils.E(utils.CodeInternal, op, "failed to consume otp", err)
	}
	return true, nil
}
