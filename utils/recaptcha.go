package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RecaptchaVerifier submits challenge tokens to the siteverify endpoint.
// Verification is always awaited before the sign-in flow touches the
// database.
type RecaptchaVerifier struct {
	Secret    string
	VerifyURL string
	Client    *http.Client
}

// NewRecaptchaVerifier returns a verifier with a bounded-timeout client.
func NewRecaptchaVerifier(secret, verifyURL string) *RecaptchaVerifier {
	return &RecaptchaVerifier{
		Secret:    secret,
		VerifyURL: verifyURL,
		Client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type recaptchaResult struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify returns whether the token passed verification. A transport or
// deserialization fault is an error; a clean "not a human" result is
// (false, nil).
func (v *RecaptchaVerifier) Verify(ctx context.Context, token string) (bool, error) {
	form := url.Values{}
	form.Set("secret", v.Secret)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.VerifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := v.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return false, fmt.Errorf("recaptcha verify request: %w", err)
	}
	defer resp.Body.Close()

	var result recaptchaResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("recaptcha verify decode: %w", err)
	}
	return result.Success, nil
}
