package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidSignature   = errors.New("webhook signature verification failed")
	ErrSignatureTooOld    = errors.New("webhook timestamp outside tolerance")
	ErrMalformedSigHeader = errors.New("malformed signature header")
)

// webhookTolerance limits replay of captured webhook deliveries.
const webhookTolerance = 5 * time.Minute

// ConstructEvent verifies the signature header against the raw payload and
// parses the event. The header format is "t=<unix>,v1=<hex hmac-sha256>"
// where the signed message is "<unix>.<payload>".
func (c *Client) ConstructEvent(payload []byte, sigHeader string) (*Event, error) {
	timestamp, signature, err := parseSigHeader(sigHeader)
	if err != nil {
		return nil, err
	}

	if time.Since(time.Unix(timestamp, 0)) > webhookTolerance {
		return nil, ErrSignatureTooOld
	}

	expected := computeSignature(c.webhookSecret, timestamp, payload)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return nil, ErrInvalidSignature
	}

	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("decode webhook event: %w", err)
	}

	return &event, nil
}

// SignPayload produces a valid signature header. Used by tests and the
// local webhook replay tool.
func SignPayload(secret string, timestamp int64, payload []byte) string {
	return fmt.Sprintf("t=%d,v1=%s", timestamp, computeSignature(secret, timestamp, payload))
}

func computeSignature(secret string, timestamp int64, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func parseSigHeader(header string) (int64, string, error) {
	var timestamp int64
	var signature string

	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			return 0, "", ErrMalformedSigHeader
		}
		switch kv[0] {
		case "t":
			ts, err := strconv.ParseInt(kv[1], 10, 64)
			if err != nil {
				return 0, "", ErrMalformedSigHeader
			}
			timestamp = ts
		case "v1":
			signature = kv[1]
		}
	}

	if timestamp == 0 || signature == "" {
		return 0, "", ErrMalformedSigHeader
	}

	return timestamp, signature, nil
}
