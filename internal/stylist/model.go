// Package stylist turns outfit photos into styling advice with a generative model.
package stylist

import (
	"context"
	"errors"
)

var (
	ErrNotConfigured    = errors.New("ai model is not configured")
	ErrImageCount       = errors.New("comparison needs from 2 to 5 images")
	ErrInvalidImage     = errors.New("image cannot be processed")
	ErrPermissionDenied = errors.New("ai model rejected the credentials")
	ErrQuotaExceeded    = errors.New("ai model quota exceeded")
	ErrTimeout          = errors.New("ai model did not answer in time")
	ErrBlocked          = errors.New("ai model blocked the request")
	ErrUnavailable      = errors.New("ai model is unavailable")
	ErrErrorResponse    = errors.New("ai model answered with an error message")
)

const (
	MinCompareImages = 2
	MaxCompareImages = 5
)

// Part is either text or inline image data.
type Part struct {
	Text     string
	MIMEType string
	Data     []byte
}

func TextPart(text string) Part {
	return Part{Text: text}
}

func ImagePart(mimeType string, data []byte) Part {
	return Part{MIMEType: mimeType, Data: data}
}

type Response struct {
	Text         string
	FinishReason string
	BlockReason  string
}

// Model is a single request to the underlying provider, without retries.
type Model interface {
	Generate(ctx context.Context, parts []Part) (*Response, error)
}
