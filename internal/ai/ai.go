package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/01moynul/sellergen-golang/internal/logger"
	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// UnavailableMessage replaces the listing when the model backend is overloaded.
const UnavailableMessage = "⚠ AI service temporarily unavailable. Please try again in 1-2 minutes."

// ErrEmptyResponse is returned when the model answers without any text.
var ErrEmptyResponse = errors.New("model returned no text")

// TextModel turns one prompt into text.
type TextModel interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ListingInput is the seller's description of one product.
type ListingInput struct {
	ProductName string
	Category    string
	Features    string
	Template    string
	Language    string
}

// AIService builds prompts and talks to the model.
type AIService struct {
	Model   TextModel
	Timeout time.Duration
}

func NewAIService(model TextModel, timeout time.Duration) *AIService {
	return &AIService{Model: model, Timeout: timeout}
}

// GenerateListing never fails: model errors come back as a warning text in
// place of the listing.
func (s *AIService) GenerateListing(ctx context.Context, in ListingInput) string {
	prompt := ListingPrompt(in)

	text, err := s.generate(ctx, prompt)
	if err != nil {
		if IsUnavailable(err) {
			logger.Logger.Warnf("listing generation unavailable: %v", err)
			return UnavailableMessage
		}
		logger.Logger.Errorf("listing generation failed: %v", err)
		return fmt.Sprintf("⚠ Error: %v", err)
	}
	return text
}

// GenerateKeywords returns the model error to the caller unchanged.
func (s *AIService) GenerateKeywords(ctx context.Context, product string) (string, error) {
	return s.generate(ctx, KeywordsPrompt(product))
}

func (s *AIService) generate(ctx context.Context, prompt string) (string, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	text, err := s.Model.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// IsUnavailable reports whether err means the model backend is temporarily
// unavailable (HTTP 503 or gRPC Unavailable).
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPCode() == http.StatusServiceUnavailable {
			return true
		}
		if st := apiErr.GRPCStatus(); st != nil && st.Code() == codes.Unavailable {
			return true
		}
	}

	var gErr *googleapi.Error
	if errors.As(err, &gErr) && gErr.Code == http.StatusServiceUnavailable {
		return true
	}

	if st, ok := status.FromError(err); ok && st.Code() == codes.Unavailable {
		return true
	}
	return false
}
