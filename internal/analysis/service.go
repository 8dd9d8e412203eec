package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mishura/internal/cache"
	"mishura/internal/consultation"
	"mishura/internal/logger"
	"mishura/internal/metrics"
	"mishura/internal/storage"
	"mishura/internal/stylist"
	"mishura/internal/user"
	"mishura/internal/wallet"
)

// Advisor produces advice for one or several images. *stylist.Service implements it.
type Advisor interface {
	Configured() bool
	Analyze(ctx context.Context, image []byte, occasion, preferences string) (*stylist.Result, error)
	Compare(ctx context.Context, images [][]byte, occasion, preferences string) (*stylist.Result, error)
}

type Service struct {
	advisor       Advisor
	wallet        wallet.Repository
	consultations consultation.Repository
	storage       storage.Store
	price         int64
	now           func() time.Time
}

// NewService builds the analysis flow. store may be nil, in which case the
// consultation keeps the content fingerprint instead of an image reference.
func NewService(advisor Advisor, wallets wallet.Repository, consultations consultation.Repository, store storage.Store, price int64) *Service {
	return &Service{
		advisor:       advisor,
		wallet:        wallets,
		consultations: consultations,
		storage:       store,
		price:         price,
		now:           time.Now,
	}
}

func (s *Service) Configured() bool {
	return s.advisor.Configured()
}

func (s *Service) Analyze(ctx context.Context, req Request) (*Result, error) {
	if len(req.Images) != 1 {
		return nil, fmt.Errorf("%w: expected one image, got %d", stylist.ErrInvalidImage, len(req.Images))
	}
	return s.run(ctx, consultation.KindSingle, req)
}

func (s *Service) Compare(ctx context.Context, req Request) (*Result, error) {
	if n := len(req.Images); n < stylist.MinCompareImages || n > stylist.MaxCompareImages {
		return nil, fmt.Errorf("%w: got %d", stylist.ErrImageCount, n)
	}
	return s.run(ctx, consultation.KindCompare, req)
}

func (s *Service) run(ctx context.Context, kind string, req Request) (*Result, error) {
	if !s.advisor.Configured() {
		return nil, stylist.ErrNotConfigured
	}

	req.Occasion = normalizeOccasion(req.Occasion)
	req.Preferences = strings.TrimSpace(req.Preferences)

	var owner *user.User
	if req.TelegramID != 0 {
		u, err := s.wallet.GetBalance(ctx, req.TelegramID)
		if err != nil {
			return nil, fmt.Errorf("failed to load user: %w", err)
		}
		if s.price > 0 && u.Balance < s.price {
			return nil, wallet.ErrInsufficientBalance
		}
		owner = u
	}

	data := make([][]byte, len(req.Images))
	for i, img := range req.Images {
		data[i] = img.Data
	}

	var (
		advice *stylist.Result
		err    error
	)
	if kind == consultation.KindCompare {
		advice, err = s.advisor.Compare(ctx, data, req.Occasion, req.Preferences)
	} else {
		advice, err = s.advisor.Analyze(ctx, data[0], req.Occasion, req.Preferences)
	}
	if err != nil {
		return nil, err
	}

	result := &Result{Advice: advice.Text, Cached: advice.Cached}
	if owner == nil {
		return result, nil
	}

	balance := owner.Balance
	fingerprint := cache.Fingerprint(data, req.Occasion, req.Preferences)

	if s.price > 0 {
		tx, err := s.wallet.AddTransaction(ctx, req.TelegramID, -s.price, wallet.TxConsultation, kind+":"+fingerprint[:16])
		if err != nil {
			return nil, err
		}
		balance = tx.BalanceAfter
	}
	result.Balance = &balance

	record := &consultation.Consultation{
		UserID:      owner.ID,
		Kind:        kind,
		Occasion:    req.Occasion,
		Preferences: req.Preferences,
		ImagePath:   s.storeImages(ctx, req.Images, fingerprint),
		Advice:      advice.Text,
	}
	if err := s.consultations.Create(ctx, record); err != nil {
		// advice is returned even when the history write fails
		logger.Error("failed to record consultation", "telegram_id", req.TelegramID, "kind", kind, "error", err)
		return result, nil
	}
	metrics.RecordConsultation(kind)
	result.ConsultationID = record.ID

	return result, nil
}

// storeImages uploads the images and returns their references joined by commas.
// Storage failures fall back to the content fingerprint.
func (s *Service) storeImages(ctx context.Context, images []Image, fingerprint string) string {
	if s.storage == nil {
		return "sha256:" + fingerprint
	}

	refs := make([]string, 0, len(images))
	for _, img := range images {
		ref, err := s.storage.Put(ctx, storage.ObjectKey(s.now(), img.ContentType), img.Data, img.ContentType)
		if err != nil {
			logger.Warn("failed to store uploaded image", "filename", img.Filename, "error", err)
			return "sha256:" + fingerprint
		}
		refs = append(refs, ref)
	}
	return strings.Join(refs, ",")
}

func normalizeOccasion(occasion string) string {
	if occasion = strings.TrimSpace(occasion); occasion == "" {
		return DefaultOccasion
	}
	return occasion
}
