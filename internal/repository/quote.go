package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"buildersite/internal/models"
)

type quoteRepository struct {
	db *gorm.DB
}

// NewQuoteRepository returns a gorm-backed QuoteRepository.
func NewQuoteRepository(db *gorm.DB) QuoteRepository {
	return &quoteRepository{db: db}
}

func (r *quoteRepository) Create(ctx context.Context, quote *models.QuoteRequest) error {
	if err := r.db.WithContext(ctx).Create(quote).Error; err != nil {
		return fmt.Errorf("create quote: %w", err)
	}
	return nil
}

func (r *quoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error) {
	var quote models.QuoteRequest
	if err := r.db.WithContext(ctx).First(&quote, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get quote: %w", err)
	}
	return &quote, nil
}

func (r *quoteRepository) List(ctx context.Context, status string) ([]models.QuoteRequest, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	quotes := []models.QuoteRequest{}
	if err := q.Find(&quotes).Error; err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	return quotes, nil
}

func (r *quoteRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.QuoteRequest, error) {
	var quote models.QuoteRequest
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&quote, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Model(&quote).Update("status", status).Error; err != nil {
			return err
		}
		quote.Status = status
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update quote status: %w", err)
	}
	return &quote, nil
}
