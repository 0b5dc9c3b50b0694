package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sangkips/nota-perusahaan/internal/domain/entity"
	"github.com/sangkips/nota-perusahaan/internal/domain/repository"
	"github.com/sangkips/nota-perusahaan/pkg/apperror"
	"go.uber.org/zap"
)

const receiptSequenceWidth = 5

var sequencePattern = regexp.MustCompile(`^\d{5,}$`)

// ValidReceiptNumber reports whether number is the company code followed by
// a sequence of at least five digits.
func ValidReceiptNumber(code, number string) bool {
	return code != "" && strings.HasPrefix(number, code) && sequencePattern.MatchString(number[len(code):])
}

// FormatReceiptNumber renders a company code and sequence as e.g. "CH00012".
func FormatReceiptNumber(code string, seq int) string {
	return fmt.Sprintf("%s%0*d", code, receiptSequenceWidth, seq)
}

// NumberingService proposes the next receipt number per company.
type NumberingService struct {
	receiptRepo repository.ReceiptRepository
	log         *zap.Logger
}

// NewNumberingService creates a new numbering service
func NewNumberingService(receiptRepo repository.ReceiptRepository, log *zap.Logger) *NumberingService {
	if log == nil {
		log = zap.NewNop()
	}
	return &NumberingService{receiptRepo: receiptRepo, log: log}
}

// Next returns one past the highest numeric suffix already used by the
// company. Numbers whose suffix is not an integer are ignored.
//
// The result is a suggestion: two callers asking concurrently get the same
// number, and the unique index on receipt_number decides who keeps it.
func (s *NumberingService) Next(ctx context.Context, code string) (string, error) {
	company, ok := entity.LookupCompany(code)
	if !ok {
		return "", apperror.NewFieldError("company", "Unknown company")
	}

	numbers, err := s.receiptRepo.NumbersByCompany(ctx, company.Code)
	if err != nil {
		return "", err
	}

	highest := 0
	for _, n := range numbers {
		if len(n) <= len(company.Code) {
			continue
		}
		seq, err := strconv.Atoi(n[len(company.Code):])
		if err != nil {
			continue
		}
		if seq > highest {
			highest = seq
		}
	}

	return FormatReceiptNumber(company.Code, highest+1), nil
}

// Suggest is Next for form prefill: failures are logged and yield "".
func (s *NumberingService) Suggest(ctx context.Context, code string) string {
	number, err := s.Next(ctx, code)
	if err != nil {
		s.log.Warn("could not suggest receipt number", zap.String("company", code), zap.Error(err))
		return ""
	}
	return number
}
