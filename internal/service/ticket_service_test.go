package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sitiket/tiketops/internal/settings"
	apperrors "github.com/sitiket/tiketops/pkg/util/errorutil"
)

type memoryKV struct {
	data map[string][]byte
}

func (m *memoryKV) Load(_ context.Context, key string) ([]byte, error) {
	return m.data[key], nil
}

func (m *memoryKV) Save(_ context.Context, key string, value []byte) error {
	m.data[key] = value
	return nil
}

func newValidationService() *TicketService {
	store := settings.NewStore(&memoryKV{data: map[string][]byte{}}, nil, zap.NewNop())
	return NewTicketService(TicketDependencies{
		Settings: store,
		Logger:   zap.NewNop(),
	})
}

func TestImportTicketValidation(t *testing.T) {
	svc := newValidationService()

	_, err := svc.ImportTicket(context.Background(), TicketImport{
		Provider:   "TLKM",
		IncNumbers: []string{"ABC123"},
		Kategori:   "Tsunami",
		SiteCode:   "MIS01",
		JamOpen:    time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "invalid_request", domainErr.Code)
	assert.Contains(t, domainErr.Details, "IncNumbers", "INC numbers must start with INC")
	assert.Contains(t, domainErr.Details, "Kategori", "kategori must be a configured option")
}

func TestImportTicketValidationRequiredFields(t *testing.T) {
	svc := newValidationService()

	_, err := svc.ImportTicket(context.Background(), TicketImport{})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Contains(t, domainErr.Details, "Provider")
	assert.Contains(t, domainErr.Details, "SiteCode")
	assert.Contains(t, domainErr.Details, "JamOpen")
}

func TestCategoryTarget(t *testing.T) {
	categoryTTR := map[string]float64{
		"premium":  2,
		"critical": 4,
		"major":    8,
		"minor":    16,
		"low":      24,
	}

	cases := []struct {
		kategori string
		want     float64
	}{
		{"MAJOR", 8},
		{"CRITICAL", 4},
		{"MINOR [8]", 16},
		{"LOW [24]", 24},
		{"Premium Site", 2},
		{"CNQ", FallbackTTRHours},
		{"", FallbackTTRHours},
	}
	for _, tc := range cases {
		t.Run(tc.kategori, func(t *testing.T) {
			assert.Equal(t, tc.want, CategoryTarget(categoryTTR, tc.kategori))
		})
	}
}

func TestCategoryTargetPrefersLongestKey(t *testing.T) {
	categoryTTR := map[string]float64{
		"minor":    16,
		"minor 24": 24,
	}
	assert.Equal(t, 24.0, CategoryTarget(categoryTTR, "MINOR 24"))
	assert.Equal(t, 16.0, CategoryTarget(categoryTTR, "MINOR 8"))
}
