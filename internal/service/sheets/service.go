package sheets

import (
	"context"
	"fmt"
	"os"

	"github.com/rscf/care-fund-portal/internal/domain"
	"github.com/rscf/care-fund-portal/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// StoreService adapts the USER_DATA worksheet as the member record store.
// It mirrors the source system's connect-per-call behavior: every List and
// Append builds a fresh authenticated Sheets client, no reuse.
type StoreService struct {
	spreadsheetID string
	worksheet     string
	credentials   credentialsSource
	logger        *zap.Logger
}

type StoreConfig struct {
	SpreadsheetID   string
	WorksheetName   string
	CredentialsFile string
	CredentialsJSON string
}

type credentialsSource struct {
	file string
	json string
}

func NewStoreService(cfg StoreConfig, logger *zap.Logger) (*StoreService, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet ID is required")
	}
	if cfg.WorksheetName == "" {
		return nil, fmt.Errorf("worksheet name is required")
	}
	if cfg.CredentialsFile == "" && cfg.CredentialsJSON == "" {
		return nil, fmt.Errorf("service account credentials are required")
	}

	return &StoreService{
		spreadsheetID: cfg.SpreadsheetID,
		worksheet:     cfg.WorksheetName,
		credentials:   credentialsSource{file: cfg.CredentialsFile, json: cfg.CredentialsJSON},
		logger:        logger,
	}, nil
}

// connect authenticates a fresh Sheets client from the service-account
// credentials. Called once per store operation.
func (s *StoreService) connect(ctx context.Context) (*sheets.Service, error) {
	credBytes := []byte(s.credentials.json)
	if s.credentials.file != "" {
		b, err := os.ReadFile(s.credentials.file)
		if err != nil {
			return nil, fmt.Errorf("unable to read credentials file: %w", err)
		}
		credBytes = b
	}

	jwtConfig, err := google.JWTConfigFromJSON(credBytes, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account credentials: %w", err)
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(jwtConfig.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	return svc, nil
}

// List fetches the full current snapshot of the worksheet. Row 1 is the
// header and is skipped by the read range.
func (s *StoreService) List(ctx context.Context) ([]domain.Member, error) {
	svc, err := s.connect(ctx)
	if err != nil {
		return nil, errors.NewStoreError("failed to connect to record store", "list", err)
	}

	readRange := fmt.Sprintf("%s!A2:I", s.worksheet)
	resp, err := svc.Spreadsheets.Values.Get(s.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		s.logger.Error("Worksheet read failed",
			zap.String("range", readRange),
			zap.Int("status", apiStatus(err)),
			zap.Error(err))
		return nil, errors.NewStoreError("failed to read record store", "list", err)
	}

	members := make([]domain.Member, 0, len(resp.Values))
	for _, row := range resp.Values {
		members = append(members, domain.MemberFromRow(row))
	}

	s.logger.Debug("Record store snapshot loaded",
		zap.Int("records", len(members)))

	return members, nil
}

// Append adds one new row in fixed column order.
func (s *StoreService) Append(ctx context.Context, m domain.Member) error {
	svc, err := s.connect(ctx)
	if err != nil {
		return errors.NewStoreError("failed to connect to record store", "append", err)
	}

	appendRange := fmt.Sprintf("%s!A:I", s.worksheet)
	valueRange := &sheets.ValueRange{Values: [][]any{m.Row()}}

	_, err = svc.Spreadsheets.Values.Append(s.spreadsheetID, appendRange, valueRange).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		s.logger.Error("Worksheet append failed",
			zap.String("member_id", m.ID),
			zap.Int("status", apiStatus(err)),
			zap.Error(err))
		return errors.NewStoreError("failed to append record", "append", err)
	}

	s.logger.Info("Record appended",
		zap.String("member_id", m.ID),
		zap.String("status", m.Status))

	return nil
}

func apiStatus(err error) int {
	if apiErr, ok := err.(*googleapi.Error); ok {
		return apiErr.Code
	}
	return 0
}

var _ domain.MemberStore = (*StoreService)(nil)
