package lists

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/rs/zerolog"

	"github.com/example/campaign-dispatch/internal/models"
	"github.com/example/campaign-dispatch/internal/provider/mailmodo"
)

// Provider endpoint paths used by the list service.
const (
	pathAllLists = "/getAllContactLists"
	pathAdd      = "/addToList"
	pathBulkAdd  = "/bulkAddToList"
)

// Transport is the subset of the provider client the list service needs.
type Transport interface {
	Get(ctx context.Context, path string) (*mailmodo.Envelope, error)
	Post(ctx context.Context, path string, body any) (*mailmodo.Envelope, error)
}

// Service reads contact lists and adds contacts to them. Lists are owned by
// the provider; adding to an unknown list name creates it implicitly, and
// list reads are plain read-through fetches with no caching beyond the
// call.
type Service struct {
	logger    zerolog.Logger
	transport Transport
}

// NewService constructs a list service using the provided transport.
func NewService(transport Transport, logger zerolog.Logger) (*Service, error) {
	if transport == nil {
		return nil, errors.New("list service: transport dependency is required")
	}
	if reflect.ValueOf(logger).IsZero() {
		logger = zerolog.Nop()
	}
	return &Service{logger: logger, transport: transport}, nil
}

// Lists fetches all contact lists from the provider.
func (s *Service) Lists(ctx context.Context) ([]models.ContactList, error) {
	envelope, err := s.transport.Get(ctx, pathAllLists)
	if err != nil {
		return nil, err
	}

	var lists []models.ContactList
	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &lists); err != nil {
			return nil, fmt.Errorf("list service: decode contact lists: %w", err)
		}
	}

	s.logger.Debug().Int("count", len(lists)).Msg("contact lists fetched")
	return lists, nil
}

// Add submits a single contact to a named list, creating the list when it
// does not exist yet.
func (s *Service) Add(ctx context.Context, req models.AddContactRequest) (json.RawMessage, error) {
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.ListName) == "" {
		return nil, mailmodo.NewInvalidRequest("email and listName are required")
	}

	envelope, err := s.transport.Post(ctx, pathAdd, req)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("list_name", req.ListName).
		Msg("contact added to list")
	return envelope.Data, nil
}

type bulkAddPayload struct {
	ListName string                 `json:"listName"`
	Values   []models.ContactRecord `json:"values"`
}

// BulkAdd submits the entire record sequence to a named list as one bulk
// request. No client-side chunking happens regardless of size; whether the
// provider caps the per-request payload is an external constraint, so
// callers of very large uploads split them on their own. The returned
// receipt reports the submitted count together with the provider's
// acceptance echo.
func (s *Service) BulkAdd(ctx context.Context, listName string, records []models.ContactRecord) (*models.BulkAddReceipt, error) {
	listName = strings.TrimSpace(listName)
	if listName == "" {
		return nil, mailmodo.NewInvalidRequest("listName is required")
	}
	if len(records) == 0 {
		return nil, mailmodo.NewInvalidRequest("at least one contact record is required")
	}

	payload := bulkAddPayload{ListName: strings.ToLower(listName), Values: records}
	envelope, err := s.transport.Post(ctx, pathBulkAdd, payload)
	if err != nil {
		s.logger.Info().
			Str("list_name", payload.ListName).
			Int("records", len(records)).
			Err(err).
			Msg("bulk add failed")
		return nil, err
	}

	s.logger.Info().
		Str("list_name", payload.ListName).
		Int("records", len(records)).
		Msg("bulk add accepted")

	return &models.BulkAddReceipt{
		ListName: payload.ListName,
		Accepted: len(records),
		Raw:      envelope.Data,
	}, nil
}
