package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"conciergerie/internal/core"
	"conciergerie/internal/log"
	"conciergerie/internal/repository"
)

// Tabs names the sheet tabs holding each collection.
type Tabs struct {
	Users      string
	Properties string
	Bookings   string
	Documents  string
	CheckIns   string
	Messages   string
}

func DefaultTabs() Tabs {
	return Tabs{
		Users:      "Users",
		Properties: "Properties",
		Bookings:   "Bookings",
		Documents:  "Documents",
		CheckIns:   "CheckIns",
		Messages:   "Messages",
	}
}

type Config struct {
	SpreadsheetID      string
	ServiceAccountJSON string
	ServiceAccountFile string
	Tabs               Tabs
}

// Client reads the collections from a Google spreadsheet. The spreadsheet
// is maintained by hand, so the client never writes to it.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	tabs          Tabs
	logger        *log.Logger
}

var _ repository.Repository = (*Client)(nil)

// New creates a Sheets client authenticated with a service account.
func New(ctx context.Context, cfg Config, logger *log.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentSheets)

	svc, err := newSheetsService(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	tabs := cfg.Tabs
	if tabs == (Tabs{}) {
		tabs = DefaultTabs()
	}
	return &Client{svc: svc, spreadsheetID: cfg.SpreadsheetID, tabs: tabs, logger: logger}, nil
}

// newSheetsService prefers inline JSON credentials, then a file, then
// GOOGLE_APPLICATION_CREDENTIALS.
func newSheetsService(ctx context.Context, cfg Config, logger *log.Logger) (*gsheet.Service, error) {
	inline := strings.TrimSpace(cfg.ServiceAccountJSON)
	file := strings.TrimSpace(cfg.ServiceAccountFile)
	if inline == "" && file == "" {
		file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	switch {
	case inline != "":
		logger.InfoContext(ctx, "Using inline service account credentials")
		credentialsJSON = []byte(inline)
	case file != "":
		logger.InfoContext(ctx, "Reading service account credentials", "path", file)
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = data
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return svc, nil
}

func (c *Client) readTab(ctx context.Context, tab string) ([][]interface{}, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!A:Z", tab)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		c.logger.ErrorContext(ctx, "Sheet read failed", "range", rng, log.FieldError, err.Error())
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	return resp.Values, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]core.User, error) {
	values, err := c.readTab(ctx, c.tabs.Users)
	if err != nil {
		return nil, err
	}
	return parseUsers(values)
}

func (c *Client) ListProperties(ctx context.Context) ([]core.Property, error) {
	values, err := c.readTab(ctx, c.tabs.Properties)
	if err != nil {
		return nil, err
	}
	return parseProperties(values)
}

func (c *Client) GetProperty(ctx context.Context, id string) (core.Property, error) {
	props, err := c.ListProperties(ctx)
	if err != nil {
		return core.Property{}, err
	}
	for _, p := range props {
		if p.ID == id {
			return p, nil
		}
	}
	return core.Property{}, fmt.Errorf("property %s: %w", id, repository.ErrNotFound)
}

func (c *Client) ListBookings(ctx context.Context) ([]core.Booking, error) {
	values, err := c.readTab(ctx, c.tabs.Bookings)
	if err != nil {
		return nil, err
	}
	return parseBookings(values)
}

func (c *Client) GetBooking(ctx context.Context, id string) (core.Booking, error) {
	bookings, err := c.ListBookings(ctx)
	if err != nil {
		return core.Booking{}, err
	}
	for _, b := range bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return core.Booking{}, fmt.Errorf("booking %s: %w", id, repository.ErrNotFound)
}

func (c *Client) ListDocuments(ctx context.Context) ([]core.Document, error) {
	values, err := c.readTab(ctx, c.tabs.Documents)
	if err != nil {
		return nil, err
	}
	return parseDocuments(values)
}

func (c *Client) ListCheckIns(ctx context.Context) ([]core.CheckIn, error) {
	values, err := c.readTab(ctx, c.tabs.CheckIns)
	if err != nil {
		return nil, err
	}
	return parseCheckIns(values)
}

func (c *Client) ListMessages(ctx context.Context) ([]core.Message, error) {
	values, err := c.readTab(ctx, c.tabs.Messages)
	if err != nil {
		return nil, err
	}
	return parseMessages(values)
}

func (c *Client) CreateBooking(context.Context, core.Booking) error {
	return repository.ErrReadOnly
}

func (c *Client) AppendMessage(context.Context, core.Message) error {
	return repository.ErrReadOnly
}
