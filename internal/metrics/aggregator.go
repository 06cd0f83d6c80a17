package metrics

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"conciergerie/internal/core"
	"conciergerie/internal/log"
)

// DefaultRecentLimit caps the recent bookings and upcoming check-in lists.
const DefaultRecentLimit = 5

// DefaultNightlyRate is the flat price of a night, 150.00 €.
var DefaultNightlyRate = core.Money{Cents: 15000}

var (
	ErrUnsupportedRole = errors.New("role has no dashboard overview")
	ErrMissingIdentity = errors.New("owner scope requires an identity")
)

// Config tunes the aggregator. Zero values fall back to defaults.
type Config struct {
	NightlyRate core.Money
	ShareLimit  int
	RecentLimit int
}

func DefaultConfig() Config {
	return Config{
		NightlyRate: DefaultNightlyRate,
		ShareLimit:  DefaultShareLimit,
		RecentLimit: DefaultRecentLimit,
	}
}

// Overview is everything the dashboard shows for one scope and month.
type Overview struct {
	Scope            Scope             `json:"scope"`
	Now              time.Time         `json:"now"`
	NightlyRate      core.Money        `json:"nightlyRate"`
	ScopedProperties []core.Property   `json:"scopedProperties"`
	ScopedBookings   []core.Booking    `json:"scopedBookings"`
	Revenue          Revenue           `json:"revenue"`
	OccupancyRate    int               `json:"occupancyRate"`
	MonthlySeries    []SeriesPoint     `json:"monthlySeries"`
	PropertyShares   []PropertyShare   `json:"propertyShares"`
	Statuses         StatusCounts      `json:"statuses"`
	Documents        DocumentStats     `json:"documents"`
	UpcomingCheckIns []core.CheckIn    `json:"upcomingCheckIns"`
	RecentBookings   []core.Booking    `json:"recentBookings"`
	Platform         *PlatformStats    `json:"platform,omitempty"`
	AvgNightRevenue  *core.Money       `json:"avgRevenuePerNight,omitempty"`
	Skipped          []*DateRangeError `json:"skipped"`
	SkippedCount     int               `json:"skippedCount"`
}

// Aggregator computes overviews. It holds configuration only and is safe
// for concurrent use.
type Aggregator struct {
	cfg    Config
	logger *log.Logger
}

func NewAggregator(cfg Config, logger *log.Logger) (*Aggregator, error) {
	if cfg.NightlyRate.Cents == 0 {
		cfg.NightlyRate = DefaultNightlyRate
	}
	if err := cfg.NightlyRate.Validate(); err != nil {
		return nil, fmt.Errorf("nightly rate: %w", err)
	}
	if cfg.ShareLimit <= 0 {
		cfg.ShareLimit = DefaultShareLimit
	}
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = DefaultRecentLimit
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &Aggregator{cfg: cfg, logger: logger.WithComponent(log.ComponentMetrics)}, nil
}

func (a *Aggregator) Config() Config { return a.cfg }

// Compute builds the overview of snap as seen by scope at now. Bookings
// with unusable dates stay in ScopedBookings but are left out of every
// figure and reported in Skipped.
func (a *Aggregator) Compute(snap core.Snapshot, scope Scope, now time.Time) (Overview, error) {
	switch scope.Role {
	case core.RoleAdmin:
	case core.RoleOwner:
		if strings.TrimSpace(scope.IdentityID) == "" {
			return Overview{}, ErrMissingIdentity
		}
	default:
		return Overview{}, fmt.Errorf("%w: %q", ErrUnsupportedRole, scope.Role)
	}

	properties, bookings := ResolveScope(scope, snap.Properties, snap.Bookings)
	valid, skipped := Partition(bookings)
	for _, s := range skipped {
		a.logger.Warn("Skipping booking with invalid dates",
			log.FieldBookingID, s.BookingID,
			log.FieldRole, string(scope.Role),
			log.FieldIdentity, scope.IdentityID,
			log.FieldError, s.Err.Error())
	}
	documents := ScopeDocuments(bookings, snap.Documents)
	checkIns := ScopeCheckIns(bookings, snap.CheckIns)

	rate := a.cfg.NightlyRate
	ov := Overview{
		Scope:            scope,
		Now:              now,
		NightlyRate:      rate,
		ScopedProperties: properties,
		ScopedBookings:   bookings,
		Revenue:          ComputeRevenue(valid, rate, now),
		OccupancyRate:    ComputeOccupancy(properties, valid, now),
		MonthlySeries:    BuildMonthlySeries(valid, rate, now),
		PropertyShares:   ComputePropertyShares(properties, valid, a.cfg.ShareLimit),
		Statuses:         CountStatuses(valid),
		Documents:        ComputeDocumentStats(documents),
		UpcomingCheckIns: UpcomingCheckIns(checkIns, a.cfg.RecentLimit),
		RecentBookings:   firstBookings(valid, a.cfg.RecentLimit),
		Skipped:          skipped,
		SkippedCount:     len(skipped),
	}
	if ov.Skipped == nil {
		ov.Skipped = []*DateRangeError{}
	}

	if scope.Role == core.RoleAdmin {
		p := ComputePlatformStats(properties, valid, documents)
		ov.Platform = &p
	} else {
		avg := AverageRevenuePerNight(ov.Revenue.Total, len(properties))
		ov.AvgNightRevenue = &avg
	}

	a.logger.Debug("Overview computed",
		log.FieldRole, string(scope.Role),
		log.FieldIdentity, scope.IdentityID,
		log.FieldSkipped, len(skipped),
		log.FieldOperation, log.OpAggregate)
	return ov, nil
}
