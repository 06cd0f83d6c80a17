package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conciergerie/internal/core"
)

func TestNights(t *testing.T) {
	cases := []struct {
		start, end string
		want       int64
	}{
		{"2025-12-20", "2025-12-27", 7},
		{"2025-12-20", "2025-12-20", 0},
		{"2025-12-31", "2026-01-01", 1},
		{"2024-02-28", "2024-03-01", 2},
	}
	for _, tc := range cases {
		n, err := Nights(booking("b", "p", tc.start, tc.end, core.BookingConfirmed))
		require.NoError(t, err)
		assert.Equal(t, tc.want, n, "%s -> %s", tc.start, tc.end)
	}

	_, err := Nights(booking("bad", "p", "2025-12-27", "2025-12-20", core.BookingConfirmed))
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInvalidDateRange))
	var rangeErr *DateRangeError
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, "bad", rangeErr.BookingID)
}

func TestNightsRoundsPartialDaysUp(t *testing.T) {
	b := booking("b", "p", "2025-12-20", "2025-12-20", core.BookingConfirmed)
	b.EndDate = core.Date{Time: b.StartDate.Add(25 * time.Hour)}
	n, err := Nights(b)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestResolveScope(t *testing.T) {
	snap := fixtures()

	t.Run("admin sees everything", func(t *testing.T) {
		props, bookings := ResolveScope(Scope{Role: core.RoleAdmin, IdentityID: "1"}, snap.Properties, snap.Bookings)
		assert.Equal(t, snap.Properties, props)
		assert.Equal(t, snap.Bookings, bookings)
	})

	t.Run("owner is contained", func(t *testing.T) {
		props, bookings := ResolveScope(Scope{Role: core.RoleOwner, IdentityID: "2"}, snap.Properties, snap.Bookings)
		require.Len(t, props, 2)
		ids := map[string]bool{}
		for _, p := range props {
			assert.Equal(t, "2", p.OwnerID)
			ids[p.ID] = true
		}
		require.Len(t, bookings, 3)
		for _, b := range bookings {
			assert.True(t, ids[b.PropertyID], "booking %s escapes scope", b.ID)
		}
	})

	t.Run("owner without properties", func(t *testing.T) {
		props, bookings := ResolveScope(Scope{Role: core.RoleOwner, IdentityID: "99"}, snap.Properties, snap.Bookings)
		assert.Empty(t, props)
		assert.Empty(t, bookings)
	})

	t.Run("client and unknown roles see nothing", func(t *testing.T) {
		for _, role := range []core.Role{core.RoleClient, "guest"} {
			props, bookings := ResolveScope(Scope{Role: role, IdentityID: "3"}, snap.Properties, snap.Bookings)
			assert.Empty(t, props)
			assert.Empty(t, bookings)
		}
	})

	t.Run("result does not alias input", func(t *testing.T) {
		props, _ := ResolveScope(Scope{Role: core.RoleAdmin}, snap.Properties, snap.Bookings)
		props[0].Name = "changed"
		assert.Equal(t, "Appartement Marais", snap.Properties[0].Name)
	})
}

func TestScopeRelatedEntities(t *testing.T) {
	snap := fixtures()
	_, bookings := ResolveScope(Scope{Role: core.RoleOwner, IdentityID: "4"}, snap.Properties, snap.Bookings)

	docs := ScopeDocuments(bookings, snap.Documents)
	require.Len(t, docs, 1)
	assert.Equal(t, "d4", docs[0].ID)

	checkIns := ScopeCheckIns(bookings, snap.CheckIns)
	require.Len(t, checkIns, 1)
	assert.Equal(t, "c3", checkIns[0].ID)

	msgs := ScopeMessages(bookings, []core.Message{{ID: "m1", BookingID: "b1"}, {ID: "m2", BookingID: "b4"}})
	require.Len(t, msgs, 1)
	assert.Equal(t, "m2", msgs[0].ID)

	assert.Len(t, ClientBookings("3", snap.Bookings), 4)
	assert.Empty(t, ClientBookings("42", snap.Bookings))
}

func TestComputeRevenue(t *testing.T) {
	snap := fixtures()
	r := ComputeRevenue(snap.Bookings, rate, at("2025-12-15"))
	// b1 7 nights, b2 4 nights, b4 3 nights; b3 pending
	assert.Equal(t, int64(14*15000), r.Total.Cents)
	assert.Equal(t, int64(11*15000), r.Monthly.Cents)

	// Same month of another year is not the current month.
	r = ComputeRevenue(snap.Bookings, rate, at("2024-12-15"))
	assert.Equal(t, int64(0), r.Monthly.Cents)
}

func TestRevenueNonNegativeAndMonotonic(t *testing.T) {
	now := at("2025-12-15")
	var bookings []core.Booking
	prev := int64(0)
	starts := []string{"2025-12-01", "2025-12-10", "2025-06-30", "2024-01-01", "2025-12-31"}
	ends := []string{"2025-12-01", "2025-12-14", "2025-07-30", "2024-01-02", "2026-01-31"}
	for i := range starts {
		b := booking("b", "p1", starts[i], ends[i], core.BookingConfirmed)
		assert.GreaterOrEqual(t, bookingRevenue(b, rate).Cents, int64(0))

		bookings = append(bookings, b)
		total := ComputeRevenue(bookings, rate, now).Total.Cents
		assert.GreaterOrEqual(t, total, prev)
		prev = total
	}
}

func TestComputeOccupancy(t *testing.T) {
	snap := fixtures()
	now := at("2025-12-15")

	assert.Equal(t, 0, ComputeOccupancy(nil, snap.Bookings, now))
	assert.Equal(t, 0, ComputeOccupancy([]core.Property{}, nil, now))

	// 11 nights over 3 properties × 31 days.
	assert.Equal(t, 12, ComputeOccupancy(snap.Properties, snap.Bookings, now))

	long := []core.Booking{
		booking("x1", "p1", "2025-12-01", "2026-02-01", core.BookingConfirmed),
	}
	assert.Equal(t, 100, ComputeOccupancy(snap.Properties[:1], long, now))

	// 29 days in February 2024.
	feb := []core.Booking{booking("f", "p1", "2024-02-01", "2024-02-15", core.BookingConfirmed)}
	assert.Equal(t, 48, ComputeOccupancy(snap.Properties[:1], feb, at("2024-02-10")))
}

func TestBuildMonthlySeries(t *testing.T) {
	t.Run("always six points", func(t *testing.T) {
		points := BuildMonthlySeries(nil, rate, at("2025-12-15"))
		require.Len(t, points, SeriesLength)
		labels := make([]string, 0, SeriesLength)
		for _, p := range points {
			assert.Zero(t, p.BookingCount)
			assert.Zero(t, p.Revenue.Cents)
			labels = append(labels, p.Label)
		}
		assert.Equal(t, []string{"Juil", "Août", "Sep", "Oct", "Nov", "Déc"}, labels)
	})

	t.Run("crosses the year boundary", func(t *testing.T) {
		points := BuildMonthlySeries(nil, rate, at("2026-02-10"))
		require.Len(t, points, SeriesLength)
		assert.Equal(t, 2025, points[0].Year)
		assert.Equal(t, time.September, points[0].Month)
		assert.Equal(t, 2026, points[5].Year)
		assert.Equal(t, time.February, points[5].Month)
		assert.Equal(t, "Fév", points[5].Label)
	})

	t.Run("buckets by year and month", func(t *testing.T) {
		bookings := []core.Booking{
			booking("b1", "p1", "2025-12-20", "2025-12-27", core.BookingConfirmed),
			booking("old", "p1", "2024-12-20", "2024-12-27", core.BookingConfirmed),
			booking("p", "p1", "2025-11-01", "2025-11-03", core.BookingPending),
			booking("c", "p1", "2025-11-05", "2025-11-06", core.BookingCancelled),
		}
		points := BuildMonthlySeries(bookings, rate, at("2025-12-15"))
		assert.Equal(t, 1, points[5].BookingCount)
		assert.Equal(t, int64(105000), points[5].Revenue.Cents)
		assert.Equal(t, 2, points[4].BookingCount)
		assert.Zero(t, points[4].Revenue.Cents)
	})
}

func TestComputePropertyShares(t *testing.T) {
	props := []core.Property{
		{ID: "p1", Name: "Appartement Marais"},
		{ID: "p2", Name: "Grand appartement avec terrasse"},
		{ID: "p3", Name: "Sans réservation"},
		{ID: "p4", Name: "Chambre"},
		{ID: "p5", Name: "Hors limite"},
	}
	bookings := []core.Booking{
		booking("b1", "p1", "2025-12-01", "2025-12-02", core.BookingConfirmed),
		booking("b2", "p2", "2025-12-01", "2025-12-02", core.BookingConfirmed),
		booking("b3", "p2", "2025-12-03", "2025-12-04", core.BookingConfirmed),
		booking("b4", "p3", "2025-12-01", "2025-12-02", core.BookingPending),
		booking("b5", "p4", "2025-12-01", "2025-12-02", core.BookingConfirmed),
		booking("b6", "p5", "2025-12-01", "2025-12-02", core.BookingConfirmed),
	}

	shares := ComputePropertyShares(props, bookings, 4)
	require.Len(t, shares, 3)
	assert.Equal(t, PropertyShare{PropertyID: "p1", Label: "Appartement Marais", Count: 1}, shares[0])
	assert.Equal(t, "Grand appartement av...", shares[1].Label)
	assert.Equal(t, 2, shares[1].Count)
	assert.Equal(t, "p4", shares[2].PropertyID)

	assert.Len(t, ComputePropertyShares(props, bookings, 0), 3)
	assert.Len(t, ComputePropertyShares(props, bookings, 10), 4)
	assert.Empty(t, ComputePropertyShares(nil, bookings, 4))
}

func TestShareLabelCountsRunes(t *testing.T) {
	assert.Equal(t, "Château Côte d'Azur", shareLabel("Château Côte d'Azur"))
	assert.Equal(t, "Élégant appartement ...", shareLabel("Élégant appartement à Nice"))
}
