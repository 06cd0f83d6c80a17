package core

// Snapshot is the set of collections read together for one computation.
type Snapshot struct {
	Properties []Property `json:"properties"`
	Bookings   []Booking  `json:"bookings"`
	Documents  []Document `json:"documents"`
	CheckIns   []CheckIn  `json:"checkIns"`
}
