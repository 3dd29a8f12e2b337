package enums

// ReservationStatus maps to the reservation_status_enum enum in Postgres.
type ReservationStatus string

const (
	ReservationStatusActive   ReservationStatus = "active"
	ReservationStatusReleased ReservationStatus = "released"
	ReservationStatusExpired  ReservationStatus = "expired"
)

// TerminalReservationStatuses lists the statuses a hold cannot leave. Rows in
// these states are safe to purge once their retention window passes.
func TerminalReservationStatuses() []ReservationStatus {
	return []ReservationStatus{ReservationStatusReleased, ReservationStatusExpired}
}
