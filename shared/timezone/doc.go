// Package timezone pins every wall-clock reading of the service to the hotel's timezone.
//
// Stays are billed per calendar night, so the date a check-in or check-out falls on must be
// read in the hotel's zone rather than the server's:
//
//	nights := timezone.DaysBetween(checkIn, checkOut)
//	stamp := timezone.Format(booking.CheckIn, constant.DateFormat)
//	in, err := timezone.ParseAny("2025-03-05T14:00:00", time.RFC3339, constant.LocalDateFormat)
//
// Timestamps without an offset are interpreted in the hotel's zone. The zone comes from
// APP_TIMEZONE as an IANA name ("Asia/Jakarta", "Europe/London") and defaults to UTC when
// unset or unknown.
package timezone
