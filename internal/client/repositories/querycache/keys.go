package querycache

import (
	"net/url"
	"strings"
)

// Key prefixes. Keys are slash-separated and a prefix matches itself and
// everything below it, so invalidating RoomsPrefix hits both lists and
// details.
const (
	RoomsPrefix        = "rooms"
	RoomsListPrefix    = "rooms/list"
	RoomDetailPrefix   = "rooms/detail"
	AmenitiesList      = "amenities/list"
	AvailabilityPrefix = "availability"
)

// Key joins parts with "/".
func Key(parts ...string) string {
	return strings.Join(parts, "/")
}

// RoomsListKey is the key of one rooms list query.
func RoomsListKey(q url.Values) string {
	return Key(RoomsListPrefix, q.Encode())
}

func RoomDetailKey(roomID string) string {
	return Key(RoomDetailPrefix, roomID)
}

func RoomTimeSlotsKey(roomID string) string {
	return Key(RoomDetailPrefix, roomID, "timeslots")
}

func AvailabilityKey(roomID, startDate, endDate string) string {
	return Key(AvailabilityPrefix, roomID, startDate, endDate)
}
