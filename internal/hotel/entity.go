package hotel

import "time"

type RoomType int

const (
	RoomTypeUnset RoomType = iota
	Single
	Double
	Suite
	Bunk
)

type roomTypeInfo struct {
	symbol   string
	capacity int
}

var roomTypeCatalog = map[RoomType]roomTypeInfo{
	Single: {symbol: "SINGLE", capacity: 1},
	Double: {symbol: "DOUBLE", capacity: 2},
	Suite:  {symbol: "SUITE", capacity: 4},
	Bunk:   {symbol: "BUNK", capacity: 8},
}

// RoomTypes lists the catalog in declaration order.
func RoomTypes() []RoomType {
	return []RoomType{Single, Double, Suite, Bunk}
}

func (t RoomType) Valid() bool {
	_, ok := roomTypeCatalog[t]

	return ok
}

func (t RoomType) String() string {
	if info, ok := roomTypeCatalog[t]; ok {
		return info.symbol
	}

	return "UNSET"
}

// Capacity is the maximum occupancy, zero for an unset type.
func (t RoomType) Capacity() int {
	return roomTypeCatalog[t].capacity
}

type Room struct {
	Number    int      `json:"number"`
	Type      RoomType `json:"type"`
	BasePrice float64  `json:"base_price"`
	Available bool     `json:"available"`
}

type Client struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	NationalID string `json:"national_id"`
	Email      string `json:"email"`
	VIP        bool   `json:"vip"`
}

// Booking is frozen once created. TotalPrice never follows later changes to
// the room's base price or the client's VIP flag.
type Booking struct {
	ID         int       `json:"id"`
	RoomNumber int       `json:"room_number"`
	RoomType   RoomType  `json:"room_type"`
	ClientID   int       `json:"client_id"`
	ClientName string    `json:"client_name"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
	Nights     int       `json:"nights"`
	TotalPrice float64   `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
}

type RoomBookings struct {
	RoomNumber int       `json:"room_number"`
	Bookings   []Booking `json:"bookings"`
}

type Info struct {
	Name    string
	Address string
	Phone   string
}
