package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// slotSeparator разделитель начала и конца в метке слота "09:00 - 10:00"
const slotSeparator = " - "

// ActiveStatuses статусы, при которых слот считается занятым
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusApproved,
}
