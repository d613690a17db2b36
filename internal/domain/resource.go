package domain

type ResourceType string

const (
	ResourceTypeVehicle ResourceType = "VEHICLE"
	ResourceTypeDriver  ResourceType = "DRIVER"
)

type Vehicle struct {
	ID       int32  `json:"id"`
	Name     string `json:"name"`
	Plate    string `json:"plate"`
	Capacity int32  `json:"capacity"`
	Active   bool   `json:"active"`
}

type Driver struct {
	ID     int32  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Active bool   `json:"active"`
}

type Customer struct {
	ID    int32  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Conflict describes one row that overlaps a requested interval. Kind is
// either "booking" or "hold".
type Conflict struct {
	Kind      string `json:"kind"`
	ID        int32  `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Overlaps applies the half-open interval test: [s1,e1) and [s2,e2) conflict
// iff s1 < e2 AND s2 < e1. HH:MM strings compare correctly byte-wise, so the
// same predicate runs in SQL and in Go.
func Overlaps(s1, e1, s2, e2 string) bool {
	return s1 < e2 && s2 < e1
}
