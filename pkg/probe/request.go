package probe

import "strconv"

// Request selects what to measure. It is implemented only by SensorRequest,
// ContactRequest and OutputRequest.
type Request interface {
	Kind() string
	isRequest()
}

// SensorRequest asks for the logical sensor with the given id.
type SensorRequest struct {
	ID int
}

// ContactRequest asks for a dry contact input.
type ContactRequest struct {
	ID int
}

// OutputRequest asks for a relay output.
type OutputRequest struct {
	ID int
}

func (SensorRequest) Kind() string  { return "sensor" }
func (ContactRequest) Kind() string { return "contact" }
func (OutputRequest) Kind() string  { return "output" }

func (SensorRequest) isRequest()  {}
func (ContactRequest) isRequest() {}
func (OutputRequest) isRequest()  {}

func (r SensorRequest) String() string  { return "sensor " + strconv.Itoa(r.ID) }
func (r ContactRequest) String() string { return "contact " + strconv.Itoa(r.ID) }
func (r OutputRequest) String() string  { return "output " + strconv.Itoa(r.ID) }

// Metric is the single measurement a probe yields.
type Metric struct {
	Label string
	Value float64
}
